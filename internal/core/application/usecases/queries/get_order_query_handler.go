package queries

import (
	"context"
	"fmt"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

// GetOrderQueryHandler returns the committed order with its lines, legs and payment.
type GetOrderQueryHandler struct {
	reader OrderReader
}

func NewGetOrderQueryHandler(reader OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: reader}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	viewer := query.Viewer()
	if !viewer.CanAccessOrder(o.CustomerID(), o.RestaurantIDs()) {
		return nil, fmt.Errorf("%w: user %s may not read order %s", errs.ErrPermissionIsDenied, viewer.ID, o.ID())
	}

	return o, nil
}
