package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order on behalf of viewer. Customers see their own
// orders; staff see every order.
type GetOrderQuery struct {
	orderID kernel.UUID
	viewer  user.User

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID, viewer user.User) (GetOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), viewer.ID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, viewer: viewer, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderQuery) Viewer() user.User {
	return q.viewer
}
