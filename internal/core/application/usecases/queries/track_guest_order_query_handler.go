package queries

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

// TrackGuestOrderQueryHandler resolves a guest tracking code.
//
// Expiry is checked on read: an order whose deadline has passed is reported
// as expired even when the periodic sweep has not reached it yet.
//
// Errors:
//   - errs.ErrObjectNotFound: no guest order was ever issued this code
//   - errs.ErrObjectExpired: the order exists but can no longer be tracked
type TrackGuestOrderQueryHandler struct {
	reader OrderReader
	now    func() time.Time
}

func NewTrackGuestOrderQueryHandler(reader OrderReader) TrackGuestOrderQueryHandler {
	return TrackGuestOrderQueryHandler{reader: reader, now: time.Now}
}

// WithClock replaces the time source.
func (h TrackGuestOrderQueryHandler) WithClock(now func() time.Time) TrackGuestOrderQueryHandler {
	h.now = now
	return h
}

func (h TrackGuestOrderQueryHandler) Handle(ctx context.Context, query TrackGuestOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.reader.GetByTemporaryID(ctx, query.TemporaryID())
	if err != nil {
		return nil, err
	}

	if o.IsExpiredAt(h.now()) {
		return nil, errs.NewObjectExpiredError("guest order", query.TemporaryID())
	}

	return o, nil
}
