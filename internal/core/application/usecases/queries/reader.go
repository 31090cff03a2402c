// Package queries contains read-only operations over committed order state.
package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderReader loads committed orders outside of any command transaction.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	GetByTemporaryID(ctx context.Context, temporaryID string) (*order.Order, error)
}
