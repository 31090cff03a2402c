// Package ports defines the contracts between the order lifecycle core and
// the infrastructure around it: persistence, catalog and user lookups,
// delivery settings and post-commit event publishing.
package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Lookups that match nothing return an error matching errs.ErrObjectNotFound.
type OrderRepository interface {
	// Add persists a new order together with its lines, its legs, the
	// uncommitted status log entries and the optional payment.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the header, appends the uncommitted status log entries
	// and saves the payment. Lines are immutable and never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order without locking it.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its header row until the
	// surrounding transaction ends. Concurrent transitions of the same order
	// are serialized by this lock.
	//
	// Example:
	//   o, err := repo.GetForUpdate(ctx, id)
	//   if err != nil {
	//       return err
	//   }
	//   if err = o.TransitionTo(order.Preparing, &actorID, "", time.Now()); err != nil {
	//       return err
	//   }
	//   return repo.Update(ctx, o)
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByTemporaryID retrieves a guest order by its tracking id.
	GetByTemporaryID(ctx context.Context, temporaryID string) (*order.Order, error)

	// GetExpiredGuestOrders locks up to limit guest orders whose expiry
	// deadline is at or before now and whose status is not terminal. Rows
	// locked by another sweep are skipped.
	GetExpiredGuestOrders(ctx context.Context, now time.Time, limit int) ([]*order.Order, error)

	// ListStatusLog returns the committed status history of an order, oldest first.
	ListStatusLog(ctx context.Context, orderID kernel.UUID) ([]order.StatusLogEntry, error)
}
