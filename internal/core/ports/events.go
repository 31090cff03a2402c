package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/order"
)

// OrderEventPublisher is a post-commit hook. It receives every order event
// after the transaction that produced it has committed. Publishing is best
// effort: a returned error is logged by the caller and never undoes the
// committed change.
type OrderEventPublisher interface {
	Publish(ctx context.Context, event order.Event) error
}
