package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
)

// CatalogReader exposes the restaurant and product records owned by the
// catalog administration. Missing records match errs.ErrObjectNotFound.
type CatalogReader interface {
	GetRestaurant(ctx context.Context, id kernel.UUID) (catalog.Restaurant, error)
	GetProduct(ctx context.Context, id kernel.UUID) (catalog.Product, error)
}

// DeliverySettingsProvider returns the pricing parameters in force now.
// Implementations may cache, but only briefly: administrators expect edits to
// apply to the next order.
type DeliverySettingsProvider interface {
	CurrentDeliverySettings(ctx context.Context) (catalog.DeliverySettings, error)
}

// UserDirectory resolves accounts by id. Missing accounts match errs.ErrObjectNotFound.
type UserDirectory interface {
	GetUser(ctx context.Context, id kernel.UUID) (user.User, error)
}
