package catalog

import "fooddelivery/internal/core/domain/model/kernel"

// RestaurantStatus mirrors the storefront state maintained by restaurant staff.
type RestaurantStatus string

const (
	RestaurantOpen   RestaurantStatus = "open"
	RestaurantClosed RestaurantStatus = "closed"
)

// Restaurant is a vendor on the platform.
type Restaurant struct {
	ID        kernel.UUID
	Name      string
	Location  *kernel.GeoPoint
	IsSpecial bool
	Status    RestaurantStatus
}

// AcceptsOrders reports whether new orders may reference the restaurant.
func (r Restaurant) AcceptsOrders() bool {
	return r.Status == RestaurantOpen
}

// Product is a menu item sold by exactly one restaurant.
type Product struct {
	ID           kernel.UUID
	RestaurantID kernel.UUID
	Name         string
	Price        kernel.Money
	IsAvailable  bool
}

// BelongsTo reports whether the product is sold by restaurantID.
func (p Product) BelongsTo(restaurantID kernel.UUID) bool {
	return p.RestaurantID.IsEqual(restaurantID)
}
