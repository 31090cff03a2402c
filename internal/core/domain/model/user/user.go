// Package user describes the accounts that act on orders.
package user

import "fooddelivery/internal/core/domain/model/kernel"

type Role string

const (
	RoleCustomer          Role = "customer"
	RoleGeneralRestaurant Role = "general_restaurant"
	RoleSpecialRestaurant Role = "special_restaurant"
	RoleAdmin             Role = "admin"
)

// User is an account resolved from a bearer credential.
// RestaurantID binds a restaurant account to the restaurant it works for.
type User struct {
	ID           kernel.UUID
	Username     string
	Role         Role
	IsActive     bool
	RestaurantID *kernel.UUID
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsStaff reports whether the role may drive orders through their lifecycle.
// Which orders a restaurant account reaches is decided by CanAccessOrder.
func (u User) IsStaff() bool {
	return u.Role == RoleAdmin || u.IsRestaurant()
}

func (u User) IsRestaurant() bool {
	return u.Role == RoleGeneralRestaurant || u.Role == RoleSpecialRestaurant
}

// CanAccessOrder reports whether the user may read or act on an order placed
// by ownerID whose lines come from restaurantIDs. Admins reach every order,
// restaurant accounts only orders with at least one line of their restaurant.
func (u User) CanAccessOrder(ownerID *kernel.UUID, restaurantIDs []kernel.UUID) bool {
	if u.IsAdmin() {
		return true
	}
	if ownerID != nil && ownerID.IsEqual(u.ID) {
		return true
	}
	if !u.IsRestaurant() || u.RestaurantID == nil {
		return false
	}
	for _, id := range restaurantIDs {
		if id.IsEqual(*u.RestaurantID) {
			return true
		}
	}
	return false
}
