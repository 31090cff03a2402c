package order

import (
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// MultiRestaurantDisplayName labels orders spanning several restaurants in
// notifications.
const MultiRestaurantDisplayName = "Multi-Restaurant Order"

// RestaurantLeg is the part of an order fulfilled by one restaurant together
// with the delivery fee charged for that leg.
type RestaurantLeg struct {
	restaurantID kernel.UUID
	name         string
	deliveryFee  kernel.Money
}

func NewRestaurantLeg(restaurantID kernel.UUID, name string, deliveryFee kernel.Money) (RestaurantLeg, error) {
	if err := restaurantID.Validate(); err != nil {
		return RestaurantLeg{}, errs.NewValueIsInvalidErrorWithCause("restaurant id", err)
	}
	if name == "" {
		return RestaurantLeg{}, errs.NewValueIsRequiredError("restaurant name")
	}
	return RestaurantLeg{restaurantID: restaurantID, name: name, deliveryFee: deliveryFee}, nil
}

func (r RestaurantLeg) RestaurantID() kernel.UUID {
	return r.restaurantID
}

func (r RestaurantLeg) Name() string {
	return r.name
}

func (r RestaurantLeg) DeliveryFee() kernel.Money {
	return r.deliveryFee
}

// LineGroup is the view of an order's lines that belong to one leg.
type LineGroup struct {
	Leg      RestaurantLeg
	Lines    []Line
	Subtotal kernel.Money
}
