package order

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrLineIsNotConstructed = errs.NewValueIsRequiredError("line must be created via NewLine")

// Line is one product on an order. The unit price is the catalog price at the
// moment the order was assembled and does not follow later price changes.
type Line struct { //nolint:recvcheck //using for validation
	productID    kernel.UUID
	restaurantID kernel.UUID
	quantity     int
	priceAtOrder kernel.Money
	guard        guard.ConstructorGuard
}

// NewLine validates the identifiers and requires a positive quantity.
func NewLine(productID, restaurantID kernel.UUID, quantity int, priceAtOrder kernel.Money) (Line, error) {
	l := Line{
		priceAtOrder: priceAtOrder,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		l.setProductID(productID),
		l.setRestaurantID(restaurantID),
		l.setQuantity(quantity),
	); err != nil {
		return Line{}, err
	}

	return l, nil
}

func (l Line) Validate() error {
	return l.guard.Validate(ErrLineIsNotConstructed)
}

func (l Line) ProductID() kernel.UUID {
	return l.productID
}

func (l Line) RestaurantID() kernel.UUID {
	return l.restaurantID
}

func (l Line) Quantity() int {
	return l.quantity
}

func (l Line) PriceAtOrder() kernel.Money {
	return l.priceAtOrder
}

// Subtotal is quantity x price at order.
func (l Line) Subtotal() kernel.Money {
	return l.priceAtOrder.Times(l.quantity)
}

func (l *Line) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("product id", err)
	}
	l.productID = id
	return nil
}

func (l *Line) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("restaurant id", err)
	}
	l.restaurantID = id
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	l.quantity = quantity
	return nil
}
