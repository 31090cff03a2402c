package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrQuoteDeliveryFeeQueryIsNotConstructed = errors.New(
	"QuoteDeliveryFeeQuery must be created via NewQuoteDeliveryFeeQuery constructor",
)

// QuoteDeliveryFeeQuery prices the delivery legs of a prospective cart
// without creating anything. Clients show the quote before checkout.
type QuoteDeliveryFeeQuery struct {
	restaurantIDs []kernel.UUID
	destination   kernel.GeoPoint

	guard guard.ConstructorGuard
}

func NewQuoteDeliveryFeeQuery(restaurantIDs []kernel.UUID, destination kernel.GeoPoint) (QuoteDeliveryFeeQuery, error) {
	if len(restaurantIDs) == 0 {
		return QuoteDeliveryFeeQuery{}, errs.NewValueIsRequiredError("restaurant ids")
	}
	errList := []error{destination.Validate()}
	for _, id := range restaurantIDs {
		errList = append(errList, id.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return QuoteDeliveryFeeQuery{}, err
	}

	return QuoteDeliveryFeeQuery{
		restaurantIDs: append([]kernel.UUID(nil), restaurantIDs...),
		destination:   destination,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (q QuoteDeliveryFeeQuery) Validate() error {
	return q.guard.Validate(ErrQuoteDeliveryFeeQueryIsNotConstructed)
}

func (q QuoteDeliveryFeeQuery) RestaurantIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), q.restaurantIDs...)
}

func (q QuoteDeliveryFeeQuery) Destination() kernel.GeoPoint {
	return q.destination
}

// LegQuote is the fee of one restaurant leg. DistanceKm is nil when the
// restaurant has no coordinates and the base fee applies.
type LegQuote struct {
	RestaurantID kernel.UUID
	DistanceKm   *float64
	Fee          kernel.Money
}

// QuoteDeliveryFeeQueryResponse lists the legs and their sum.
type QuoteDeliveryFeeQueryResponse struct {
	Legs  []LegQuote
	Total kernel.Money
}
