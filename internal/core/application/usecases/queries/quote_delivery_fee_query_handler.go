package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// QuoteDeliveryFeeQueryHandler prices legs the way order assembly does when no
// fee is supplied: the geo fee when the restaurant has coordinates, the base
// fee otherwise. Clients send the quoted fees back with the cart.
type QuoteDeliveryFeeQueryHandler struct {
	catalog  ports.CatalogReader
	settings ports.DeliverySettingsProvider
	fees     services.GeoFeeCalculator
}

func NewQuoteDeliveryFeeQueryHandler(
	catalog ports.CatalogReader,
	settings ports.DeliverySettingsProvider,
) QuoteDeliveryFeeQueryHandler {
	return QuoteDeliveryFeeQueryHandler{
		catalog:  catalog,
		settings: settings,
		fees:     services.NewGeoFeeCalculator(),
	}
}

func (h QuoteDeliveryFeeQueryHandler) Handle(
	ctx context.Context,
	query QuoteDeliveryFeeQuery,
) (QuoteDeliveryFeeQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return QuoteDeliveryFeeQueryResponse{}, err
	}

	settings, err := h.settings.CurrentDeliverySettings(ctx)
	if err != nil {
		return QuoteDeliveryFeeQueryResponse{}, err
	}

	destination := query.Destination()
	resp := QuoteDeliveryFeeQueryResponse{Legs: make([]LegQuote, 0, len(query.RestaurantIDs()))}
	for _, id := range query.RestaurantIDs() {
		restaurant, err := h.catalog.GetRestaurant(ctx, id)
		if err != nil {
			return QuoteDeliveryFeeQueryResponse{}, err
		}

		leg := LegQuote{RestaurantID: id, Fee: settings.BaseFee}
		if restaurant.Location != nil {
			km, err := restaurant.Location.DistanceKm(destination)
			if err != nil {
				return QuoteDeliveryFeeQueryResponse{}, err
			}
			fee, err := h.fees.Calculate(restaurant.Location, &destination, settings)
			if err != nil {
				return QuoteDeliveryFeeQueryResponse{}, err
			}
			leg.DistanceKm = &km
			leg.Fee = fee
		}
		resp.Legs = append(resp.Legs, leg)
	}

	fees := make([]kernel.Money, 0, len(resp.Legs))
	for _, leg := range resp.Legs {
		fees = append(fees, leg.Fee)
	}
	resp.Total = services.SumLegs(fees...)

	return resp, nil
}
