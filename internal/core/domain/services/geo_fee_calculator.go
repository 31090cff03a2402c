package services

import (
	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// GeoFeeCalculator prices a single delivery leg.
//
// Fee policy:
//   - distance <= catalog.FreeRadiusKm: the base fee
//   - otherwise: base fee + (distance - catalog.FreeRadiusKm) x per-km fee,
//     rounded to two decimals
//   - either coordinate unknown: zero, the caller must supply the fee
//
// Example usage:
//
//	calc := services.NewGeoFeeCalculator()
//	fee, err := calc.Calculate(restaurant.Location, delivery.Point(), settings)
//	if err != nil {
//	    return err
//	}
type GeoFeeCalculator struct{}

func NewGeoFeeCalculator() GeoFeeCalculator {
	return GeoFeeCalculator{}
}

// Calculate returns the fee for delivering from restaurant to destination.
//
// Parameters:
//   - restaurant: restaurant coordinates, nil when unknown
//   - destination: delivery coordinates, nil when unknown
//   - settings: the pricing snapshot read for this assembly
//
// Returns:
//   - kernel.Money: the fee, zero when a coordinate is missing
//   - error: when a coordinate was not built through kernel.NewGeoPoint
func (GeoFeeCalculator) Calculate(
	restaurant, destination *kernel.GeoPoint,
	settings catalog.DeliverySettings,
) (kernel.Money, error) {
	if restaurant == nil || destination == nil {
		return kernel.ZeroMoney(), nil
	}

	distance, err := restaurant.DistanceKm(*destination)
	if err != nil {
		return kernel.Money{}, err
	}

	if distance <= catalog.FreeRadiusKm {
		return settings.BaseFee, nil
	}

	extra := decimal.NewFromFloat(distance - catalog.FreeRadiusKm).Mul(settings.PerKmFee.Decimal())
	return kernel.NewMoney(settings.BaseFee.Decimal().Add(extra))
}

// SumLegs adds independently priced leg fees. Multi-restaurant orders are not
// priced as a combined route.
func SumLegs(fees ...kernel.Money) kernel.Money {
	total := kernel.ZeroMoney()
	for _, f := range fees {
		total = total.Add(f)
	}
	return total
}
