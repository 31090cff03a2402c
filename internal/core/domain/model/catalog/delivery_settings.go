package catalog

import "fooddelivery/internal/core/domain/model/kernel"

// FreeRadiusKm is the distance covered by the base fee alone.
const FreeRadiusKm = 2.0

// DeliverySettings are the admin-editable pricing parameters of the geo fee.
type DeliverySettings struct {
	BaseFee  kernel.Money
	PerKmFee kernel.Money
}

// DefaultDeliverySettings is used until an administrator stores other values.
func DefaultDeliverySettings() DeliverySettings {
	return DeliverySettings{
		BaseFee:  kernel.MustMoney("20.00"),
		PerKmFee: kernel.MustMoney("5.00"),
	}
}
