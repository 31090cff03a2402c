package order

import (
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// Delivery is where the order goes. Point is nil when the client did not send
// coordinates; the fee then falls back to the static policy.
type Delivery struct {
	address string
	point   *kernel.GeoPoint
	notes   string
}

func NewDelivery(address string, point *kernel.GeoPoint, notes string) (Delivery, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Delivery{}, errs.NewValueIsRequiredError("delivery address")
	}
	if point != nil {
		if err := point.Validate(); err != nil {
			return Delivery{}, err
		}
	}
	return Delivery{address: address, point: point, notes: notes}, nil
}

func (d Delivery) Address() string {
	return d.address
}

func (d Delivery) Point() *kernel.GeoPoint {
	return d.point
}

func (d Delivery) Notes() string {
	return d.notes
}
