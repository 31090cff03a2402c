package queries_test

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type fakeReader struct {
	byID   map[kernel.UUID]*order.Order
	byTemp map[string]*order.Order
}

func newFakeReader(orders ...*order.Order) *fakeReader {
	r := &fakeReader{byID: map[kernel.UUID]*order.Order{}, byTemp: map[string]*order.Order{}}
	for _, o := range orders {
		r.byID[o.ID()] = o
		if o.Guest() != nil {
			r.byTemp[o.Guest().TemporaryID()] = o
		}
	}
	return r
}

func (r *fakeReader) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if o, ok := r.byID[id]; ok {
		return o, nil
	}
	return nil, errs.NewObjectNotFoundError("order", id.String())
}

func (r *fakeReader) GetByTemporaryID(_ context.Context, temporaryID string) (*order.Order, error) {
	if o, ok := r.byTemp[temporaryID]; ok {
		return o, nil
	}
	return nil, errs.NewObjectNotFoundError("guest order", temporaryID)
}

type fakeCatalog struct {
	restaurants map[kernel.UUID]catalog.Restaurant
}

func (c fakeCatalog) GetRestaurant(_ context.Context, id kernel.UUID) (catalog.Restaurant, error) {
	if r, ok := c.restaurants[id]; ok {
		return r, nil
	}
	return catalog.Restaurant{}, errs.NewObjectNotFoundError("restaurant", id.String())
}

func (c fakeCatalog) GetProduct(_ context.Context, id kernel.UUID) (catalog.Product, error) {
	return catalog.Product{}, errs.NewObjectNotFoundError("product", id.String())
}

type staticSettings struct{}

func (staticSettings) CurrentDeliverySettings(context.Context) (catalog.DeliverySettings, error) {
	return catalog.DefaultDeliverySettings(), nil
}

func newDraft(t *testing.T) order.Draft {
	t.Helper()
	restaurantID := kernel.NewUUID()
	leg, err := order.NewRestaurantLeg(restaurantID, "Noodle House", kernel.MustMoney("20.00"))
	require.NoError(t, err)
	line, err := order.NewLine(kernel.NewUUID(), restaurantID, 2, kernel.MustMoney("50.00"))
	require.NoError(t, err)
	draft, err := order.NewDraft([]order.RestaurantLeg{leg}, []order.Line{line})
	require.NoError(t, err)
	return draft
}

func newDelivery(t *testing.T) order.Delivery {
	t.Helper()
	d, err := order.NewDelivery("12 Sukhumvit Rd", nil, "")
	require.NoError(t, err)
	return d
}

func customerOrder(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewCustomerOrder(kernel.NewUUID(), customerID, newDelivery(t), newDraft(t), fixedNow)
	require.NoError(t, err)
	return o
}

func guestOrder(t *testing.T, expiresAt time.Time) *order.Order {
	t.Helper()
	contact, err := order.NewGuestContact("Somchai", "+66812345678", "", "")
	require.NoError(t, err)
	guest, err := order.NewGuest(order.NewTemporaryID(), contact, expiresAt)
	require.NoError(t, err)
	o, err := order.NewGuestOrder(kernel.NewUUID(), guest, newDelivery(t), newDraft(t), fixedNow)
	require.NoError(t, err)
	return o
}
