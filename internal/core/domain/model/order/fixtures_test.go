package order_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

type cartLine struct {
	price    string
	quantity int
}

type cartLeg struct {
	name  string
	fee   string
	lines []cartLine
}

func newDraft(t *testing.T, legs ...cartLeg) order.Draft {
	t.Helper()

	var restaurantLegs []order.RestaurantLeg
	var lines []order.Line
	for _, leg := range legs {
		restaurantID := kernel.NewUUID()
		l, err := order.NewRestaurantLeg(restaurantID, leg.name, kernel.MustMoney(leg.fee))
		require.NoError(t, err)
		restaurantLegs = append(restaurantLegs, l)

		for _, cl := range leg.lines {
			line, err := order.NewLine(kernel.NewUUID(), restaurantID, cl.quantity, kernel.MustMoney(cl.price))
			require.NoError(t, err)
			lines = append(lines, line)
		}
	}

	draft, err := order.NewDraft(restaurantLegs, lines)
	require.NoError(t, err)
	return draft
}

func newDelivery(t *testing.T) order.Delivery {
	t.Helper()
	d, err := order.NewDelivery("12 Sukhumvit Rd", nil, "")
	require.NoError(t, err)
	return d
}

func newGuest(t *testing.T, expiresAt time.Time) order.Guest {
	t.Helper()
	contact, err := order.NewGuestContact("Somchai", "+66812345678", "", "no chili")
	require.NoError(t, err)
	g, err := order.NewGuest(order.NewTemporaryID(), contact, expiresAt)
	require.NoError(t, err)
	return g
}

func singleRestaurantDraft(t *testing.T) order.Draft {
	return newDraft(t, cartLeg{name: "Noodle House", fee: "20.00", lines: []cartLine{{price: "50.00", quantity: 2}, {price: "30.00", quantity: 1}}})
}
