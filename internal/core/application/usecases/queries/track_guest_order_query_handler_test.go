package queries_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackGuestOrderQueryHandler(t *testing.T) {
	active := guestOrder(t, fixedNow.Add(order.GuestTTL))
	overdue := guestOrder(t, fixedNow.Add(-time.Minute))
	swept := guestOrder(t, fixedNow.Add(-time.Hour))
	require.NoError(t, swept.Expire(fixedNow))

	handler := queries.NewTrackGuestOrderQueryHandler(newFakeReader(active, overdue, swept)).
		WithClock(func() time.Time { return fixedNow })

	t.Run("active order is returned", func(t *testing.T) {
		q, err := queries.NewTrackGuestOrderQuery(active.Guest().TemporaryID())
		require.NoError(t, err)

		o, err := handler.Handle(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, active.ID(), o.ID())
	})

	t.Run("tracking code is normalized", func(t *testing.T) {
		q, err := queries.NewTrackGuestOrderQuery("  " + strings.ToLower(active.Guest().TemporaryID()) + " ")
		require.NoError(t, err)

		o, err := handler.Handle(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, active.ID(), o.ID())
	})

	t.Run("overdue order is expired before the sweep", func(t *testing.T) {
		q, err := queries.NewTrackGuestOrderQuery(overdue.Guest().TemporaryID())
		require.NoError(t, err)

		_, err = handler.Handle(context.Background(), q)
		assert.ErrorIs(t, err, errs.ErrObjectExpired)
	})

	t.Run("swept order is expired", func(t *testing.T) {
		q, err := queries.NewTrackGuestOrderQuery(swept.Guest().TemporaryID())
		require.NoError(t, err)

		_, err = handler.Handle(context.Background(), q)
		assert.ErrorIs(t, err, errs.ErrObjectExpired)
	})

	t.Run("unknown code is not found", func(t *testing.T) {
		q, err := queries.NewTrackGuestOrderQuery("GUEST-FFFFFFFF")
		require.NoError(t, err)

		_, err = handler.Handle(context.Background(), q)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.NotErrorIs(t, err, errs.ErrObjectExpired)
	})

	t.Run("blank code is rejected", func(t *testing.T) {
		_, err := queries.NewTrackGuestOrderQuery("   ")
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("unconstructed query is rejected", func(t *testing.T) {
		_, err := handler.Handle(context.Background(), queries.TrackGuestOrderQuery{})
		assert.ErrorIs(t, err, queries.ErrTrackGuestOrderQueryIsNotConstructed)
	})
}
