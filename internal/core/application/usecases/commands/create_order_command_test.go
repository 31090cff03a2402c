package commands_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateCustomerOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	customerID := kernel.NewUUID()
	payment := &commands.PaymentInfo{Method: order.PaymentQR}

	cmd, err := commands.NewCreateCustomerOrderCommand(id, customerID, cart(), newDelivery(t), payment)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, id, cmd.OrderID())
	require.NotNil(t, cmd.CustomerID())
	assert.Equal(t, customerID, *cmd.CustomerID())
	assert.False(t, cmd.IsGuest())
	assert.Len(t, cmd.Groups(), 1)
	assert.Equal(t, order.PaymentQR, cmd.Payment().Method)
}

func TestNewCreateCustomerOrderCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewCreateCustomerOrderCommand(kernel.UUID{}, kernel.UUID{}, nil, order.Delivery{},
		&commands.PaymentInfo{Method: "cash"})

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.ErrorIs(t, err, errs.ErrCartIsInvalid)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewCreateGuestOrderCommand(t *testing.T) {
	t.Run("valid contact", func(t *testing.T) {
		contact, err := order.NewGuestContact("Somchai", "+66812345678", "s@example.com", "")
		require.NoError(t, err)

		cmd, err := commands.NewCreateGuestOrderCommand(kernel.NewUUID(), contact, cart(), newDelivery(t), nil)

		require.NoError(t, err)
		assert.True(t, cmd.IsGuest())
		assert.Nil(t, cmd.CustomerID())
		assert.Nil(t, cmd.Payment())
	})

	t.Run("missing contact", func(t *testing.T) {
		_, err := commands.NewCreateGuestOrderCommand(kernel.NewUUID(), order.GuestContact{}, cart(), newDelivery(t), nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestCreateOrderCommand_NotConstructed(t *testing.T) {
	require.ErrorIs(t, commands.CreateOrderCommand{}.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
