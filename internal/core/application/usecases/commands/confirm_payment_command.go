package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand records that an administrator verified the payment of an order.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewConfirmPaymentCommand(orderID, actorID kernel.UUID) (ConfirmPaymentCommand, error) {
	cmd := ConfirmPaymentCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		validateID("order id", orderID, &cmd.orderID),
		validateID("actor id", actorID, &cmd.actorID),
	); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return cmd, nil
}

func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

func (c ConfirmPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ConfirmPaymentCommand) ActorID() kernel.UUID {
	return c.actorID
}
