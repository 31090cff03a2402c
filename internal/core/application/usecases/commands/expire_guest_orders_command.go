package commands

import (
	"errors"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrExpireGuestOrdersCommandIsNotConstructed = errors.New(
	"ExpireGuestOrdersCommand must be created via NewExpireGuestOrdersCommand constructor",
)

// DefaultExpiryBatchSize bounds one sweep when no size is configured.
const DefaultExpiryBatchSize = 100

// ExpireGuestOrdersCommand runs one expiry sweep over at most BatchSize guest orders.
type ExpireGuestOrdersCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewExpireGuestOrdersCommand(batchSize int) (ExpireGuestOrdersCommand, error) {
	if batchSize <= 0 {
		return ExpireGuestOrdersCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "unbounded")
	}
	return ExpireGuestOrdersCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c ExpireGuestOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpireGuestOrdersCommandIsNotConstructed)
}

func (c ExpireGuestOrdersCommand) BatchSize() int {
	return c.batchSize
}
