package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrTransitionStatusCommandIsNotConstructed = errors.New(
	"TransitionStatusCommand must be created via NewTransitionStatusCommand constructor",
)

// TransitionStatusCommand moves an order to a target status on behalf of a
// staff member. The target is kept as received so that an unknown status is
// reported by the state machine as an invalid transition.
type TransitionStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  string
	actor   user.User
	note    string

	guard guard.ConstructorGuard
}

func NewTransitionStatusCommand(orderID kernel.UUID, target string, actor user.User, note string) (TransitionStatusCommand, error) {
	cmd := TransitionStatusCommand{
		actor: actor,
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	var targetErr error
	if target == "" {
		targetErr = errs.NewValueIsRequiredError("status")
	}
	cmd.target = target

	var actorErr error
	if err := actor.ID.Validate(); err != nil {
		actorErr = errs.NewValueIsRequiredErrorWithCause("actor", err)
	}

	if err := errors.Join(
		validateID("order id", orderID, &cmd.orderID),
		actorErr,
		targetErr,
	); err != nil {
		return TransitionStatusCommand{}, err
	}

	return cmd, nil
}

func (c TransitionStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionStatusCommandIsNotConstructed)
}

func (c TransitionStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c TransitionStatusCommand) Target() string {
	return c.target
}

func (c TransitionStatusCommand) Actor() user.User {
	return c.actor
}

func (c TransitionStatusCommand) Note() string {
	return c.note
}

func validateID(paramName string, id kernel.UUID, dst *kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(paramName, err)
	}
	*dst = id
	return nil
}
