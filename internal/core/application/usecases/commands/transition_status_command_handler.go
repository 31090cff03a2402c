package commands

import (
	"context"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

// TransitionStatusCommandHandler applies one state machine step.
//
// The order row is locked for the duration of the transaction, so two
// concurrent transitions of the same order are applied one after the other;
// the second one is checked against the status the first one committed.
//
// Example:
//
//	handler := NewTransitionStatusCommandHandler(uowFactory, hooks)
//	cmd, _ := NewTransitionStatusCommand(orderID, "preparing", staff, "")
//	updated, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInvalidTransition) {
//	    // nothing changed
//	}
type TransitionStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	hooks      *PostCommitHooks
	now        func() time.Time
}

func NewTransitionStatusCommandHandler(uowFactory OrderUoWFactory, hooks *PostCommitHooks) TransitionStatusCommandHandler {
	return TransitionStatusCommandHandler{
		uowFactory: uowFactory,
		hooks:      hooks,
		now:        time.Now,
	}
}

// WithClock replaces the time source.
func (h TransitionStatusCommandHandler) WithClock(now func() time.Time) TransitionStatusCommandHandler {
	h.now = now
	return h
}

func (h TransitionStatusCommandHandler) Handle(ctx context.Context, cmd TransitionStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	defer h.hooks.Hold(cmd.OrderID())()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storeError("begin", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, storeError("get order", err)
	}

	actor := cmd.Actor()
	if !actor.IsStaff() || !actor.CanAccessOrder(aggregate.CustomerID(), aggregate.RestaurantIDs()) {
		return nil, fmt.Errorf("%w: user %s may not change order %s",
			errs.ErrPermissionIsDenied, actor.ID, aggregate.ID())
	}

	target := order.ParseStatus(cmd.Target())
	if target == order.Unknown {
		return nil, errs.NewInvalidTransitionError(aggregate.Status().String(), cmd.Target(), "unknown status")
	}

	if err = aggregate.TransitionTo(target, &actor.ID, cmd.Note(), h.now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return nil, storeError("update order", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, storeError("commit", err)
	}

	h.hooks.Dispatch(ctx, aggregate.PullEvents())
	return aggregate, nil
}
