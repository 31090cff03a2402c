package commands

import (
	"context"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels a non-terminal order. Customers may only
// cancel their own orders, restaurant accounts orders with a line of their
// restaurant, admins any.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	hooks      *PostCommitHooks
	now        func() time.Time
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, hooks *PostCommitHooks) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		hooks:      hooks,
		now:        time.Now,
	}
}

// WithClock replaces the time source.
func (h CancelOrderCommandHandler) WithClock(now func() time.Time) CancelOrderCommandHandler {
	h.now = now
	return h
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
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
	if !actor.CanAccessOrder(aggregate.CustomerID(), aggregate.RestaurantIDs()) {
		return nil, fmt.Errorf("%w: user %s may not cancel order %s",
			errs.ErrPermissionIsDenied, actor.ID, aggregate.ID())
	}

	if err = aggregate.Cancel(&actor.ID, cmd.Note(), h.now()); err != nil {
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
