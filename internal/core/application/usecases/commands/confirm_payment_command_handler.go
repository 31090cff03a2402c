package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/order"
)

// ConfirmPaymentCommandHandler completes the payment of an order. A pending
// order moves to paid through the state machine in the same transaction.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	hooks      *PostCommitHooks
	now        func() time.Time
}

func NewConfirmPaymentCommandHandler(uowFactory OrderUoWFactory, hooks *PostCommitHooks) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		hooks:      hooks,
		now:        time.Now,
	}
}

// WithClock replaces the time source.
func (h ConfirmPaymentCommandHandler) WithClock(now func() time.Time) ConfirmPaymentCommandHandler {
	h.now = now
	return h
}

func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) (*order.Order, error) {
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

	actorID := cmd.ActorID()
	if err = aggregate.ConfirmPayment(&actorID, h.now()); err != nil {
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
