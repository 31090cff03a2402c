package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/order"
)

// ExpireGuestOrdersCommandHandler marks guest orders past their deadline as
// expired. Each swept order gets its own status log entry and event; the
// whole batch commits in one transaction.
//
// Example:
//
//	cmd, _ := NewExpireGuestOrdersCommand(100)
//	expired, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	log.Printf("expired %d guest orders", expired)
type ExpireGuestOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	hooks      *PostCommitHooks
	now        func() time.Time
}

func NewExpireGuestOrdersCommandHandler(uowFactory OrderUoWFactory, hooks *PostCommitHooks) ExpireGuestOrdersCommandHandler {
	return ExpireGuestOrdersCommandHandler{
		uowFactory: uowFactory,
		hooks:      hooks,
		now:        time.Now,
	}
}

// WithClock replaces the time source.
func (h ExpireGuestOrdersCommandHandler) WithClock(now func() time.Time) ExpireGuestOrdersCommandHandler {
	h.now = now
	return h
}

// Handle returns the number of orders expired by this sweep.
func (h ExpireGuestOrdersCommandHandler) Handle(ctx context.Context, cmd ExpireGuestOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := h.now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, storeError("begin", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	candidates, err := repo.GetExpiredGuestOrders(ctx, now, cmd.BatchSize())
	if err != nil {
		return 0, storeError("get expired guest orders", err)
	}

	expired := make([]*order.Order, 0, len(candidates))
	for _, aggregate := range candidates {
		if err = aggregate.Expire(now); err != nil {
			continue
		}
		if err = repo.Update(ctx, aggregate); err != nil {
			return 0, storeError("update order", err)
		}
		expired = append(expired, aggregate)
	}

	if len(expired) == 0 {
		return 0, nil
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, storeError("commit", err)
	}

	for _, aggregate := range expired {
		h.hooks.Dispatch(ctx, aggregate.PullEvents())
	}
	return len(expired), nil
}
