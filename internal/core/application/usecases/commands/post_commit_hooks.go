package commands

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// PostCommitHooks is the ordered list of publishers that receive order events
// once the producing transaction has committed.
//
// Hooks run synchronously in registration order. A hook that fails or panics
// is logged and skipped; the next hook still runs and the caller never sees
// the failure. Hooks are expected to return quickly and hand slow work off
// (the websocket hub only enqueues, the Kafka writer is asynchronous).
//
// Handlers that change an existing order Hold it from Begin until Dispatch
// returns, so events of one order reach the hooks in commit order within the
// process.
type PostCommitHooks struct {
	hooks  []ports.OrderEventPublisher
	logger *slog.Logger

	mu   sync.Mutex
	held map[string]*orderHold
}

type orderHold struct {
	mu   sync.Mutex
	refs int
}

func NewPostCommitHooks(logger *slog.Logger, hooks ...ports.OrderEventPublisher) *PostCommitHooks {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostCommitHooks{
		hooks:  hooks,
		logger: logger.With("component", "post-commit-hooks"),
		held:   make(map[string]*orderHold),
	}
}

// Hold blocks until no other caller holds orderID and returns the release
// func. A nil receiver holds nothing.
//
// Example:
//
//	defer hooks.Hold(orderID)()
func (p *PostCommitHooks) Hold(orderID kernel.UUID) func() {
	if p == nil {
		return func() {}
	}

	key := orderID.String()
	p.mu.Lock()
	h, ok := p.held[key]
	if !ok {
		h = &orderHold{}
		p.held[key] = h
	}
	h.refs++
	p.mu.Unlock()

	h.mu.Lock()
	return func() {
		h.mu.Unlock()

		p.mu.Lock()
		h.refs--
		if h.refs == 0 {
			delete(p.held, key)
		}
		p.mu.Unlock()
	}
}

// Holding reports how many orders are held or awaited.
func (p *PostCommitHooks) Holding() int {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.held)
}

// Dispatch hands every event to every hook. A nil receiver does nothing.
func (p *PostCommitHooks) Dispatch(ctx context.Context, events []order.Event) {
	if p == nil {
		return
	}
	for _, event := range events {
		for _, hook := range p.hooks {
			p.run(ctx, hook, event)
		}
	}
}

func (p *PostCommitHooks) run(ctx context.Context, hook ports.OrderEventPublisher, event order.Event) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.ErrorContext(ctx, "post-commit hook panicked",
				"hook", fmt.Sprintf("%T", hook),
				"order_id", event.OrderID.String(),
				"event", event.Kind.String(),
				"panic", r)
		}
	}()

	if err := hook.Publish(ctx, event); err != nil {
		p.logger.ErrorContext(ctx, "post-commit hook failed",
			"hook", fmt.Sprintf("%T", hook),
			"order_id", event.OrderID.String(),
			"event", event.Kind.String(),
			"error", err)
	}
}
