package commands_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// gatedPublisher reports every event on entered and then waits for release.
type gatedPublisher struct {
	entered chan order.Status
	release chan struct{}
}

func (p *gatedPublisher) Publish(_ context.Context, event order.Event) error {
	p.entered <- event.NewStatus
	<-p.release
	return nil
}

func TestPostCommitHooks_Hold_SerializesOneOrder(t *testing.T) {
	hooks := commands.NewPostCommitHooks(nil)
	orderID := kernel.NewUUID()

	var inside, peak atomic.Int32
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := hooks.Hold(orderID)
			defer release()

			n := inside.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), peak.Load())
	assert.Equal(t, 0, hooks.Holding())
}

func TestPostCommitHooks_Hold_OtherOrdersDoNotWait(t *testing.T) {
	hooks := commands.NewPostCommitHooks(nil)
	release := hooks.Hold(kernel.NewUUID())
	defer release()

	done := make(chan struct{})
	go func() {
		hooks.Hold(kernel.NewUUID())()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hold on another order blocked")
	}
	assert.Equal(t, 1, hooks.Holding())
}

func TestPostCommitHooks_Hold_NilReceiver(t *testing.T) {
	var hooks *commands.PostCommitHooks

	release := hooks.Hold(kernel.NewUUID())
	release()

	assert.Equal(t, 0, hooks.Holding())
}

func TestTransitionStatusCommandHandler_Handle_DispatchesInCommitOrder(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t, kernel.NewUUID(), order.Paid)

	repo := new(MockOrderRepository)
	repo.On("GetForUpdate", mock.Anything, stored.ID()).Return(stored, nil)
	repo.On("Update", mock.Anything, stored).Return(nil)
	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	gate := &gatedPublisher{entered: make(chan order.Status, 2), release: make(chan struct{})}
	handler := commands.NewTransitionStatusCommandHandler(factory, commands.NewPostCommitHooks(nil, gate))

	first, err := commands.NewTransitionStatusCommand(stored.ID(), "preparing", admin(), "")
	require.NoError(t, err)
	second, err := commands.NewTransitionStatusCommand(stored.ID(), "ready_for_pickup", admin(), "")
	require.NoError(t, err)

	results := make(chan error, 2)
	go func() {
		_, handleErr := handler.Handle(ctx, first)
		results <- handleErr
	}()
	assert.Equal(t, order.Preparing, <-gate.entered)

	go func() {
		_, handleErr := handler.Handle(ctx, second)
		results <- handleErr
	}()
	assert.Never(t, func() bool { return len(gate.entered) > 0 }, 100*time.Millisecond, 10*time.Millisecond)
	repo.AssertNumberOfCalls(t, "GetForUpdate", 1)

	close(gate.release)
	assert.Equal(t, order.ReadyForPickup, <-gate.entered)
	require.NoError(t, <-results)
	require.NoError(t, <-results)
	assert.Equal(t, order.ReadyForPickup, stored.Status())
}
