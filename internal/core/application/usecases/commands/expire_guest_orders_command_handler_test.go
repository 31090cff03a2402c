package commands_test

import (
	"errors"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewExpireGuestOrdersCommand(t *testing.T) {
	_, err := commands.NewExpireGuestOrdersCommand(0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	cmd, err := commands.NewExpireGuestOrdersCommand(25)
	require.NoError(t, err)
	assert.Equal(t, 25, cmd.BatchSize())
}

func TestExpireGuestOrdersCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	stale := storedGuestOrder(t, fixedNow.Add(-time.Minute), order.Preparing)
	dueNow := storedGuestOrder(t, fixedNow, order.Pending)
	cmd, _ := commands.NewExpireGuestOrdersCommand(10)

	repo := new(MockOrderRepository)
	repo.On("GetExpiredGuestOrders", ctx, fixedNow, 10).Return([]*order.Order{stale, dueNow}, nil).Once()
	repo.On("Update", ctx, stale).Return(nil).Once()
	repo.On("Update", ctx, dueNow).Return(nil).Once()
	factory, uow := happyUoW(ctx, repo)
	publisher := &recordingPublisher{}

	expired, err := commands.NewExpireGuestOrdersCommandHandler(factory, commands.NewPostCommitHooks(nil, publisher)).
		WithClock(clock).
		Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, expired)
	assert.Equal(t, order.Expired, stale.Status())
	assert.Equal(t, order.Expired, dueNow.Status())

	events := publisher.recorded()
	require.Len(t, events, 2)
	assert.Equal(t, order.Preparing, events[0].OldStatus)
	assert.Equal(t, order.Expired, events[0].NewStatus)
	assert.Equal(t, stale.Guest().TemporaryID(), events[0].TemporaryID)

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestExpireGuestOrdersCommandHandler_Handle_NothingToDo(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewExpireGuestOrdersCommand(10)

	repo := new(MockOrderRepository)
	repo.On("GetExpiredGuestOrders", ctx, fixedNow, 10).Return([]*order.Order{}, nil).Once()
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	expired, err := commands.NewExpireGuestOrdersCommandHandler(factory, nil).WithClock(clock).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, expired)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestExpireGuestOrdersCommandHandler_Handle_SkipsOrdersNotDue(t *testing.T) {
	ctx := t.Context()
	notYet := storedGuestOrder(t, fixedNow.Add(time.Hour), order.Pending)
	cmd, _ := commands.NewExpireGuestOrdersCommand(10)

	repo := new(MockOrderRepository)
	repo.On("GetExpiredGuestOrders", ctx, fixedNow, 10).Return([]*order.Order{notYet}, nil).Once()
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	expired, err := commands.NewExpireGuestOrdersCommandHandler(factory, nil).WithClock(clock).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, expired)
	assert.Equal(t, order.Pending, notYet.Status())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestExpireGuestOrdersCommandHandler_Handle_QueryError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewExpireGuestOrdersCommand(10)

	repo := new(MockOrderRepository)
	repo.On("GetExpiredGuestOrders", ctx, fixedNow, 10).Return(nil, errors.New("timeout")).Once()
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err := commands.NewExpireGuestOrdersCommandHandler(factory, nil).WithClock(clock).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrPersistenceFailed)
}
