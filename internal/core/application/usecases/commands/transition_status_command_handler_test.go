package commands_test

import (
	"errors"
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewTransitionStatusCommand(t *testing.T) {
	_, err := commands.NewTransitionStatusCommand(kernel.UUID{}, "", user.User{}, "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	cmd, err := commands.NewTransitionStatusCommand(kernel.NewUUID(), "whatever", admin(), "note")
	require.NoError(t, err)
	assert.Equal(t, "whatever", cmd.Target())
	assert.Equal(t, "note", cmd.Note())
}

func TestTransitionStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t, kernel.NewUUID(), order.Pending)
	kitchen := restaurantAccount(stored.RestaurantIDs()[0])
	cmd, _ := commands.NewTransitionStatusCommand(stored.ID(), "paid", kitchen, "cash received")

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, stored.ID()).Return(stored, nil).Once(),
		repo.On("Update", ctx, stored).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := &recordingPublisher{}

	updated, err := commands.NewTransitionStatusCommandHandler(factory, commands.NewPostCommitHooks(nil, publisher)).
		WithClock(clock).
		Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Paid, updated.Status())
	assert.Equal(t, fixedNow, updated.StatusChangedAt())

	events := publisher.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, order.EventStatusChanged, events[0].Kind)
	assert.Equal(t, order.Pending, events[0].OldStatus)
	assert.Equal(t, order.Paid, events[0].NewStatus)

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionStatusCommandHandler_Handle_Refused(t *testing.T) {
	tests := []struct {
		name   string
		status order.Status
		target string
		reason string
	}{
		{name: "from completed", status: order.Completed, target: "delivering", reason: "status is terminal"},
		{name: "from cancelled", status: order.Cancelled, target: "paid", reason: "status is terminal"},
		{name: "unknown target", status: order.Pending, target: "teleported", reason: "unknown status"},
		{name: "expired target", status: order.Pending, target: "expired", reason: "expiry sweep"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			stored := storedOrder(t, kernel.NewUUID(), tt.status)
			cmd, _ := commands.NewTransitionStatusCommand(stored.ID(), tt.target, admin(), "")

			repo := new(MockOrderRepository)
			repo.On("GetForUpdate", ctx, stored.ID()).Return(stored, nil).Once()
			uow := new(MockOrderUoW)
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("OrderRepository").Return(repo).Once()
			uow.On("Rollback", ctx).Return(nil).Once()
			factory := new(MockOrderUoWFactory)
			factory.On("Create").Return(uow).Once()
			publisher := &recordingPublisher{}

			_, err := commands.NewTransitionStatusCommandHandler(factory, commands.NewPostCommitHooks(nil, publisher)).
				Handle(ctx, cmd)

			require.ErrorIs(t, err, errs.ErrInvalidTransition)
			assert.Contains(t, err.Error(), tt.reason)
			assert.Equal(t, tt.status, stored.Status())
			assert.Empty(t, stored.UncommittedStatusLog())
			assert.Empty(t, publisher.recorded())
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			uow.AssertNotCalled(t, "Commit", mock.Anything)
		})
	}
}

func TestTransitionStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewTransitionStatusCommand(id, "paid", admin(), "")

	repo := new(MockOrderRepository)
	repo.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err := commands.NewTransitionStatusCommandHandler(factory, nil).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.NotErrorIs(t, err, errs.ErrPersistenceFailed)
}

func TestTransitionStatusCommandHandler_Handle_HookFailureDoesNotFailTransition(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t, kernel.NewUUID(), order.Paid)
	cmd, _ := commands.NewTransitionStatusCommand(stored.ID(), "preparing", admin(), "")

	repo := new(MockOrderRepository)
	repo.On("GetForUpdate", ctx, stored.ID()).Return(stored, nil).Once()
	repo.On("Update", ctx, stored).Return(nil).Once()
	factory, _ := happyUoW(ctx, repo)

	failing := &recordingPublisher{err: errors.New("socket closed")}
	after := &recordingPublisher{}
	hooks := commands.NewPostCommitHooks(nil, failing, panickingPublisher{}, after)

	updated, err := commands.NewTransitionStatusCommandHandler(factory, hooks).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Preparing, updated.Status())
	assert.Len(t, failing.recorded(), 1)
	assert.Len(t, after.recorded(), 1)
}

func TestTransitionStatusCommandHandler_Handle_UpdateError(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t, kernel.NewUUID(), order.Paid)
	cmd, _ := commands.NewTransitionStatusCommand(stored.ID(), "preparing", admin(), "")

	repo := new(MockOrderRepository)
	repo.On("GetForUpdate", ctx, stored.ID()).Return(stored, nil).Once()
	repo.On("Update", ctx, stored).Return(errors.New("deadlock detected")).Once()
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := &recordingPublisher{}

	_, err := commands.NewTransitionStatusCommandHandler(factory, commands.NewPostCommitHooks(nil, publisher)).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrPersistenceFailed)
	assert.Empty(t, publisher.recorded())
}

func TestTransitionStatusCommandHandler_Handle_RestaurantScope(t *testing.T) {
	tests := []struct {
		name  string
		actor user.User
	}{
		{name: "kitchen of another restaurant", actor: restaurantAccount(kernel.NewUUID())},
		{name: "kitchen without a restaurant", actor: user.User{ID: kernel.NewUUID(), Role: user.RoleSpecialRestaurant, IsActive: true}},
		{name: "customer", actor: user.User{ID: kernel.NewUUID(), Role: user.RoleCustomer, IsActive: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			stored := storedOrder(t, kernel.NewUUID(), order.Paid)
			cmd, _ := commands.NewTransitionStatusCommand(stored.ID(), "preparing", tt.actor, "")

			repo := new(MockOrderRepository)
			repo.On("GetForUpdate", ctx, stored.ID()).Return(stored, nil).Once()
			uow := new(MockOrderUoW)
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("OrderRepository").Return(repo).Once()
			uow.On("Rollback", ctx).Return(nil).Once()
			factory := new(MockOrderUoWFactory)
			factory.On("Create").Return(uow).Once()
			publisher := &recordingPublisher{}

			_, err := commands.NewTransitionStatusCommandHandler(factory, commands.NewPostCommitHooks(nil, publisher)).
				Handle(ctx, cmd)

			require.ErrorIs(t, err, errs.ErrPermissionIsDenied)
			assert.Equal(t, order.Paid, stored.Status())
			assert.Empty(t, publisher.recorded())
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			uow.AssertNotCalled(t, "Commit", mock.Anything)
		})
	}
}
