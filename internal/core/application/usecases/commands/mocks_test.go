package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByTemporaryID(ctx context.Context, temporaryID string) (*order.Order, error) {
	args := m.Called(ctx, temporaryID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetExpiredGuestOrders(ctx context.Context, now time.Time, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, now, limit)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) ListStatusLog(ctx context.Context, orderID kernel.UUID) ([]order.StatusLogEntry, error) {
	args := m.Called(ctx, orderID)
	entries, _ := args.Get(0).([]order.StatusLogEntry)
	return entries, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type stubSettings struct {
	settings catalog.DeliverySettings
	err      error
}

func (s stubSettings) CurrentDeliverySettings(context.Context) (catalog.DeliverySettings, error) {
	return s.settings, s.err
}

type stubAssembler struct {
	draft order.Draft
	err   error
}

func (s stubAssembler) Assemble(context.Context, []services.CartGroup, *kernel.GeoPoint, catalog.DeliverySettings) (order.Draft, error) {
	return s.draft, s.err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []order.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event order.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) recorded() []order.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]order.Event(nil), p.events...)
}

type panickingPublisher struct{}

func (panickingPublisher) Publish(context.Context, order.Event) error {
	panic("boom")
}

// newDraft builds 2 x 50.00 + 1 x 30.00 with a 20.00 fee.
func newDraft(t *testing.T) order.Draft {
	t.Helper()
	restaurantID := kernel.NewUUID()
	leg, err := order.NewRestaurantLeg(restaurantID, "Noodle House", kernel.MustMoney("20.00"))
	require.NoError(t, err)
	a, err := order.NewLine(kernel.NewUUID(), restaurantID, 2, kernel.MustMoney("50.00"))
	require.NoError(t, err)
	b, err := order.NewLine(kernel.NewUUID(), restaurantID, 1, kernel.MustMoney("30.00"))
	require.NoError(t, err)
	draft, err := order.NewDraft([]order.RestaurantLeg{leg}, []order.Line{a, b})
	require.NoError(t, err)
	return draft
}

func newDelivery(t *testing.T) order.Delivery {
	t.Helper()
	d, err := order.NewDelivery("12 Sukhumvit Rd", nil, "")
	require.NoError(t, err)
	return d
}

func cart() []services.CartGroup {
	return []services.CartGroup{{
		RestaurantID: kernel.NewUUID(),
		Items:        []services.CartItem{{ProductID: kernel.NewUUID(), Quantity: 1}},
	}}
}

func admin() user.User {
	return user.User{ID: kernel.NewUUID(), Username: "root", Role: user.RoleAdmin, IsActive: true}
}

// restaurantAccount returns a kitchen account working for restaurantID.
func restaurantAccount(restaurantID kernel.UUID) user.User {
	return user.User{
		ID:           kernel.NewUUID(),
		Username:     "kitchen",
		Role:         user.RoleGeneralRestaurant,
		IsActive:     true,
		RestaurantID: &restaurantID,
	}
}

// storedOrder returns a committed customer order in the given status.
func storedOrder(t *testing.T, customerID kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	draft := newDraft(t)
	o, err := order.Restore(order.RestoreParams{
		ID:              kernel.NewUUID(),
		CustomerID:      &customerID,
		Delivery:        newDelivery(t),
		Legs:            draft.Legs(),
		Lines:           draft.Lines(),
		DeliveryFee:     draft.DeliveryFee(),
		TotalAmount:     draft.Total(),
		Status:          status,
		StatusChangedAt: fixedNow.Add(-time.Hour),
		CreatedAt:       fixedNow.Add(-time.Hour),
	})
	require.NoError(t, err)
	return o
}

// storedGuestOrder returns a committed guest order expiring at expiresAt.
func storedGuestOrder(t *testing.T, expiresAt time.Time, status order.Status) *order.Order {
	t.Helper()
	contact, err := order.NewGuestContact("Somchai", "+66812345678", "", "")
	require.NoError(t, err)
	guest, err := order.NewGuest(order.NewTemporaryID(), contact, expiresAt)
	require.NoError(t, err)
	draft := newDraft(t)
	o, err := order.Restore(order.RestoreParams{
		ID:              kernel.NewUUID(),
		Guest:           &guest,
		Delivery:        newDelivery(t),
		Legs:            draft.Legs(),
		Lines:           draft.Lines(),
		DeliveryFee:     draft.DeliveryFee(),
		TotalAmount:     draft.Total(),
		Status:          status,
		StatusChangedAt: fixedNow.Add(-48 * time.Hour),
		CreatedAt:       fixedNow.Add(-48 * time.Hour),
	})
	require.NoError(t, err)
	return o
}

// happyUoW wires a factory whose unit of work begins, hands out repo, commits
// and rolls back.
func happyUoW(ctx context.Context, repo *MockOrderRepository) (*MockOrderUoWFactory, *MockOrderUoW) {
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, uow
}
