package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// CartAssembler prices a cart against the live catalog.
type CartAssembler interface {
	Assemble(
		ctx context.Context,
		groups []services.CartGroup,
		destination *kernel.GeoPoint,
		settings catalog.DeliverySettings,
	) (order.Draft, error)
}

// CreateOrderCommandHandler assembles the cart, stores the order with its
// lines, initial status log entry and optional payment in one transaction,
// and dispatches the creation event after commit.
//
// Errors:
//   - errs.ErrCartIsInvalid and other validation errors: nothing was written
//   - errs.ErrPersistenceFailed: the transaction was rolled back, retry is safe
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	assembler  CartAssembler
	settings   ports.DeliverySettingsProvider
	hooks      *PostCommitHooks
	now        func() time.Time
	guestTTL   time.Duration
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	assembler CartAssembler,
	settings ports.DeliverySettingsProvider,
	hooks *PostCommitHooks,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		assembler:  assembler,
		settings:   settings,
		hooks:      hooks,
		now:        time.Now,
		guestTTL:   order.GuestTTL,
	}
}

// WithClock replaces the time source.
func (h CreateOrderCommandHandler) WithClock(now func() time.Time) CreateOrderCommandHandler {
	h.now = now
	return h
}

// WithGuestTTL sets how long guest orders stay trackable.
func (h CreateOrderCommandHandler) WithGuestTTL(ttl time.Duration) CreateOrderCommandHandler {
	if ttl > 0 {
		h.guestTTL = ttl
	}
	return h
}

// Handle places the order and returns it as committed.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	settings, err := h.settings.CurrentDeliverySettings(ctx)
	if err != nil {
		return nil, storeError("read delivery settings", err)
	}

	draft, err := h.assembler.Assemble(ctx, cmd.Groups(), cmd.Delivery().Point(), settings)
	if err != nil {
		if errors.Is(err, errs.ErrCartIsInvalid) || errors.Is(err, errs.ErrValueIsInvalid) ||
			errors.Is(err, errs.ErrValueIsRequired) {
			return nil, err
		}
		return nil, storeError("read catalog", err)
	}

	aggregate, err := h.newOrder(cmd, draft)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, storeError("begin", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, storeError("add order", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, storeError("commit", err)
	}

	h.hooks.Dispatch(ctx, aggregate.PullEvents())
	return aggregate, nil
}

func (h CreateOrderCommandHandler) newOrder(cmd CreateOrderCommand, draft order.Draft) (*order.Order, error) {
	now := h.now().UTC()

	var (
		aggregate *order.Order
		err       error
	)
	if contact := cmd.GuestContact(); contact != nil {
		guest, guestErr := order.NewGuest(order.NewTemporaryID(), *contact, now.Add(h.guestTTL))
		if guestErr != nil {
			return nil, guestErr
		}
		aggregate, err = order.NewGuestOrder(cmd.OrderID(), guest, cmd.Delivery(), draft, now)
	} else {
		aggregate, err = order.NewCustomerOrder(cmd.OrderID(), *cmd.CustomerID(), cmd.Delivery(), draft, now)
	}
	if err != nil {
		return nil, err
	}

	if info := cmd.Payment(); info != nil {
		payment, payErr := order.NewPayment(info.Method, aggregate.TotalAmount(), info.ProofReference, now)
		if payErr != nil {
			return nil, payErr
		}
		if payErr = aggregate.AttachPayment(payment); payErr != nil {
			return nil, payErr
		}
	}

	return aggregate, nil
}
