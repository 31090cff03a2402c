package order

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewCustomerOrder, NewGuestOrder or Restore.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewCustomerOrder, NewGuestOrder or Restore")

	// ErrPaymentAlreadyAttached is returned when a second payment is attached to an order.
	ErrPaymentAlreadyAttached = errs.NewValueIsInvalidError("order already has a payment")
)

const (
	noteCreated          = "Order created"
	notePaymentConfirmed = "Payment confirmed"
	noteGuestExpired     = "Guest order expired"
)

// Order is the aggregate root of the order lifecycle. It is placed either by
// an authenticated customer or by a guest, and spans one or more restaurants.
//
// Order follows these invariants:
//   - totalAmount = sum(line subtotals) + deliveryFee, and deliveryFee = sum(leg fees)
//   - exactly one of customerID and guest is set
//   - every status change appends one StatusLogEntry and records one Event
//   - status log timestamps never decrease
//   - at most one payment
//
// New log entries and events stay on the aggregate until the repository
// persists the entries and the command handler pulls the events after commit.
type Order struct {
	id         kernel.UUID
	customerID *kernel.UUID
	guest      *Guest

	delivery Delivery
	legs     []RestaurantLeg
	lines    []Line

	deliveryFee kernel.Money
	totalAmount kernel.Money

	status          Status
	statusChangedAt time.Time
	createdAt       time.Time
	isReviewed      bool

	payment *Payment

	pendingLog []StatusLogEntry
	events     []Event

	isConstructed bool
}

// NewCustomerOrder places an order on behalf of an authenticated customer.
//
// The order starts in Pending with one log entry attributed to the customer
// and one EventCreated.
//
// Example:
//
//	o, err := order.NewCustomerOrder(kernel.NewUUID(), customerID, delivery, draft, time.Now())
//	if err != nil {
//	    return err
//	}
//	o.TotalAmount() // draft.Total()
func NewCustomerOrder(id, customerID kernel.UUID, delivery Delivery, draft Draft, now time.Time) (*Order, error) {
	o, err := newOrder(id, delivery, draft, now)
	if err != nil {
		return nil, err
	}

	if err = customerID.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("customer id", err)
	}
	o.customerID = &customerID

	o.recordCreation(&customerID)
	return o, nil
}

// NewGuestOrder places an order for a customer without an account. The guest
// carries the temporary tracking id and the expiry deadline.
func NewGuestOrder(id kernel.UUID, guest Guest, delivery Delivery, draft Draft, now time.Time) (*Order, error) {
	o, err := newOrder(id, delivery, draft, now)
	if err != nil {
		return nil, err
	}

	if guest.TemporaryID() == "" {
		return nil, errs.NewValueIsRequiredError("guest")
	}
	o.guest = &guest

	o.recordCreation(nil)
	return o, nil
}

func newOrder(id kernel.UUID, delivery Delivery, draft Draft, now time.Time) (*Order, error) {
	var deliveryErr error
	if delivery.Address() == "" {
		deliveryErr = errs.NewValueIsRequiredError("delivery")
	}

	if err := errors.Join(id.Validate(), draft.Validate(), deliveryErr); err != nil {
		return nil, err
	}

	now = now.UTC()
	return &Order{
		id:              id,
		delivery:        delivery,
		legs:            draft.Legs(),
		lines:           draft.Lines(),
		deliveryFee:     draft.DeliveryFee(),
		totalAmount:     draft.Total(),
		status:          Pending,
		statusChangedAt: now,
		createdAt:       now,
		isConstructed:   true,
	}, nil
}

// RestoreParams carries the persisted state of an order.
type RestoreParams struct {
	ID              kernel.UUID
	CustomerID      *kernel.UUID
	Guest           *Guest
	Delivery        Delivery
	Legs            []RestaurantLeg
	Lines           []Line
	DeliveryFee     kernel.Money
	TotalAmount     kernel.Money
	Status          Status
	StatusChangedAt time.Time
	CreatedAt       time.Time
	IsReviewed      bool
	Payment         *Payment
}

// Restore rebuilds an order loaded from storage. The stored amounts must
// agree with the stored lines and legs.
func Restore(p RestoreParams) (*Order, error) {
	draft, err := NewDraft(p.Legs, p.Lines)
	if err != nil {
		return nil, err
	}

	var ownerErr error
	if (p.CustomerID == nil) == (p.Guest == nil) {
		ownerErr = errs.NewValueIsInvalidError("order must belong to exactly one customer or guest")
	}

	var amountErr error
	if !draft.DeliveryFee().IsEqual(p.DeliveryFee) || !draft.Total().IsEqual(p.TotalAmount) {
		amountErr = errs.NewValueIsInvalidErrorWithCause("total amount", fmt.Errorf(
			"stored total %s and fee %s disagree with lines (%s) and legs (%s)",
			p.TotalAmount, p.DeliveryFee, draft.Total(), draft.DeliveryFee()))
	}

	if err = errors.Join(p.ID.Validate(), p.Status.Validate(), ownerErr, amountErr); err != nil {
		return nil, err
	}

	return &Order{
		id:              p.ID,
		customerID:      p.CustomerID,
		guest:           p.Guest,
		delivery:        p.Delivery,
		legs:            draft.Legs(),
		lines:           draft.Lines(),
		deliveryFee:     p.DeliveryFee,
		totalAmount:     p.TotalAmount,
		status:          p.Status,
		statusChangedAt: p.StatusChangedAt.UTC(),
		createdAt:       p.CreatedAt.UTC(),
		isReviewed:      p.IsReviewed,
		payment:         p.Payment,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Order was built by a constructor or Restore.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID is nil for guest orders.
func (o *Order) CustomerID() *kernel.UUID {
	return o.customerID
}

// Guest is nil for customer orders.
func (o *Order) Guest() *Guest {
	return o.guest
}

func (o *Order) IsGuest() bool {
	return o.guest != nil
}

func (o *Order) Delivery() Delivery {
	return o.delivery
}

// Legs lists the restaurants of the order in cart order.
func (o *Order) Legs() []RestaurantLeg {
	return append([]RestaurantLeg(nil), o.legs...)
}

func (o *Order) Lines() []Line {
	return append([]Line(nil), o.lines...)
}

// RestaurantIDs lists the distinct restaurants that own at least one line.
func (o *Order) RestaurantIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(o.legs))
	for _, l := range o.lines {
		seen := false
		for _, id := range ids {
			if id.IsEqual(l.RestaurantID()) {
				seen = true
				break
			}
		}
		if !seen {
			ids = append(ids, l.RestaurantID())
		}
	}
	return ids
}

// IsMultiRestaurant reports whether the order spans more than one restaurant.
func (o *Order) IsMultiRestaurant() bool {
	return len(o.legs) > 1
}

// PrimaryRestaurantID is the first restaurant of the cart. It is a display
// reference only; fulfilment follows the restaurant of each line.
func (o *Order) PrimaryRestaurantID() kernel.UUID {
	return o.legs[0].RestaurantID()
}

// RestaurantDisplayName is the restaurant name shown in notifications.
func (o *Order) RestaurantDisplayName() string {
	if o.IsMultiRestaurant() {
		return MultiRestaurantDisplayName
	}
	return o.legs[0].Name()
}

// LineGroups partitions the lines by restaurant, in leg order.
func (o *Order) LineGroups() []LineGroup {
	groups := make([]LineGroup, 0, len(o.legs))
	for _, leg := range o.legs {
		var lines []Line
		for _, l := range o.lines {
			if l.RestaurantID().IsEqual(leg.RestaurantID()) {
				lines = append(lines, l)
			}
		}
		groups = append(groups, LineGroup{Leg: leg, Lines: lines, Subtotal: sumLines(lines)})
	}
	return groups
}

func (o *Order) Subtotal() kernel.Money {
	return sumLines(o.lines)
}

func (o *Order) DeliveryFee() kernel.Money {
	return o.deliveryFee
}

func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) StatusChangedAt() time.Time {
	return o.statusChangedAt
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) IsReviewed() bool {
	return o.isReviewed
}

// Payment is nil until one is attached.
func (o *Order) Payment() *Payment {
	return o.payment
}

// IsExpiredAt reports whether a guest order can no longer be tracked at now,
// either because the sweep already expired it or because its deadline passed.
// Customer orders never expire.
func (o *Order) IsExpiredAt(now time.Time) bool {
	if o.guest == nil {
		return false
	}
	return o.status == Expired || o.guest.IsExpiredAt(now)
}

// AttachPayment sets the single payment of the order.
func (o *Order) AttachPayment(p *Payment) error {
	if p == nil {
		return errs.NewValueIsRequiredError("payment")
	}
	if o.payment != nil {
		return ErrPaymentAlreadyAttached
	}
	o.payment = p
	return nil
}

// TransitionTo moves the order to target on behalf of actorID.
//
// Returns an *errs.InvalidTransitionError when the state machine refuses the
// move; the order is left untouched in that case.
//
// Example:
//
//	if err := o.TransitionTo(order.Preparing, &staffID, "kitchen accepted", time.Now()); err != nil {
//	    return err
//	}
func (o *Order) TransitionTo(target Status, actorID *kernel.UUID, note string, now time.Time) error {
	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.changeStatus(next, actorID, note, now)
	return nil
}

// Cancel moves a non-terminal order to Cancelled.
func (o *Order) Cancel(actorID *kernel.UUID, note string, now time.Time) error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.changeStatus(next, actorID, note, now)
	return nil
}

// Expire closes a guest order whose tracking window ended at or before now.
func (o *Order) Expire(now time.Time) error {
	if o.guest == nil {
		return errs.NewValueIsInvalidError("only guest orders expire")
	}
	if !o.guest.IsExpiredAt(now) {
		return errs.NewValueIsInvalidErrorWithCause("expires at", fmt.Errorf("guest order %s is valid until %s",
			o.guest.TemporaryID(), o.guest.ExpiresAt().Format(time.RFC3339)))
	}

	next, err := o.status.Expire()
	if err != nil {
		return err
	}

	o.changeStatus(next, nil, noteGuestExpired, now)
	return nil
}

// ConfirmPayment completes the payment. A pending order moves to Paid; an
// order already further along keeps its status.
func (o *Order) ConfirmPayment(actorID *kernel.UUID, now time.Time) error {
	if o.payment == nil {
		return errs.NewObjectNotFoundError("payment", o.id.String())
	}
	if o.status.IsTerminal() {
		return errs.NewInvalidTransitionError(o.status.String(), Paid.String(), "status is terminal")
	}

	if err := o.payment.complete(now); err != nil {
		return err
	}

	if o.status == Pending {
		o.changeStatus(Paid, actorID, notePaymentConfirmed, now)
	}
	return nil
}

// UncommittedStatusLog returns the log entries not yet written to storage.
func (o *Order) UncommittedStatusLog() []StatusLogEntry {
	return append([]StatusLogEntry(nil), o.pendingLog...)
}

// MarkStatusLogCommitted is called by the repository after it wrote the
// uncommitted entries.
func (o *Order) MarkStatusLogCommitted() {
	o.pendingLog = nil
}

// PullEvents returns the recorded events and clears them.
func (o *Order) PullEvents() []Event {
	events := o.events
	o.events = nil
	return events
}

func (o *Order) recordCreation(actorID *kernel.UUID) {
	o.pendingLog = append(o.pendingLog, NewStatusLogEntry(o.id, o.status, o.createdAt, actorID, noteCreated))
	o.events = append(o.events, o.newEvent(EventCreated, Unknown, o.status, actorID, o.createdAt))
}

func (o *Order) changeStatus(next Status, actorID *kernel.UUID, note string, now time.Time) {
	at := now.UTC()
	if at.Before(o.statusChangedAt) {
		at = o.statusChangedAt
	}

	previous := o.status
	o.status = next
	o.statusChangedAt = at

	o.pendingLog = append(o.pendingLog, NewStatusLogEntry(o.id, next, at, actorID, note))
	o.events = append(o.events, o.newEvent(EventStatusChanged, previous, next, actorID, at))
}

func (o *Order) newEvent(kind EventKind, oldStatus, newStatus Status, actorID *kernel.UUID, at time.Time) Event {
	e := Event{
		Kind:           kind,
		OrderID:        o.id,
		CustomerID:     o.customerID,
		ActorID:        actorID,
		RestaurantName: o.RestaurantDisplayName(),
		TotalAmount:    o.totalAmount,
		OldStatus:      oldStatus,
		NewStatus:      newStatus,
		OccurredAt:     at,
	}
	if o.guest != nil {
		e.TemporaryID = o.guest.TemporaryID()
		e.CustomerName = o.guest.Contact().Name()
	}
	return e
}
