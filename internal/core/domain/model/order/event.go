package order

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

type EventKind int

const (
	// EventCreated is recorded once, when the order is placed.
	EventCreated EventKind = iota + 1

	// EventStatusChanged is recorded for every later status change.
	EventStatusChanged
)

func (k EventKind) String() string {
	switch k {
	case EventCreated:
		return "created"
	case EventStatusChanged:
		return "status_changed"
	default:
		return "unknown"
	}
}

// Event is a flat snapshot of an order change, dispatched to the post-commit
// hooks once the transaction that produced it has committed. ActorID is nil
// for changes made by the system or by a guest.
type Event struct {
	Kind           EventKind
	OrderID        kernel.UUID
	CustomerID     *kernel.UUID
	ActorID        *kernel.UUID
	TemporaryID    string
	CustomerName   string
	RestaurantName string
	TotalAmount    kernel.Money
	OldStatus      Status
	NewStatus      Status
	OccurredAt     time.Time
}
