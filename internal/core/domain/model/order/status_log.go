package order

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

// StatusLogEntry is one row of an order's append-only audit trail.
// ActorID is nil for system-driven changes such as creation by a guest or expiry.
type StatusLogEntry struct {
	orderID   kernel.UUID
	status    Status
	timestamp time.Time
	actorID   *kernel.UUID
	note      string
}

func NewStatusLogEntry(orderID kernel.UUID, status Status, timestamp time.Time, actorID *kernel.UUID, note string) StatusLogEntry {
	return StatusLogEntry{
		orderID:   orderID,
		status:    status,
		timestamp: timestamp.UTC(),
		actorID:   actorID,
		note:      note,
	}
}

func (e StatusLogEntry) OrderID() kernel.UUID  { return e.orderID }
func (e StatusLogEntry) Status() Status        { return e.status }
func (e StatusLogEntry) Timestamp() time.Time  { return e.timestamp }
func (e StatusLogEntry) ActorID() *kernel.UUID { return e.actorID }
func (e StatusLogEntry) Note() string          { return e.note }
