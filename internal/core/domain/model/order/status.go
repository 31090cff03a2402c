package order

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	Pending ─> Paid ─> Preparing ─> ReadyForPickup ─> Delivering ─> Completed
//	   │         │          │              │               │
//	   └─────────┴──────────┴──────┬───────┴───────────────┘
//	                               ├─> Cancelled
//	                               └─> Expired (guest orders, expiry sweep only)
//
// Staff may move a non-terminal order to any known status other than Expired,
// which keeps back-office corrections (e.g. paid -> completed for pickup
// orders) possible. Completed, Cancelled and Expired accept no transitions.
type Status int

const (
	// Unknown is the zero value and is never a valid status.
	Unknown Status = iota

	// Pending is the initial status of every order.
	Pending

	// Paid means the payment was confirmed.
	Paid

	// Preparing means the kitchen accepted the order.
	Preparing

	// ReadyForPickup means the food waits for the rider or the customer.
	ReadyForPickup

	// Delivering means the order left the restaurant.
	Delivering

	// Completed is terminal: the customer received the order.
	Completed

	// Cancelled is terminal: the order will not be fulfilled.
	Cancelled

	// Expired is terminal: a guest order outlived its tracking window.
	Expired
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		Paid:           "paid",
		Preparing:      "preparing",
		ReadyForPickup: "ready_for_pickup",
		Delivering:     "delivering",
		Completed:      "completed",
		Cancelled:      "cancelled",
		Expired:        "expired",
	}
}

// ParseStatus maps the wire name of a status to its value.
// Unrecognised names yield Unknown, which every transition rejects.
func ParseStatus(s string) Status {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status
		}
	}
	return Unknown
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Paid, Preparing, ReadyForPickup, Delivering, Completed, Cancelled, Expired}
}

// Validate fails for Unknown and for values outside the enumeration.
func (s Status) Validate() error {
	if s <= Unknown || s > Expired {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name, e.g. "ready_for_pickup".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status accepts no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled || s == Expired
}

// TransitionTo validates a staff-initiated move from s to target.
//
// Returns an *errs.InvalidTransitionError when:
//   - target is not a known status
//   - target is Expired (owned by the expiry sweep)
//   - s is terminal
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, errs.NewInvalidTransitionError(s.String(), target.String(), "unknown status")
	}

	if target == Expired {
		return Unknown, errs.NewInvalidTransitionError(s.String(), target.String(), "expired is set by the expiry sweep only")
	}

	if s.IsTerminal() {
		return Unknown, errs.NewInvalidTransitionError(s.String(), target.String(), "status is terminal")
	}

	return target, nil
}

// Cancel validates a move to Cancelled.
func (s Status) Cancel() (Status, error) {
	return s.TransitionTo(Cancelled)
}

// Expire validates a move to Expired. Only non-terminal orders expire.
func (s Status) Expire() (Status, error) {
	if s.IsTerminal() {
		return Unknown, errs.NewInvalidTransitionError(s.String(), Expired.String(), "status is terminal")
	}
	return Expired, nil
}
