// Package order implements the Order aggregate of the food-ordering platform
// and the state machine that drives it.
//
// The package includes:
//   - Order: aggregate root holding the header, detail lines, restaurant legs,
//     the optional payment and the not yet persisted status log entries
//   - Status: lifecycle state machine (pending -> paid -> preparing ->
//     ready_for_pickup -> delivering -> completed, plus cancelled and expired)
//   - Draft: validated, priced cart produced by the assembler
//   - Line, RestaurantLeg, Delivery, Guest, Payment: value objects and entities
//   - StatusLogEntry and Event: the audit trail and the post-commit notifications
//
// Key business rules:
//   - total = sum(line subtotals) + delivery fee, computed here and never taken from a client
//   - every status change appends exactly one log entry and records exactly one event
//   - completed, cancelled and expired are terminal
//   - expired is reachable only through Expire, never through TransitionTo
//   - log timestamps never decrease for a given order
package order
