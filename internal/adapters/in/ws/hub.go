// Package ws pushes order events to live observers over websockets.
//
// Observers are grouped in rooms: every user has a personal room keyed by
// user id, and admins additionally share one admin room. Delivery is a
// non-blocking enqueue into each connection's buffer; a slow observer loses
// messages instead of stalling the publisher. Nothing is redelivered, so a
// reconnecting client re-reads the order state it cares about.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// AdminRoom is shared by all connected admins.
const AdminRoom = "orders_admin"

// ErrDeliveryFailed means at least one connection did not get a message.
// It is reported to the post-commit hooks for logging only.
var ErrDeliveryFailed = errors.New("notification delivery failed")

// UserRoom is the personal room of userID.
func UserRoom(userID kernel.UUID) string {
	return "orders_user_" + userID.String()
}

// Hub is the room registry. It implements ports.OrderEventPublisher.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*Client]struct{}
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		rooms:  make(map[string]map[*Client]struct{}),
		logger: logger.With("component", "ws-hub"),
	}
}

// Join adds c to each of its rooms.
func (h *Hub) Join(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, room := range c.rooms {
		members, ok := h.rooms[room]
		if !ok {
			members = make(map[*Client]struct{})
			h.rooms[room] = members
		}
		members[c] = struct{}{}
	}
}

// Leave removes c from all its rooms and closes its queue. Safe to call more than once.
func (h *Hub) Leave(c *Client) {
	h.mu.Lock()
	for _, room := range c.rooms {
		members := h.rooms[room]
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	h.mu.Unlock()

	c.close()
}

// RoomSize returns the number of connections in room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Broadcast sends payload once to every connection in any of rooms.
func (h *Hub) Broadcast(payload []byte, rooms ...string) error {
	h.mu.RLock()
	targets := make(map[*Client]struct{})
	for _, room := range rooms {
		for c := range h.rooms[room] {
			targets[c] = struct{}{}
		}
	}
	h.mu.RUnlock()

	dropped := 0
	for c := range targets {
		if !c.enqueue(payload) {
			dropped++
		}
	}
	if dropped > 0 {
		return fmt.Errorf("%w: %d of %d connections", ErrDeliveryFailed, dropped, len(targets))
	}
	return nil
}

// Publish routes an order event. A created order is announced to the admin
// room as new_order and to its owner as a status update from "" to pending;
// later status changes go to the owner and the admin room.
func (h *Hub) Publish(ctx context.Context, event order.Event) error {
	var ownerRooms []string
	if event.CustomerID != nil {
		ownerRooms = append(ownerRooms, UserRoom(*event.CustomerID))
	}

	switch event.Kind {
	case order.EventCreated:
		var errList []error
		errList = append(errList, h.send(newNewOrder(event), AdminRoom))
		if len(ownerRooms) > 0 {
			errList = append(errList, h.send(newStatusUpdate(event), ownerRooms...))
		}
		return errors.Join(errList...)
	case order.EventStatusChanged:
		return h.send(newStatusUpdate(event), append(ownerRooms, AdminRoom)...)
	default:
		h.logger.WarnContext(ctx, "unknown order event", "event", event.Kind.String())
		return nil
	}
}

// Close disconnects every observer.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := make(map[*Client]struct{})
	for _, members := range h.rooms {
		for c := range members {
			clients[c] = struct{}{}
		}
	}
	h.rooms = make(map[string]map[*Client]struct{})
	h.mu.Unlock()

	for c := range clients {
		c.close()
	}
}

func (h *Hub) send(msg any, rooms ...string) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return h.Broadcast(payload, rooms...)
}
