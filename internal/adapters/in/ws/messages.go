package ws

import (
	"encoding/json"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
)

const (
	TypeConnectionEstablished = "connection_established"
	TypeOrderStatusUpdate     = "order_status_update"
	TypeNewOrder              = "new_order"
	TypePing                  = "ping"
	TypePong                  = "pong"
	TypeError                 = "error"
)

// ConnectionEstablished is the first message on every accepted connection.
type ConnectionEstablished struct {
	Type    string   `json:"type"`
	Message string   `json:"message"`
	UserID  string   `json:"user_id"`
	Room    string   `json:"room"`
	Rooms   []string `json:"rooms"`
}

// OrderStatusUpdate is a flat status change record. OldStatus is empty for a
// freshly created order.
type OrderStatusUpdate struct {
	Type           string    `json:"type"`
	OrderID        string    `json:"order_id"`
	OldStatus      string    `json:"old_status"`
	NewStatus      string    `json:"new_status"`
	Timestamp      time.Time `json:"timestamp"`
	RestaurantName string    `json:"restaurant_name"`
	UserID         *string   `json:"user_id"`
}

// NewOrder tells admin dashboards that an order was placed.
type NewOrder struct {
	Type           string    `json:"type"`
	OrderID        string    `json:"order_id"`
	CustomerID     *string   `json:"customer_id"`
	CustomerName   string    `json:"customer_name"`
	RestaurantName string    `json:"restaurant_name"`
	TotalAmount    string    `json:"total_amount"`
	Timestamp      time.Time `json:"timestamp"`
}

// Pong echoes the client's timestamp back.
type Pong struct {
	Type      string          `json:"type"`
	Timestamp json.RawMessage `json:"timestamp,omitempty"`
}

type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// inbound is what a client may send.
type inbound struct {
	Type      string          `json:"type"`
	Timestamp json.RawMessage `json:"timestamp,omitempty"`
}

func newConnectionEstablished(u user.User, rooms []string) ConnectionEstablished {
	return ConnectionEstablished{
		Type:    TypeConnectionEstablished,
		Message: "WebSocket connection established successfully",
		UserID:  u.ID.String(),
		Room:    rooms[0],
		Rooms:   rooms,
	}
}

func newStatusUpdate(event order.Event) OrderStatusUpdate {
	msg := OrderStatusUpdate{
		Type:           TypeOrderStatusUpdate,
		OrderID:        event.OrderID.String(),
		NewStatus:      event.NewStatus.String(),
		Timestamp:      event.OccurredAt,
		RestaurantName: event.RestaurantName,
		UserID:         customerID(event),
	}
	if event.Kind == order.EventStatusChanged {
		msg.OldStatus = event.OldStatus.String()
	}
	return msg
}

func newNewOrder(event order.Event) NewOrder {
	return NewOrder{
		Type:           TypeNewOrder,
		OrderID:        event.OrderID.String(),
		CustomerID:     customerID(event),
		CustomerName:   event.CustomerName,
		RestaurantName: event.RestaurantName,
		TotalAmount:    event.TotalAmount.String(),
		Timestamp:      event.OccurredAt,
	}
}

func customerID(event order.Event) *string {
	if event.CustomerID == nil {
		return nil
	}
	id := event.CustomerID.String()
	return &id
}
