// Package kafka publishes order events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// OrderEventMessage is the JSON value of every published record.
type OrderEventMessage struct {
	Type           string    `json:"type"`
	OrderID        string    `json:"order_id"`
	CustomerID     *string   `json:"customer_id,omitempty"`
	TemporaryID    string    `json:"temporary_id,omitempty"`
	CustomerName   string    `json:"customer_name,omitempty"`
	RestaurantName string    `json:"restaurant_name"`
	TotalAmount    string    `json:"total_amount"`
	OldStatus      string    `json:"old_status,omitempty"`
	NewStatus      string    `json:"new_status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// OrderEventPublisher is a post-commit hook writing one record per event.
// Records are keyed by order id so the events of one order stay ordered
// within a partition.
type OrderEventPublisher struct {
	writer MessageWriter
}

func NewOrderEventPublisher(writer MessageWriter) (*OrderEventPublisher, error) {
	if writer == nil {
		return nil, errs.NewValueIsRequiredError("kafka writer")
	}
	return &OrderEventPublisher{writer: writer}, nil
}

// NewWriter builds the writer used in production. It is asynchronous so a
// slow broker never holds up the request that committed the change.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		Async:                  true,
		AllowAutoTopicCreation: true,
	}
}

func (p *OrderEventPublisher) Publish(ctx context.Context, event order.Event) error {
	payload, err := json.Marshal(toMessage(event))
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: payload,
		Time:  event.OccurredAt,
	})
}

func toMessage(event order.Event) OrderEventMessage {
	msg := OrderEventMessage{
		Type:           event.Kind.String(),
		OrderID:        event.OrderID.String(),
		TemporaryID:    event.TemporaryID,
		CustomerName:   event.CustomerName,
		RestaurantName: event.RestaurantName,
		TotalAmount:    event.TotalAmount.String(),
		NewStatus:      event.NewStatus.String(),
		OccurredAt:     event.OccurredAt,
	}
	if event.CustomerID != nil {
		id := event.CustomerID.String()
		msg.CustomerID = &id
	}
	if event.Kind == order.EventStatusChanged {
		msg.OldStatus = event.OldStatus.String()
	}
	return msg
}
