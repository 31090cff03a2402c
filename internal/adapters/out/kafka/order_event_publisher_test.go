package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkapub "fooddelivery/internal/adapters/out/kafka"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func TestOrderEventPublisher_Publish(t *testing.T) {
	writer := &recordingWriter{}
	publisher, err := kafkapub.NewOrderEventPublisher(writer)
	require.NoError(t, err)

	orderID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	require.NoError(t, publisher.Publish(context.Background(), order.Event{
		Kind:           order.EventStatusChanged,
		OrderID:        orderID,
		CustomerID:     &customerID,
		RestaurantName: "Noodle House",
		TotalAmount:    kernel.MustMoney("150.00"),
		OldStatus:      order.Pending,
		NewStatus:      order.Paid,
		OccurredAt:     at,
	}))

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, orderID.String(), string(msg.Key))
	assert.True(t, msg.Time.Equal(at))

	var body kafkapub.OrderEventMessage
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "status_changed", body.Type)
	assert.Equal(t, "pending", body.OldStatus)
	assert.Equal(t, "paid", body.NewStatus)
	assert.Equal(t, "150.00", body.TotalAmount)
	require.NotNil(t, body.CustomerID)
	assert.Equal(t, customerID.String(), *body.CustomerID)
}

func TestOrderEventPublisher_CreatedGuestEvent(t *testing.T) {
	writer := &recordingWriter{}
	publisher, err := kafkapub.NewOrderEventPublisher(writer)
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(context.Background(), order.Event{
		Kind:         order.EventCreated,
		OrderID:      kernel.NewUUID(),
		TemporaryID:  "GUEST-1A2B3C4D",
		CustomerName: "Somchai",
		TotalAmount:  kernel.MustMoney("80.00"),
		NewStatus:    order.Pending,
	}))

	var body map[string]any
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &body))
	assert.Equal(t, "created", body["type"])
	assert.Equal(t, "GUEST-1A2B3C4D", body["temporary_id"])
	assert.NotContains(t, body, "customer_id")
	assert.NotContains(t, body, "old_status")
}

func TestOrderEventPublisher_WriterError(t *testing.T) {
	publisher, err := kafkapub.NewOrderEventPublisher(&recordingWriter{err: errors.New("broker unavailable")})
	require.NoError(t, err)

	err = publisher.Publish(context.Background(), order.Event{Kind: order.EventCreated, OrderID: kernel.NewUUID()})
	assert.EqualError(t, err, "broker unavailable")
}

func TestNewOrderEventPublisher_RequiresWriter(t *testing.T) {
	_, err := kafkapub.NewOrderEventPublisher(nil)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewWriter(t *testing.T) {
	w := kafkapub.NewWriter([]string{"localhost:9092"}, "orders.changed")
	defer w.Close()

	assert.Equal(t, "orders.changed", w.Topic)
	assert.Equal(t, "localhost:9092", w.Addr.String())
	assert.True(t, w.Async)
}
