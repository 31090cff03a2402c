package notificationrepo

import (
	"context"
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormNotificationInbox is a post-commit hook that writes an inbox row for
// the customer of an order whenever someone else changes its status. Guest
// orders and the creation event produce nothing.
type GormNotificationInbox struct {
	db *gorm.DB
}

func NewGormNotificationInbox(db *gorm.DB) (*GormNotificationInbox, error) {
	if db == nil {
		return nil, errors.New("db is required")
	}
	return &GormNotificationInbox{db: db}, nil
}

func (i *GormNotificationInbox) Publish(ctx context.Context, event order.Event) error {
	if event.Kind != order.EventStatusChanged || event.CustomerID == nil {
		return nil
	}
	if event.ActorID != nil && event.ActorID.IsEqual(*event.CustomerID) {
		return nil
	}

	dto := NotificationDTO{
		UserID:         event.CustomerID.Bytes(),
		Title:          "Order Status Updated",
		Message:        fmt.Sprintf("Your order #%s status has been updated to %s", event.OrderID, event.NewStatus),
		Type:           TypeOrderUpdate,
		RelatedOrderID: event.OrderID.Bytes(),
		CreatedAt:      event.OccurredAt,
	}
	if err := i.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return fmt.Errorf("write notification for order %s: %w", event.OrderID, err)
	}
	return nil
}
