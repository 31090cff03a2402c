// Package notificationrepo keeps the customer notification inbox.
package notificationrepo

import (
	"time"

	"github.com/google/uuid"
)

const TypeOrderUpdate = "order_update"

// NotificationDTO represents one inbox row.
type NotificationDTO struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Title          string    `gorm:"type:varchar(100);not null"`
	Message        string    `gorm:"type:text;not null"`
	Type           string    `gorm:"type:varchar(32);not null"`
	RelatedOrderID uuid.UUID `gorm:"type:uuid;index"`
	IsRead         bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

// Models lists every table of the package for AutoMigrate.
func Models() []any {
	return []any{&NotificationDTO{}}
}
