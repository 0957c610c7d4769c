// Package outboxrepo stores notifications until the dispatch job delivers them.
//
// Command handlers enqueue through Notify after their transaction committed; the
// dispatch job reads pending rows, sends them and records the outcome.
package outboxrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
)

// Notification delivery states.
const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

// NotificationDTO is one outbox row. DedupKey makes enqueueing idempotent.
type NotificationDTO struct {
	ID        int64      `gorm:"primaryKey;autoIncrement"`
	DedupKey  string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	OrderID   int64      `gorm:"not null;index"`
	Recipient string     `gorm:"type:varchar(254);not null"`
	Subject   string     `gorm:"type:varchar(200);not null"`
	Body      string     `gorm:"type:text;not null"`
	Status    string     `gorm:"type:varchar(16);not null;index:idx_notifications_status_id,priority:1"`
	Attempts  int        `gorm:"not null;default:0"`
	LastError *string    `gorm:"type:text"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime:false"`
	SentAt    *time.Time
}

// TableName specifies the database table name for notifications.
func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromMessage(msg ports.Message, createdAt time.Time) NotificationDTO {
	return NotificationDTO{
		DedupKey:  msg.Key,
		OrderID:   msg.OrderID.Int64(),
		Recipient: msg.Recipient,
		Subject:   msg.Subject,
		Body:      msg.Body,
		Status:    StatusPending,
		CreatedAt: createdAt,
	}
}

func toPending(dto NotificationDTO) ports.PendingNotification {
	return ports.PendingNotification{
		ID: dto.ID,
		Message: ports.Message{
			Key:       dto.DedupKey,
			OrderID:   kernel.ID(dto.OrderID),
			Recipient: dto.Recipient,
			Subject:   dto.Subject,
			Body:      dto.Body,
		},
		Attempts: dto.Attempts,
	}
}
