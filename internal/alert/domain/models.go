package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	// StatusSent records that dispatch was attempted, not that delivery
	// succeeded; notifier outcomes never mutate the row.
	StatusSent = "sent"

	// DefaultMessage substitutes a blank alert message.
	DefaultMessage = "Automatic risk alert"
)

// Alert is a persisted operator notification. CustomerName is copied from
// the snapshot at creation time, so later snapshot changes do not rewrite
// alert history.
type Alert struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	CustomerID   int64        `gorm:"not null;index" json:"customer_id"`
	CustomerName string       `gorm:"not null" json:"customer_name"`
	Message      string       `gorm:"not null" json:"message"`
	Status       string       `gorm:"not null;default:sent" json:"status"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"timestamp"`
}
