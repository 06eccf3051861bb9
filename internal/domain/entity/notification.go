package entity

import (
	"time"

	"pillulu/internal/domain/constant"
)

// Notification is an in-app notice. Only ReadAt changes after creation.
type Notification struct {
	ID        uint                      `gorm:"primaryKey;autoIncrement"`
	UserID    *uint                     `gorm:"column:user_id;index"` // Owner of the medication the notice concerns
	Type      constant.NotificationType `gorm:"column:type;size:32;not null"`
	Title     string                    `gorm:"column:title;not null"`
	Message   string                    `gorm:"column:message;type:text;not null"`
	CreatedAt time.Time                 `gorm:"column:created_at"`
	ReadAt    *time.Time                `gorm:"column:read_at"`
}

// TableName specifies the table name for the Notification entity.
func (Notification) TableName() string {
	return "notifications"
}
