package repository

import (
	"context"
	"pillulu/internal/domain/entity"
	"time"
)

// NotificationRepository defines the interface for notification data operations.
type NotificationRepository interface {
	// CreateBatch inserts notifications, filling in their IDs.
	CreateBatch(ctx context.Context, notifications []*entity.Notification) error
	// List returns notifications newest first.
	List(ctx context.Context, limit int) ([]*entity.Notification, error)
	// MarkRead sets read_at on one notification. Unknown IDs are not an error.
	MarkRead(ctx context.Context, id uint, at time.Time) error
	// MarkAllRead sets read_at on every unread notification.
	MarkAllRead(ctx context.Context, at time.Time) error
}
