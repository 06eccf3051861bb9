package service

import (
	"context"

	"pillulu/internal/application/dto"
)

// NotificationService defines the interface for the in-app notification feed.
type NotificationService interface {
	// List returns up to limit notifications, newest first. limit <= 0 means 50.
	List(ctx context.Context, limit int) ([]dto.NotificationResponse, error)
	// MarkRead marks one notification read. Unknown IDs are ignored.
	MarkRead(ctx context.Context, id uint) error
	// MarkAllRead marks every unread notification read.
	MarkAllRead(ctx context.Context) error
}
