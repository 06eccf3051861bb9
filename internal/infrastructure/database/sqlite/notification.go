package sqlite

import (
	"context"
	"fmt"
	"pillulu/internal/domain/entity"
	"pillulu/internal/domain/repository"
	"time"

	"gorm.io/gorm"
)

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new instance of NotificationRepository.
func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

// CreateBatch inserts notifications, filling in their IDs.
func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []*entity.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	if err := conn(ctx, r.db).Create(&notifications).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to create %d notifications: %w", len(notifications), err)
	}
	return nil
}

// List returns notifications newest first.
func (r *notificationRepository) List(ctx context.Context, limit int) ([]*entity.Notification, error) {
	var notifications []*entity.Notification
	if err := conn(ctx, r.db).Order("created_at desc, id desc").Limit(limit).Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead sets read_at on one notification.
func (r *notificationRepository) MarkRead(ctx context.Context, id uint, at time.Time) error {
	if err := conn(ctx, r.db).Model(&entity.Notification{}).Where("id = ?", id).Update("read_at", at).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to mark notification %d read: %w", id, err)
	}
	return nil
}

// MarkAllRead sets read_at on every unread notification.
func (r *notificationRepository) MarkAllRead(ctx context.Context, at time.Time) error {
	if err := conn(ctx, r.db).Model(&entity.Notification{}).Where("read_at IS NULL").Update("read_at", at).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to mark all notifications read: %w", err)
	}
	return nil
}
