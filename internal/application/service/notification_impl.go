package service

import (
	"context"
	"fmt"
	"time"

	"pillulu/internal/application/dto"
	"pillulu/internal/domain/constant"
	"pillulu/internal/domain/repository"
	appErrors "pillulu/internal/pkg/errors"
	"pillulu/internal/pkg/logger"
)

type notificationService struct {
	notificationRepo repository.NotificationRepository
	now              func() time.Time
	log              logger.Logger
}

// NewNotificationService creates a new instance of NotificationService implementation.
func NewNotificationService(notificationRepo repository.NotificationRepository, log logger.Logger) NotificationService {
	return &notificationService{notificationRepo: notificationRepo, now: time.Now, log: log}
}

func (s *notificationService) List(ctx context.Context, limit int) ([]dto.NotificationResponse, error) {
	if limit <= 0 {
		limit = constant.DefaultNotificationLimit
	}
	list, err := s.notificationRepo.List(ctx, limit)
	if err != nil {
		s.log.Error("Failed to list notifications", err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return dto.ToNotificationResponseList(list), nil
}

func (s *notificationService) MarkRead(ctx context.Context, id uint) error {
	if err := s.notificationRepo.MarkRead(ctx, id, s.now().UTC()); err != nil {
		s.log.Error(fmt.Sprintf("Failed to mark notification %d read", id), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context) error {
	if err := s.notificationRepo.MarkAllRead(ctx, s.now().UTC()); err != nil {
		s.log.Error("Failed to mark all notifications read", err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return nil
}
