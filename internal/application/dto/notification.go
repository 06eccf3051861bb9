package dto

import (
	"time"

	"pillulu/internal/domain/constant"
	"pillulu/internal/domain/entity"
)

// NotificationResponse is the DTO for an in-app notification.
type NotificationResponse struct {
	ID        uint                      `json:"id"`
	Type      constant.NotificationType `json:"type"`
	Title     string                    `json:"title"`
	Message   string                    `json:"message"`
	CreatedAt time.Time                 `json:"created_at"`
	ReadAt    *time.Time                `json:"read_at"`
}

// ToNotificationResponseList converts notifications to response DTOs.
func ToNotificationResponseList(notifications []*entity.Notification) []NotificationResponse {
	list := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		list[i] = NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			CreatedAt: n.CreatedAt,
			ReadAt:    n.ReadAt,
		}
	}
	return list
}
