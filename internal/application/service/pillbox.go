package service

import (
	"context"

	"pillulu/internal/application/dto"
)

// PillboxService defines the interface for a user's medications and schedules.
// Every operation is scoped to userID; other users' rows read as not found.
type PillboxService interface {
	ListMeds(ctx context.Context, userID uint) ([]dto.MedResponse, error)
	CreateMed(ctx context.Context, userID uint, req dto.MedCreateRequest) (dto.MedResponse, error)
	GetMed(ctx context.Context, userID, medID uint) (dto.MedResponse, error)
	UpdateMed(ctx context.Context, userID, medID uint, req dto.MedUpdateRequest) (dto.MedResponse, error)
	DeleteMed(ctx context.Context, userID, medID uint) error

	ListSchedules(ctx context.Context, userID, medID uint) ([]dto.ScheduleResponse, error)
	CreateSchedule(ctx context.Context, userID, medID uint, req dto.ScheduleCreateRequest) (dto.ScheduleResponse, error)
	UpdateSchedule(ctx context.Context, userID, scheduleID uint, req dto.ScheduleUpdateRequest) (dto.ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, userID, scheduleID uint) error
}
