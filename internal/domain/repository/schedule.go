package repository

import (
	"context"
	"pillulu/internal/domain/entity"
)

// ScheduleRepository defines the interface for schedule data operations.
type ScheduleRepository interface {
	// FindByID retrieves a schedule with its medication.
	FindByID(ctx context.Context, id uint) (*entity.Schedule, error)
	// FindByMedicationID lists the schedules of one medication.
	FindByMedicationID(ctx context.Context, medID uint) ([]*entity.Schedule, error)
	// FindEnabled lists all enabled schedules with their medications preloaded.
	FindEnabled(ctx context.Context) ([]*entity.Schedule, error)
	// Create creates a new schedule.
	Create(ctx context.Context, schedule *entity.Schedule) error
	// Update updates an existing schedule.
	Update(ctx context.Context, schedule *entity.Schedule) error
	// MarkFired persists last_reminder_sent_at.
	MarkFired(ctx context.Context, schedule *entity.Schedule) error
	// Delete deletes a schedule by its ID.
	Delete(ctx context.Context, id uint) error
}
