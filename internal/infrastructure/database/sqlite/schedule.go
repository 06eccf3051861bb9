package sqlite

import (
	"context"
	"errors"
	"fmt"
	"pillulu/internal/domain/entity"
	"pillulu/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type scheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new instance of ScheduleRepository.
func NewScheduleRepository(db *gorm.DB) repository.ScheduleRepository {
	return &scheduleRepository{db: db}
}

// FindByID retrieves a schedule with its medication.
func (r *scheduleRepository) FindByID(ctx context.Context, id uint) (*entity.Schedule, error) {
	var schedule entity.Schedule
	if err := conn(ctx, r.db).Preload("Medication").First(&schedule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("schedule with ID %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find schedule by id %d: %w", id, err)
	}
	return &schedule, nil
}

// FindByMedicationID lists the schedules of one medication.
func (r *scheduleRepository) FindByMedicationID(ctx context.Context, medID uint) ([]*entity.Schedule, error) {
	var schedules []*entity.Schedule
	if err := conn(ctx, r.db).Where("med_id = ?", medID).Order("id asc").Find(&schedules).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find schedules by med_id %d: %w", medID, err)
	}
	return schedules, nil
}

// FindEnabled lists all enabled schedules with their medications preloaded.
func (r *scheduleRepository) FindEnabled(ctx context.Context) ([]*entity.Schedule, error) {
	var schedules []*entity.Schedule
	if err := conn(ctx, r.db).Preload("Medication").Where("enabled = ?", true).Order("id asc").Find(&schedules).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find enabled schedules: %w", err)
	}
	return schedules, nil
}

// Create creates a new schedule.
func (r *scheduleRepository) Create(ctx context.Context, schedule *entity.Schedule) error {
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(schedule).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to create schedule for medication %d: %w", schedule.MedicationID, err)
	}
	return nil
}

// Update updates an existing schedule.
func (r *scheduleRepository) Update(ctx context.Context, schedule *entity.Schedule) error {
	if err := conn(ctx, r.db).Omit(clause.Associations).Save(schedule).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to update schedule %d: %w", schedule.ID, err)
	}
	return nil
}

// MarkFired persists last_reminder_sent_at.
func (r *scheduleRepository) MarkFired(ctx context.Context, schedule *entity.Schedule) error {
	err := conn(ctx, r.db).Model(&entity.Schedule{}).
		Where("id = ?", schedule.ID).
		Update("last_reminder_sent_at", schedule.LastReminderSentAt).Error
	if err != nil {
		return fmt.Errorf("🔴 ERROR: failed to mark schedule %d as fired: %w", schedule.ID, err)
	}
	return nil
}

// Delete deletes a schedule by its ID.
func (r *scheduleRepository) Delete(ctx context.Context, id uint) error {
	if err := conn(ctx, r.db).Delete(&entity.Schedule{}, id).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to delete schedule %d: %w", id, err)
	}
	return nil
}
