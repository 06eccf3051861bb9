package repository

import (
	"context"
	"pillulu/internal/domain/entity"
)

// MedicationRepository defines the interface for pillbox medication data operations.
type MedicationRepository interface {
	// FindByID retrieves a medication (with schedules) by ID regardless of owner.
	FindByID(ctx context.Context, id uint) (*entity.Medication, error)
	// FindByIDForUser retrieves a medication (with schedules) only if owned by userID.
	FindByIDForUser(ctx context.Context, id, userID uint) (*entity.Medication, error)
	// FindByUserID lists a user's medications newest first, with schedules.
	FindByUserID(ctx context.Context, userID uint) ([]*entity.Medication, error)
	// FindLowStock lists medications whose stock is at or below threshold.
	FindLowStock(ctx context.Context) ([]*entity.Medication, error)
	// Create creates a new medication.
	Create(ctx context.Context, med *entity.Medication) error
	// Update updates an existing medication.
	Update(ctx context.Context, med *entity.Medication) error
	// SaveEvaluation persists the stock count and low-stock date set by the evaluator.
	SaveEvaluation(ctx context.Context, med *entity.Medication) error
	// Delete deletes a medication and its schedules.
	Delete(ctx context.Context, id uint) error
}
