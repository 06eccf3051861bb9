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

type medicationRepository struct {
	db *gorm.DB
}

// NewMedicationRepository creates a new instance of MedicationRepository.
func NewMedicationRepository(db *gorm.DB) repository.MedicationRepository {
	return &medicationRepository{db: db}
}

func preloadSchedules(db *gorm.DB) *gorm.DB {
	return db.Preload("Schedules", func(db *gorm.DB) *gorm.DB {
		return db.Order("schedules.id asc")
	})
}

// FindByID retrieves a medication (with schedules) by ID regardless of owner.
func (r *medicationRepository) FindByID(ctx context.Context, id uint) (*entity.Medication, error) {
	var med entity.Medication
	if err := preloadSchedules(conn(ctx, r.db)).First(&med, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("medication with ID %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find medication by id %d: %w", id, err)
	}
	return &med, nil
}

// FindByIDForUser retrieves a medication only if owned by userID.
func (r *medicationRepository) FindByIDForUser(ctx context.Context, id, userID uint) (*entity.Medication, error) {
	var med entity.Medication
	err := preloadSchedules(conn(ctx, r.db)).
		Where("id = ? AND user_id = ?", id, userID).
		First(&med).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("medication with ID %d not found for user %d: %w", id, userID, err)
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find medication %d for user %d: %w", id, userID, err)
	}
	return &med, nil
}

// FindByUserID lists a user's medications newest first, with schedules.
func (r *medicationRepository) FindByUserID(ctx context.Context, userID uint) ([]*entity.Medication, error) {
	var meds []*entity.Medication
	err := preloadSchedules(conn(ctx, r.db)).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&meds).Error
	if err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find medications by user_id %d: %w", userID, err)
	}
	return meds, nil
}

// FindLowStock lists medications whose stock is at or below threshold.
func (r *medicationRepository) FindLowStock(ctx context.Context) ([]*entity.Medication, error) {
	var meds []*entity.Medication
	if err := conn(ctx, r.db).Where("stock_count <= low_stock_threshold").Order("id asc").Find(&meds).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find low-stock medications: %w", err)
	}
	return meds, nil
}

// Create creates a new medication.
func (r *medicationRepository) Create(ctx context.Context, med *entity.Medication) error {
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(med).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to create medication for user %d: %w", med.UserID, err)
	}
	return nil
}

// Update updates an existing medication. Schedules are not touched.
func (r *medicationRepository) Update(ctx context.Context, med *entity.Medication) error {
	if err := conn(ctx, r.db).Omit(clause.Associations).Save(med).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to update medication %d: %w", med.ID, err)
	}
	return nil
}

// SaveEvaluation persists the stock count and low-stock date set by the evaluator.
func (r *medicationRepository) SaveEvaluation(ctx context.Context, med *entity.Medication) error {
	err := conn(ctx, r.db).Model(&entity.Medication{}).
		Where("id = ?", med.ID).
		Updates(map[string]any{
			"stock_count":            med.StockCount,
			"last_low_stock_sent_at": med.LastLowStockSentAt,
		}).Error
	if err != nil {
		return fmt.Errorf("🔴 ERROR: failed to save evaluation for medication %d: %w", med.ID, err)
	}
	return nil
}

// Delete deletes a medication and its schedules.
func (r *medicationRepository) Delete(ctx context.Context, id uint) error {
	db := conn(ctx, r.db)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("med_id = ?", id).Delete(&entity.Schedule{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Medication{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("🔴 ERROR: failed to delete medication %d: %w", id, err)
	}
	return nil
}
