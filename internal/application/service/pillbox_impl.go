package service

import (
	"context"
	"fmt"

	"pillulu/internal/application/dto"
	"pillulu/internal/domain/constant"
	"pillulu/internal/domain/entity"
	"pillulu/internal/domain/repository"
	appErrors "pillulu/internal/pkg/errors"
	"pillulu/internal/pkg/logger"
)

type pillboxService struct {
	medRepo      repository.MedicationRepository
	scheduleRepo repository.ScheduleRepository
	log          logger.Logger
}

// NewPillboxService creates a new instance of PillboxService implementation.
func NewPillboxService(medRepo repository.MedicationRepository, scheduleRepo repository.ScheduleRepository, log logger.Logger) PillboxService {
	return &pillboxService{medRepo: medRepo, scheduleRepo: scheduleRepo, log: log}
}

func (s *pillboxService) ownedMed(ctx context.Context, userID, medID uint) (*entity.Medication, error) {
	med, err := s.medRepo.FindByIDForUser(ctx, medID, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.ErrMedicationNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to find medication %d for user %d", medID, userID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return med, nil
}

func (s *pillboxService) ownedSchedule(ctx context.Context, userID, scheduleID uint) (*entity.Schedule, error) {
	sch, err := s.scheduleRepo.FindByID(ctx, scheduleID)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.ErrScheduleNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to find schedule %d", scheduleID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if sch.Medication == nil || sch.Medication.UserID != userID {
		return nil, appErrors.ErrScheduleNotFound
	}
	return sch, nil
}

// ListMeds lists the user's medications newest first.
func (s *pillboxService) ListMeds(ctx context.Context, userID uint) ([]dto.MedResponse, error) {
	meds, err := s.medRepo.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to list medications for user %d", userID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return dto.ToMedResponseList(meds), nil
}

// CreateMed adds a medication with default stock 0 and threshold 5.
func (s *pillboxService) CreateMed(ctx context.Context, userID uint, req dto.MedCreateRequest) (dto.MedResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.MedResponse{}, err
	}
	med := &entity.Medication{
		UserID:            userID,
		Name:              req.Name,
		Purpose:           req.Purpose,
		DosageNotes:       req.DosageNotes,
		LowStockThreshold: constant.DefaultLowStockThreshold,
	}
	if req.StockCount != nil {
		med.StockCount = *req.StockCount
	}
	if req.LowStockThreshold != nil {
		med.LowStockThreshold = *req.LowStockThreshold
	}
	if err := s.medRepo.Create(ctx, med); err != nil {
		s.log.Error(fmt.Sprintf("Failed to create medication for user %d", userID), err)
		return dto.MedResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Created medication %d for user %d", med.ID, userID))
	return dto.ToMedResponse(med), nil
}

// GetMed returns one medication with its schedules.
func (s *pillboxService) GetMed(ctx context.Context, userID, medID uint) (dto.MedResponse, error) {
	med, err := s.ownedMed(ctx, userID, medID)
	if err != nil {
		return dto.MedResponse{}, err
	}
	return dto.ToMedResponse(med), nil
}

// UpdateMed sets the fields present in req.
func (s *pillboxService) UpdateMed(ctx context.Context, userID, medID uint, req dto.MedUpdateRequest) (dto.MedResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.MedResponse{}, err
	}
	med, err := s.ownedMed(ctx, userID, medID)
	if err != nil {
		return dto.MedResponse{}, err
	}
	if req.Name != nil {
		med.Name = *req.Name
	}
	if req.Purpose != nil {
		med.Purpose = req.Purpose
	}
	if req.DosageNotes != nil {
		med.DosageNotes = req.DosageNotes
	}
	if req.AdultDosageGuidance != nil {
		med.AdultDosageGuidance = req.AdultDosageGuidance
	}
	if req.StockCount != nil {
		med.StockCount = *req.StockCount
	}
	if req.LowStockThreshold != nil {
		med.LowStockThreshold = *req.LowStockThreshold
	}
	if err := s.medRepo.Update(ctx, med); err != nil {
		s.log.Error(fmt.Sprintf("Failed to update medication %d", medID), err)
		return dto.MedResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return dto.ToMedResponse(med), nil
}

// DeleteMed removes a medication and its schedules.
func (s *pillboxService) DeleteMed(ctx context.Context, userID, medID uint) error {
	if _, err := s.ownedMed(ctx, userID, medID); err != nil {
		return err
	}
	if err := s.medRepo.Delete(ctx, medID); err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete medication %d", medID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Deleted medication %d of user %d", medID, userID))
	return nil
}

// ListSchedules lists a medication's schedules.
func (s *pillboxService) ListSchedules(ctx context.Context, userID, medID uint) ([]dto.ScheduleResponse, error) {
	med, err := s.ownedMed(ctx, userID, medID)
	if err != nil {
		return nil, err
	}
	return dto.ToScheduleResponseList(med.Schedules), nil
}

// CreateSchedule adds a schedule, defaulting to New York time, daily, enabled.
func (s *pillboxService) CreateSchedule(ctx context.Context, userID, medID uint, req dto.ScheduleCreateRequest) (dto.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.ScheduleResponse{}, err
	}
	if _, err := s.ownedMed(ctx, userID, medID); err != nil {
		return dto.ScheduleResponse{}, err
	}

	sch := &entity.Schedule{
		MedicationID: medID,
		TimeOfDay:    req.TimeOfDay,
		Timezone:     constant.DefaultTimezone,
		DaysOfWeek:   constant.EveryDay,
		Enabled:      true,
	}
	if req.Timezone != nil {
		sch.Timezone = *req.Timezone
	}
	if req.DaysOfWeek != nil {
		sch.DaysOfWeek = *req.DaysOfWeek
	}
	if req.Enabled != nil {
		sch.Enabled = *req.Enabled
	}
	if err := s.scheduleRepo.Create(ctx, sch); err != nil {
		s.log.Error(fmt.Sprintf("Failed to create schedule for medication %d", medID), err)
		return dto.ScheduleResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Created schedule %d (%s %s %s) for medication %d", sch.ID, sch.TimeOfDay, sch.Timezone, sch.DaysOfWeek, medID))
	return dto.ToScheduleResponse(sch), nil
}

// UpdateSchedule sets the fields present in req.
func (s *pillboxService) UpdateSchedule(ctx context.Context, userID, scheduleID uint, req dto.ScheduleUpdateRequest) (dto.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.ScheduleResponse{}, err
	}
	sch, err := s.ownedSchedule(ctx, userID, scheduleID)
	if err != nil {
		return dto.ScheduleResponse{}, err
	}
	if req.TimeOfDay != nil {
		sch.TimeOfDay = *req.TimeOfDay
	}
	if req.Timezone != nil {
		sch.Timezone = *req.Timezone
	}
	if req.DaysOfWeek != nil {
		sch.DaysOfWeek = *req.DaysOfWeek
	}
	if req.Enabled != nil {
		sch.Enabled = *req.Enabled
	}
	if err := s.scheduleRepo.Update(ctx, sch); err != nil {
		s.log.Error(fmt.Sprintf("Failed to update schedule %d", scheduleID), err)
		return dto.ScheduleResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return dto.ToScheduleResponse(sch), nil
}

// DeleteSchedule removes one schedule.
func (s *pillboxService) DeleteSchedule(ctx context.Context, userID, scheduleID uint) error {
	if _, err := s.ownedSchedule(ctx, userID, scheduleID); err != nil {
		return err
	}
	if err := s.scheduleRepo.Delete(ctx, scheduleID); err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete schedule %d", scheduleID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return nil
}
