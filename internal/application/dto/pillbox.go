package dto

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"pillulu/internal/domain/entity"
	appErrors "pillulu/internal/pkg/errors"
)

var timeOfDayPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// MedCreateRequest is the DTO for adding a medication to the pillbox.
type MedCreateRequest struct {
	Name              string  `json:"name"`
	Purpose           *string `json:"purpose"`
	DosageNotes       *string `json:"dosage_notes"`
	StockCount        *int    `json:"stock_count"`         // default 0
	LowStockThreshold *int    `json:"low_stock_threshold"` // default 5
}

// Validate checks field constraints.
func (r MedCreateRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" || len(r.Name) > 255 {
		return fmt.Errorf("%w: name must be 1-255 characters", appErrors.ErrInvalidInput)
	}
	return validateCounts(r.StockCount, r.LowStockThreshold)
}

// MedUpdateRequest updates only the fields that are present.
type MedUpdateRequest struct {
	Name                *string `json:"name"`
	Purpose             *string `json:"purpose"`
	DosageNotes         *string `json:"dosage_notes"`
	AdultDosageGuidance *string `json:"adult_dosage_guidance"`
	StockCount          *int    `json:"stock_count"`
	LowStockThreshold   *int    `json:"low_stock_threshold"`
}

// Validate checks field constraints.
func (r MedUpdateRequest) Validate() error {
	if r.Name != nil && (strings.TrimSpace(*r.Name) == "" || len(*r.Name) > 255) {
		return fmt.Errorf("%w: name must be 1-255 characters", appErrors.ErrInvalidInput)
	}
	return validateCounts(r.StockCount, r.LowStockThreshold)
}

func validateCounts(stock, threshold *int) error {
	if stock != nil && *stock < 0 {
		return fmt.Errorf("%w: stock_count must be >= 0", appErrors.ErrInvalidInput)
	}
	if threshold != nil && *threshold < 0 {
		return fmt.Errorf("%w: low_stock_threshold must be >= 0", appErrors.ErrInvalidInput)
	}
	return nil
}

// ScheduleCreateRequest is the DTO for adding a reminder schedule.
type ScheduleCreateRequest struct {
	TimeOfDay  string  `json:"time_of_day"`
	Timezone   *string `json:"timezone"`     // default America/New_York
	DaysOfWeek *string `json:"days_of_week"` // default daily
	Enabled    *bool   `json:"enabled"`      // default true
}

// Validate checks field constraints.
func (r ScheduleCreateRequest) Validate() error {
	return validateSchedule(&r.TimeOfDay, r.Timezone, r.DaysOfWeek)
}

// ScheduleUpdateRequest updates only the fields that are present.
type ScheduleUpdateRequest struct {
	TimeOfDay  *string `json:"time_of_day"`
	Timezone   *string `json:"timezone"`
	DaysOfWeek *string `json:"days_of_week"`
	Enabled    *bool   `json:"enabled"`
}

// Validate checks field constraints.
func (r ScheduleUpdateRequest) Validate() error {
	return validateSchedule(r.TimeOfDay, r.Timezone, r.DaysOfWeek)
}

func validateSchedule(timeOfDay, timezone, days *string) error {
	if timeOfDay != nil && !timeOfDayPattern.MatchString(*timeOfDay) {
		return fmt.Errorf("%w: time_of_day must look like HH:MM", appErrors.ErrInvalidInput)
	}
	if timezone != nil && len(*timezone) > 64 {
		return fmt.Errorf("%w: timezone too long", appErrors.ErrInvalidInput)
	}
	if days != nil && len(*days) > 64 {
		return fmt.Errorf("%w: days_of_week too long", appErrors.ErrInvalidInput)
	}
	return nil
}

// ScheduleResponse is the DTO for sending a schedule to the client.
type ScheduleResponse struct {
	ID         uint   `json:"id"`
	MedID      uint   `json:"med_id"`
	TimeOfDay  string `json:"time_of_day"`
	Timezone   string `json:"timezone"`
	DaysOfWeek string `json:"days_of_week"`
	Enabled    bool   `json:"enabled"`
}

// ToScheduleResponse converts an entity.Schedule to a ScheduleResponse DTO.
func ToScheduleResponse(s *entity.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:         s.ID,
		MedID:      s.MedicationID,
		TimeOfDay:  s.TimeOfDay,
		Timezone:   s.Timezone,
		DaysOfWeek: s.DaysOfWeek,
		Enabled:    s.Enabled,
	}
}

// ToScheduleResponseList converts a slice of entity.Schedule to ScheduleResponse DTOs.
func ToScheduleResponseList(schedules []*entity.Schedule) []ScheduleResponse {
	list := make([]ScheduleResponse, len(schedules))
	for i, s := range schedules {
		list[i] = ToScheduleResponse(s)
	}
	return list
}

// MedResponse is the DTO for sending a medication with its schedules.
type MedResponse struct {
	ID                  uint               `json:"id"`
	Name                string             `json:"name"`
	Purpose             *string            `json:"purpose"`
	DosageNotes         *string            `json:"dosage_notes"`
	AdultDosageGuidance *string            `json:"adult_dosage_guidance"`
	StockCount          int                `json:"stock_count"`
	LowStockThreshold   int                `json:"low_stock_threshold"`
	CreatedAt           time.Time          `json:"created_at"`
	Schedules           []ScheduleResponse `json:"schedules"`
}

// ToMedResponse converts an entity.Medication to a MedResponse DTO.
func ToMedResponse(m *entity.Medication) MedResponse {
	return MedResponse{
		ID:                  m.ID,
		Name:                m.Name,
		Purpose:             m.Purpose,
		DosageNotes:         m.DosageNotes,
		AdultDosageGuidance: m.AdultDosageGuidance,
		StockCount:          m.StockCount,
		LowStockThreshold:   m.LowStockThreshold,
		CreatedAt:           m.CreatedAt,
		Schedules:           ToScheduleResponseList(m.Schedules),
	}
}

// ToMedResponseList converts a slice of entity.Medication to MedResponse DTOs.
func ToMedResponseList(meds []*entity.Medication) []MedResponse {
	list := make([]MedResponse, len(meds))
	for i, m := range meds {
		list[i] = ToMedResponse(m)
	}
	return list
}

// OKResponse acknowledges a mutation.
type OKResponse struct {
	OK bool `json:"ok"`
}
