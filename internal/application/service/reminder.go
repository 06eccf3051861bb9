package service

import (
	"context"
	"time"

	"pillulu/internal/application/dto"
)

// Trigger labels for evaluation runs.
const (
	TriggerCron = "cron"
	TriggerHTTP = "http"
)

// ReminderService defines the interface for reminder evaluation.
type ReminderService interface {
	// ProcessReminders fires due schedules and daily low-stock alerts in one
	// transaction, then hands the new notifications to delivery.
	ProcessReminders(ctx context.Context, nowUTC time.Time, trigger string) (dto.SendRemindersResponse, error)
	// ExplainReminders reports how every enabled schedule evaluates at nowUTC. Read-only.
	ExplainReminders(ctx context.Context, nowUTC time.Time) (dto.DebugRemindersResponse, error)
	// DecrementStock takes one dose out of a medication's stock.
	DecrementStock(ctx context.Context, medID *uint) (dto.DecrementStockResponse, error)
}
