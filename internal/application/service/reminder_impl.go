package service

import (
	"context"
	"fmt"
	"time"

	"pillulu/internal/application/dto"
	"pillulu/internal/domain/constant"
	"pillulu/internal/domain/evaluator"
	"pillulu/internal/domain/repository"
	"pillulu/internal/infrastructure/lock"
	appErrors "pillulu/internal/pkg/errors"
	"pillulu/internal/pkg/logger"
	"pillulu/internal/pkg/metrics"

	"github.com/google/uuid"
)

const debugHint = "Cron must POST /api/cron/send_reminders every minute. Use: curl -X POST .../api/cron/send_reminders -H 'X-CRON-SECRET: YOUR_SECRET'"

type reminderService struct {
	tx               repository.Transactor
	scheduleRepo     repository.ScheduleRepository
	medRepo          repository.MedicationRepository
	notificationRepo repository.NotificationRepository
	locker           lock.Locker
	delivery         DeliveryService
	localZone        *time.Location // zone of the server-local calendar date used for low-stock dedupe
	log              logger.Logger
}

// NewReminderService creates a new instance of ReminderService implementation.
// delivery may be nil when no channel is configured.
func NewReminderService(
	tx repository.Transactor,
	scheduleRepo repository.ScheduleRepository,
	medRepo repository.MedicationRepository,
	notificationRepo repository.NotificationRepository,
	locker lock.Locker,
	delivery DeliveryService,
	log logger.Logger,
) ReminderService {
	return &reminderService{
		tx:               tx,
		scheduleRepo:     scheduleRepo,
		medRepo:          medRepo,
		notificationRepo: notificationRepo,
		locker:           locker,
		delivery:         delivery,
		localZone:        time.Local,
		log:              log,
	}
}

// ProcessReminders runs one evaluation.
func (s *reminderService) ProcessReminders(ctx context.Context, nowUTC time.Time, trigger string) (dto.SendRemindersResponse, error) {
	log := s.log.With("run_id", uuid.NewString()).With("trigger", trigger)
	start := time.Now()

	release, err := s.locker.Acquire(ctx)
	if err != nil {
		log.Error("Failed to acquire evaluation lock", err)
		metrics.EvaluationRunsTotal.WithLabelValues(trigger, "locked").Inc()
		return dto.SendRemindersResponse{}, fmt.Errorf("%w: %v", appErrors.ErrEvaluationLocked, err)
	}
	defer release()

	var due, low evaluator.Outcome
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		schedules, err := s.scheduleRepo.FindEnabled(ctx)
		if err != nil {
			return err
		}
		due = evaluator.EvaluateSchedules(nowUTC, schedules)
		if err := s.persist(ctx, due); err != nil {
			return err
		}

		// Sees the stock decremented above.
		lowMeds, err := s.medRepo.FindLowStock(ctx)
		if err != nil {
			return err
		}
		low = evaluator.EvaluateLowStock(nowUTC.In(s.localZone), lowMeds)
		return s.persist(ctx, low)
	})
	metrics.EvaluationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		log.Error("Reminder evaluation rolled back", err)
		metrics.EvaluationRunsTotal.WithLabelValues(trigger, "error").Inc()
		return dto.SendRemindersResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	metrics.EvaluationRunsTotal.WithLabelValues(trigger, "ok").Inc()
	metrics.RemindersFiredTotal.WithLabelValues(string(constant.NotificationTimeToTake)).Add(float64(due.Fired))
	metrics.RemindersFiredTotal.WithLabelValues(string(constant.NotificationLowStock)).Add(float64(low.Fired))

	sent := due.Fired + low.Fired
	if sent > 0 {
		log.Info(fmt.Sprintf("Reminder evaluation fired %d time-to-take and %d low-stock notifications", due.Fired, low.Fired))
		if s.delivery != nil {
			s.delivery.Enqueue(append(due.Events, low.Events...))
		}
	} else {
		log.Debug("Reminder evaluation fired nothing")
	}
	return dto.SendRemindersResponse{Sent: sent, Message: "Reminders processed"}, nil
}

// persist writes one outcome inside the caller's transaction.
func (s *reminderService) persist(ctx context.Context, out evaluator.Outcome) error {
	for _, sch := range out.Schedules {
		if err := s.scheduleRepo.MarkFired(ctx, sch); err != nil {
			return err
		}
	}
	for _, med := range out.Medications {
		if err := s.medRepo.SaveEvaluation(ctx, med); err != nil {
			return err
		}
	}
	return s.notificationRepo.CreateBatch(ctx, out.Notifications())
}

// ExplainReminders builds the debug report.
func (s *reminderService) ExplainReminders(ctx context.Context, nowUTC time.Time) (dto.DebugRemindersResponse, error) {
	schedules, err := s.scheduleRepo.FindEnabled(ctx)
	if err != nil {
		s.log.Error("Failed to load schedules for debug report", err)
		return dto.DebugRemindersResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	ny := evaluator.LocalNow(nowUTC, constant.DefaultTimezone)
	return dto.DebugRemindersResponse{
		ServerTimeUTC: nowUTC.UTC().Format("2006-01-02T15:04:05.000000") + "Z",
		NYTime:        ny.Now.Format("2006-01-02T15:04:05.000000-07:00"),
		NYHM:          ny.HM,
		NYWeekday:     ny.Weekday,
		Schedules:     evaluator.Explain(nowUTC, schedules),
		Hint:          debugHint,
	}, nil
}

// DecrementStock takes one dose out of stock, never going below zero.
func (s *reminderService) DecrementStock(ctx context.Context, medID *uint) (dto.DecrementStockResponse, error) {
	if medID == nil || *medID == 0 {
		return dto.DecrementStockResponse{OK: false, Message: "med_id required"}, nil
	}

	// Same lock as evaluation so a concurrent run cannot overwrite the count.
	release, err := s.locker.Acquire(ctx)
	if err != nil {
		return dto.DecrementStockResponse{}, fmt.Errorf("%w: %v", appErrors.ErrEvaluationLocked, err)
	}
	defer release()

	med, err := s.medRepo.FindByID(ctx, *medID)
	if err != nil {
		if isNotFound(err) {
			return dto.DecrementStockResponse{OK: false, Message: appErrors.ErrMedicationNotFound.Error()}, nil
		}
		s.log.Error(fmt.Sprintf("Failed to find medication %d for decrement", *medID), err)
		return dto.DecrementStockResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	med.Decrement()
	if err := s.medRepo.SaveEvaluation(ctx, med); err != nil {
		s.log.Error(fmt.Sprintf("Failed to save stock for medication %d", med.ID), err)
		return dto.DecrementStockResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Decremented stock of medication %d to %d", med.ID, med.StockCount))
	stock := med.StockCount
	return dto.DecrementStockResponse{OK: true, StockCount: &stock}, nil
}
