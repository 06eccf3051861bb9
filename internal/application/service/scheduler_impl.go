package service

import (
	"context"
	"fmt"
	"time"

	"pillulu/internal/infrastructure/scheduler"
	appErrors "pillulu/internal/pkg/errors"
	"pillulu/internal/pkg/logger"
)

// An evaluation must finish before the next minute's tick.
const evaluationTimeout = 50 * time.Second

type schedulerService struct {
	cronScheduler *scheduler.Scheduler
	reminderSvc   ReminderService
	now           func() time.Time
	log           logger.Logger
}

// NewSchedulerService creates a new instance of SchedulerService implementation.
func NewSchedulerService(cronScheduler *scheduler.Scheduler, reminderSvc ReminderService, log logger.Logger) SchedulerService {
	return &schedulerService{
		cronScheduler: cronScheduler,
		reminderSvc:   reminderSvc,
		now:           time.Now,
		log:           log,
	}
}

func (s *schedulerService) Start() error {
	if _, err := s.cronScheduler.AddJob(scheduler.EveryMinute, s.runEvaluation); err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrScheduling, err)
	}
	s.cronScheduler.Start()
	return nil
}

func (s *schedulerService) Stop() {
	s.cronScheduler.Stop()
}

func (s *schedulerService) runEvaluation() {
	ctx, cancel := context.WithTimeout(context.Background(), evaluationTimeout)
	defer cancel()

	if _, err := s.reminderSvc.ProcessReminders(ctx, s.now().UTC(), TriggerCron); err != nil {
		s.log.Error("Scheduled reminder evaluation failed", err)
	}
}
