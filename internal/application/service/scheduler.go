package service

// SchedulerService runs reminder evaluation on the in-process cron.
type SchedulerService interface {
	// Start registers the every-minute evaluation job and starts the scheduler.
	Start() error
	// Stop stops the scheduler, waiting for a running evaluation to finish.
	Stop()
}
