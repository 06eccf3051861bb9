package constant

import "time"

const (
	// DefaultTimezone is used for new schedules and whenever a stored zone cannot be resolved.
	DefaultTimezone = "America/New_York"
	// EveryDay is the days_of_week sentinel that matches every weekday.
	EveryDay = "daily"
	// DedupeWindow is the minimum gap between two fires of the same schedule.
	DedupeWindow = 180 * time.Second

	DefaultLowStockThreshold = 5
	DefaultNotificationLimit = 50
)
