package evaluator

import (
	"time"

	"pillulu/internal/domain/entity"
)

// Explanation reports how one schedule evaluates at a given moment.
type Explanation struct {
	ScheduleID    uint   `json:"schedule_id"`
	MedName       string `json:"med_name"`
	TimeOfDay     string `json:"time_of_day"`
	Timezone      string `json:"timezone"`
	DaysOfWeek    string `json:"days_of_week"`
	CurrentHMInTZ string `json:"current_hm_in_tz"`
	TodayWeekday  string `json:"today_weekday"`
	TimeMatch     bool   `json:"time_match"`
	DaysMatch     bool   `json:"days_match"`
	DedupeOK      bool   `json:"dedupe_ok"`
	WouldFire     bool   `json:"would_fire"`
}

// Explain is the read-only counterpart of EvaluateSchedules.
func Explain(nowUTC time.Time, schedules []*entity.Schedule) []Explanation {
	out := make([]Explanation, 0, len(schedules))
	for _, s := range schedules {
		if !s.Enabled {
			continue
		}
		v := Check(nowUTC, s)
		e := Explanation{
			ScheduleID:    s.ID,
			TimeOfDay:     s.TimeOfDay,
			Timezone:      s.Timezone,
			DaysOfWeek:    s.DaysOfWeek,
			CurrentHMInTZ: v.Clock.HM,
			TodayWeekday:  v.Clock.Weekday,
			TimeMatch:     v.TimeMatch,
			DaysMatch:     v.DaysMatch,
			DedupeOK:      v.DedupeOK,
			WouldFire:     v.WouldFire(),
		}
		if s.Medication != nil {
			e.MedName = s.Medication.Name
		}
		out = append(out, e)
	}
	return out
}
