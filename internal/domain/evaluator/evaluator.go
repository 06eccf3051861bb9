// Package evaluator decides which schedules are due and which medications are
// low on stock. It performs no I/O: callers load the entities, pass "now" in,
// and persist the mutations and notifications it returns in one transaction.
package evaluator

import (
	"time"

	"pillulu/internal/domain/constant"
	"pillulu/internal/domain/entity"

	"gorm.io/datatypes"
)

// Event is one notification produced by an evaluation, with the fields
// delivery channels need to render it.
type Event struct {
	Notification *entity.Notification
	Medication   *entity.Medication
	TimeOfDay    string // time_to_take only
	StockCount   int    // stock at the time the notice was raised
	Threshold    int
}

// Outcome collects everything an evaluation changed.
type Outcome struct {
	Fired       int
	Events      []Event
	Schedules   []*entity.Schedule   // schedules whose last_reminder_sent_at moved
	Medications []*entity.Medication // medications whose stock or low-stock date moved
}

// Notifications returns the notifications of all events, in order.
func (o Outcome) Notifications() []*entity.Notification {
	out := make([]*entity.Notification, 0, len(o.Events))
	for _, e := range o.Events {
		out = append(out, e.Notification)
	}
	return out
}

// Verdict is the per-schedule decision.
type Verdict struct {
	Clock     LocalClock
	TimeMatch bool
	DaysMatch bool
	DedupeOK  bool
}

// WouldFire is true when all three conditions hold.
func (v Verdict) WouldFire() bool {
	return v.TimeMatch && v.DaysMatch && v.DedupeOK
}

// Check evaluates a single schedule against nowUTC without mutating it.
func Check(nowUTC time.Time, s *entity.Schedule) Verdict {
	clock := LocalNow(nowUTC, s.Timezone)
	return Verdict{
		Clock:     clock,
		TimeMatch: s.TimeOfDay == clock.HM,
		DaysMatch: DaysMatch(s.DaysOfWeek, clock.Weekday),
		DedupeOK:  SecondsSince(s.LastReminderSentAt, clock.Now) >= constant.DedupeWindow.Seconds(),
	}
}

// EvaluateSchedules fires every enabled schedule that is due at nowUTC.
// A fired schedule gets last_reminder_sent_at = now in its zone, and its
// medication loses one unit of stock (never below zero). Schedules that share
// a medication ID share one stock counter.
func EvaluateSchedules(nowUTC time.Time, schedules []*entity.Schedule) Outcome {
	var out Outcome
	meds := make(map[uint]*entity.Medication)

	for _, s := range schedules {
		if !s.Enabled || s.Medication == nil {
			continue
		}
		v := Check(nowUTC, s)
		if !v.WouldFire() {
			continue
		}

		med := canonical(meds, s)
		firedAt := v.Clock.Now
		s.LastReminderSentAt = &firedAt

		out.Events = append(out.Events, Event{
			Notification: TimeToTakeNotification(med, s.TimeOfDay),
			Medication:   med,
			TimeOfDay:    s.TimeOfDay,
			StockCount:   med.StockCount,
			Threshold:    med.LowStockThreshold,
		})
		out.Schedules = append(out.Schedules, s)
		out.Fired++

		before := med.StockCount
		med.Decrement()
		if med.StockCount != before {
			out.Medications = appendUnique(out.Medications, med)
		}
	}
	return out
}

// EvaluateLowStock raises at most one low-stock notice per medication per
// calendar date. today is the server-local date.
func EvaluateLowStock(today time.Time, meds []*entity.Medication) Outcome {
	var out Outcome
	for _, m := range meds {
		if !m.IsLowStock() {
			continue
		}
		if m.LastLowStockSentAt != nil && sameDate(time.Time(*m.LastLowStockSentAt), today) {
			continue
		}

		out.Events = append(out.Events, Event{
			Notification: LowStockNotification(m),
			Medication:   m,
			StockCount:   m.StockCount,
			Threshold:    m.LowStockThreshold,
		})
		setLowStockDate(m, today)
		out.Medications = append(out.Medications, m)
		out.Fired++
	}
	return out
}

// canonical returns the single Medication instance tracked for s's medication,
// so that two schedules of the same medication decrement the same counter.
func canonical(meds map[uint]*entity.Medication, s *entity.Schedule) *entity.Medication {
	id := s.MedicationID
	if id == 0 {
		id = s.Medication.ID
	}
	if id == 0 {
		return s.Medication
	}
	if m, ok := meds[id]; ok {
		s.Medication = m
		return m
	}
	meds[id] = s.Medication
	return s.Medication
}

func setLowStockDate(m *entity.Medication, today time.Time) {
	d := datatypes.Date(DateOf(today))
	m.LastLowStockSentAt = &d
}

func appendUnique(list []*entity.Medication, m *entity.Medication) []*entity.Medication {
	for _, existing := range list {
		if existing == m {
			return list
		}
	}
	return append(list, m)
}
