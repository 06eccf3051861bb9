package evaluator

import (
	"math"
	"testing"
	"time"

	"pillulu/internal/domain/constant"
	"pillulu/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// helper: build a time in given tz and return its UTC
func mustLocalUTC(t *testing.T, tz string, y int, m time.Month, d, hh, mm int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation(tz)
	require.NoError(t, err)
	return time.Date(y, m, d, hh, mm, 0, 0, loc).UTC()
}

func newSchedule(med *entity.Medication, hm, tz, days string) *entity.Schedule {
	return &entity.Schedule{
		ID:           1,
		MedicationID: med.ID,
		TimeOfDay:    hm,
		Timezone:     tz,
		DaysOfWeek:   days,
		Enabled:      true,
		Medication:   med,
	}
}

func TestDaysMatch(t *testing.T) {
	tests := []struct {
		name    string
		days    string
		weekday string
		want    bool
	}{
		{name: "daily sentinel", days: "daily", weekday: "sun", want: true},
		{name: "member", days: "mon,wed,fri", weekday: "wed", want: true},
		{name: "not a member", days: "mon,wed,fri", weekday: "tue", want: false},
		{name: "spaces and case", days: " Mon , WED ", weekday: "wed", want: true},
		{name: "full names truncated", days: "Monday,Thursday", weekday: "thu", want: true},
		{name: "empty list", days: "", weekday: "mon", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysMatch(tt.days, tt.weekday))
		})
	}
}

func TestDaysMatch_EveryDayMatchesAllWeekdays(t *testing.T) {
	for _, wd := range []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"} {
		assert.True(t, DaysMatch(constant.EveryDay, wd), wd)
	}
}

func TestResolveLocation_FallsBackToNewYork(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	assert.Equal(t, ny.String(), ResolveLocation("Not/AZone").String())
	assert.Equal(t, ny.String(), ResolveLocation("").String())
	assert.Equal(t, "Asia/Tokyo", ResolveLocation("Asia/Tokyo").String())
}

func TestLocalNow(t *testing.T) {
	now := mustLocalUTC(t, "Asia/Tokyo", 2024, time.January, 8, 7, 5)

	clock := LocalNow(now, "Asia/Tokyo")
	assert.Equal(t, "07:05", clock.HM)
	assert.Equal(t, "mon", clock.Weekday)

	// Same instant is still Sunday evening in New York.
	clock = LocalNow(now, "America/New_York")
	assert.Equal(t, "17:05", clock.HM)
	assert.Equal(t, "sun", clock.Weekday)
}

func TestSecondsSince(t *testing.T) {
	now := time.Date(2024, 1, 8, 13, 30, 0, 0, time.UTC)
	assert.True(t, math.IsInf(SecondsSince(nil, now), 1))

	last := now.Add(-90 * time.Second)
	assert.InDelta(t, 90.0, SecondsSince(&last, now), 0.001)

	// Offsets do not matter, only the instant.
	lastNY := last.In(ResolveLocation("America/New_York"))
	assert.InDelta(t, 90.0, SecondsSince(&lastNY, now), 0.001)
}

func TestEvaluateSchedules_MondayFiresTuesdayDoesNot(t *testing.T) {
	med := &entity.Medication{ID: 7, UserID: 3, Name: "Aspirin", StockCount: 10, LowStockThreshold: 2}
	s := newSchedule(med, "08:30", "America/New_York", "mon,wed,fri")

	monday := mustLocalUTC(t, "America/New_York", 2024, time.January, 8, 8, 30)
	out := EvaluateSchedules(monday, []*entity.Schedule{s})

	require.Equal(t, 1, out.Fired)
	require.NotNil(t, s.LastReminderSentAt)
	assert.True(t, s.LastReminderSentAt.Equal(monday))
	assert.Equal(t, "America/New_York", s.LastReminderSentAt.Location().String())
	assert.Equal(t, 9, med.StockCount)

	n := out.Events[0].Notification
	assert.Equal(t, constant.NotificationTimeToTake, n.Type)
	assert.Equal(t, "⏰ Time to take Aspirin", n.Title)
	assert.Equal(t, "It's 08:30 — time to take Aspirin. Please take your medication as scheduled.", n.Message)
	require.NotNil(t, n.UserID)
	assert.Equal(t, uint(3), *n.UserID)

	tuesday := mustLocalUTC(t, "America/New_York", 2024, time.January, 9, 8, 30)
	out = EvaluateSchedules(tuesday, []*entity.Schedule{s})
	assert.Equal(t, 0, out.Fired)
	assert.Equal(t, 9, med.StockCount)
}

func TestEvaluateSchedules_ExactMinuteOnly(t *testing.T) {
	med := &entity.Medication{ID: 1, Name: "Vitamin D", StockCount: 5}
	at := mustLocalUTC(t, "Europe/Berlin", 2024, time.March, 4, 21, 0)

	for _, offset := range []time.Duration{-time.Minute, time.Minute} {
		s := newSchedule(med, "21:00", "Europe/Berlin", "daily")
		out := EvaluateSchedules(at.Add(offset), []*entity.Schedule{s})
		assert.Equal(t, 0, out.Fired, "offset %s", offset)
		assert.Nil(t, s.LastReminderSentAt)
	}

	// Any second inside the matching minute fires.
	s := newSchedule(med, "21:00", "Europe/Berlin", "daily")
	out := EvaluateSchedules(at.Add(59*time.Second), []*entity.Schedule{s})
	assert.Equal(t, 1, out.Fired)
}

func TestEvaluateSchedules_DedupeWithinWindow(t *testing.T) {
	med := &entity.Medication{ID: 1, Name: "Metformin", StockCount: 4}
	s := newSchedule(med, "09:00", "UTC", "daily")
	now := time.Date(2024, 5, 1, 9, 0, 10, 0, time.UTC)

	first := EvaluateSchedules(now, []*entity.Schedule{s})
	second := EvaluateSchedules(now, []*entity.Schedule{s})
	third := EvaluateSchedules(now.Add(40*time.Second), []*entity.Schedule{s})

	assert.Equal(t, 1, first.Fired)
	assert.Equal(t, 0, second.Fired)
	assert.Equal(t, 0, third.Fired)
	assert.Equal(t, 3, med.StockCount)
}

func TestEvaluateSchedules_EligibleAgainAfterWindow(t *testing.T) {
	med := &entity.Medication{ID: 1, Name: "Metformin", StockCount: 4}
	s := newSchedule(med, "09:00", "UTC", "daily")

	last := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	s.LastReminderSentAt = &last

	// Next day at the same minute.
	next := last.Add(24 * time.Hour)
	out := EvaluateSchedules(next, []*entity.Schedule{s})
	assert.Equal(t, 1, out.Fired)

	// Exactly 180 seconds is eligible, 179 is not.
	s2 := newSchedule(med, "09:03", "UTC", "daily")
	prev := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	s2.LastReminderSentAt = &prev
	assert.Equal(t, 1, EvaluateSchedules(prev.Add(180*time.Second), []*entity.Schedule{s2}).Fired)

	s3 := newSchedule(med, "09:02", "UTC", "daily")
	prev3 := time.Date(2024, 5, 1, 8, 59, 30, 0, time.UTC)
	s3.LastReminderSentAt = &prev3
	assert.Equal(t, 0, EvaluateSchedules(prev3.Add(179*time.Second), []*entity.Schedule{s3}).Fired)
}

func TestEvaluateSchedules_StockFloorsAtZero(t *testing.T) {
	med := &entity.Medication{ID: 1, Name: "Ibuprofen", StockCount: 0}
	s := newSchedule(med, "12:00", "UTC", "daily")

	out := EvaluateSchedules(time.Date(2024, 2, 2, 12, 0, 0, 0, time.UTC), []*entity.Schedule{s})

	assert.Equal(t, 1, out.Fired)
	assert.Equal(t, 0, med.StockCount)
	assert.Empty(t, out.Medications)
	assert.Len(t, out.Schedules, 1)
}

func TestEvaluateSchedules_SharedMedicationStock(t *testing.T) {
	now := time.Date(2024, 2, 2, 12, 0, 0, 0, time.UTC)
	// Two loaded copies of the same medication row.
	a := &entity.Medication{ID: 9, Name: "Insulin", StockCount: 1}
	b := &entity.Medication{ID: 9, Name: "Insulin", StockCount: 1}
	s1 := newSchedule(a, "12:00", "UTC", "daily")
	s2 := newSchedule(b, "12:00", "UTC", "daily")
	s2.ID = 2

	out := EvaluateSchedules(now, []*entity.Schedule{s1, s2})

	assert.Equal(t, 2, out.Fired)
	require.Len(t, out.Medications, 1)
	assert.Equal(t, 0, out.Medications[0].StockCount)
}

func TestEvaluateSchedules_SkipsDisabledAndUnloaded(t *testing.T) {
	med := &entity.Medication{ID: 1, Name: "Aspirin", StockCount: 3}
	now := time.Date(2024, 2, 2, 12, 0, 0, 0, time.UTC)

	disabled := newSchedule(med, "12:00", "UTC", "daily")
	disabled.Enabled = false
	orphan := newSchedule(med, "12:00", "UTC", "daily")
	orphan.Medication = nil

	out := EvaluateSchedules(now, []*entity.Schedule{disabled, orphan})
	assert.Equal(t, 0, out.Fired)
	assert.Equal(t, 3, med.StockCount)
}

func TestEvaluateSchedules_InvalidTimezoneFallsBack(t *testing.T) {
	med := &entity.Medication{ID: 1, Name: "Aspirin", StockCount: 3}
	s := newSchedule(med, "08:30", "Not/AZone", "daily")

	now := mustLocalUTC(t, "America/New_York", 2024, time.July, 4, 8, 30)
	var out Outcome
	require.NotPanics(t, func() {
		out = EvaluateSchedules(now, []*entity.Schedule{s})
	})
	assert.Equal(t, 1, out.Fired)
	assert.Equal(t, "America/New_York", s.LastReminderSentAt.Location().String())
}

func TestEvaluateLowStock_OncePerDay(t *testing.T) {
	med := &entity.Medication{ID: 1, UserID: 4, Name: "Lisinopril", StockCount: 3, LowStockThreshold: 5}
	day1 := time.Date(2024, 1, 10, 8, 0, 0, 0, time.Local)

	out := EvaluateLowStock(day1, []*entity.Medication{med})
	require.Equal(t, 1, out.Fired)
	require.NotNil(t, med.LastLowStockSentAt)
	y, m, d := time.Time(*med.LastLowStockSentAt).Date()
	assert.Equal(t, []int{2024, 1, 10}, []int{y, int(m), d})

	n := out.Events[0].Notification
	assert.Equal(t, constant.NotificationLowStock, n.Type)
	assert.Equal(t, "⚠️ Low stock - Lisinopril", n.Title)
	assert.Equal(t, "Lisinopril is running low. Current stock: 3, alert threshold: 5. Please restock soon.", n.Message)

	// Later the same day: no new notice.
	out = EvaluateLowStock(day1.Add(10*time.Hour), []*entity.Medication{med})
	assert.Equal(t, 0, out.Fired)

	day2 := time.Date(2024, 1, 11, 0, 1, 0, 0, time.Local)
	out = EvaluateLowStock(day2, []*entity.Medication{med})
	assert.Equal(t, 1, out.Fired)
	y, m, d = time.Time(*med.LastLowStockSentAt).Date()
	assert.Equal(t, []int{2024, 1, 11}, []int{y, int(m), d})
}

func TestEvaluateLowStock_Threshold(t *testing.T) {
	today := time.Date(2024, 1, 10, 8, 0, 0, 0, time.Local)
	atThreshold := &entity.Medication{ID: 1, Name: "A", StockCount: 5, LowStockThreshold: 5}
	above := &entity.Medication{ID: 2, Name: "B", StockCount: 6, LowStockThreshold: 5}
	yesterday := datatypes.Date(time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC))
	sentYesterday := &entity.Medication{ID: 3, Name: "C", StockCount: 0, LowStockThreshold: 0, LastLowStockSentAt: &yesterday}

	out := EvaluateLowStock(today, []*entity.Medication{atThreshold, above, sentYesterday})

	assert.Equal(t, 2, out.Fired)
	assert.Nil(t, above.LastLowStockSentAt)
	assert.ElementsMatch(t, []*entity.Medication{atThreshold, sentYesterday}, out.Medications)
}

func TestExplain_ReadOnly(t *testing.T) {
	med := &entity.Medication{ID: 1, Name: "Aspirin", StockCount: 3}
	s := newSchedule(med, "08:30", "America/New_York", "mon,wed,fri")
	disabled := newSchedule(med, "08:30", "America/New_York", "daily")
	disabled.Enabled = false

	now := mustLocalUTC(t, "America/New_York", 2024, time.January, 8, 8, 30)
	got := Explain(now, []*entity.Schedule{s, disabled})

	require.Len(t, got, 1)
	assert.Equal(t, Explanation{
		ScheduleID:    1,
		MedName:       "Aspirin",
		TimeOfDay:     "08:30",
		Timezone:      "America/New_York",
		DaysOfWeek:    "mon,wed,fri",
		CurrentHMInTZ: "08:30",
		TodayWeekday:  "mon",
		TimeMatch:     true,
		DaysMatch:     true,
		DedupeOK:      true,
		WouldFire:     true,
	}, got[0])
	assert.Nil(t, s.LastReminderSentAt)
	assert.Equal(t, 3, med.StockCount)
}

func TestDateOf(t *testing.T) {
	tokyo := ResolveLocation("Asia/Tokyo")
	// 2024-01-10 08:00 in Tokyo is 2024-01-09 23:00 UTC, but the calendar date is the 10th.
	got := DateOf(time.Date(2024, 1, 10, 8, 0, 0, 0, tokyo))
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), got)
}
