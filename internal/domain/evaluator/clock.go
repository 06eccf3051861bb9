package evaluator

import (
	"math"
	"strings"
	"sync"
	"time"

	"pillulu/internal/domain/constant"
)

var locations sync.Map // name -> *time.Location

// ResolveLocation loads an IANA zone, falling back to America/New_York when
// the name is empty or unknown.
func ResolveLocation(name string) *time.Location {
	if name == "" {
		name = constant.DefaultTimezone
	}
	if loc, ok := locations.Load(name); ok {
		return loc.(*time.Location)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		if name == constant.DefaultTimezone {
			return time.UTC
		}
		return ResolveLocation(constant.DefaultTimezone)
	}
	locations.Store(name, loc)
	return loc
}

// LocalClock is "now" as seen from one schedule's timezone.
type LocalClock struct {
	Now     time.Time
	HM      string // "15:04"
	Weekday string // "mon".."sun"
}

// LocalNow converts nowUTC into tz.
func LocalNow(nowUTC time.Time, tz string) LocalClock {
	now := nowUTC.In(ResolveLocation(tz))
	return LocalClock{
		Now:     now,
		HM:      now.Format("15:04"),
		Weekday: strings.ToLower(now.Format("Mon")),
	}
}

// DaysMatch reports whether weekday is part of a days_of_week value.
// Tokens are trimmed, lowercased and cut to three letters, so "Monday" matches "mon".
func DaysMatch(daysOfWeek, weekday string) bool {
	if daysOfWeek == constant.EveryDay {
		return true
	}
	for _, d := range strings.Split(daysOfWeek, ",") {
		d = strings.ToLower(strings.TrimSpace(d))
		if len(d) > 3 {
			d = d[:3]
		}
		if d == weekday {
			return true
		}
	}
	return false
}

// SecondsSince returns the seconds elapsed from last to nowTZ, or +Inf if
// the schedule never fired.
func SecondsSince(last *time.Time, nowTZ time.Time) float64 {
	if last == nil || last.IsZero() {
		return math.Inf(1)
	}
	return nowTZ.Sub(*last).Seconds()
}

// DateOf returns midnight UTC of t's calendar date in t's own location.
// Calendar dates are persisted in this form.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
