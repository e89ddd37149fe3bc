package scheduler

import (
	"time"

	"github.com/appmetrics/appmonitor/models"
)

// Due-time math for schedules. All computation is in the location of the
// reference time passed in; the daemon uses UTC throughout.

// matchesDay reports whether the schedule fires on t's calendar day.
func matchesDay(s *models.Schedule, t time.Time) bool {
	switch s.Frequency {
	case models.FrequencyDaily:
		return true
	case models.FrequencyWeekly:
		// Schedule weekdays count 0=Monday, time.Weekday counts 0=Sunday.
		return t.Weekday() == time.Weekday((*s.Weekday+1)%7)
	case models.FrequencyMonthly:
		return t.Day() == *s.DayOfMonth
	}
	return false
}

// IsDue reports whether the schedule fires in the minute containing now.
func IsDue(s *models.Schedule, now time.Time) bool {
	return matchesDay(s, now) && now.Hour() == s.Hour && now.Minute() == s.Minute
}

// PrevDue returns the most recent fire time at or before now. The zero
// time means the schedule has never been due, which cannot happen for a
// valid schedule within any 31-day window.
func PrevDue(s *models.Schedule, now time.Time) time.Time {
	day := now
	// A monthly schedule on day 31 can skip several short months in a row.
	for i := 0; i < 366; i++ {
		if matchesDay(s, day) {
			due := time.Date(day.Year(), day.Month(), day.Day(), s.Hour, s.Minute, 0, 0, now.Location())
			if !due.After(now) {
				return due
			}
		}
		day = day.AddDate(0, 0, -1)
	}
	return time.Time{}
}

// NextDue returns the first fire time strictly after now.
func NextDue(s *models.Schedule, now time.Time) time.Time {
	day := now
	for i := 0; i < 366; i++ {
		if matchesDay(s, day) {
			due := time.Date(day.Year(), day.Month(), day.Day(), s.Hour, s.Minute, 0, 0, now.Location())
			if due.After(now) {
				return due
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return time.Time{}
}
