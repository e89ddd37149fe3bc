package models

import (
	"fmt"
	"time"
)

type TaskKind string

const (
	TaskDataCollection TaskKind = "data_collection"
	TaskFullAnalysis   TaskKind = "full_analysis"
	TaskAlertCheck     TaskKind = "alert_check"
)

func (k TaskKind) Valid() bool {
	switch k {
	case TaskDataCollection, TaskFullAnalysis, TaskAlertCheck:
		return true
	}
	return false
}

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Schedule is a recurring trigger definition. Schedules are created and
// edited through configuration and are read-only to the scheduler; an
// execution never mutates its schedule.
type Schedule struct {
	Id       string   `json:"id" db:"id"`
	Name     string   `json:"name" db:"name"`
	TaskKind TaskKind `json:"task_kind" db:"task_kind"`

	// AppId empty means the schedule targets all active apps.
	AppId string `json:"app_id,omitempty" db:"app_id"`

	Frequency Frequency `json:"frequency" db:"frequency"`
	Hour      int       `json:"hour" db:"hour"`
	Minute    int       `json:"minute" db:"minute"`
	// Weekday is required for weekly schedules, 0=Monday .. 6=Sunday.
	Weekday *int `json:"weekday,omitempty" db:"weekday"`
	// DayOfMonth is required for monthly schedules, 1..31. Months without
	// that day are skipped.
	DayOfMonth *int `json:"day_of_month,omitempty" db:"day_of_month"`

	Active            bool          `json:"active" db:"active"`
	SkipNotifications bool          `json:"skip_notifications" db:"skip_notifications"`
	RetryLimit        int           `json:"retry_limit" db:"retry_limit"`
	Timeout           time.Duration `json:"timeout" db:"timeout"`
}

func (s *Schedule) Validate() error {
	if !s.TaskKind.Valid() {
		return fmt.Errorf("schedule %s: invalid task kind %q", s.Id, s.TaskKind)
	}
	if s.Hour < 0 || s.Hour > 23 {
		return fmt.Errorf("schedule %s: hour %d out of range [0,23]", s.Id, s.Hour)
	}
	if s.Minute < 0 || s.Minute > 59 {
		return fmt.Errorf("schedule %s: minute %d out of range [0,59]", s.Id, s.Minute)
	}
	switch s.Frequency {
	case FrequencyDaily:
	case FrequencyWeekly:
		if s.Weekday == nil {
			return fmt.Errorf("schedule %s: weekly frequency requires weekday", s.Id)
		}
		if *s.Weekday < 0 || *s.Weekday > 6 {
			return fmt.Errorf("schedule %s: weekday %d out of range [0,6]", s.Id, *s.Weekday)
		}
	case FrequencyMonthly:
		if s.DayOfMonth == nil {
			return fmt.Errorf("schedule %s: monthly frequency requires day_of_month", s.Id)
		}
		if *s.DayOfMonth < 1 || *s.DayOfMonth > 31 {
			return fmt.Errorf("schedule %s: day_of_month %d out of range [1,31]", s.Id, *s.DayOfMonth)
		}
	default:
		return fmt.Errorf("schedule %s: invalid frequency %q", s.Id, s.Frequency)
	}
	if s.RetryLimit < 0 {
		return fmt.Errorf("schedule %s: negative retry limit", s.Id)
	}
	return nil
}
