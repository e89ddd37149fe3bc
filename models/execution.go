package models

import (
	"fmt"
	"time"
)

type ExecutionStatus string

const (
	ExecutionPending   ExecutionStatus = "pending"
	ExecutionRunning   ExecutionStatus = "running"
	ExecutionSuccess   ExecutionStatus = "success"
	ExecutionFailed    ExecutionStatus = "failed"
	ExecutionTimeout   ExecutionStatus = "timeout"
	ExecutionCancelled ExecutionStatus = "cancelled"
)

func (s ExecutionStatus) Valid() bool {
	switch s {
	case ExecutionPending, ExecutionRunning, ExecutionSuccess,
		ExecutionFailed, ExecutionTimeout, ExecutionCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition may occur. A retry never
// reopens a terminal execution; it produces a new linked one.
func (s ExecutionStatus) Terminal() bool {
	switch s {
	case ExecutionSuccess, ExecutionFailed, ExecutionTimeout, ExecutionCancelled:
		return true
	}
	return false
}

type TriggerKind string

const (
	TriggerScheduled TriggerKind = "scheduled"
	TriggerManual    TriggerKind = "manual"
	TriggerRetry     TriggerKind = "retry"
)

// Execution is one concrete run. It is created pending, mutated only by
// the executor that owns it, and becomes terminal exactly once.
type Execution struct {
	Id         string      `json:"id" db:"id"`
	ScheduleId string      `json:"schedule_id,omitempty" db:"schedule_id"`
	Trigger    TriggerKind `json:"trigger" db:"trigger_kind"`

	Status ExecutionStatus `json:"status" db:"status"`

	// AppId empty means the run covered all active apps.
	AppId      string    `json:"app_id,omitempty" db:"app_id"`
	TargetDate time.Time `json:"target_date" db:"target_date"`

	// StartedAt/CompletedAt are unix nanoseconds, zero when unset.
	StartedAt       int64 `json:"started_at,omitempty" db:"started_at"`
	CompletedAt     int64 `json:"completed_at,omitempty" db:"completed_at"`
	DurationSeconds int64 `json:"duration_seconds,omitempty" db:"duration_seconds"`

	SuccessCount      int `json:"success_count" db:"success_count"`
	ErrorCount        int `json:"error_count" db:"error_count"`
	AlertsGenerated   int `json:"alerts_generated" db:"alerts_generated"`
	NotificationsSent int `json:"notifications_sent" db:"notifications_sent"`

	OutputLog string `json:"output_log,omitempty" db:"output_log"`
	ErrorLog  string `json:"error_log,omitempty" db:"error_log"`

	RetryCount int   `json:"retry_count" db:"retry_count"`
	CreatedAt  int64 `json:"created_at" db:"created_at"`
}

var validTransitions = map[ExecutionStatus][]ExecutionStatus{
	ExecutionPending: {ExecutionRunning, ExecutionCancelled},
	ExecutionRunning: {ExecutionSuccess, ExecutionFailed, ExecutionTimeout, ExecutionCancelled},
}

// SetStatus enforces the execution state machine:
// pending -> running -> {success, failed, timeout, cancelled}, with
// cancelled additionally reachable from pending.
func (e *Execution) SetStatus(next ExecutionStatus) error {
	for _, allowed := range validTransitions[e.Status] {
		if next == allowed {
			e.Status = next
			return nil
		}
	}
	return fmt.Errorf("invalid execution transition %s -> %s", e.Status, next)
}

// CanRetry reports whether a retry execution may be derived from this one
// under the given retry limit.
func (e *Execution) CanRetry(retryLimit int) bool {
	if e.ScheduleId == "" {
		return false
	}
	if e.Status != ExecutionFailed && e.Status != ExecutionTimeout {
		return false
	}
	return e.RetryCount < retryLimit
}

// ExecutionFilter narrows execution history queries. Zero fields match
// everything.
type ExecutionFilter struct {
	ScheduleId string
	AppId      string
	Status     ExecutionStatus
	// StartedAfter/StartedBefore are unix nanoseconds bounds on StartedAt.
	StartedAfter  int64
	StartedBefore int64
}
