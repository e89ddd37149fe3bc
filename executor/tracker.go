package executor

import (
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"
	"github.com/google/uuid"

	"github.com/appmetrics/appmonitor/db"
	"github.com/appmetrics/appmonitor/models"
)

// Tracker persists every execution state change so history survives a
// crash mid-run. All mutations go through the state machine; an invalid
// transition is a programming error and is surfaced, not papered over.
type Tracker struct {
	logger      lager.Logger
	clock       clock.Clock
	executionDB db.ExecutionDB
}

func NewTracker(logger lager.Logger, clk clock.Clock, executionDB db.ExecutionDB) *Tracker {
	return &Tracker{
		logger:      logger.Session("tracker"),
		clock:       clk,
		executionDB: executionDB,
	}
}

// Create persists a new pending execution.
func (t *Tracker) Create(trigger models.TriggerKind, scheduleId string, appId string, targetDate time.Time, retryCount int) (*models.Execution, error) {
	execution := &models.Execution{
		Id:         uuid.NewString(),
		ScheduleId: scheduleId,
		Trigger:    trigger,
		Status:     models.ExecutionPending,
		AppId:      appId,
		TargetDate: targetDate,
		RetryCount: retryCount,
		CreatedAt:  t.clock.Now().UnixNano(),
	}
	if err := t.executionDB.SaveExecution(execution); err != nil {
		t.logger.Error("save-execution", err, lager.Data{"execution-id": execution.Id})
		return nil, err
	}
	t.logger.Info("execution-created", lager.Data{
		"execution-id": execution.Id,
		"schedule-id":  scheduleId,
		"trigger":      trigger,
	})
	return execution, nil
}

// Start moves a pending execution to running.
func (t *Tracker) Start(execution *models.Execution) error {
	if err := execution.SetStatus(models.ExecutionRunning); err != nil {
		return err
	}
	execution.StartedAt = t.clock.Now().UnixNano()
	if err := t.executionDB.UpdateExecution(execution); err != nil {
		t.logger.Error("update-execution", err, lager.Data{"execution-id": execution.Id})
		return err
	}
	return nil
}

// Complete moves an execution to a terminal status and stamps duration.
func (t *Tracker) Complete(execution *models.Execution, status models.ExecutionStatus) error {
	if err := execution.SetStatus(status); err != nil {
		return err
	}
	execution.CompletedAt = t.clock.Now().UnixNano()
	if execution.StartedAt > 0 {
		execution.DurationSeconds = int64(time.Duration(execution.CompletedAt-execution.StartedAt) / time.Second)
	}
	if err := t.executionDB.UpdateExecution(execution); err != nil {
		t.logger.Error("update-execution", err, lager.Data{"execution-id": execution.Id})
		return err
	}
	t.logger.Info("execution-completed", lager.Data{
		"execution-id": execution.Id,
		"status":       status,
		"successes":    execution.SuccessCount,
		"errors":       execution.ErrorCount,
	})
	return nil
}
