package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"code.cloudfoundry.org/lager/v3"

	"github.com/appmetrics/appmonitor/db"
	"github.com/appmetrics/appmonitor/executor"
	"github.com/appmetrics/appmonitor/helpers/handlers"
	"github.com/appmetrics/appmonitor/models"
	"github.com/appmetrics/appmonitor/scheduler"
)

// ExecutionRunner is the executor surface the API needs. Satisfied by
// executor.Executor.
type ExecutionRunner interface {
	Execute(ctx context.Context, trigger models.TriggerKind, kind models.TaskKind,
		schedule *models.Schedule, appId string, targetDate time.Time, opts executor.Options) (*models.Execution, error)
	RetryExecution(ctx context.Context, executionId string, opts executor.Options) (*models.Execution, error)
	Cancel(executionId string) error
}

// StatusProvider exposes the scheduling loop's state. Satisfied by
// scheduler.Scheduler.
type StatusProvider interface {
	Status() scheduler.Status
}

type Handlers struct {
	logger      lager.Logger
	scheduleDB  db.ScheduleDB
	executionDB db.ExecutionDB
	runner      ExecutionRunner
	status      StatusProvider
	leases      scheduler.Leaser
}

func NewHandlers(logger lager.Logger, scheduleDB db.ScheduleDB, executionDB db.ExecutionDB,
	runner ExecutionRunner, status StatusProvider, leases scheduler.Leaser) *Handlers {
	return &Handlers{
		logger:      logger.Session("api"),
		scheduleDB:  scheduleDB,
		executionDB: executionDB,
		runner:      runner,
		status:      status,
		leases:      leases,
	}
}

func (h *Handlers) GetSchedules(w http.ResponseWriter, r *http.Request, vars map[string]string) {
	schedules, err := h.scheduleDB.GetActiveSchedules()
	if err != nil {
		h.logger.Error("get-schedules", err)
		handlers.WriteJSONError(h.logger, w, http.StatusInternalServerError, "Interal-Server-Error", "Error getting schedules")
		return
	}
	handlers.WriteJSONResponse(h.logger, w, http.StatusOK, schedules)
}

func (h *Handlers) GetExecutions(w http.ResponseWriter, r *http.Request, vars map[string]string) {
	filter := models.ExecutionFilter{
		ScheduleId: r.URL.Query().Get("scheduleid"),
		AppId:      r.URL.Query().Get("appid"),
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = models.ExecutionStatus(status)
		if !filter.Status.Valid() {
			handlers.WriteJSONError(h.logger, w, http.StatusBadRequest, "Bad-Request", "Invalid status parameter")
			return
		}
	}
	var parseErr error
	filter.StartedAfter, parseErr = parseUnixSeconds(r.URL.Query().Get("start"))
	if parseErr != nil {
		handlers.WriteJSONError(h.logger, w, http.StatusBadRequest, "Bad-Request", "Error parsing start time")
		return
	}
	filter.StartedBefore, parseErr = parseUnixSeconds(r.URL.Query().Get("end"))
	if parseErr != nil {
		handlers.WriteJSONError(h.logger, w, http.StatusBadRequest, "Bad-Request", "Error parsing end time")
		return
	}
	order := db.DESC
	switch r.URL.Query().Get("order") {
	case "", "desc":
	case "asc":
		order = db.ASC
	default:
		handlers.WriteJSONError(h.logger, w, http.StatusBadRequest, "Bad-Request", "Invalid order parameter")
		return
	}

	executions, err := h.executionDB.RetrieveExecutions(filter, order)
	if err != nil {
		h.logger.Error("get-executions", err)
		handlers.WriteJSONError(h.logger, w, http.StatusInternalServerError, "Interal-Server-Error", "Error getting executions")
		return
	}
	handlers.WriteJSONResponse(h.logger, w, http.StatusOK, executions)
}

func (h *Handlers) GetExecution(w http.ResponseWriter, r *http.Request, vars map[string]string) {
	execution, err := h.executionDB.GetExecution(vars["executionid"])
	if err != nil {
		if errors.Is(err, db.ErrDoesNotExist) {
			handlers.WriteJSONError(h.logger, w, http.StatusNotFound, "Not-Found", "Execution not found")
			return
		}
		h.logger.Error("get-execution", err, lager.Data{"execution-id": vars["executionid"]})
		handlers.WriteJSONError(h.logger, w, http.StatusInternalServerError, "Interal-Server-Error", "Error getting execution")
		return
	}
	handlers.WriteJSONResponse(h.logger, w, http.StatusOK, execution)
}

func (h *Handlers) TriggerSchedule(w http.ResponseWriter, r *http.Request, vars map[string]string) {
	scheduleId := vars["scheduleid"]
	schedule, err := h.scheduleDB.GetSchedule(scheduleId)
	if err != nil {
		if errors.Is(err, db.ErrDoesNotExist) {
			handlers.WriteJSONError(h.logger, w, http.StatusNotFound, "Not-Found", "Schedule not found")
			return
		}
		h.logger.Error("trigger-schedule", err, lager.Data{"schedule-id": scheduleId})
		handlers.WriteJSONError(h.logger, w, http.StatusInternalServerError, "Interal-Server-Error", "Error getting schedule")
		return
	}

	targetDate := scheduler.TargetDate(time.Now())
	if raw := r.URL.Query().Get("target_date"); raw != "" {
		targetDate, err = time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			handlers.WriteJSONError(h.logger, w, http.StatusBadRequest, "Bad-Request", "Error parsing target_date")
			return
		}
	}
	opts := executor.Options{
		DryRun:            r.URL.Query().Get("dry_run") == "true",
		SkipNotifications: r.URL.Query().Get("skip_notifications") == "true",
	}

	// The lease, not a read-then-create check, is what serializes
	// concurrent triggers for the same schedule.
	acquired, err := h.leases.Acquire(scheduleId)
	if err != nil {
		h.logger.Error("trigger-schedule", err, lager.Data{"schedule-id": scheduleId})
		handlers.WriteJSONError(h.logger, w, http.StatusInternalServerError, "Interal-Server-Error", "Error acquiring schedule lease")
		return
	}
	if !acquired {
		handlers.WriteJSONError(h.logger, w, http.StatusConflict, "Conflict", "A run for this schedule is already in progress")
		return
	}

	h.logger.Info("manual-trigger", lager.Data{"schedule-id": scheduleId, "target-date": targetDate.Format("2006-01-02")})
	go func() {
		defer h.leases.Release(scheduleId)
		execution, err := h.runner.Execute(context.Background(), models.TriggerManual, schedule.TaskKind,
			schedule, "", targetDate, opts)
		if err != nil {
			h.logger.Error("manual-trigger-failed", err, lager.Data{"schedule-id": scheduleId})
			return
		}
		h.logger.Info("manual-trigger-completed", lager.Data{
			"schedule-id":  scheduleId,
			"execution-id": execution.Id,
			"status":       execution.Status,
		})
	}()

	handlers.WriteJSONResponse(h.logger, w, http.StatusAccepted, map[string]string{
		"schedule_id": scheduleId,
		"target_date": targetDate.Format("2006-01-02"),
	})
}

func (h *Handlers) RetryExecution(w http.ResponseWriter, r *http.Request, vars map[string]string) {
	executionId := vars["executionid"]
	execution, err := h.executionDB.GetExecution(executionId)
	if err != nil {
		if errors.Is(err, db.ErrDoesNotExist) {
			handlers.WriteJSONError(h.logger, w, http.StatusNotFound, "Not-Found", "Execution not found")
			return
		}
		h.logger.Error("retry-execution", err, lager.Data{"execution-id": executionId})
		handlers.WriteJSONError(h.logger, w, http.StatusInternalServerError, "Interal-Server-Error", "Error getting execution")
		return
	}
	if execution.ScheduleId == "" {
		handlers.WriteJSONError(h.logger, w, http.StatusConflict, "Conflict", "Execution is not schedule-bound")
		return
	}
	schedule, err := h.scheduleDB.GetSchedule(execution.ScheduleId)
	if err != nil {
		h.logger.Error("retry-execution", err, lager.Data{"execution-id": executionId})
		handlers.WriteJSONError(h.logger, w, http.StatusInternalServerError, "Interal-Server-Error", "Error getting schedule")
		return
	}
	if !execution.CanRetry(schedule.RetryLimit) {
		handlers.WriteJSONError(h.logger, w, http.StatusConflict, "Conflict", "Execution is not retryable")
		return
	}

	acquired, err := h.leases.Acquire(execution.ScheduleId)
	if err != nil {
		h.logger.Error("retry-execution", err, lager.Data{"execution-id": executionId})
		handlers.WriteJSONError(h.logger, w, http.StatusInternalServerError, "Interal-Server-Error", "Error acquiring schedule lease")
		return
	}
	if !acquired {
		handlers.WriteJSONError(h.logger, w, http.StatusConflict, "Conflict", "A run for this schedule is already in progress")
		return
	}

	go func() {
		defer h.leases.Release(execution.ScheduleId)
		retried, err := h.runner.RetryExecution(context.Background(), executionId, executor.Options{})
		if err != nil {
			h.logger.Error("retry-failed", err, lager.Data{"execution-id": executionId})
			return
		}
		h.logger.Info("retry-completed", lager.Data{
			"execution-id": retried.Id,
			"status":       retried.Status,
		})
	}()

	handlers.WriteJSONResponse(h.logger, w, http.StatusAccepted, map[string]string{
		"execution_id": executionId,
	})
}

func (h *Handlers) CancelExecution(w http.ResponseWriter, r *http.Request, vars map[string]string) {
	executionId := vars["executionid"]
	if err := h.runner.Cancel(executionId); err != nil {
		if errors.Is(err, db.ErrDoesNotExist) {
			handlers.WriteJSONError(h.logger, w, http.StatusNotFound, "Not-Found", "Execution not found")
			return
		}
		handlers.WriteJSONError(h.logger, w, http.StatusConflict, "Conflict", err.Error())
		return
	}
	handlers.WriteJSONResponse(h.logger, w, http.StatusOK, map[string]string{
		"execution_id": executionId,
		"status":       "cancelling",
	})
}

func (h *Handlers) GetSchedulerStatus(w http.ResponseWriter, r *http.Request, vars map[string]string) {
	handlers.WriteJSONResponse(h.logger, w, http.StatusOK, h.status.Status())
}

func parseUnixSeconds(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return seconds * int64(time.Second), nil
}
