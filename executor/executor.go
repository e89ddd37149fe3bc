package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	gosync "sync"
	"sync/atomic"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"
	"github.com/cenkalti/backoff/v4"

	"github.com/appmetrics/appmonitor/db"
	"github.com/appmetrics/appmonitor/healthendpoint"
	"github.com/appmetrics/appmonitor/models"
	"github.com/appmetrics/appmonitor/notifier"
	"github.com/appmetrics/appmonitor/storeclient"
)

// Config tunes the execution engine.
type Config struct {
	WorkerCount          int           `yaml:"worker_count"`
	DefaultTimeout       time.Duration `yaml:"default_timeout"`
	FailureThreshold     float64       `yaml:"failure_threshold"`
	RetryPolicy          string        `yaml:"retry_policy"`
	RetryInitialInterval time.Duration `yaml:"retry_initial_interval"`
}

const (
	RetryPolicyExponential = "exponential"
	RetryPolicyConstant    = "constant"

	DefaultWorkerCount          = 4
	DefaultTimeout              = 30 * time.Minute
	DefaultFailureThreshold     = 1.0
	DefaultRetryPolicy          = RetryPolicyExponential
	DefaultRetryInitialInterval = time.Minute
)

func (c *Config) ApplyDefaults() {
	if c.WorkerCount <= 0 {
		c.WorkerCount = DefaultWorkerCount
	}
	if c.DefaultTimeout == 0 {
		c.DefaultTimeout = DefaultTimeout
	}
	if c.FailureThreshold == 0 {
		c.FailureThreshold = DefaultFailureThreshold
	}
	if c.RetryPolicy == "" {
		c.RetryPolicy = DefaultRetryPolicy
	}
	if c.RetryInitialInterval == 0 {
		c.RetryInitialInterval = DefaultRetryInitialInterval
	}
}

// Options modify a single run. MaxRetries, when set, tightens the retry
// budget below the schedule's limit; it never raises it.
type Options struct {
	DryRun            bool
	SkipNotifications bool
	Timeout           time.Duration
	MaxRetries        *int
}

// Executor runs the per-app pipeline for one execution: fetch, persist,
// analyze, detect, notify, with app-level failure isolation. One bad app
// never stops the others; the run's final status reflects the aggregate.
type Executor struct {
	logger lager.Logger
	clock  clock.Clock
	conf   Config

	tracker     *Tracker
	executionDB db.ExecutionDB
	metricsDB   db.MetricsDB
	scheduleDB  db.ScheduleDB
	appDB       db.AppDB
	ruleDB      db.AlertRuleDB
	fetcher     storeclient.MetricsFetcher
	notifier    notifier.Notifier
	collector   healthendpoint.RunStatusCollector
	analyzer    Analyzer
	detector    Detector

	lock   gosync.Mutex
	active map[string]*runHandle
}

// runHandle carries the cooperative cancel signal for one in-flight run.
// Workers consult it at app boundaries only, so the app being processed
// when Cancel arrives always finishes.
type runHandle struct {
	cancelled atomic.Bool
}

// Analyzer and Detector are satisfied by analytics.Engine and
// anomaly.Detector.
type Analyzer interface {
	Analyze(current, dayBefore, weekBefore *models.MetricsSnapshot) *models.GrowthReport
}

type Detector interface {
	Detect(app *models.App, report *models.GrowthReport, rules []*models.AlertRule) []*models.AlertEvent
}

func New(logger lager.Logger, clk clock.Clock, conf Config, tracker *Tracker,
	executionDB db.ExecutionDB, metricsDB db.MetricsDB, scheduleDB db.ScheduleDB,
	appDB db.AppDB, ruleDB db.AlertRuleDB, fetcher storeclient.MetricsFetcher,
	n notifier.Notifier, analyzer Analyzer, detector Detector,
	collector healthendpoint.RunStatusCollector) *Executor {
	conf.ApplyDefaults()
	return &Executor{
		logger:      logger.Session("executor"),
		clock:       clk,
		conf:        conf,
		tracker:     tracker,
		executionDB: executionDB,
		metricsDB:   metricsDB,
		scheduleDB:  scheduleDB,
		appDB:       appDB,
		ruleDB:      ruleDB,
		fetcher:     fetcher,
		notifier:    n,
		analyzer:    analyzer,
		detector:    detector,
		collector:   collector,
		active:      map[string]*runHandle{},
	}
}

// Execute runs one execution to a terminal status. For schedule-bound
// runs a second concurrent run of the same schedule is refused with
// ErrRunInProgress. The returned execution carries the final counters
// even when the run failed.
func (e *Executor) Execute(ctx context.Context, trigger models.TriggerKind, kind models.TaskKind,
	schedule *models.Schedule, appId string, targetDate time.Time, opts Options) (*models.Execution, error) {
	return e.execute(ctx, trigger, kind, schedule, appId, targetDate, opts, 0)
}

func (e *Executor) execute(ctx context.Context, trigger models.TriggerKind, kind models.TaskKind,
	schedule *models.Schedule, appId string, targetDate time.Time, opts Options, retryCount int) (*models.Execution, error) {
	scheduleId := ""
	if schedule != nil {
		scheduleId = schedule.Id
		kind = schedule.TaskKind
		if appId == "" {
			appId = schedule.AppId
		}
		if opts.Timeout == 0 {
			opts.Timeout = schedule.Timeout
		}
		opts.SkipNotifications = opts.SkipNotifications || schedule.SkipNotifications

		running, err := e.executionDB.HasRunningExecution(schedule.Id)
		if err != nil {
			return nil, err
		}
		if running {
			return nil, models.ErrRunInProgress
		}
	}
	if !kind.Valid() {
		return nil, &models.ConfigError{Detail: fmt.Sprintf("invalid task kind %q", kind)}
	}
	if opts.Timeout == 0 {
		opts.Timeout = e.conf.DefaultTimeout
	}

	execution, err := e.tracker.Create(trigger, scheduleId, appId, targetDate, retryCount)
	if err != nil {
		return nil, err
	}
	if err := e.tracker.Start(execution); err != nil {
		return nil, err
	}
	e.collector.RunStarted()

	handle := &runHandle{}
	e.lock.Lock()
	e.active[execution.Id] = handle
	e.lock.Unlock()
	defer func() {
		e.lock.Lock()
		delete(e.active, execution.Id)
		e.lock.Unlock()
	}()

	apps, err := e.resolveApps(appId)
	if err != nil {
		execution.ErrorLog = err.Error()
		if err := e.tracker.Complete(execution, models.ExecutionFailed); err != nil {
			return execution, err
		}
		e.collector.RunCompleted(models.ExecutionFailed)
		return execution, nil
	}

	timedOut := e.runApps(ctx, kind, apps, targetDate, opts, execution, handle)

	status := models.ExecutionSuccess
	switch {
	case timedOut:
		status = models.ExecutionTimeout
	case handle.cancelled.Load() || ctx.Err() != nil:
		status = models.ExecutionCancelled
	case e.aggregateFailed(execution):
		status = models.ExecutionFailed
	}

	e.collector.AlertsGenerated(execution.AlertsGenerated)
	e.collector.NotificationsSent(execution.NotificationsSent)
	if err := e.tracker.Complete(execution, status); err != nil {
		return execution, err
	}
	e.collector.RunCompleted(status)
	return execution, nil
}

// ExecuteWithRetry runs a schedule-bound execution and, while the
// outcome is retryable under the retry budget, derives linked retry
// executions spaced by the configured backoff policy.
func (e *Executor) ExecuteWithRetry(ctx context.Context, schedule *models.Schedule, targetDate time.Time, opts Options) (*models.Execution, error) {
	execution, err := e.Execute(ctx, models.TriggerScheduled, schedule.TaskKind, schedule, "", targetDate, opts)
	if err != nil {
		return nil, err
	}

	limit := schedule.RetryLimit
	if opts.MaxRetries != nil && *opts.MaxRetries < limit {
		limit = *opts.MaxRetries
	}
	policy := e.retryPolicy()

	for execution.CanRetry(limit) {
		interval := policy.NextBackOff()
		e.logger.Info("scheduling-retry", lager.Data{
			"schedule-id": schedule.Id,
			"attempt":     execution.RetryCount + 1,
			"after":       interval.String(),
		})
		e.clock.Sleep(interval)
		if ctx.Err() != nil {
			break
		}

		next, err := e.execute(ctx, models.TriggerRetry, schedule.TaskKind, schedule, "", targetDate, opts, execution.RetryCount+1)
		if err != nil {
			if errors.Is(err, models.ErrRunInProgress) {
				break
			}
			return execution, err
		}
		execution = next
	}
	return execution, nil
}

func (e *Executor) retryPolicy() backoff.BackOff {
	if e.conf.RetryPolicy == RetryPolicyConstant {
		return backoff.NewConstantBackOff(e.conf.RetryInitialInterval)
	}
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = e.conf.RetryInitialInterval
	policy.MaxElapsedTime = 0
	return policy
}

// RetryExecution derives a retry from a terminal failed or timed out
// execution, on operator request.
func (e *Executor) RetryExecution(ctx context.Context, executionId string, opts Options) (*models.Execution, error) {
	execution, err := e.executionDB.GetExecution(executionId)
	if err != nil {
		return nil, err
	}
	if execution.ScheduleId == "" {
		return nil, fmt.Errorf("execution %s is not schedule-bound and cannot be retried", executionId)
	}
	schedule, err := e.scheduleDB.GetSchedule(execution.ScheduleId)
	if err != nil {
		return nil, err
	}
	if !execution.CanRetry(schedule.RetryLimit) {
		return nil, fmt.Errorf("execution %s is not retryable (status %s, retry %d of %d)",
			executionId, execution.Status, execution.RetryCount, schedule.RetryLimit)
	}
	return e.execute(ctx, models.TriggerRetry, schedule.TaskKind, schedule, execution.AppId,
		execution.TargetDate, opts, execution.RetryCount+1)
}

// Cancel stops an execution. A run owned by this process is cancelled
// cooperatively at the next app boundary; a pending one is cancelled in
// place. A running execution owned by another replica is refused.
func (e *Executor) Cancel(executionId string) error {
	e.lock.Lock()
	handle, owned := e.active[executionId]
	e.lock.Unlock()
	if owned {
		e.logger.Info("cancelling-execution", lager.Data{"execution-id": executionId})
		handle.cancelled.Store(true)
		return nil
	}

	execution, err := e.executionDB.GetExecution(executionId)
	if err != nil {
		return err
	}
	if execution.Status == models.ExecutionPending {
		if err := execution.SetStatus(models.ExecutionCancelled); err != nil {
			return err
		}
		return e.executionDB.UpdateExecution(execution)
	}
	return fmt.Errorf("execution %s cannot be cancelled in status %s", executionId, execution.Status)
}

func (e *Executor) resolveApps(appId string) ([]*models.App, error) {
	if appId != "" {
		app, err := e.appDB.GetApp(appId)
		if err != nil {
			return nil, err
		}
		return []*models.App{app}, nil
	}
	return e.appDB.GetActiveApps()
}

type appResult struct {
	app           *models.App
	err           error
	skipped       bool
	alerts        int
	notifications int
	line          string
}

// runApps drives the bounded worker pool. The execution struct is only
// written by this goroutine; workers communicate through the results
// channel.
func (e *Executor) runApps(ctx context.Context, kind models.TaskKind, apps []*models.App,
	targetDate time.Time, opts Options, execution *models.Execution, handle *runHandle) bool {
	if len(apps) == 0 {
		execution.OutputLog = "no active apps to process"
		return false
	}

	timer := e.clock.NewTimer(opts.Timeout)
	defer timer.Stop()
	var timedOut atomic.Bool
	workCtx, cancelWork := context.WithCancel(ctx)
	defer cancelWork()
	go func() {
		select {
		case <-timer.C():
			timedOut.Store(true)
			cancelWork()
		case <-workCtx.Done():
		}
	}()

	workers := e.conf.WorkerCount
	if workers > len(apps) {
		workers = len(apps)
	}
	jobs := make(chan *models.App)
	results := make(chan appResult, len(apps))
	var wg gosync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for app := range jobs {
				if workCtx.Err() != nil || handle.cancelled.Load() {
					results <- appResult{app: app, skipped: true}
					continue
				}
				results <- e.processApp(workCtx, kind, app, targetDate, opts)
			}
		}()
	}
	go func() {
		for _, app := range apps {
			jobs <- app
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var outputLines, errorLines []string
	for result := range results {
		switch {
		case result.skipped:
			errorLines = append(errorLines, fmt.Sprintf("%s: not processed", result.app.Id))
		case result.err != nil:
			execution.ErrorCount++
			errorLines = append(errorLines, fmt.Sprintf("%s: %s", result.app.Id, result.err))
		default:
			execution.SuccessCount++
			execution.AlertsGenerated += result.alerts
			execution.NotificationsSent += result.notifications
			if result.line != "" {
				outputLines = append(outputLines, result.line)
			}
		}
	}
	execution.OutputLog = strings.Join(outputLines, "\n")
	execution.ErrorLog = strings.Join(errorLines, "\n")
	return timedOut.Load()
}

func (e *Executor) aggregateFailed(execution *models.Execution) bool {
	total := execution.SuccessCount + execution.ErrorCount
	if total == 0 {
		return false
	}
	ratio := float64(execution.ErrorCount) / float64(total)
	return ratio >= e.conf.FailureThreshold
}

func (e *Executor) processApp(ctx context.Context, kind models.TaskKind, app *models.App,
	targetDate time.Time, opts Options) appResult {
	logger := e.logger.Session("process-app", lager.Data{"app-id": app.Id, "kind": kind})
	result := appResult{app: app}

	var snapshot *models.MetricsSnapshot
	var err error
	switch kind {
	case models.TaskDataCollection, models.TaskFullAnalysis:
		snapshot, err = e.fetcher.Fetch(ctx, app, targetDate)
		if err != nil {
			result.err = err
			return result
		}
		if !opts.DryRun {
			if err := e.metricsDB.SaveSnapshot(snapshot); err != nil {
				result.err = err
				return result
			}
		}
		result.line = fmt.Sprintf("%s: collected %d downloads, %d sessions", app.Id, snapshot.Downloads, snapshot.Sessions)
	case models.TaskAlertCheck:
		snapshot, err = e.metricsDB.GetSnapshot(app.Id, targetDate)
		if err != nil {
			if errors.Is(err, db.ErrDoesNotExist) {
				result.err = fmt.Errorf("no snapshot for %s on %s", app.Id, targetDate.Format("2006-01-02"))
				return result
			}
			result.err = err
			return result
		}
	}

	if kind == models.TaskDataCollection {
		return result
	}

	dayBefore, err := e.baseline(app.Id, targetDate.AddDate(0, 0, -1))
	if err != nil {
		result.err = err
		return result
	}
	weekBefore, err := e.baseline(app.Id, targetDate.AddDate(0, 0, -7))
	if err != nil {
		result.err = err
		return result
	}
	report := e.analyzer.Analyze(snapshot, dayBefore, weekBefore)

	rules, err := e.ruleDB.GetActiveRules(app.Id)
	if err != nil {
		result.err = err
		return result
	}
	events := e.detector.Detect(app, report, rules)
	result.alerts = len(events)
	result.line = fmt.Sprintf("%s: analyzed %d metrics, %d alerts", app.Id, len(report.Metrics), len(events))

	if opts.DryRun || opts.SkipNotifications {
		return result
	}
	for _, event := range events {
		if err := e.notifier.SendAlert(ctx, app, event); err != nil {
			// A lost notification is logged but never fails the app.
			logger.Error("send-alert", err, lager.Data{"rule-id": event.RuleId})
			continue
		}
		result.notifications++
	}
	if kind == models.TaskFullAnalysis && app.DailyReport {
		if err := e.notifier.SendReport(ctx, app, report); err != nil {
			logger.Error("send-report", err)
		} else {
			result.notifications++
		}
	}
	return result
}

// baseline loads a prior snapshot, treating absence as no baseline.
func (e *Executor) baseline(appId string, date time.Time) (*models.MetricsSnapshot, error) {
	snapshot, err := e.metricsDB.GetSnapshot(appId, date)
	if err != nil {
		if errors.Is(err, db.ErrDoesNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return snapshot, nil
}
