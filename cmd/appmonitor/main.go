package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tedsuo/ifrit"
	"github.com/tedsuo/ifrit/grouper"
	"github.com/tedsuo/ifrit/sigmon"

	"github.com/appmetrics/appmonitor/analytics"
	"github.com/appmetrics/appmonitor/anomaly"
	"github.com/appmetrics/appmonitor/config"
	"github.com/appmetrics/appmonitor/cred"
	"github.com/appmetrics/appmonitor/db"
	"github.com/appmetrics/appmonitor/db/sqldb"
	"github.com/appmetrics/appmonitor/executor"
	"github.com/appmetrics/appmonitor/healthendpoint"
	"github.com/appmetrics/appmonitor/helpers"
	"github.com/appmetrics/appmonitor/models"
	"github.com/appmetrics/appmonitor/notifier"
	"github.com/appmetrics/appmonitor/operator"
	"github.com/appmetrics/appmonitor/scheduler"
	"github.com/appmetrics/appmonitor/server"
	"github.com/appmetrics/appmonitor/storeclient"
	"github.com/appmetrics/appmonitor/sync"
)

const (
	exitSuccess        = 0
	exitConfigError    = 1
	exitPartialFailure = 2
	exitHardFailure    = 3
	exitRunInProgress  = 4
)

func main() {
	var (
		path       string
		once       bool
		appId      string
		task       string
		date       string
		retryId    string
		dryRun     bool
		skipNotify bool
	)
	flag.StringVar(&path, "c", "", "config file")
	flag.BoolVar(&once, "once", false, "run a single scheduler tick and exit")
	flag.StringVar(&appId, "app", "", "run an ad-hoc task for one app and exit")
	flag.StringVar(&task, "task", string(models.TaskFullAnalysis), "task kind for an ad-hoc run")
	flag.StringVar(&date, "date", "", "target date (2006-01-02) for an ad-hoc run, default yesterday")
	flag.StringVar(&retryId, "retry", "", "retry a failed execution by id and exit")
	flag.BoolVar(&dryRun, "dry-run", false, "compute without persisting or notifying")
	flag.BoolVar(&skipNotify, "skip-notifications", false, "suppress outbound notifications")
	flag.Parse()

	if path == "" {
		fmt.Fprintln(os.Stderr, "missing config file")
		os.Exit(exitConfigError)
	}

	configFile, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open config file %q: %s\n", path, err.Error())
		os.Exit(exitConfigError)
	}

	conf, err := config.LoadConfig(configFile)
	_ = configFile.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read config file %q: %s\n", path, err.Error())
		os.Exit(exitConfigError)
	}

	if err := conf.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to validate configuration: %s\n", err.Error())
		os.Exit(exitConfigError)
	}

	logger := helpers.InitLoggerFromConfig(&conf.Logging, "appmonitor")
	mClock := clock.NewClock()

	configDB, err := sqldb.NewConfigSQLDB(conf.DB.ConfigDB, logger.Session("config-db"))
	if err != nil {
		logger.Error("failed-to-connect-config-db", err, lager.Data{"dbConfig": conf.DB.ConfigDB})
		os.Exit(exitHardFailure)
	}
	defer func() { _ = configDB.Close() }()

	scheduleDB, err := sqldb.NewScheduleSQLDB(conf.DB.ConfigDB, logger.Session("schedule-db"))
	if err != nil {
		logger.Error("failed-to-connect-schedule-db", err, lager.Data{"dbConfig": conf.DB.ConfigDB})
		os.Exit(exitHardFailure)
	}
	defer func() { _ = scheduleDB.Close() }()

	executionDB, err := sqldb.NewExecutionSQLDB(conf.DB.ExecutionDB, logger.Session("execution-db"))
	if err != nil {
		logger.Error("failed-to-connect-execution-db", err, lager.Data{"dbConfig": conf.DB.ExecutionDB})
		os.Exit(exitHardFailure)
	}
	defer func() { _ = executionDB.Close() }()

	metricsDB, err := sqldb.NewMetricsSQLDB(conf.DB.MetricsDB, logger.Session("metrics-db"))
	if err != nil {
		logger.Error("failed-to-connect-metrics-db", err, lager.Data{"dbConfig": conf.DB.MetricsDB})
		os.Exit(exitHardFailure)
	}
	defer func() { _ = metricsDB.Close() }()

	lockDB, err := sqldb.NewLockSQLDB(conf.DB.LockDB, logger.Session("lock-db"))
	if err != nil {
		logger.Error("failed-to-connect-lock-db", err, lager.Data{"dbConfig": conf.DB.LockDB})
		os.Exit(exitHardFailure)
	}
	defer func() { _ = lockDB.Close() }()

	credentials := cred.NewCachingStore(logger, configDB, conf.Cred.Passphrase, conf.Cred.CacheTTL)
	fetcher := storeclient.NewFetcher(logger, conf.StoreClient, credentials)
	larkNotifier := notifier.NewLarkNotifier(logger, conf.Notifier, mClock)
	engine := analytics.NewEngine(logger)
	detector := anomaly.NewDetector(logger)

	promRegistry := prometheus.NewRegistry()
	runCollector := healthendpoint.NewRunStatusCollector("appmonitor", "executor")
	healthendpoint.RegisterCollectors(promRegistry, []prometheus.Collector{
		healthendpoint.NewDatabaseStatusCollector("appmonitor", "db", db.ConfigDb, configDB),
		healthendpoint.NewDatabaseStatusCollector("appmonitor", "db", db.ExecutionDb, executionDB),
		healthendpoint.NewDatabaseStatusCollector("appmonitor", "db", db.MetricsDb, metricsDB),
		runCollector,
	}, true, logger)

	tracker := executor.NewTracker(logger, mClock, executionDB)
	exec := executor.New(logger, mClock, conf.Executor, tracker, executionDB, metricsDB,
		scheduleDB, configDB, configDB, fetcher, larkNotifier, engine, detector, runCollector)

	leases := sync.NewLeaseManager(logger, lockDB, mClock, conf.Scheduler.LeaseTTL, conf.Scheduler.LeaseRenewal)
	sched := scheduler.New(logger, mClock, conf.Scheduler, scheduleDB, executionDB, leases, exec)

	switch {
	case appId != "":
		os.Exit(runAdhoc(logger, exec, appId, task, date, dryRun, skipNotify))
	case retryId != "":
		os.Exit(runRetry(logger, exec, retryId))
	case once:
		sched.Tick(context.Background(), mClock.Now())
		sched.Wait()
		os.Exit(exitSuccess)
	}

	checkers := []healthendpoint.Checker{
		healthendpoint.DbChecker(db.ConfigDb, configDB),
		healthendpoint.DbChecker(db.ExecutionDb, executionDB),
		healthendpoint.DbChecker(db.MetricsDb, metricsDB),
		healthendpoint.DbChecker(db.LockDb, lockDB),
	}

	members := grouper.Members{
		{Name: "scheduler", Runner: sched},
		{Name: "execution-pruner", Runner: operator.NewOperatorRunner(
			operator.NewExecutionDbPruner(executionDB, conf.Operator.ExecutionRetention, mClock, logger),
			conf.Operator.Interval, mClock, logger.Session("execution-pruner"))},
		{Name: "snapshot-pruner", Runner: operator.NewOperatorRunner(
			operator.NewSnapshotDbPruner(metricsDB, conf.Operator.SnapshotRetention, mClock, logger),
			conf.Operator.Interval, mClock, logger.Session("snapshot-pruner"))},
		{Name: "api-server", Runner: server.NewServer(logger, conf.Server, scheduleDB, executionDB, exec, sched, leases)},
		{Name: "health-server", Runner: healthendpoint.NewServer(logger, conf.Health.Port, promRegistry, checkers)},
	}

	monitor := ifrit.Invoke(sigmon.New(grouper.NewOrdered(os.Interrupt, members)))
	logger.Info("started")

	if err := <-monitor.Wait(); err != nil {
		logger.Error("exited-with-failure", err)
		os.Exit(exitHardFailure)
	}
	logger.Info("exited")
}

func runAdhoc(logger lager.Logger, exec *executor.Executor, appId, task, date string, dryRun, skipNotify bool) int {
	kind := models.TaskKind(task)
	if !kind.Valid() {
		logger.Error("invalid-task-kind", nil, lager.Data{"task": task})
		return exitConfigError
	}

	targetDate := scheduler.TargetDate(time.Now())
	if date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, time.UTC)
		if err != nil {
			logger.Error("invalid-target-date", err, lager.Data{"date": date})
			return exitConfigError
		}
		targetDate = parsed
	}

	execution, err := exec.Execute(context.Background(), models.TriggerManual, kind, nil, appId,
		targetDate, executor.Options{DryRun: dryRun, SkipNotifications: skipNotify})
	if err != nil {
		if errors.Is(err, models.ErrRunInProgress) {
			return exitRunInProgress
		}
		logger.Error("adhoc-run-failed", err, lager.Data{"app-id": appId})
		return exitHardFailure
	}

	logger.Info("adhoc-run-completed", lager.Data{
		"execution-id": execution.Id,
		"status":       execution.Status,
		"succeeded":    execution.SuccessCount,
		"failed":       execution.ErrorCount,
	})
	return runExitCode(execution)
}

func runRetry(logger lager.Logger, exec *executor.Executor, executionId string) int {
	execution, err := exec.RetryExecution(context.Background(), executionId, executor.Options{})
	if err != nil {
		if errors.Is(err, models.ErrRunInProgress) {
			return exitRunInProgress
		}
		logger.Error("retry-failed", err, lager.Data{"execution-id": executionId})
		return exitHardFailure
	}

	logger.Info("retry-completed", lager.Data{
		"execution-id": execution.Id,
		"status":       execution.Status,
	})
	return runExitCode(execution)
}

// runExitCode maps a completed execution to an exit code. A run that
// finished with any per-app errors is a partial failure even when its
// aggregate status is success.
func runExitCode(execution *models.Execution) int {
	if execution.Status != models.ExecutionSuccess || execution.ErrorCount > 0 {
		return exitPartialFailure
	}
	return exitSuccess
}
