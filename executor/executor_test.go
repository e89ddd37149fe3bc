package executor_test

import (
	"context"
	"errors"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/clock/fakeclock"
	"code.cloudfoundry.org/lager/v3/lagertest"
	"github.com/shopspring/decimal"

	"code.cloudfoundry.org/lager/v3"

	"github.com/appmetrics/appmonitor/analytics"
	"github.com/appmetrics/appmonitor/anomaly"
	"github.com/appmetrics/appmonitor/db"
	"github.com/appmetrics/appmonitor/executor"
	"github.com/appmetrics/appmonitor/fakes"
	"github.com/appmetrics/appmonitor/healthendpoint"
	"github.com/appmetrics/appmonitor/models"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Executor", func() {
	var (
		logger      lager.Logger
		executionDB *fakes.FakeExecutionDB
		metricsDB   *fakes.FakeMetricsDB
		scheduleDB  *fakes.FakeScheduleDB
		appDB       *fakes.FakeAppDB
		ruleDB      *fakes.FakeAlertRuleDB
		fetcher     *fakes.FakeMetricsFetcher
		notify      *fakes.FakeNotifier
		conf        executor.Config

		targetDate time.Time
		schedule   *models.Schedule
		apps       []*models.App
	)

	newExecutor := func(clk clock.Clock) *executor.Executor {
		tracker := executor.NewTracker(logger, clk, executionDB)
		collector := healthendpoint.NewRunStatusCollector("appmonitor", "test")
		return executor.New(logger, clk, conf, tracker,
			executionDB, metricsDB, scheduleDB, appDB, ruleDB, fetcher, notify,
			analytics.NewEngine(logger), anomaly.NewDetector(logger), collector)
	}

	snapshotFor := func(appId string, downloads int64) *models.MetricsSnapshot {
		return &models.MetricsSnapshot{
			AppId:     appId,
			Date:      targetDate,
			Downloads: downloads,
			Sessions:  500,
			Revenue:   decimal.NewFromInt(10),
			Rating:    4.5,
		}
	}

	BeforeEach(func() {
		logger = lagertest.NewTestLogger("executor-test")
		executionDB = &fakes.FakeExecutionDB{}
		metricsDB = &fakes.FakeMetricsDB{}
		scheduleDB = &fakes.FakeScheduleDB{}
		appDB = &fakes.FakeAppDB{}
		ruleDB = &fakes.FakeAlertRuleDB{}
		fetcher = &fakes.FakeMetricsFetcher{}
		notify = &fakes.FakeNotifier{}
		conf = executor.Config{
			WorkerCount:          2,
			DefaultTimeout:       time.Minute,
			RetryInitialInterval: time.Millisecond,
		}

		targetDate = time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)
		schedule = &models.Schedule{
			Id:        "schedule-1",
			Name:      "nightly collection",
			TaskKind:  models.TaskDataCollection,
			Frequency: models.FrequencyDaily,
			Hour:      6,
			Active:    true,
		}
		apps = []*models.App{
			{Id: "app-1", Name: "Reader", Platform: models.PlatformIOS, Active: true},
			{Id: "app-2", Name: "Player", Platform: models.PlatformAndroid, Active: true},
			{Id: "app-3", Name: "Editor", Platform: models.PlatformIOS, Active: true},
		}
		appDB.GetActiveAppsReturns(apps, nil)
		metricsDB.GetSnapshotReturns(nil, db.ErrDoesNotExist)
		fetcher.FetchStub = func(_ context.Context, app *models.App, _ time.Time) (*models.MetricsSnapshot, error) {
			return snapshotFor(app.Id, 100), nil
		}
	})

	Describe("data collection runs", func() {
		It("fetches and persists a snapshot per active app", func() {
			execution, err := newExecutor(clock.NewClock()).Execute(context.Background(),
				models.TriggerScheduled, schedule.TaskKind, schedule, "", targetDate, executor.Options{})
			Expect(err).NotTo(HaveOccurred())

			Expect(execution.Status).To(Equal(models.ExecutionSuccess))
			Expect(execution.SuccessCount).To(Equal(3))
			Expect(execution.ErrorCount).To(BeZero())
			Expect(metricsDB.SaveSnapshotCallCount()).To(Equal(3))
			Expect(execution.OutputLog).To(ContainSubstring("app-1"))
		})

		It("isolates a failing app from the others", func() {
			fetcher.FetchStub = func(_ context.Context, app *models.App, _ time.Time) (*models.MetricsSnapshot, error) {
				if app.Id == "app-2" {
					return nil, &models.PermanentError{Op: "fetch", Err: errors.New("bad bundle id")}
				}
				return snapshotFor(app.Id, 100), nil
			}

			execution, err := newExecutor(clock.NewClock()).Execute(context.Background(),
				models.TriggerScheduled, schedule.TaskKind, schedule, "", targetDate, executor.Options{})
			Expect(err).NotTo(HaveOccurred())

			Expect(execution.Status).To(Equal(models.ExecutionSuccess))
			Expect(execution.SuccessCount).To(Equal(2))
			Expect(execution.ErrorCount).To(Equal(1))
			Expect(execution.ErrorLog).To(ContainSubstring("app-2"))
		})

		It("fails the run when every app fails", func() {
			fetcher.FetchReturns(nil, &models.TransientError{Op: "fetch", Err: errors.New("store down")})

			execution, err := newExecutor(clock.NewClock()).Execute(context.Background(),
				models.TriggerScheduled, schedule.TaskKind, schedule, "", targetDate, executor.Options{})
			Expect(err).NotTo(HaveOccurred())

			Expect(execution.Status).To(Equal(models.ExecutionFailed))
			Expect(execution.ErrorCount).To(Equal(3))
		})

		It("applies a lower failure threshold when configured", func() {
			conf.FailureThreshold = 0.3
			fetcher.FetchStub = func(_ context.Context, app *models.App, _ time.Time) (*models.MetricsSnapshot, error) {
				if app.Id == "app-2" {
					return nil, &models.PermanentError{Op: "fetch", Err: errors.New("bad bundle id")}
				}
				return snapshotFor(app.Id, 100), nil
			}

			execution, err := newExecutor(clock.NewClock()).Execute(context.Background(),
				models.TriggerScheduled, schedule.TaskKind, schedule, "", targetDate, executor.Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(execution.Status).To(Equal(models.ExecutionFailed))
		})

		It("skips persistence on a dry run", func() {
			execution, err := newExecutor(clock.NewClock()).Execute(context.Background(),
				models.TriggerManual, schedule.TaskKind, schedule, "", targetDate, executor.Options{DryRun: true})
			Expect(err).NotTo(HaveOccurred())

			Expect(execution.Status).To(Equal(models.ExecutionSuccess))
			Expect(metricsDB.SaveSnapshotCallCount()).To(BeZero())
		})

		It("targets a single app when the schedule names one", func() {
			schedule.AppId = "app-1"
			appDB.GetAppReturns(apps[0], nil)

			execution, err := newExecutor(clock.NewClock()).Execute(context.Background(),
				models.TriggerScheduled, schedule.TaskKind, schedule, "", targetDate, executor.Options{})
			Expect(err).NotTo(HaveOccurred())

			Expect(execution.SuccessCount).To(Equal(1))
			Expect(appDB.GetAppArgsForCall(0)).To(Equal("app-1"))
			Expect(appDB.GetActiveAppsCallCount()).To(BeZero())
		})

		It("refuses a second run while one is in progress", func() {
			executionDB.HasRunningExecutionReturns(true, nil)

			_, err := newExecutor(clock.NewClock()).Execute(context.Background(),
				models.TriggerScheduled, schedule.TaskKind, schedule, "", targetDate, executor.Options{})
			Expect(err).To(MatchError(models.ErrRunInProgress))
			Expect(executionDB.SaveExecutionCallCount()).To(BeZero())
		})

		It("fails cleanly when the app set cannot be resolved", func() {
			appDB.GetActiveAppsReturns(nil, errors.New("connection refused"))

			execution, err := newExecutor(clock.NewClock()).Execute(context.Background(),
				models.TriggerScheduled, schedule.TaskKind, schedule, "", targetDate, executor.Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(execution.Status).To(Equal(models.ExecutionFailed))
			Expect(execution.ErrorLog).To(ContainSubstring("connection refused"))
		})
	})

	Describe("full analysis runs", func() {
		BeforeEach(func() {
			schedule.TaskKind = models.TaskFullAnalysis
			metricsDB.GetSnapshotStub = func(appId string, date time.Time) (*models.MetricsSnapshot, error) {
				if date.Equal(targetDate.AddDate(0, 0, -1)) {
					return snapshotFor(appId, 250), nil
				}
				return nil, db.ErrDoesNotExist
			}
			threshold := -50.0
			ruleDB.GetActiveRulesReturns([]*models.AlertRule{{
				Id:           "rule-1",
				Metric:       models.MetricDownloads,
				Comparison:   models.ComparisonDOD,
				ThresholdMin: &threshold,
				Active:       true,
			}}, nil)
		})

		It("analyzes, detects and notifies per app", func() {
			execution, err := newExecutor(clock.NewClock()).Execute(context.Background(),
				models.TriggerScheduled, schedule.TaskKind, schedule, "", targetDate, executor.Options{})
			Expect(err).NotTo(HaveOccurred())

			// 100 vs a 250 baseline is a -60% day-over-day drop.
			Expect(execution.Status).To(Equal(models.ExecutionSuccess))
			Expect(execution.AlertsGenerated).To(Equal(3))
			Expect(execution.NotificationsSent).To(Equal(3))
			Expect(notify.SendAlertCallCount()).To(Equal(3))
		})

		It("suppresses notifications when the schedule says so", func() {
			schedule.SkipNotifications = true

			execution, err := newExecutor(clock.NewClock()).Execute(context.Background(),
				models.TriggerScheduled, schedule.TaskKind, schedule, "", targetDate, executor.Options{})
			Expect(err).NotTo(HaveOccurred())

			Expect(execution.AlertsGenerated).To(Equal(3))
			Expect(execution.NotificationsSent).To(BeZero())
			Expect(notify.SendAlertCallCount()).To(BeZero())
		})

		It("counts alerts even when delivery fails", func() {
			notify.SendAlertReturns(&models.TransientError{Op: "lark-post", Err: errors.New("gateway timeout")})

			execution, err := newExecutor(clock.NewClock()).Execute(context.Background(),
				models.TriggerScheduled, schedule.TaskKind, schedule, "", targetDate, executor.Options{})
			Expect(err).NotTo(HaveOccurred())

			Expect(execution.Status).To(Equal(models.ExecutionSuccess))
			Expect(execution.AlertsGenerated).To(Equal(3))
			Expect(execution.NotificationsSent).To(BeZero())
		})

		It("delivers the daily report for opted-in apps", func() {
			apps[0].DailyReport = true

			execution, err := newExecutor(clock.NewClock()).Execute(context.Background(),
				models.TriggerScheduled, schedule.TaskKind, schedule, "", targetDate, executor.Options{})
			Expect(err).NotTo(HaveOccurred())

			Expect(notify.SendReportCallCount()).To(Equal(1))
			Expect(execution.NotificationsSent).To(Equal(4))
		})
	})

	Describe("alert check runs", func() {
		BeforeEach(func() {
			schedule.TaskKind = models.TaskAlertCheck
			metricsDB.GetSnapshotStub = func(appId string, date time.Time) (*models.MetricsSnapshot, error) {
				if date.Equal(targetDate) {
					return snapshotFor(appId, 100), nil
				}
				return nil, db.ErrDoesNotExist
			}
		})

		It("reads stored snapshots instead of fetching", func() {
			execution, err := newExecutor(clock.NewClock()).Execute(context.Background(),
				models.TriggerScheduled, schedule.TaskKind, schedule, "", targetDate, executor.Options{})
			Expect(err).NotTo(HaveOccurred())

			Expect(execution.Status).To(Equal(models.ExecutionSuccess))
			Expect(fetcher.FetchCallCount()).To(BeZero())
		})

		It("errors an app with no snapshot for the target date", func() {
			metricsDB.GetSnapshotReturns(nil, db.ErrDoesNotExist)
			metricsDB.GetSnapshotStub = nil

			execution, err := newExecutor(clock.NewClock()).Execute(context.Background(),
				models.TriggerScheduled, schedule.TaskKind, schedule, "", targetDate, executor.Options{})
			Expect(err).NotTo(HaveOccurred())

			Expect(execution.Status).To(Equal(models.ExecutionFailed))
			Expect(execution.ErrorLog).To(ContainSubstring("no snapshot"))
		})
	})

	Describe("timeout", func() {
		It("marks the run timed out and preserves processed apps", func() {
			conf.WorkerCount = 1
			clk := fakeclock.NewFakeClock(time.Date(2024, 5, 10, 6, 0, 0, 0, time.UTC))
			release := make(chan struct{})
			fetcher.FetchStub = func(ctx context.Context, app *models.App, _ time.Time) (*models.MetricsSnapshot, error) {
				if app.Id == "app-1" {
					return snapshotFor(app.Id, 100), nil
				}
				select {
				case <-ctx.Done():
					return nil, &models.TransientError{Op: "fetch", Err: ctx.Err()}
				case <-release:
					return snapshotFor(app.Id, 100), nil
				}
			}

			done := make(chan *models.Execution, 1)
			go func() {
				defer GinkgoRecover()
				execution, err := newExecutor(clk).Execute(context.Background(),
					models.TriggerScheduled, schedule.TaskKind, schedule, "", targetDate,
					executor.Options{Timeout: 10 * time.Minute})
				Expect(err).NotTo(HaveOccurred())
				done <- execution
			}()

			Eventually(fetcher.FetchCallCount).Should(Equal(2))
			clk.WaitForWatcherAndIncrement(10 * time.Minute)

			var execution *models.Execution
			Eventually(done, 5*time.Second).Should(Receive(&execution))
			Expect(execution.Status).To(Equal(models.ExecutionTimeout))
			Expect(execution.SuccessCount).To(Equal(1))
			Expect(execution.ErrorLog).To(ContainSubstring("app-3: not processed"))
			close(release)
		})
	})

	Describe("cancellation", func() {
		It("lets the in-flight app finish and stops at the next boundary", func() {
			conf.WorkerCount = 1
			blocked := make(chan struct{})
			release := make(chan struct{})
			fetcher.FetchStub = func(_ context.Context, app *models.App, _ time.Time) (*models.MetricsSnapshot, error) {
				if app.Id == "app-2" {
					close(blocked)
					<-release
				}
				return snapshotFor(app.Id, 100), nil
			}

			exec := newExecutor(clock.NewClock())
			done := make(chan *models.Execution, 1)
			go func() {
				defer GinkgoRecover()
				execution, err := exec.Execute(context.Background(),
					models.TriggerScheduled, schedule.TaskKind, schedule, "", targetDate, executor.Options{})
				Expect(err).NotTo(HaveOccurred())
				done <- execution
			}()

			Eventually(blocked).Should(BeClosed())
			executionId := executionDB.SaveExecutionArgsForCall(0).Id
			Expect(exec.Cancel(executionId)).To(Succeed())
			close(release)

			var execution *models.Execution
			Eventually(done, 5*time.Second).Should(Receive(&execution))
			Expect(execution.Status).To(Equal(models.ExecutionCancelled))
			Expect(execution.SuccessCount).To(Equal(2))
			Expect(execution.ErrorCount).To(BeZero())
			Expect(execution.ErrorLog).To(ContainSubstring("app-3: not processed"))
		})

		It("cancels a pending execution in the database", func() {
			executionDB.GetExecutionReturns(&models.Execution{
				Id:     "execution-9",
				Status: models.ExecutionPending,
			}, nil)

			Expect(newExecutor(clock.NewClock()).Cancel("execution-9")).To(Succeed())
			Expect(executionDB.UpdateExecutionCallCount()).To(Equal(1))
			Expect(executionDB.UpdateExecutionArgsForCall(0).Status).To(Equal(models.ExecutionCancelled))
		})

		It("refuses to cancel a terminal execution", func() {
			executionDB.GetExecutionReturns(&models.Execution{
				Id:     "execution-9",
				Status: models.ExecutionSuccess,
			}, nil)

			Expect(newExecutor(clock.NewClock()).Cancel("execution-9")).To(HaveOccurred())
		})
	})

	Describe("retries", func() {
		BeforeEach(func() {
			schedule.RetryLimit = 2
		})

		It("derives linked retry executions until one succeeds", func() {
			attempts := 0
			fetcher.FetchStub = func(_ context.Context, app *models.App, _ time.Time) (*models.MetricsSnapshot, error) {
				if app.Id == "app-1" {
					attempts++
					if attempts < 2 {
						return nil, &models.TransientError{Op: "fetch", Err: errors.New("store down")}
					}
				}
				return snapshotFor(app.Id, 100), nil
			}
			conf.FailureThreshold = 0.1

			execution, err := newExecutor(clock.NewClock()).ExecuteWithRetry(context.Background(),
				schedule, targetDate, executor.Options{})
			Expect(err).NotTo(HaveOccurred())

			Expect(execution.Status).To(Equal(models.ExecutionSuccess))
			Expect(execution.Trigger).To(Equal(models.TriggerRetry))
			Expect(execution.RetryCount).To(Equal(1))
			Expect(executionDB.SaveExecutionCallCount()).To(Equal(2))
		})

		It("stops at the schedule's retry limit", func() {
			fetcher.FetchReturns(nil, &models.TransientError{Op: "fetch", Err: errors.New("store down")})

			execution, err := newExecutor(clock.NewClock()).ExecuteWithRetry(context.Background(),
				schedule, targetDate, executor.Options{})
			Expect(err).NotTo(HaveOccurred())

			Expect(execution.Status).To(Equal(models.ExecutionFailed))
			Expect(execution.RetryCount).To(Equal(2))
			Expect(executionDB.SaveExecutionCallCount()).To(Equal(3))
		})

		It("honors a tighter retry budget from options", func() {
			fetcher.FetchReturns(nil, &models.TransientError{Op: "fetch", Err: errors.New("store down")})
			maxRetries := 1

			execution, err := newExecutor(clock.NewClock()).ExecuteWithRetry(context.Background(),
				schedule, targetDate, executor.Options{MaxRetries: &maxRetries})
			Expect(err).NotTo(HaveOccurred())

			Expect(execution.Status).To(Equal(models.ExecutionFailed))
			Expect(execution.RetryCount).To(Equal(1))
			Expect(executionDB.SaveExecutionCallCount()).To(Equal(2))
		})

		It("spaces retries evenly under the constant policy", func() {
			conf.RetryPolicy = executor.RetryPolicyConstant
			conf.RetryInitialInterval = time.Minute
			fetcher.FetchReturns(nil, &models.TransientError{Op: "fetch", Err: errors.New("store down")})
			clk := fakeclock.NewFakeClock(time.Date(2024, 5, 10, 6, 0, 0, 0, time.UTC))

			done := make(chan *models.Execution, 1)
			go func() {
				defer GinkgoRecover()
				execution, err := newExecutor(clk).ExecuteWithRetry(context.Background(),
					schedule, targetDate, executor.Options{Timeout: time.Hour})
				Expect(err).NotTo(HaveOccurred())
				done <- execution
			}()

			// Each attempt ends with two execution updates, then the retry
			// waits exactly one interval.
			for attempt := 1; attempt <= 2; attempt++ {
				Eventually(executionDB.UpdateExecutionCallCount).Should(Equal(2 * attempt))
				clk.WaitForWatcherAndIncrement(time.Minute)
			}

			var execution *models.Execution
			Eventually(done, 5*time.Second).Should(Receive(&execution))
			Expect(execution.Status).To(Equal(models.ExecutionFailed))
			Expect(execution.RetryCount).To(Equal(2))
			Expect(executionDB.SaveExecutionCallCount()).To(Equal(3))
		})

		It("retries a terminal execution on operator request", func() {
			executionDB.GetExecutionReturns(&models.Execution{
				Id:         "execution-1",
				ScheduleId: "schedule-1",
				Status:     models.ExecutionFailed,
				TargetDate: targetDate,
				RetryCount: 0,
			}, nil)
			scheduleDB.GetScheduleReturns(schedule, nil)

			execution, err := newExecutor(clock.NewClock()).RetryExecution(context.Background(),
				"execution-1", executor.Options{})
			Expect(err).NotTo(HaveOccurred())

			Expect(execution.Trigger).To(Equal(models.TriggerRetry))
			Expect(execution.RetryCount).To(Equal(1))
			Expect(execution.Status).To(Equal(models.ExecutionSuccess))
		})

		It("refuses to retry past the limit", func() {
			executionDB.GetExecutionReturns(&models.Execution{
				Id:         "execution-1",
				ScheduleId: "schedule-1",
				Status:     models.ExecutionFailed,
				RetryCount: 2,
			}, nil)
			scheduleDB.GetScheduleReturns(schedule, nil)

			_, err := newExecutor(clock.NewClock()).RetryExecution(context.Background(),
				"execution-1", executor.Options{})
			Expect(err).To(HaveOccurred())
		})

		It("refuses to retry a successful execution", func() {
			executionDB.GetExecutionReturns(&models.Execution{
				Id:         "execution-1",
				ScheduleId: "schedule-1",
				Status:     models.ExecutionSuccess,
			}, nil)
			scheduleDB.GetScheduleReturns(schedule, nil)

			_, err := newExecutor(clock.NewClock()).RetryExecution(context.Background(),
				"execution-1", executor.Options{})
			Expect(err).To(HaveOccurred())
		})
	})
})
