package scheduler_test

import (
	"context"
	"errors"
	"os"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
	"code.cloudfoundry.org/lager/v3/lagertest"
	"github.com/tedsuo/ifrit"

	"github.com/appmetrics/appmonitor/fakes"
	"github.com/appmetrics/appmonitor/models"
	"github.com/appmetrics/appmonitor/scheduler"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Scheduler", func() {
	var (
		scheduleDB  *fakes.FakeScheduleDB
		executionDB *fakes.FakeExecutionDB
		leases      *fakes.FakeLeaser
		dispatcher  *fakes.FakeDispatcher
		clk         *fakeclock.FakeClock
		s           *scheduler.Scheduler
		schedule    *models.Schedule
	)

	BeforeEach(func() {
		scheduleDB = &fakes.FakeScheduleDB{}
		executionDB = &fakes.FakeExecutionDB{}
		leases = &fakes.FakeLeaser{}
		dispatcher = &fakes.FakeDispatcher{}
		clk = fakeclock.NewFakeClock(time.Date(2024, 5, 10, 6, 29, 30, 0, time.UTC))

		schedule = &models.Schedule{
			Id:        "schedule-1",
			Name:      "nightly collection",
			TaskKind:  models.TaskDataCollection,
			Frequency: models.FrequencyDaily,
			Hour:      6,
			Minute:    30,
			Active:    true,
		}
		scheduleDB.GetActiveSchedulesReturns([]*models.Schedule{schedule}, nil)
		leases.AcquireReturns(true, nil)
		dispatcher.ExecuteWithRetryReturns(&models.Execution{
			Id:     "execution-1",
			Status: models.ExecutionSuccess,
		}, nil)

		s = scheduler.New(lagertest.NewTestLogger("scheduler-test"), clk,
			scheduler.Config{TickInterval: time.Minute}, scheduleDB, executionDB, leases, dispatcher)
	})

	Describe("Tick", func() {
		It("dispatches a schedule in its due minute", func() {
			now := time.Date(2024, 5, 10, 6, 30, 10, 0, time.UTC)
			s.Tick(context.Background(), now)
			s.Wait()

			Expect(dispatcher.ExecuteWithRetryCallCount()).To(Equal(1))
			_, dispatched, targetDate, _ := dispatcher.ExecuteWithRetryArgsForCall(0)
			Expect(dispatched.Id).To(Equal("schedule-1"))
			Expect(targetDate).To(Equal(time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)))
			Expect(leases.AcquireArgsForCall(0)).To(Equal("schedule-1"))
			Expect(leases.ReleaseCallCount()).To(Equal(1))
		})

		It("does not dispatch a never-run schedule outside its minute", func() {
			now := time.Date(2024, 5, 10, 6, 31, 0, 0, time.UTC)
			s.Tick(context.Background(), now)
			s.Wait()

			Expect(dispatcher.ExecuteWithRetryCallCount()).To(BeZero())
		})

		It("catches up a fire missed while the daemon was down", func() {
			executionDB.GetLatestExecutionReturns(&models.Execution{
				Id:        "execution-0",
				CreatedAt: time.Date(2024, 5, 9, 6, 30, 5, 0, time.UTC).UnixNano(),
			}, nil)

			now := time.Date(2024, 5, 10, 9, 15, 0, 0, time.UTC)
			s.Tick(context.Background(), now)
			s.Wait()

			Expect(dispatcher.ExecuteWithRetryCallCount()).To(Equal(1))
			_, _, targetDate, _ := dispatcher.ExecuteWithRetryArgsForCall(0)
			Expect(targetDate).To(Equal(time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)))
		})

		It("does not re-dispatch a schedule that already ran its latest fire", func() {
			executionDB.GetLatestExecutionReturns(&models.Execution{
				Id:        "execution-0",
				CreatedAt: time.Date(2024, 5, 10, 6, 30, 5, 0, time.UTC).UnixNano(),
			}, nil)

			now := time.Date(2024, 5, 10, 9, 15, 0, 0, time.UTC)
			s.Tick(context.Background(), now)
			s.Wait()

			Expect(dispatcher.ExecuteWithRetryCallCount()).To(BeZero())
		})

		It("skips a schedule leased by another replica", func() {
			leases.AcquireReturns(false, nil)

			s.Tick(context.Background(), time.Date(2024, 5, 10, 6, 30, 0, 0, time.UTC))
			s.Wait()

			Expect(dispatcher.ExecuteWithRetryCallCount()).To(BeZero())
			Expect(leases.ReleaseCallCount()).To(BeZero())
		})

		It("treats a run already in progress as a skip", func() {
			dispatcher.ExecuteWithRetryReturns(nil, models.ErrRunInProgress)

			s.Tick(context.Background(), time.Date(2024, 5, 10, 6, 30, 0, 0, time.UTC))
			s.Wait()

			Expect(leases.ReleaseCallCount()).To(Equal(1))
		})

		It("skips an invalid schedule and keeps ticking", func() {
			broken := &models.Schedule{
				Id:        "schedule-2",
				TaskKind:  models.TaskDataCollection,
				Frequency: models.FrequencyWeekly,
				Hour:      6,
				Minute:    30,
			}
			scheduleDB.GetActiveSchedulesReturns([]*models.Schedule{broken, schedule}, nil)

			s.Tick(context.Background(), time.Date(2024, 5, 10, 6, 30, 0, 0, time.UTC))
			s.Wait()

			Expect(dispatcher.ExecuteWithRetryCallCount()).To(Equal(1))
			_, dispatched, _, _ := dispatcher.ExecuteWithRetryArgsForCall(0)
			Expect(dispatched.Id).To(Equal("schedule-1"))
		})

		It("degrades a schedule load failure to a skipped tick", func() {
			scheduleDB.GetActiveSchedulesReturns(nil, errors.New("connection refused"))

			s.Tick(context.Background(), time.Date(2024, 5, 10, 6, 30, 0, 0, time.UTC))
			s.Wait()

			Expect(dispatcher.ExecuteWithRetryCallCount()).To(BeZero())
		})

		It("degrades a lease failure to a skip", func() {
			leases.AcquireReturns(false, errors.New("connection refused"))

			s.Tick(context.Background(), time.Date(2024, 5, 10, 6, 30, 0, 0, time.UTC))
			s.Wait()

			Expect(dispatcher.ExecuteWithRetryCallCount()).To(BeZero())
		})
	})

	Describe("as a long-running process", func() {
		var process ifrit.Process

		AfterEach(func() {
			if process != nil {
				process.Signal(os.Interrupt)
				Eventually(process.Wait()).Should(Receive(BeNil()))
			}
		})

		It("ticks on the configured interval", func() {
			process = ifrit.Invoke(s)

			clk.WaitForWatcherAndIncrement(time.Minute)
			Eventually(dispatcher.ExecuteWithRetryCallCount).Should(Equal(1))
		})

		It("reports its status", func() {
			Expect(s.Status().Running).To(BeFalse())

			process = ifrit.Invoke(s)
			Eventually(func() bool { return s.Status().Running }).Should(BeTrue())

			clk.WaitForWatcherAndIncrement(time.Minute)
			Eventually(func() time.Time { return s.Status().LastTick }).ShouldNot(BeZero())
			status := s.Status()
			Expect(status.NextTick).To(Equal(status.LastTick.Add(time.Minute)))
		})
	})
})
