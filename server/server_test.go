package server_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/appmetrics/appmonitor/db"
	"github.com/appmetrics/appmonitor/models"
	"github.com/appmetrics/appmonitor/scheduler"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Server", func() {
	var schedule *models.Schedule

	BeforeEach(func() {
		schedule = &models.Schedule{
			Id:         "schedule-1",
			Name:       "nightly collection",
			TaskKind:   models.TaskDataCollection,
			Frequency:  models.FrequencyDaily,
			Hour:       6,
			Minute:     30,
			RetryLimit: 3,
			Active:     true,
		}
		scheduleDB.GetActiveSchedulesReturns([]*models.Schedule{schedule}, nil)
		scheduleDB.GetScheduleReturns(schedule, nil)
		executionDB.RetrieveExecutionsReturns([]*models.Execution{}, nil)
		runner.CancelReturns(nil)
		runner.ExecuteReturns(&models.Execution{Id: "execution-1", Status: models.ExecutionSuccess}, nil)
		runner.RetryExecutionReturns(&models.Execution{Id: "execution-1", Status: models.ExecutionSuccess}, nil)
		leases.AcquireReturns(true, nil)
	})

	get := func(path string) *http.Response {
		rsp, err := httpClient.Get(serverURL + path)
		Expect(err).NotTo(HaveOccurred())
		return rsp
	}
	post := func(path string) *http.Response {
		rsp, err := httpClient.Post(serverURL+path, "application/json", nil)
		Expect(err).NotTo(HaveOccurred())
		return rsp
	}

	Describe("GET /v1/schedules", func() {
		It("lists the active schedules", func() {
			rsp := get("/v1/schedules")
			defer func() { _ = rsp.Body.Close() }()
			Expect(rsp.StatusCode).To(Equal(http.StatusOK))

			var schedules []*models.Schedule
			Expect(json.NewDecoder(rsp.Body).Decode(&schedules)).To(Succeed())
			Expect(schedules).To(HaveLen(1))
			Expect(schedules[0].Id).To(Equal("schedule-1"))
		})

		It("returns 500 when the database is unavailable", func() {
			scheduleDB.GetActiveSchedulesReturns(nil, errors.New("connection refused"))

			rsp := get("/v1/schedules")
			defer func() { _ = rsp.Body.Close() }()
			Expect(rsp.StatusCode).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("GET /v1/executions", func() {
		It("passes the query filters through", func() {
			base := executionDB.RetrieveExecutionsCallCount()
			rsp := get("/v1/executions?status=failed&appid=app-1&scheduleid=schedule-1&start=100&end=200&order=asc")
			defer func() { _ = rsp.Body.Close() }()
			Expect(rsp.StatusCode).To(Equal(http.StatusOK))

			Expect(executionDB.RetrieveExecutionsCallCount()).To(Equal(base + 1))
			filter, order := executionDB.RetrieveExecutionsArgsForCall(base)
			Expect(filter.Status).To(Equal(models.ExecutionFailed))
			Expect(filter.AppId).To(Equal("app-1"))
			Expect(filter.ScheduleId).To(Equal("schedule-1"))
			Expect(filter.StartedAfter).To(Equal(int64(100 * time.Second)))
			Expect(filter.StartedBefore).To(Equal(int64(200 * time.Second)))
			Expect(order).To(Equal(db.ASC))
		})

		It("rejects an unknown status", func() {
			rsp := get("/v1/executions?status=exploded")
			defer func() { _ = rsp.Body.Close() }()
			Expect(rsp.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("rejects a malformed start time", func() {
			rsp := get("/v1/executions?start=yesterday")
			defer func() { _ = rsp.Body.Close() }()
			Expect(rsp.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("rejects an unknown sort order", func() {
			rsp := get("/v1/executions?order=sideways")
			defer func() { _ = rsp.Body.Close() }()
			Expect(rsp.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /v1/executions/{executionid}", func() {
		It("returns the execution", func() {
			executionDB.GetExecutionReturns(&models.Execution{
				Id:     "execution-1",
				Status: models.ExecutionSuccess,
			}, nil)

			rsp := get("/v1/executions/execution-1")
			defer func() { _ = rsp.Body.Close() }()
			Expect(rsp.StatusCode).To(Equal(http.StatusOK))

			var execution models.Execution
			Expect(json.NewDecoder(rsp.Body).Decode(&execution)).To(Succeed())
			Expect(execution.Id).To(Equal("execution-1"))
		})

		It("returns 404 for an unknown execution", func() {
			executionDB.GetExecutionReturns(nil, db.ErrDoesNotExist)

			rsp := get("/v1/executions/missing")
			defer func() { _ = rsp.Body.Close() }()
			Expect(rsp.StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	Describe("POST /v1/schedules/{scheduleid}/trigger", func() {
		It("starts a manual run and responds 202", func() {
			base := runner.ExecuteCallCount()
			rsp := post("/v1/schedules/schedule-1/trigger?target_date=2024-05-01&dry_run=true")
			defer func() { _ = rsp.Body.Close() }()
			Expect(rsp.StatusCode).To(Equal(http.StatusAccepted))

			Eventually(runner.ExecuteCallCount).Should(Equal(base + 1))
			_, trigger, kind, triggered, appId, targetDate, opts := runner.ExecuteArgsForCall(base)
			Expect(trigger).To(Equal(models.TriggerManual))
			Expect(kind).To(Equal(models.TaskDataCollection))
			Expect(triggered.Id).To(Equal("schedule-1"))
			Expect(appId).To(BeEmpty())
			Expect(targetDate).To(Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
			Expect(opts.DryRun).To(BeTrue())
		})

		It("holds the schedule lease for the length of the run", func() {
			acquireBase := leases.AcquireCallCount()
			releaseBase := leases.ReleaseCallCount()

			rsp := post("/v1/schedules/schedule-1/trigger")
			defer func() { _ = rsp.Body.Close() }()
			Expect(rsp.StatusCode).To(Equal(http.StatusAccepted))

			Expect(leases.AcquireCallCount()).To(Equal(acquireBase + 1))
			Expect(leases.AcquireArgsForCall(acquireBase)).To(Equal("schedule-1"))
			Eventually(leases.ReleaseCallCount).Should(Equal(releaseBase + 1))
			Expect(leases.ReleaseArgsForCall(releaseBase)).To(Equal("schedule-1"))
		})

		It("returns 404 for an unknown schedule", func() {
			scheduleDB.GetScheduleReturns(nil, db.ErrDoesNotExist)

			rsp := post("/v1/schedules/missing/trigger")
			defer func() { _ = rsp.Body.Close() }()
			Expect(rsp.StatusCode).To(Equal(http.StatusNotFound))
		})

		It("returns 409 when the schedule lease is held", func() {
			leases.AcquireReturns(false, nil)

			base := runner.ExecuteCallCount()
			rsp := post("/v1/schedules/schedule-1/trigger")
			defer func() { _ = rsp.Body.Close() }()
			Expect(rsp.StatusCode).To(Equal(http.StatusConflict))
			Consistently(runner.ExecuteCallCount).Should(Equal(base))
		})

		It("rejects a malformed target date", func() {
			rsp := post("/v1/schedules/schedule-1/trigger?target_date=May%201st")
			defer func() { _ = rsp.Body.Close() }()
			Expect(rsp.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /v1/executions/{executionid}/retry", func() {
		It("retries a failed execution and responds 202", func() {
			executionDB.GetExecutionReturns(&models.Execution{
				Id:         "execution-1",
				ScheduleId: "schedule-1",
				Status:     models.ExecutionFailed,
				RetryCount: 1,
			}, nil)

			base := runner.RetryExecutionCallCount()
			rsp := post("/v1/executions/execution-1/retry")
			defer func() { _ = rsp.Body.Close() }()
			Expect(rsp.StatusCode).To(Equal(http.StatusAccepted))

			Eventually(runner.RetryExecutionCallCount).Should(Equal(base + 1))
			_, executionId, _ := runner.RetryExecutionArgsForCall(base)
			Expect(executionId).To(Equal("execution-1"))
		})

		It("returns 409 when the schedule lease is held", func() {
			executionDB.GetExecutionReturns(&models.Execution{
				Id:         "execution-1",
				ScheduleId: "schedule-1",
				Status:     models.ExecutionFailed,
				RetryCount: 1,
			}, nil)
			leases.AcquireReturns(false, nil)

			base := runner.RetryExecutionCallCount()
			rsp := post("/v1/executions/execution-1/retry")
			defer func() { _ = rsp.Body.Close() }()
			Expect(rsp.StatusCode).To(Equal(http.StatusConflict))
			Consistently(runner.RetryExecutionCallCount).Should(Equal(base))
		})

		It("refuses to retry a successful execution", func() {
			executionDB.GetExecutionReturns(&models.Execution{
				Id:         "execution-1",
				ScheduleId: "schedule-1",
				Status:     models.ExecutionSuccess,
			}, nil)

			rsp := post("/v1/executions/execution-1/retry")
			defer func() { _ = rsp.Body.Close() }()
			Expect(rsp.StatusCode).To(Equal(http.StatusConflict))
		})

		It("refuses to retry past the schedule's retry budget", func() {
			executionDB.GetExecutionReturns(&models.Execution{
				Id:         "execution-1",
				ScheduleId: "schedule-1",
				Status:     models.ExecutionFailed,
				RetryCount: 3,
			}, nil)

			rsp := post("/v1/executions/execution-1/retry")
			defer func() { _ = rsp.Body.Close() }()
			Expect(rsp.StatusCode).To(Equal(http.StatusConflict))
		})

		It("returns 404 for an unknown execution", func() {
			executionDB.GetExecutionReturns(nil, db.ErrDoesNotExist)

			rsp := post("/v1/executions/missing/retry")
			defer func() { _ = rsp.Body.Close() }()
			Expect(rsp.StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	Describe("POST /v1/executions/{executionid}/cancel", func() {
		It("requests cancellation", func() {
			base := runner.CancelCallCount()
			rsp := post("/v1/executions/execution-1/cancel")
			defer func() { _ = rsp.Body.Close() }()
			Expect(rsp.StatusCode).To(Equal(http.StatusOK))
			Expect(runner.CancelCallCount()).To(Equal(base + 1))
			Expect(runner.CancelArgsForCall(base)).To(Equal("execution-1"))
		})

		It("returns 404 for an unknown execution", func() {
			runner.CancelReturns(db.ErrDoesNotExist)

			rsp := post("/v1/executions/missing/cancel")
			defer func() { _ = rsp.Body.Close() }()
			Expect(rsp.StatusCode).To(Equal(http.StatusNotFound))
		})

		It("returns 409 when the execution is already terminal", func() {
			runner.CancelReturns(errors.New("execution execution-1 cannot be cancelled in status success"))

			rsp := post("/v1/executions/execution-1/cancel")
			defer func() { _ = rsp.Body.Close() }()
			Expect(rsp.StatusCode).To(Equal(http.StatusConflict))
		})
	})

	Describe("GET /v1/scheduler/status", func() {
		It("reports the scheduling loop state", func() {
			lastTick := time.Date(2024, 5, 10, 6, 30, 0, 0, time.UTC)
			status.StatusReturns(scheduler.Status{
				Running:  true,
				LastTick: lastTick,
				NextTick: lastTick.Add(time.Minute),
			})

			rsp := get("/v1/scheduler/status")
			defer func() { _ = rsp.Body.Close() }()
			Expect(rsp.StatusCode).To(Equal(http.StatusOK))

			body, err := io.ReadAll(rsp.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(body)).To(ContainSubstring(`"running":true`))
			Expect(string(body)).To(ContainSubstring("2024-05-10T06:30:00Z"))
		})
	})
})
