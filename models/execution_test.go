package models_test

import (
	"github.com/appmetrics/appmonitor/models"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Execution", func() {
	var execution *models.Execution

	BeforeEach(func() {
		execution = &models.Execution{
			Id:         "an-execution-id",
			ScheduleId: "a-schedule-id",
			Status:     models.ExecutionPending,
		}
	})

	Describe("SetStatus", func() {
		It("allows pending -> running", func() {
			Expect(execution.SetStatus(models.ExecutionRunning)).To(Succeed())
			Expect(execution.Status).To(Equal(models.ExecutionRunning))
		})

		It("allows pending -> cancelled", func() {
			Expect(execution.SetStatus(models.ExecutionCancelled)).To(Succeed())
		})

		It("rejects pending -> success", func() {
			Expect(execution.SetStatus(models.ExecutionSuccess)).NotTo(Succeed())
			Expect(execution.Status).To(Equal(models.ExecutionPending))
		})

		Context("when running", func() {
			BeforeEach(func() {
				Expect(execution.SetStatus(models.ExecutionRunning)).To(Succeed())
			})

			It("allows each terminal outcome", func() {
				for _, terminal := range []models.ExecutionStatus{
					models.ExecutionSuccess,
					models.ExecutionFailed,
					models.ExecutionTimeout,
					models.ExecutionCancelled,
				} {
					e := &models.Execution{Status: models.ExecutionRunning}
					Expect(e.SetStatus(terminal)).To(Succeed())
					Expect(e.Status.Terminal()).To(BeTrue())
				}
			})

			It("rejects going back to pending", func() {
				Expect(execution.SetStatus(models.ExecutionPending)).NotTo(Succeed())
			})
		})

		Context("once terminal", func() {
			BeforeEach(func() {
				Expect(execution.SetStatus(models.ExecutionRunning)).To(Succeed())
				Expect(execution.SetStatus(models.ExecutionFailed)).To(Succeed())
			})

			It("permits no further transitions", func() {
				for _, next := range []models.ExecutionStatus{
					models.ExecutionPending,
					models.ExecutionRunning,
					models.ExecutionSuccess,
					models.ExecutionCancelled,
				} {
					Expect(execution.SetStatus(next)).NotTo(Succeed())
				}
				Expect(execution.Status).To(Equal(models.ExecutionFailed))
			})
		})
	})

	Describe("CanRetry", func() {
		It("permits retry of a failed scheduled execution under the limit", func() {
			execution.Status = models.ExecutionFailed
			execution.RetryCount = 1
			Expect(execution.CanRetry(3)).To(BeTrue())
		})

		It("permits retry of a timed out execution", func() {
			execution.Status = models.ExecutionTimeout
			Expect(execution.CanRetry(1)).To(BeTrue())
		})

		It("refuses retry at the limit", func() {
			execution.Status = models.ExecutionFailed
			execution.RetryCount = 3
			Expect(execution.CanRetry(3)).To(BeFalse())
		})

		It("refuses retry of manual executions", func() {
			execution.ScheduleId = ""
			execution.Status = models.ExecutionFailed
			Expect(execution.CanRetry(3)).To(BeFalse())
		})

		It("refuses retry of successful or cancelled executions", func() {
			execution.Status = models.ExecutionSuccess
			Expect(execution.CanRetry(3)).To(BeFalse())
			execution.Status = models.ExecutionCancelled
			Expect(execution.CanRetry(3)).To(BeFalse())
		})
	})
})
