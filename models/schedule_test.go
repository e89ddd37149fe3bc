package models_test

import (
	"github.com/appmetrics/appmonitor/models"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func intPtr(i int) *int { return &i }

var _ = Describe("Schedule", func() {
	var schedule *models.Schedule

	BeforeEach(func() {
		schedule = &models.Schedule{
			Id:        "a-schedule-id",
			Name:      "nightly collection",
			TaskKind:  models.TaskDataCollection,
			Frequency: models.FrequencyDaily,
			Hour:      2,
			Minute:    30,
		}
	})

	Describe("Validate", func() {
		It("accepts a daily schedule", func() {
			Expect(schedule.Validate()).To(Succeed())
		})

		It("rejects an out of range hour", func() {
			schedule.Hour = 24
			Expect(schedule.Validate()).NotTo(Succeed())
		})

		It("rejects an out of range minute", func() {
			schedule.Minute = 60
			Expect(schedule.Validate()).NotTo(Succeed())
		})

		It("requires a weekday for weekly schedules", func() {
			schedule.Frequency = models.FrequencyWeekly
			Expect(schedule.Validate()).NotTo(Succeed())

			schedule.Weekday = intPtr(0)
			Expect(schedule.Validate()).To(Succeed())
		})

		It("requires a day of month for monthly schedules", func() {
			schedule.Frequency = models.FrequencyMonthly
			Expect(schedule.Validate()).NotTo(Succeed())

			schedule.DayOfMonth = intPtr(31)
			Expect(schedule.Validate()).To(Succeed())
		})

		It("rejects an unknown task kind", func() {
			schedule.TaskKind = "garbage"
			Expect(schedule.Validate()).NotTo(Succeed())
		})
	})
})
