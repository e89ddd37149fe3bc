package analytics_test

import (
	"time"

	"code.cloudfoundry.org/lager/v3/lagertest"
	"github.com/shopspring/decimal"

	"github.com/appmetrics/appmonitor/analytics"
	"github.com/appmetrics/appmonitor/models"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Engine", func() {
	var (
		engine  *analytics.Engine
		current *models.MetricsSnapshot
	)

	snapshot := func(downloads int64) *models.MetricsSnapshot {
		return &models.MetricsSnapshot{
			AppId:     "app-1",
			Date:      time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
			Downloads: downloads,
			Sessions:  500,
			Revenue:   decimal.NewFromFloat(99.50),
			Rating:    4.5,
		}
	}

	BeforeEach(func() {
		engine = analytics.NewEngine(lagertest.NewTestLogger("engine-test"))
		current = snapshot(120)
	})

	It("computes fractional day-over-day growth", func() {
		report := engine.Analyze(current, snapshot(100), nil)

		downloads := report.Metrics[models.MetricDownloads]
		Expect(downloads.Current).To(Equal(120.0))
		Expect(downloads.DOD.Defined).To(BeTrue())
		Expect(downloads.DOD.Rate).To(BeNumerically("~", 0.20, 1e-9))
	})

	It("computes week-over-week growth from the week-before snapshot", func() {
		report := engine.Analyze(current, nil, snapshot(60))

		downloads := report.Metrics[models.MetricDownloads]
		Expect(downloads.WOW.Defined).To(BeTrue())
		Expect(downloads.WOW.Rate).To(BeNumerically("~", 1.0, 1e-9))
		Expect(downloads.DOD.Defined).To(BeFalse())
	})

	It("computes negative growth", func() {
		report := engine.Analyze(snapshot(40), snapshot(100), nil)

		downloads := report.Metrics[models.MetricDownloads]
		Expect(downloads.DOD.Rate).To(BeNumerically("~", -0.60, 1e-9))
	})

	It("leaves the rate undefined for a zero baseline", func() {
		report := engine.Analyze(current, snapshot(0), nil)

		downloads := report.Metrics[models.MetricDownloads]
		Expect(downloads.DOD.Defined).To(BeFalse())
		Expect(downloads.DOD.Rate).To(BeZero())
	})

	It("flags metrics with no baseline at all", func() {
		report := engine.Analyze(current, nil, nil)

		downloads := report.Metrics[models.MetricDownloads]
		Expect(downloads.BaselineMissing).To(BeTrue())
		Expect(downloads.DOD.Defined).To(BeFalse())
		Expect(downloads.WOW.Defined).To(BeFalse())
	})

	It("includes per-source download metrics", func() {
		current.DownloadSources = map[string]int64{models.SourceAppStoreSearch: 80}
		baseline := snapshot(100)
		baseline.DownloadSources = map[string]int64{models.SourceAppStoreSearch: 40}

		report := engine.Analyze(current, baseline, nil)

		source := report.Metrics["downloads_"+models.SourceAppStoreSearch]
		Expect(source.Current).To(Equal(80.0))
		Expect(source.DOD.Rate).To(BeNumerically("~", 1.0, 1e-9))
	})

	It("carries revenue and its growth in decimal", func() {
		baseline := snapshot(100)
		baseline.Revenue = decimal.NewFromFloat(50)

		report := engine.Analyze(current, baseline, nil)

		Expect(report.Revenue.Current.Equal(decimal.NewFromFloat(99.50))).To(BeTrue())
		Expect(report.Revenue.DOD.Defined).To(BeTrue())
		Expect(report.Revenue.DOD.Rate).To(BeNumerically("~", 0.99, 1e-9))
		Expect(report.Metrics).NotTo(HaveKey(models.MetricRevenue))
	})

	It("keeps revenue growth exact for values float cannot represent", func() {
		current.Revenue = decimal.NewFromFloat(0.30)
		baseline := snapshot(100)
		baseline.Revenue = decimal.NewFromFloat(0.10)

		report := engine.Analyze(current, baseline, nil)

		// (0.30 - 0.10) / 0.10 drifts below 2.0 in float64 arithmetic.
		Expect(report.Revenue.DOD.Rate).To(Equal(2.0))
	})

	It("leaves revenue growth undefined on a zero baseline", func() {
		baseline := snapshot(100)
		baseline.Revenue = decimal.Zero

		report := engine.Analyze(current, baseline, nil)

		Expect(report.Revenue.DOD.Defined).To(BeFalse())
		Expect(report.Revenue.BaselineMissing).To(BeTrue())
	})

	It("computes rating growth", func() {
		baseline := snapshot(100)
		baseline.Rating = 4.0

		report := engine.Analyze(current, baseline, nil)

		rating := report.Metrics[models.MetricRating]
		Expect(rating.Current).To(Equal(4.5))
		Expect(rating.DOD.Rate).To(BeNumerically("~", 0.125, 1e-9))
	})
})
