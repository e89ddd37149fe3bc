package analytics

import (
	"code.cloudfoundry.org/lager/v3"
	"github.com/shopspring/decimal"

	"github.com/appmetrics/appmonitor/models"
)

// Engine turns raw snapshots into a growth report. Rates are fractional:
// 0.20 means the metric grew 20% against its baseline. A zero or missing
// baseline yields an undefined rate rather than a number.
type Engine struct {
	logger lager.Logger
}

func NewEngine(logger lager.Logger) *Engine {
	return &Engine{logger: logger.Session("analytics")}
}

// Analyze computes day-over-day and week-over-week growth for every
// counter metric plus the rating. dayBefore and weekBefore may be nil
// when no snapshot exists for that baseline date.
func (e *Engine) Analyze(current, dayBefore, weekBefore *models.MetricsSnapshot) *models.GrowthReport {
	report := &models.GrowthReport{
		AppId:   current.AppId,
		Date:    current.Date,
		Metrics: map[string]models.MetricGrowth{},
	}

	dayCounters := map[string]int64{}
	if dayBefore != nil {
		dayCounters = dayBefore.Counters()
	}
	weekCounters := map[string]int64{}
	if weekBefore != nil {
		weekCounters = weekBefore.Counters()
	}

	for name, value := range current.Counters() {
		dayBaseline, hasDay := dayCounters[name]
		weekBaseline, hasWeek := weekCounters[name]
		growth := models.MetricGrowth{
			Current: float64(value),
			DOD:     rate(float64(value), float64(dayBaseline), dayBefore != nil && hasDay),
			WOW:     rate(float64(value), float64(weekBaseline), weekBefore != nil && hasWeek),
		}
		growth.BaselineMissing = !growth.DOD.Defined && !growth.WOW.Defined
		report.Metrics[name] = growth
	}

	rating := models.MetricGrowth{
		Current: current.Rating,
		DOD:     rate(current.Rating, baselineRating(dayBefore), dayBefore != nil),
		WOW:     rate(current.Rating, baselineRating(weekBefore), weekBefore != nil),
	}
	rating.BaselineMissing = !rating.DOD.Defined && !rating.WOW.Defined
	report.Metrics[models.MetricRating] = rating

	revenue := models.RevenueGrowth{Current: current.Revenue}
	if dayBefore != nil {
		revenue.DOD = revenueRate(current.Revenue, dayBefore.Revenue)
	}
	if weekBefore != nil {
		revenue.WOW = revenueRate(current.Revenue, weekBefore.Revenue)
	}
	revenue.BaselineMissing = !revenue.DOD.Defined && !revenue.WOW.Defined
	report.Revenue = revenue

	e.logger.Debug("analyzed", lager.Data{
		"app-id":  current.AppId,
		"date":    current.Date.Format("2006-01-02"),
		"metrics": len(report.Metrics),
	})
	return report
}

func rate(current, baseline float64, haveBaseline bool) models.GrowthRate {
	if !haveBaseline || baseline == 0 {
		return models.GrowthRate{}
	}
	return models.GrowthRate{Rate: (current - baseline) / baseline, Defined: true}
}

func baselineRating(s *models.MetricsSnapshot) float64 {
	if s == nil {
		return 0
	}
	return s.Rating
}

// revenueRate subtracts and divides in decimal; only the dimensionless
// ratio drops to float at the end.
func revenueRate(current, baseline decimal.Decimal) models.GrowthRate {
	if baseline.IsZero() {
		return models.GrowthRate{}
	}
	return models.GrowthRate{
		Rate:    current.Sub(baseline).Div(baseline).InexactFloat64(),
		Defined: true,
	}
}
