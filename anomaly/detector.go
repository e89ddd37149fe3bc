package anomaly

import (
	"math"

	"code.cloudfoundry.org/lager/v3"
	"github.com/shopspring/decimal"

	"github.com/appmetrics/appmonitor/models"
)

// Detector evaluates alert rules against a growth report. It is pure
// computation: events are returned, never delivered or persisted here.
type Detector struct {
	logger lager.Logger
}

func NewDetector(logger lager.Logger) *Detector {
	return &Detector{logger: logger.Session("anomaly")}
}

// Detect checks every active rule against the report. DOD/WOW rules
// compare percent thresholds against the growth rate; rules over an
// undefined rate are skipped. Absolute rules bound the raw value.
func (d *Detector) Detect(app *models.App, report *models.GrowthReport, rules []*models.AlertRule) []*models.AlertEvent {
	events := []*models.AlertEvent{}
	for _, rule := range rules {
		if err := rule.Validate(); err != nil {
			d.logger.Error("skip-invalid-rule", err, lager.Data{"rule-id": rule.Id})
			continue
		}

		var event *models.AlertEvent
		if rule.Metric == models.MetricRevenue {
			event = d.checkRevenue(app, rule, report.Revenue)
		} else {
			growth, ok := report.Metrics[rule.Metric]
			if !ok {
				d.logger.Debug("metric-not-in-report", lager.Data{"rule-id": rule.Id, "metric": rule.Metric})
				continue
			}

			var observed float64
			switch rule.Comparison {
			case models.ComparisonDOD, models.ComparisonWOW:
				r := growth.DOD
				if rule.Comparison == models.ComparisonWOW {
					r = growth.WOW
				}
				if !r.Defined {
					d.logger.Debug("rate-undefined", lager.Data{"rule-id": rule.Id, "metric": rule.Metric})
					continue
				}
				observed = r.Rate * 100
			case models.ComparisonAbsolute:
				observed = growth.Current
			}
			event = evaluate(app, rule, observed)
		}

		if event != nil {
			d.logger.Info("alert", lager.Data{
				"rule-id":   rule.Id,
				"app-id":    app.Id,
				"metric":    rule.Metric,
				"observed":  event.Observed,
				"threshold": event.Threshold,
				"severity":  event.Severity,
			})
			events = append(events, event)
		}
	}
	return events
}

// checkRevenue evaluates rules over the revenue figures. Rate rules use
// the decimal-derived growth ratios; absolute bounds compare in decimal
// so the threshold check never drifts through float.
func (d *Detector) checkRevenue(app *models.App, rule *models.AlertRule, revenue models.RevenueGrowth) *models.AlertEvent {
	switch rule.Comparison {
	case models.ComparisonDOD, models.ComparisonWOW:
		r := revenue.DOD
		if rule.Comparison == models.ComparisonWOW {
			r = revenue.WOW
		}
		if !r.Defined {
			d.logger.Debug("rate-undefined", lager.Data{"rule-id": rule.Id, "metric": rule.Metric})
			return nil
		}
		return evaluate(app, rule, r.Rate*100)
	default:
		return evaluateRevenueBounds(app, rule, revenue.Current)
	}
}

func evaluateRevenueBounds(app *models.App, rule *models.AlertRule, current decimal.Decimal) *models.AlertEvent {
	var (
		threshold float64
		direction models.AlertDirection
	)
	switch {
	case rule.ThresholdMin != nil && current.Cmp(decimal.NewFromFloat(*rule.ThresholdMin)) < 0:
		threshold = *rule.ThresholdMin
		direction = models.DirectionBelowMinimum
	case rule.ThresholdMax != nil && current.Cmp(decimal.NewFromFloat(*rule.ThresholdMax)) > 0:
		threshold = *rule.ThresholdMax
		direction = models.DirectionAboveMaximum
	default:
		return nil
	}

	observed := current.InexactFloat64()
	return &models.AlertEvent{
		RuleId:     rule.Id,
		AppId:      app.Id,
		AppName:    app.Name,
		Metric:     rule.Metric,
		Comparison: rule.Comparison,
		Observed:   observed,
		Threshold:  threshold,
		Direction:  direction,
		Severity:   severityFor(observed, threshold),
		WebhookURL: rule.AlertWebhookURL,
	}
}

func evaluate(app *models.App, rule *models.AlertRule, observed float64) *models.AlertEvent {
	var (
		threshold float64
		direction models.AlertDirection
	)
	switch {
	case rule.ThresholdMin != nil && observed < *rule.ThresholdMin:
		threshold = *rule.ThresholdMin
		direction = models.DirectionBelowMinimum
	case rule.ThresholdMax != nil && observed > *rule.ThresholdMax:
		threshold = *rule.ThresholdMax
		direction = models.DirectionAboveMaximum
	default:
		return nil
	}

	return &models.AlertEvent{
		RuleId:     rule.Id,
		AppId:      app.Id,
		AppName:    app.Name,
		Metric:     rule.Metric,
		Comparison: rule.Comparison,
		Observed:   observed,
		Threshold:  threshold,
		Direction:  direction,
		Severity:   severityFor(observed, threshold),
		WebhookURL: rule.AlertWebhookURL,
	}
}

// severityFor grades how far past the threshold the observation landed,
// relative to the threshold magnitude.
func severityFor(observed, threshold float64) models.Severity {
	denom := math.Abs(threshold)
	if denom == 0 {
		denom = 1
	}
	ratio := math.Abs(observed-threshold) / denom
	switch {
	case ratio >= 2.0:
		return models.SeverityCritical
	case ratio >= 1.0:
		return models.SeverityHigh
	case ratio >= 0.5:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}
