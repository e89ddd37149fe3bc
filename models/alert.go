package models

import "fmt"

type ComparisonKind string

const (
	ComparisonDOD      ComparisonKind = "dod"
	ComparisonWOW      ComparisonKind = "wow"
	ComparisonAbsolute ComparisonKind = "absolute"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// AlertRule is a per-app threshold. For DOD/WOW rules the thresholds are
// percentages compared against the corresponding growth rate; for
// absolute rules they bound the raw current value. A nil ThresholdMin or
// ThresholdMax disables that direction, so a rule with both set fires in
// either direction. The direction is explicit in the rule, never
// inferred.
type AlertRule struct {
	Id             string         `json:"id" db:"id"`
	AppId          string         `json:"app_id" db:"app_id"`
	Metric         string         `json:"metric" db:"metric"`
	Comparison     ComparisonKind `json:"comparison" db:"comparison"`
	ThresholdMin   *float64       `json:"threshold_min,omitempty" db:"threshold_min"`
	ThresholdMax   *float64       `json:"threshold_max,omitempty" db:"threshold_max"`
	Active         bool           `json:"active" db:"active"`
	AlertWebhookURL string        `json:"alert_webhook_url,omitempty" db:"alert_webhook_url"`
}

func (r *AlertRule) Validate() error {
	switch r.Comparison {
	case ComparisonDOD, ComparisonWOW, ComparisonAbsolute:
	default:
		return fmt.Errorf("alert rule %s: invalid comparison %q", r.Id, r.Comparison)
	}
	if r.ThresholdMin == nil && r.ThresholdMax == nil {
		return fmt.Errorf("alert rule %s: no threshold configured", r.Id)
	}
	return nil
}

type AlertDirection string

const (
	DirectionBelowMinimum AlertDirection = "below_minimum"
	DirectionAboveMaximum AlertDirection = "above_maximum"
)

// AlertEvent is the anomaly detector's output. It is ephemeral: delivered
// to the notifier and folded into the owning execution's counters and
// log, never persisted on its own.
type AlertEvent struct {
	RuleId     string         `json:"rule_id"`
	AppId      string         `json:"app_id"`
	AppName    string         `json:"app_name"`
	Metric     string         `json:"metric"`
	Comparison ComparisonKind `json:"comparison"`
	Observed   float64        `json:"observed"`
	Threshold  float64        `json:"threshold"`
	Direction  AlertDirection `json:"direction"`
	Severity   Severity       `json:"severity"`
	WebhookURL string         `json:"-"`
}

func (e *AlertEvent) String() string {
	return fmt.Sprintf("%s/%s %s observed=%.2f threshold=%.2f (%s, %s)",
		e.AppName, e.Metric, e.Comparison, e.Observed, e.Threshold, e.Direction, e.Severity)
}
