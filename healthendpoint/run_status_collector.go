package healthendpoint

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/appmetrics/appmonitor/models"
)

// RunStatusCollector counts execution outcomes, generated alerts and
// sent notifications. The executor increments it as runs complete.
type RunStatusCollector interface {
	prometheus.Collector
	RunStarted()
	RunCompleted(status models.ExecutionStatus)
	AlertsGenerated(count int)
	NotificationsSent(count int)
}

type runStatusCollector struct {
	runsStarted   prometheus.Counter
	runsCompleted *prometheus.CounterVec
	alerts        prometheus.Counter
	notifications prometheus.Counter
}

func NewRunStatusCollector(namespace, subSystem string) RunStatusCollector {
	return &runStatusCollector{
		runsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "runs_started_total",
			Help:      "Number of executions started",
		}),
		runsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "runs_completed_total",
			Help:      "Number of executions completed, by terminal status",
		}, []string{"status"}),
		alerts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "alerts_generated_total",
			Help:      "Number of alert events produced by the anomaly detector",
		}),
		notifications: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "notifications_sent_total",
			Help:      "Number of notifications delivered",
		}),
	}
}

func (c *runStatusCollector) Describe(ch chan<- *prometheus.Desc) {
	c.runsStarted.Describe(ch)
	c.runsCompleted.Describe(ch)
	c.alerts.Describe(ch)
	c.notifications.Describe(ch)
}

func (c *runStatusCollector) Collect(ch chan<- prometheus.Metric) {
	c.runsStarted.Collect(ch)
	c.runsCompleted.Collect(ch)
	c.alerts.Collect(ch)
	c.notifications.Collect(ch)
}

func (c *runStatusCollector) RunStarted() {
	c.runsStarted.Inc()
}

func (c *runStatusCollector) RunCompleted(status models.ExecutionStatus) {
	c.runsCompleted.WithLabelValues(string(status)).Inc()
}

func (c *runStatusCollector) AlertsGenerated(count int) {
	c.alerts.Add(float64(count))
}

func (c *runStatusCollector) NotificationsSent(count int) {
	c.notifications.Add(float64(count))
}
