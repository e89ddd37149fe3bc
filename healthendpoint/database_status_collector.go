package healthendpoint

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

type DatabaseStatus interface {
	GetDBStatus() sql.DBStats
}

type databaseStatusCollector struct {
	maxOpenConnectionsDesc *prometheus.Desc
	openConnectionsDesc    *prometheus.Desc
	inUseDesc              *prometheus.Desc
	idleDesc               *prometheus.Desc
	waitCountDesc          *prometheus.Desc
	waitDurationDesc       *prometheus.Desc

	dbStatus DatabaseStatus
}

func NewDatabaseStatusCollector(namespace, subSystem string, dbName string, dbStatus DatabaseStatus) prometheus.Collector {
	return &databaseStatusCollector{
		maxOpenConnectionsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subSystem, dbName+"_max_open_connections"),
			"Maximum number of open connections to the database", nil, nil),
		openConnectionsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subSystem, dbName+"_open_connections"),
			"The number of established connections both in use and idle", nil, nil),
		inUseDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subSystem, dbName+"_in_use"),
			"The number of connections currently in use", nil, nil),
		idleDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subSystem, dbName+"_idle"),
			"The number of idle connections", nil, nil),
		waitCountDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subSystem, dbName+"_wait_count"),
			"The total number of connections waited for", nil, nil),
		waitDurationDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subSystem, dbName+"_wait_duration"),
			"The total time blocked waiting for a new connection", nil, nil),
		dbStatus: dbStatus,
	}
}

func (c *databaseStatusCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.maxOpenConnectionsDesc
	ch <- c.openConnectionsDesc
	ch <- c.inUseDesc
	ch <- c.idleDesc
	ch <- c.waitCountDesc
	ch <- c.waitDurationDesc
}

func (c *databaseStatusCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.dbStatus.GetDBStatus()
	ch <- mustMetric(c.maxOpenConnectionsDesc, float64(stats.MaxOpenConnections))
	ch <- mustMetric(c.openConnectionsDesc, float64(stats.OpenConnections))
	ch <- mustMetric(c.inUseDesc, float64(stats.InUse))
	ch <- mustMetric(c.idleDesc, float64(stats.Idle))
	ch <- mustMetric(c.waitCountDesc, float64(stats.WaitCount))
	ch <- mustMetric(c.waitDurationDesc, float64(stats.WaitDuration))
}

func mustMetric(desc *prometheus.Desc, value float64) prometheus.Metric {
	m, _ := prometheus.NewConstMetric(desc, prometheus.GaugeValue, value)
	return m
}
