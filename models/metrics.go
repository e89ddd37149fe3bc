package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tracked metric names. DownloadSources carries the per-source download
// breakdown keyed by source name.
const (
	MetricDownloads     = "downloads"
	MetricSessions      = "sessions"
	MetricDeletions     = "deletions"
	MetricUniqueDevices = "unique_devices"
	MetricRevenue       = "revenue"
	MetricRating        = "rating"
)

const (
	SourceAppStoreSearch = "app_store_search"
	SourceWebReferrer    = "web_referrer"
	SourceAppReferrer    = "app_referrer"
	SourceAppStoreBrowse = "app_store_browse"
	SourceInstitutional  = "institutional"
	SourceOther          = "other"
)

// MetricsSnapshot is one immutable raw metrics reading for an app on a
// given date, as fetched from the store API.
type MetricsSnapshot struct {
	AppId string    `json:"app_id" db:"app_id"`
	Date  time.Time `json:"date" db:"date"`

	Downloads     int64 `json:"downloads" db:"downloads"`
	Sessions      int64 `json:"sessions" db:"sessions"`
	Deletions     int64 `json:"deletions" db:"deletions"`
	UniqueDevices int64 `json:"unique_devices" db:"unique_devices"`

	DownloadSources map[string]int64 `json:"download_sources,omitempty"`

	Revenue decimal.Decimal `json:"revenue" db:"revenue"`
	Rating  float64         `json:"rating" db:"rating"`

	CreatedAt int64 `json:"created_at" db:"created_at"`
}

// Counters returns the integer metrics as a flat map, the form the
// analytics engine and absolute-threshold rules consume.
func (s *MetricsSnapshot) Counters() map[string]int64 {
	c := map[string]int64{
		MetricDownloads:     s.Downloads,
		MetricSessions:      s.Sessions,
		MetricDeletions:     s.Deletions,
		MetricUniqueDevices: s.UniqueDevices,
	}
	for source, v := range s.DownloadSources {
		c[MetricDownloads+"_"+source] = v
	}
	return c
}

// GrowthRate is one computed rate. Defined is false when the baseline was
// zero or missing; an undefined rate is never comparable against a
// relative threshold.
type GrowthRate struct {
	Rate    float64 `json:"rate"`
	Defined bool    `json:"defined"`
}

// MetricGrowth holds current value and growth figures for one metric.
type MetricGrowth struct {
	Current         float64    `json:"current"`
	DOD             GrowthRate `json:"dod"`
	WOW             GrowthRate `json:"wow"`
	BaselineMissing bool       `json:"baseline_missing"`
}

// RevenueGrowth is the revenue counterpart of MetricGrowth. The current
// value stays decimal; only the dimensionless growth ratios are float.
type RevenueGrowth struct {
	Current         decimal.Decimal `json:"current"`
	DOD             GrowthRate      `json:"dod"`
	WOW             GrowthRate      `json:"wow"`
	BaselineMissing bool            `json:"baseline_missing"`
}

// GrowthReport is the analytics output for one app/date. Revenue is kept
// out of Metrics so it never round-trips through float.
type GrowthReport struct {
	AppId   string                  `json:"app_id"`
	Date    time.Time               `json:"date"`
	Metrics map[string]MetricGrowth `json:"metrics"`
	Revenue RevenueGrowth           `json:"revenue"`
}
