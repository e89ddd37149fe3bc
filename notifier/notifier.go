package notifier

import (
	"context"
	"time"

	"github.com/appmetrics/appmonitor/models"
)

// Notifier delivers growth reports and alert events to their configured
// destinations.
type Notifier interface {
	SendReport(ctx context.Context, app *models.App, report *models.GrowthReport) error
	SendAlert(ctx context.Context, app *models.App, event *models.AlertEvent) error
}

// Config holds webhook delivery settings. DefaultWebhookURL receives
// alerts whose rule carries no destination of its own.
type Config struct {
	DefaultWebhookURL string        `yaml:"default_webhook_url"`
	SigningSecret     string        `yaml:"signing_secret"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	MaxRetries        uint64        `yaml:"max_retries"`
	InitialInterval   time.Duration `yaml:"initial_retry_interval"`
	BreakerThreshold  int64         `yaml:"breaker_consecutive_failures"`
}

const (
	DefaultRequestTimeout   = 10 * time.Second
	DefaultMaxRetries       = 2
	DefaultInitialInterval  = 500 * time.Millisecond
	DefaultBreakerThreshold = 5
)

func (c *Config) ApplyDefaults() {
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.InitialInterval == 0 {
		c.InitialInterval = DefaultInitialInterval
	}
	if c.BreakerThreshold == 0 {
		c.BreakerThreshold = DefaultBreakerThreshold
	}
}
