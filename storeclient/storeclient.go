package storeclient

import (
	"context"
	"fmt"
	"time"

	"code.cloudfoundry.org/lager/v3"

	"github.com/appmetrics/appmonitor/cred"
	"github.com/appmetrics/appmonitor/models"
)

// MetricsFetcher retrieves one day of raw metrics for an app from its
// store API.
type MetricsFetcher interface {
	Fetch(ctx context.Context, app *models.App, date time.Time) (*models.MetricsSnapshot, error)
}

// Config holds the store API endpoints and HTTP tuning.
type Config struct {
	AppStoreBaseURL  string        `yaml:"app_store_base_url"`
	PlayStoreBaseURL string        `yaml:"play_store_base_url"`
	RequestTimeout   time.Duration `yaml:"request_timeout"`
	MaxRetries       uint64        `yaml:"max_retries"`
	InitialInterval  time.Duration `yaml:"initial_retry_interval"`
}

const (
	DefaultAppStoreBaseURL  = "https://api.appstoreconnect.apple.com"
	DefaultPlayStoreBaseURL = "https://androidpublisher.googleapis.com"
	DefaultRequestTimeout   = 30 * time.Second
	DefaultMaxRetries       = 3
	DefaultInitialInterval  = 500 * time.Millisecond
)

func (c *Config) ApplyDefaults() {
	if c.AppStoreBaseURL == "" {
		c.AppStoreBaseURL = DefaultAppStoreBaseURL
	}
	if c.PlayStoreBaseURL == "" {
		c.PlayStoreBaseURL = DefaultPlayStoreBaseURL
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.InitialInterval == 0 {
		c.InitialInterval = DefaultInitialInterval
	}
}

// NewFetcher builds the platform-dispatching fetcher with retries.
func NewFetcher(logger lager.Logger, conf Config, credentials cred.Store) MetricsFetcher {
	conf.ApplyDefaults()
	dispatch := &platformFetcher{
		appStore:  NewAppStoreClient(logger, conf, credentials),
		playStore: NewPlayStoreClient(logger, conf, credentials),
	}
	return NewRetryingFetcher(logger, conf, dispatch)
}

type platformFetcher struct {
	appStore  MetricsFetcher
	playStore MetricsFetcher
}

func (f *platformFetcher) Fetch(ctx context.Context, app *models.App, date time.Time) (*models.MetricsSnapshot, error) {
	switch app.Platform {
	case models.PlatformIOS:
		return f.appStore.Fetch(ctx, app, date)
	case models.PlatformAndroid:
		return f.playStore.Fetch(ctx, app, date)
	default:
		return nil, &models.ConfigError{Detail: fmt.Sprintf("app %s has unknown platform %q", app.Id, app.Platform)}
	}
}
