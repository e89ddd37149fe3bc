package storeclient

import (
	"context"
	"time"

	"code.cloudfoundry.org/lager/v3"
	"github.com/cenkalti/backoff/v4"

	"github.com/appmetrics/appmonitor/models"
)

// RetryingFetcher retries transient fetch failures with exponential
// backoff. Permanent and configuration errors are returned immediately.
type RetryingFetcher struct {
	logger          lager.Logger
	fetcher         MetricsFetcher
	maxRetries      uint64
	initialInterval time.Duration
}

func NewRetryingFetcher(logger lager.Logger, conf Config, fetcher MetricsFetcher) *RetryingFetcher {
	return &RetryingFetcher{
		logger:          logger.Session("retrying-fetcher"),
		fetcher:         fetcher,
		maxRetries:      conf.MaxRetries,
		initialInterval: conf.InitialInterval,
	}
}

func (r *RetryingFetcher) Fetch(ctx context.Context, app *models.App, date time.Time) (*models.MetricsSnapshot, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.initialInterval

	var snapshot *models.MetricsSnapshot
	operation := func() error {
		var err error
		snapshot, err = r.fetcher.Fetch(ctx, app, date)
		if err != nil && !models.IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, next time.Duration) {
		r.logger.Info("retrying-fetch", lager.Data{
			"app-id": app.Id,
			"error":  err.Error(),
			"next":   next.String(),
		})
	}

	err := backoff.RetryNotify(operation,
		backoff.WithContext(backoff.WithMaxRetries(policy, r.maxRetries), ctx), notify)
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}
