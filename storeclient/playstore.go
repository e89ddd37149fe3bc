package storeclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"code.cloudfoundry.org/lager/v3"
	"github.com/shopspring/decimal"

	"github.com/appmetrics/appmonitor/cred"
	"github.com/appmetrics/appmonitor/helpers"
	"github.com/appmetrics/appmonitor/models"
)

// PlayStoreClient fetches daily stats for an Android app from the Play
// developer API.
type PlayStoreClient struct {
	logger      lager.Logger
	baseURL     string
	client      *http.Client
	credentials cred.Store
}

func NewPlayStoreClient(logger lager.Logger, conf Config, credentials cred.Store) *PlayStoreClient {
	return &PlayStoreClient{
		logger:      logger.Session("play-store-client"),
		baseURL:     conf.PlayStoreBaseURL,
		client:      helpers.CreateHTTPClient(conf.RequestTimeout),
		credentials: credentials,
	}
}

type playStoreMetricsResponse struct {
	Installs          int64            `json:"installs"`
	Sessions          int64            `json:"sessions"`
	Uninstalls        int64            `json:"uninstalls"`
	ActiveDevices     int64            `json:"activeDevices"`
	AcquisitionFunnel map[string]int64 `json:"acquisitionFunnel"`
	Revenue           string           `json:"revenue"`
	Rating            float64          `json:"rating"`
}

func (c *PlayStoreClient) Fetch(ctx context.Context, app *models.App, date time.Time) (*models.MetricsSnapshot, error) {
	credential, err := c.credentials.Get(app.Id)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/applications/%s/dailyStats?date=%s", c.baseURL, app.BundleId, date.Format("2006-01-02"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &models.PermanentError{Op: "play-store-fetch", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+credential.Secret)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &models.TransientError{Op: "play-store-fetch", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if err := classifyStatus("play-store-fetch", resp.StatusCode); err != nil {
		c.logger.Error("fetch-failed", err, lager.Data{"app-id": app.Id, "status": resp.StatusCode})
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &models.TransientError{Op: "play-store-fetch", Err: err}
	}
	var parsed playStoreMetricsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &models.PermanentError{Op: "play-store-fetch", Err: err}
	}

	revenue := decimal.Zero
	if parsed.Revenue != "" {
		revenue, err = decimal.NewFromString(parsed.Revenue)
		if err != nil {
			return nil, &models.PermanentError{Op: "play-store-fetch", Err: fmt.Errorf("bad revenue %q: %w", parsed.Revenue, err)}
		}
	}

	c.logger.Debug("fetched", lager.Data{"app-id": app.Id, "date": date.Format("2006-01-02")})
	return &models.MetricsSnapshot{
		AppId:           app.Id,
		Date:            date,
		Downloads:       parsed.Installs,
		Sessions:        parsed.Sessions,
		Deletions:       parsed.Uninstalls,
		UniqueDevices:   parsed.ActiveDevices,
		DownloadSources: parsed.AcquisitionFunnel,
		Revenue:         revenue,
		Rating:          parsed.Rating,
		CreatedAt:       time.Now().UnixNano(),
	}, nil
}
