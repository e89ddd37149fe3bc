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

// AppStoreClient fetches daily analytics for an iOS app from App Store
// Connect.
type AppStoreClient struct {
	logger      lager.Logger
	baseURL     string
	client      *http.Client
	credentials cred.Store
}

func NewAppStoreClient(logger lager.Logger, conf Config, credentials cred.Store) *AppStoreClient {
	return &AppStoreClient{
		logger:      logger.Session("app-store-client"),
		baseURL:     conf.AppStoreBaseURL,
		client:      helpers.CreateHTTPClient(conf.RequestTimeout),
		credentials: credentials,
	}
}

type appStoreMetricsResponse struct {
	Downloads       int64            `json:"units"`
	Sessions        int64            `json:"sessions"`
	Deletions       int64            `json:"deletions"`
	UniqueDevices   int64            `json:"uniqueDevices"`
	DownloadSources map[string]int64 `json:"sourceBreakdown"`
	Proceeds        string           `json:"proceeds"`
	Rating          float64          `json:"averageRating"`
}

func (c *AppStoreClient) Fetch(ctx context.Context, app *models.App, date time.Time) (*models.MetricsSnapshot, error) {
	credential, err := c.credentials.Get(app.Id)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/apps/%s/dailyMetrics?date=%s", c.baseURL, app.BundleId, date.Format("2006-01-02"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &models.PermanentError{Op: "app-store-fetch", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+credential.Secret)
	req.Header.Set("X-Api-Key-Id", credential.KeyId)
	req.Header.Set("X-Api-Issuer-Id", credential.IssuerId)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &models.TransientError{Op: "app-store-fetch", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if err := classifyStatus("app-store-fetch", resp.StatusCode); err != nil {
		c.logger.Error("fetch-failed", err, lager.Data{"app-id": app.Id, "status": resp.StatusCode})
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &models.TransientError{Op: "app-store-fetch", Err: err}
	}
	var parsed appStoreMetricsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &models.PermanentError{Op: "app-store-fetch", Err: err}
	}

	revenue := decimal.Zero
	if parsed.Proceeds != "" {
		revenue, err = decimal.NewFromString(parsed.Proceeds)
		if err != nil {
			return nil, &models.PermanentError{Op: "app-store-fetch", Err: fmt.Errorf("bad proceeds %q: %w", parsed.Proceeds, err)}
		}
	}

	c.logger.Debug("fetched", lager.Data{"app-id": app.Id, "date": date.Format("2006-01-02")})
	return &models.MetricsSnapshot{
		AppId:           app.Id,
		Date:            date,
		Downloads:       parsed.Downloads,
		Sessions:        parsed.Sessions,
		Deletions:       parsed.Deletions,
		UniqueDevices:   parsed.UniqueDevices,
		DownloadSources: parsed.DownloadSources,
		Revenue:         revenue,
		Rating:          parsed.Rating,
		CreatedAt:       time.Now().UnixNano(),
	}, nil
}

// classifyStatus maps HTTP status codes onto the retry taxonomy. Rate
// limiting and server errors are worth retrying; everything else non-2xx
// is not.
func classifyStatus(op string, status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusTooManyRequests || status >= 500:
		return &models.TransientError{Op: op, Err: fmt.Errorf("store API returned %d", status)}
	default:
		return &models.PermanentError{Op: op, Err: fmt.Errorf("store API returned %d", status)}
	}
}
