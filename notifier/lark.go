package notifier

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"
	"github.com/cenkalti/backoff/v4"
	circuit "github.com/rubyist/circuitbreaker"

	"github.com/appmetrics/appmonitor/helpers"
	"github.com/appmetrics/appmonitor/models"
)

// LarkNotifier posts reports and alerts to Lark custom bot webhooks. Each
// destination URL gets its own circuit breaker so one dead webhook does
// not stall deliveries to the others.
type LarkNotifier struct {
	logger lager.Logger
	conf   Config
	client *http.Client
	clock  clock.Clock

	breakerLock sync.Mutex
	breakers    map[string]*circuit.Breaker
}

func NewLarkNotifier(logger lager.Logger, conf Config, clk clock.Clock) *LarkNotifier {
	conf.ApplyDefaults()
	return &LarkNotifier{
		logger:   logger.Session("lark-notifier"),
		conf:     conf,
		client:   helpers.CreateHTTPClient(conf.RequestTimeout),
		clock:    clk,
		breakers: map[string]*circuit.Breaker{},
	}
}

func (n *LarkNotifier) SendReport(ctx context.Context, app *models.App, report *models.GrowthReport) error {
	destination := app.ReportWebhookURL
	if destination == "" {
		destination = n.conf.DefaultWebhookURL
	}
	if destination == "" {
		return &models.ConfigError{Detail: fmt.Sprintf("no report webhook configured for app %s", app.Id)}
	}
	return n.post(ctx, destination, formatReport(app, report))
}

func (n *LarkNotifier) SendAlert(ctx context.Context, app *models.App, event *models.AlertEvent) error {
	destination := event.WebhookURL
	if destination == "" {
		destination = n.conf.DefaultWebhookURL
	}
	if destination == "" {
		return &models.ConfigError{Detail: fmt.Sprintf("no alert webhook configured for rule %s", event.RuleId)}
	}
	return n.post(ctx, destination, formatAlert(event))
}

type larkMessage struct {
	Timestamp string          `json:"timestamp,omitempty"`
	Sign      string          `json:"sign,omitempty"`
	MsgType   string          `json:"msg_type"`
	Content   larkTextContent `json:"content"`
}

type larkTextContent struct {
	Text string `json:"text"`
}

func (n *LarkNotifier) post(ctx context.Context, destination string, text string) error {
	message := larkMessage{MsgType: "text", Content: larkTextContent{Text: text}}
	if n.conf.SigningSecret != "" {
		timestamp := fmt.Sprintf("%d", n.clock.Now().Unix())
		message.Timestamp = timestamp
		message.Sign = sign(timestamp, n.conf.SigningSecret)
	}
	body, err := json.Marshal(message)
	if err != nil {
		return &models.PermanentError{Op: "lark-post", Err: err}
	}

	breaker := n.breakerFor(destination)
	operation := func() error {
		err := breaker.Call(func() error { return n.doPost(ctx, destination, body) }, 0)
		if err == circuit.ErrBreakerOpen {
			n.logger.Info("breaker-open", lager.Data{"destination": destination})
			return backoff.Permanent(&models.TransientError{Op: "lark-post", Err: err})
		}
		if err != nil && !models.IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = n.conf.InitialInterval
	return backoff.Retry(operation,
		backoff.WithContext(backoff.WithMaxRetries(policy, n.conf.MaxRetries), ctx))
}

func (n *LarkNotifier) doPost(ctx context.Context, destination string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, destination, bytes.NewReader(body))
	if err != nil {
		return &models.PermanentError{Op: "lark-post", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return &models.TransientError{Op: "lark-post", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		n.logger.Debug("delivered", lager.Data{"destination": destination})
		return nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return &models.TransientError{Op: "lark-post", Err: fmt.Errorf("webhook returned %d", resp.StatusCode)}
	default:
		return &models.PermanentError{Op: "lark-post", Err: fmt.Errorf("webhook returned %d", resp.StatusCode)}
	}
}

func (n *LarkNotifier) breakerFor(destination string) *circuit.Breaker {
	n.breakerLock.Lock()
	defer n.breakerLock.Unlock()
	breaker, exists := n.breakers[destination]
	if !exists {
		breaker = circuit.NewConsecutiveBreaker(n.conf.BreakerThreshold)
		n.breakers[destination] = breaker
	}
	return breaker
}

// sign implements the Lark custom bot signature: the timestamp and secret
// form the HMAC key and the message is empty.
func sign(timestamp, secret string) string {
	mac := hmac.New(sha256.New, []byte(timestamp+"\n"+secret))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func formatReport(app *models.App, report *models.GrowthReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Daily report for %s (%s)\n", app.Name, report.Date.Format("2006-01-02"))

	names := make([]string, 0, len(report.Metrics))
	for name := range report.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		growth := report.Metrics[name]
		fmt.Fprintf(&b, "%s: %.2f%s%s\n", name, growth.Current,
			formatRate(" dod", growth.DOD), formatRate(" wow", growth.WOW))
	}
	fmt.Fprintf(&b, "revenue: %s%s%s", report.Revenue.Current.StringFixed(2),
		formatRate(" dod", report.Revenue.DOD), formatRate(" wow", report.Revenue.WOW))
	return b.String()
}

func formatRate(label string, rate models.GrowthRate) string {
	if !rate.Defined {
		return ""
	}
	return fmt.Sprintf("%s %+.1f%%", label, rate.Rate*100)
}

func formatAlert(event *models.AlertEvent) string {
	return fmt.Sprintf("[%s] %s", strings.ToUpper(string(event.Severity)), event.String())
}
