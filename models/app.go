package models

type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

func (p Platform) Valid() bool {
	return p == PlatformIOS || p == PlatformAndroid
}

// App is a monitored mobile application. Apps are configuration, owned by
// the admin surface; the scheduler and executor only read them.
type App struct {
	Id       string   `json:"id" db:"id"`
	Name     string   `json:"name" db:"name"`
	Platform Platform `json:"platform" db:"platform"`
	BundleId string   `json:"bundle_id" db:"bundle_id"`
	Active   bool     `json:"active" db:"active"`

	// Daily report delivery, optional per app.
	DailyReport      bool   `json:"daily_report" db:"daily_report"`
	ReportWebhookURL string `json:"report_webhook_url,omitempty" db:"report_webhook_url"`
}
