package helpers

import (
	"net"
	"net/http"
	"time"
)

// CreateHTTPClient builds the client used for store API and webhook
// calls. Per-call timeouts bound individual requests; the run-level
// wall clock is enforced separately by the executor.
func CreateHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: 30 * time.Second,
		}).DialContext,
		IdleConnTimeout:     5 * time.Second,
		MaxIdleConnsPerHost: 200,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
