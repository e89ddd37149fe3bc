package healthendpoint

import (
	"encoding/json"
	"net/http"
)

type (
	Pinger interface {
		Ping() error
	}

	ReadinessCheck struct {
		Name   string `json:"name"`
		Type   string `json:"type"`
		Status string `json:"status"`
	}
	readinessResponse struct {
		OverallStatus string           `json:"overall_status"`
		Checks        []ReadinessCheck `json:"checks"`
	}
	Checker func() ReadinessCheck
)

const (
	statusUp   = "UP"
	statusDown = "DOWN"
)

func readiness(checkers []Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		checks := make([]ReadinessCheck, 0, len(checkers))
		overallStatus := statusUp
		for _, checker := range checkers {
			check := checker()
			checks = append(checks, check)
			if check.Status == statusDown {
				overallStatus = statusDown
			}
		}
		response, err := json.Marshal(readinessResponse{OverallStatus: overallStatus, Checks: checks})
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"Internal error"}`))
			return
		}
		_, _ = w.Write(response)
	}
}

func DbChecker(dbName string, pinger Pinger) Checker {
	return func() ReadinessCheck {
		status := statusUp
		if err := pinger.Ping(); err != nil {
			status = statusDown
		}
		return ReadinessCheck{Name: dbName, Type: "database", Status: status}
	}
}
