package healthendpoint

import (
	"fmt"

	"code.cloudfoundry.org/lager/v3"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tedsuo/ifrit"
	"github.com/tedsuo/ifrit/http_server"
)

// NewServer serves readiness checks and the prometheus scrape endpoint.
func NewServer(logger lager.Logger, port int, gatherer prometheus.Gatherer, checkers []Checker) ifrit.Runner {
	router := mux.NewRouter()
	router.HandleFunc("/health/readiness", readiness(checkers))
	router.PathPrefix("").Handler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	addr := fmt.Sprintf("0.0.0.0:%d", port)
	logger.Info("new-health-server", lager.Data{"addr": addr})
	return http_server.New(addr, router)
}
