package server

import (
	"fmt"
	"net/http"

	"code.cloudfoundry.org/lager/v3"
	"github.com/gorilla/mux"
	"github.com/tedsuo/ifrit"
	"github.com/tedsuo/ifrit/http_server"

	"github.com/appmetrics/appmonitor/db"
	"github.com/appmetrics/appmonitor/routes"
	"github.com/appmetrics/appmonitor/scheduler"
)

type Config struct {
	Port int `yaml:"port"`
}

// VarsFunc adapts a handler taking mux path variables to http.Handler.
type VarsFunc func(w http.ResponseWriter, r *http.Request, vars map[string]string)

func (vh VarsFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	vh(w, r, vars)
}

// NewServer serves the operational API.
func NewServer(logger lager.Logger, conf Config, scheduleDB db.ScheduleDB, executionDB db.ExecutionDB,
	runner ExecutionRunner, status StatusProvider, leases scheduler.Leaser) ifrit.Runner {
	h := NewHandlers(logger, scheduleDB, executionDB, runner, status, leases)

	r := routes.AppMonitorRoutes()
	r.Get(routes.GetSchedulesRouteName).Handler(VarsFunc(h.GetSchedules))
	r.Get(routes.TriggerScheduleRouteName).Handler(VarsFunc(h.TriggerSchedule))
	r.Get(routes.GetExecutionsRouteName).Handler(VarsFunc(h.GetExecutions))
	r.Get(routes.GetExecutionRouteName).Handler(VarsFunc(h.GetExecution))
	r.Get(routes.RetryExecutionRouteName).Handler(VarsFunc(h.RetryExecution))
	r.Get(routes.CancelExecutionRouteName).Handler(VarsFunc(h.CancelExecution))
	r.Get(routes.GetSchedulerStatusRouteName).Handler(VarsFunc(h.GetSchedulerStatus))

	addr := fmt.Sprintf("0.0.0.0:%d", conf.Port)
	logger.Info("new-api-server", lager.Data{"addr": addr})
	return http_server.New(addr, r)
}
