package routes

import (
	"github.com/gorilla/mux"

	"net/http"
)

const (
	SchedulesPath            = "/v1/schedules"
	GetSchedulesRouteName    = "GetSchedules"
	TriggerSchedulePath      = "/v1/schedules/{scheduleid}/trigger"
	TriggerScheduleRouteName = "TriggerSchedule"

	ExecutionsPath           = "/v1/executions"
	GetExecutionsRouteName   = "GetExecutions"
	ExecutionPath            = "/v1/executions/{executionid}"
	GetExecutionRouteName    = "GetExecution"
	RetryExecutionPath       = "/v1/executions/{executionid}/retry"
	RetryExecutionRouteName  = "RetryExecution"
	CancelExecutionPath      = "/v1/executions/{executionid}/cancel"
	CancelExecutionRouteName = "CancelExecution"

	SchedulerStatusPath         = "/v1/scheduler/status"
	GetSchedulerStatusRouteName = "GetSchedulerStatus"
)

// AppMonitorRoutes builds the operational API router. Handlers are bound
// by the server package.
func AppMonitorRoutes() *mux.Router {
	router := mux.NewRouter()
	router.Path(SchedulesPath).Methods(http.MethodGet).Name(GetSchedulesRouteName)
	router.Path(TriggerSchedulePath).Methods(http.MethodPost).Name(TriggerScheduleRouteName)
	router.Path(ExecutionsPath).Methods(http.MethodGet).Name(GetExecutionsRouteName)
	router.Path(ExecutionPath).Methods(http.MethodGet).Name(GetExecutionRouteName)
	router.Path(RetryExecutionPath).Methods(http.MethodPost).Name(RetryExecutionRouteName)
	router.Path(CancelExecutionPath).Methods(http.MethodPost).Name(CancelExecutionRouteName)
	router.Path(SchedulerStatusPath).Methods(http.MethodGet).Name(GetSchedulerStatusRouteName)
	return router
}
