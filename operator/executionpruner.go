package operator

import (
	"context"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"

	"github.com/appmetrics/appmonitor/db"
)

type ExecutionDbPruner struct {
	executionDb    db.ExecutionDB
	cutoffDuration time.Duration
	clock          clock.Clock
	logger         lager.Logger
}

func NewExecutionDbPruner(executionDb db.ExecutionDB, cutoffDuration time.Duration, clock clock.Clock, logger lager.Logger) *ExecutionDbPruner {
	return &ExecutionDbPruner{
		executionDb:    executionDb,
		cutoffDuration: cutoffDuration,
		clock:          clock,
		logger:         logger.Session("execution_db_pruner"),
	}
}

func (edp ExecutionDbPruner) Operate(ctx context.Context) {
	timestamp := edp.clock.Now().Add(-edp.cutoffDuration).UnixNano()

	logger := edp.logger.Session("pruning-executions", lager.Data{"cutoff-time": timestamp})
	logger.Info("starting")
	defer logger.Info("completed")

	err := edp.executionDb.PruneExecutions(timestamp)
	if err != nil {
		edp.logger.Error("failed-prune-executions", err)
		return
	}
}
