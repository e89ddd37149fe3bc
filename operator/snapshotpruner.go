package operator

import (
	"context"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"

	"github.com/appmetrics/appmonitor/db"
)

type SnapshotDbPruner struct {
	metricsDb      db.MetricsDB
	cutoffDuration time.Duration
	clock          clock.Clock
	logger         lager.Logger
}

func NewSnapshotDbPruner(metricsDb db.MetricsDB, cutoffDuration time.Duration, clock clock.Clock, logger lager.Logger) *SnapshotDbPruner {
	return &SnapshotDbPruner{
		metricsDb:      metricsDb,
		cutoffDuration: cutoffDuration,
		clock:          clock,
		logger:         logger.Session("snapshot_db_pruner"),
	}
}

func (sdp SnapshotDbPruner) Operate(ctx context.Context) {
	cutoff := sdp.clock.Now().Add(-sdp.cutoffDuration).UTC().Truncate(24 * time.Hour)

	logger := sdp.logger.Session("pruning-snapshots", lager.Data{"cutoff-date": cutoff.Format("2006-01-02")})
	logger.Info("starting")
	defer logger.Info("completed")

	err := sdp.metricsDb.PruneSnapshots(cutoff)
	if err != nil {
		sdp.logger.Error("failed-prune-snapshots", err)
		return
	}
}
