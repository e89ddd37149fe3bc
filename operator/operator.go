package operator

import (
	"context"
	"os"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"
)

type Operator interface {
	Operate(ctx context.Context)
}

type OperatorRunner struct {
	operator Operator
	interval time.Duration
	clock    clock.Clock
	logger   lager.Logger
}

func NewOperatorRunner(operator Operator, interval time.Duration, clock clock.Clock, logger lager.Logger) *OperatorRunner {
	return &OperatorRunner{
		operator: operator,
		interval: interval,
		clock:    clock,
		logger:   logger,
	}
}

func (opr *OperatorRunner) Run(signals <-chan os.Signal, ready chan<- struct{}) error {
	close(ready)
	ticker := opr.clock.NewTicker(opr.interval)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opr.logger.Info("started", lager.Data{"refresh_interval": opr.interval})

	for {
		go opr.operator.Operate(ctx)
		select {
		case <-signals:
			ticker.Stop()
			cancel()
			opr.logger.Info("stopped")
			return nil
		case <-ticker.C():
		}
	}
}
