package scheduler

import (
	"context"
	"errors"
	"os"
	gosync "sync"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"

	"github.com/appmetrics/appmonitor/db"
	"github.com/appmetrics/appmonitor/executor"
	"github.com/appmetrics/appmonitor/models"
)

// Config tunes the scheduling loop.
type Config struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	LeaseTTL     time.Duration `yaml:"lease_ttl"`
	LeaseRenewal time.Duration `yaml:"lease_renewal_interval"`
}

const (
	DefaultTickInterval = time.Minute
	DefaultLeaseTTL     = 15 * time.Minute
	DefaultLeaseRenewal = 5 * time.Minute
)

func (c *Config) ApplyDefaults() {
	if c.TickInterval == 0 {
		c.TickInterval = DefaultTickInterval
	}
	if c.LeaseTTL == 0 {
		c.LeaseTTL = DefaultLeaseTTL
	}
	if c.LeaseRenewal == 0 {
		c.LeaseRenewal = DefaultLeaseRenewal
	}
}

// Dispatcher runs a due schedule to completion. Satisfied by
// executor.Executor.
type Dispatcher interface {
	ExecuteWithRetry(ctx context.Context, schedule *models.Schedule, targetDate time.Time, opts executor.Options) (*models.Execution, error)
}

// Leaser guards each schedule's dispatch across replicas. Satisfied by
// sync.LeaseManager.
type Leaser interface {
	Acquire(key string) (bool, error)
	Release(key string)
}

// Status is a point-in-time view of the loop for the operational API.
type Status struct {
	Running  bool      `json:"running"`
	LastTick time.Time `json:"last_tick,omitempty"`
	NextTick time.Time `json:"next_tick,omitempty"`
}

// Scheduler wakes once a minute, finds due schedules and dispatches each
// under its lease. Every tick failure degrades to a skip: a broken
// schedule or an unreachable database never stops the loop.
type Scheduler struct {
	logger     lager.Logger
	clock      clock.Clock
	interval   time.Duration
	scheduleDB db.ScheduleDB

	executionDB db.ExecutionDB
	leases      Leaser
	dispatcher  Dispatcher

	lock     gosync.Mutex
	running  bool
	lastTick time.Time
	nextTick time.Time

	inflight gosync.WaitGroup
}

func New(logger lager.Logger, clk clock.Clock, conf Config, scheduleDB db.ScheduleDB,
	executionDB db.ExecutionDB, leases Leaser, dispatcher Dispatcher) *Scheduler {
	conf.ApplyDefaults()
	return &Scheduler{
		logger:      logger.Session("scheduler"),
		clock:       clk,
		interval:    conf.TickInterval,
		scheduleDB:  scheduleDB,
		executionDB: executionDB,
		leases:      leases,
		dispatcher:  dispatcher,
	}
}

// Run implements ifrit.Runner. It ticks until signalled, then waits for
// in-flight dispatches to finish.
func (s *Scheduler) Run(signals <-chan os.Signal, ready chan<- struct{}) error {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.setRunning(true)
	defer s.setRunning(false)
	close(ready)
	s.logger.Info("started", lager.Data{"interval": s.interval.String()})

	for {
		select {
		case <-signals:
			s.logger.Info("stopping")
			cancel()
			s.inflight.Wait()
			s.logger.Info("stopped")
			return nil
		case now := <-ticker.C():
			s.Tick(ctx, now)
		}
	}
}

// Tick runs one scheduling pass. It is also the entry point for the
// single-tick command line mode.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) {
	s.lock.Lock()
	s.lastTick = now
	s.nextTick = now.Add(s.interval)
	s.lock.Unlock()

	schedules, err := s.scheduleDB.GetActiveSchedules()
	if err != nil {
		s.logger.Error("get-active-schedules", err)
		return
	}

	for _, schedule := range schedules {
		if err := schedule.Validate(); err != nil {
			s.logger.Error("skip-invalid-schedule", err, lager.Data{"schedule-id": schedule.Id})
			continue
		}
		due, fireTime, err := s.dueNow(schedule, now)
		if err != nil {
			s.logger.Error("skip-schedule", err, lager.Data{"schedule-id": schedule.Id})
			continue
		}
		if !due {
			continue
		}
		s.dispatch(ctx, schedule, fireTime)
	}
}

// Wait blocks until in-flight dispatches complete.
func (s *Scheduler) Wait() {
	s.inflight.Wait()
}

func (s *Scheduler) Status() Status {
	s.lock.Lock()
	defer s.lock.Unlock()
	return Status{Running: s.running, LastTick: s.lastTick, NextTick: s.nextTick}
}

func (s *Scheduler) setRunning(running bool) {
	s.lock.Lock()
	s.running = running
	s.lock.Unlock()
}

// dueNow decides whether schedule should fire this tick. A schedule that
// has run before is due when its latest fire time passed after that run
// was created, so exactly one missed fire is caught up; one that never
// ran fires only in its own minute.
func (s *Scheduler) dueNow(schedule *models.Schedule, now time.Time) (bool, time.Time, error) {
	latest, err := s.executionDB.GetLatestExecution(schedule.Id)
	if err != nil {
		return false, time.Time{}, err
	}
	if latest == nil {
		return IsDue(schedule, now), now, nil
	}
	prev := PrevDue(schedule, now)
	if prev.IsZero() {
		return false, time.Time{}, nil
	}
	return prev.UnixNano() > latest.CreatedAt, prev, nil
}

func (s *Scheduler) dispatch(ctx context.Context, schedule *models.Schedule, fireTime time.Time) {
	held, err := s.leases.Acquire(schedule.Id)
	if err != nil {
		s.logger.Error("acquire-lease", err, lager.Data{"schedule-id": schedule.Id})
		return
	}
	if !held {
		s.logger.Debug("schedule-leased-elsewhere", lager.Data{"schedule-id": schedule.Id})
		return
	}

	targetDate := TargetDate(fireTime)
	s.logger.Info("dispatching", lager.Data{
		"schedule-id": schedule.Id,
		"task-kind":   schedule.TaskKind,
		"target-date": targetDate.Format("2006-01-02"),
	})

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer s.leases.Release(schedule.Id)

		execution, err := s.dispatcher.ExecuteWithRetry(ctx, schedule, targetDate, executor.Options{})
		if err != nil {
			if errors.Is(err, models.ErrRunInProgress) {
				s.logger.Info("run-already-in-progress", lager.Data{"schedule-id": schedule.Id})
				return
			}
			s.logger.Error("dispatch-failed", err, lager.Data{"schedule-id": schedule.Id})
			return
		}
		s.logger.Info("dispatched", lager.Data{
			"schedule-id":  schedule.Id,
			"execution-id": execution.Id,
			"status":       execution.Status,
		})
	}()
}

// TargetDate maps a fire time to the metrics date a run covers: store
// metrics finalize overnight, so a run processes the previous UTC day.
func TargetDate(fireTime time.Time) time.Time {
	t := fireTime.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
}
