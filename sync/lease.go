package sync

import (
	"sync"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"
	"github.com/google/uuid"

	"github.com/appmetrics/appmonitor/db"
	"github.com/appmetrics/appmonitor/models"
)

// LeaseManager guards schedule dispatch across replicas with keyed
// database leases. Acquire is try-once: a lease held by another live
// replica means skip, not wait. While held, a keepalive goroutine renews
// the lease so it only expires if this replica dies.
type LeaseManager struct {
	logger        lager.Logger
	lockDB        db.LockDB
	clock         clock.Clock
	owner         string
	ttl           time.Duration
	renewInterval time.Duration

	lock       sync.Mutex
	keepalives map[string]chan struct{}
}

func NewLeaseManager(logger lager.Logger, lockDB db.LockDB, clk clock.Clock, ttl time.Duration, renewInterval time.Duration) *LeaseManager {
	return &LeaseManager{
		logger:        logger.Session("lease-manager"),
		lockDB:        lockDB,
		clock:         clk,
		owner:         uuid.NewString(),
		ttl:           ttl,
		renewInterval: renewInterval,
		keepalives:    map[string]chan struct{}{},
	}
}

// Owner is this replica's lease identity.
func (m *LeaseManager) Owner() string {
	return m.owner
}

// Acquire attempts to take the lease for key. It returns false without
// error when another replica holds it.
func (m *LeaseManager) Acquire(key string) (bool, error) {
	acquired, err := m.lockDB.Lock(&models.Lock{Key: key, Owner: m.owner, Ttl: m.ttl})
	if err != nil {
		m.logger.Error("acquire-lease", err, lager.Data{"key": key})
		return false, err
	}
	if !acquired {
		m.logger.Debug("lease-held-elsewhere", lager.Data{"key": key})
		return false, nil
	}

	stop := make(chan struct{})
	m.lock.Lock()
	m.keepalives[key] = stop
	m.lock.Unlock()
	go m.keepalive(key, stop)

	m.logger.Info("lease-acquired", lager.Data{"key": key, "owner": m.owner})
	return true, nil
}

// Release stops renewal and drops the lease row. Releasing a key that is
// not held is a no-op.
func (m *LeaseManager) Release(key string) {
	m.lock.Lock()
	stop, held := m.keepalives[key]
	if held {
		delete(m.keepalives, key)
	}
	m.lock.Unlock()
	if !held {
		return
	}
	close(stop)

	if err := m.lockDB.Release(key, m.owner); err != nil {
		m.logger.Error("release-lease", err, lager.Data{"key": key})
		return
	}
	m.logger.Info("lease-released", lager.Data{"key": key, "owner": m.owner})
}

func (m *LeaseManager) keepalive(key string, stop chan struct{}) {
	ticker := m.clock.NewTicker(m.renewInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			renewed, err := m.lockDB.Lock(&models.Lock{Key: key, Owner: m.owner, Ttl: m.ttl})
			if err != nil {
				m.logger.Error("renew-lease", err, lager.Data{"key": key})
				continue
			}
			if !renewed {
				m.logger.Error("lease-lost", nil, lager.Data{"key": key, "owner": m.owner})
				return
			}
		}
	}
}
