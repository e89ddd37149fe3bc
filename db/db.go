package db

import (
	"fmt"
	"io"
	"time"

	"github.com/appmetrics/appmonitor/healthendpoint"
	"github.com/appmetrics/appmonitor/models"
)

const (
	PostgresDriverName = "postgres"
	MysqlDriverName    = "mysql"

	ConfigDb    = "config_db"
	ExecutionDb = "execution_db"
	MetricsDb   = "metrics_db"
	LockDb      = "lock_db"
)

type OrderType uint8

const (
	DESC OrderType = iota
	ASC
)
const (
	DESCSTR string = "DESC"
	ASCSTR  string = "ASC"
)

var ErrDoesNotExist = fmt.Errorf("doesn't exist")
var ErrAlreadyExists = fmt.Errorf("already exists")

type DatabaseConfig struct {
	URL                   string        `yaml:"url"`
	MaxOpenConnections    int           `yaml:"max_open_connections"`
	MaxIdleConnections    int           `yaml:"max_idle_connections"`
	ConnectionMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
	ConnectionMaxIdleTime time.Duration `yaml:"connection_max_idletime"`
}

// ScheduleDB reads recurring trigger definitions. Schedules are written
// by the admin surface only; this process never mutates them.
type ScheduleDB interface {
	healthendpoint.DatabaseStatus
	GetActiveSchedules() ([]*models.Schedule, error)
	GetSchedule(scheduleId string) (*models.Schedule, error)
	io.Closer
}

// ExecutionDB owns durable execution state.
type ExecutionDB interface {
	healthendpoint.DatabaseStatus
	SaveExecution(execution *models.Execution) error
	UpdateExecution(execution *models.Execution) error
	GetExecution(executionId string) (*models.Execution, error)
	RetrieveExecutions(filter models.ExecutionFilter, orderType OrderType) ([]*models.Execution, error)
	GetLatestExecution(scheduleId string) (*models.Execution, error)
	HasRunningExecution(scheduleId string) (bool, error)
	PruneExecutions(before int64) error
	io.Closer
}

type MetricsDB interface {
	healthendpoint.DatabaseStatus
	SaveSnapshot(snapshot *models.MetricsSnapshot) error
	GetSnapshot(appId string, date time.Time) (*models.MetricsSnapshot, error)
	PruneSnapshots(before time.Time) error
	io.Closer
}

type AlertRuleDB interface {
	GetActiveRules(appId string) ([]*models.AlertRule, error)
	io.Closer
}

type AppDB interface {
	GetApp(appId string) (*models.App, error)
	GetActiveApps() ([]*models.App, error)
	io.Closer
}

// CredentialDB reads encrypted store API credentials; decryption happens
// in the cred package.
type CredentialDB interface {
	GetCredential(appId string) (*models.EncryptedCredential, error)
	io.Closer
}

// LockDB backs the schedule-scoped lease. Lock acquires or renews the
// keyed lease atomically, taking over expired ones; it returns false
// without error when another owner holds a live lease.
type LockDB interface {
	Lock(lock *models.Lock) (bool, error)
	Release(key string, owner string) error
	io.Closer
}
