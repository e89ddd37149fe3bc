package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/appmetrics/appmonitor/db"
	"github.com/appmetrics/appmonitor/executor"
	"github.com/appmetrics/appmonitor/helpers"
	"github.com/appmetrics/appmonitor/notifier"
	"github.com/appmetrics/appmonitor/scheduler"
	"github.com/appmetrics/appmonitor/server"
	"github.com/appmetrics/appmonitor/storeclient"
)

const (
	DefaultLoggingLevel       = "info"
	DefaultServerPort         = 8080
	DefaultHealthServerPort   = 8081
	DefaultCredentialCacheTTL = 10 * time.Minute
	DefaultOperatorInterval   = 24 * time.Hour
	DefaultExecutionRetention = 90 * 24 * time.Hour
	DefaultSnapshotRetention  = 2 * 365 * 24 * time.Hour
)

type HealthConfig struct {
	Port int `yaml:"port"`
}

type DBConfig struct {
	ConfigDB    db.DatabaseConfig `yaml:"config_db"`
	ExecutionDB db.DatabaseConfig `yaml:"execution_db"`
	MetricsDB   db.DatabaseConfig `yaml:"metrics_db"`
	LockDB      db.DatabaseConfig `yaml:"lock_db"`
}

type CredConfig struct {
	Passphrase string        `yaml:"passphrase"`
	CacheTTL   time.Duration `yaml:"cache_ttl"`
}

type OperatorConfig struct {
	Interval           time.Duration `yaml:"interval"`
	ExecutionRetention time.Duration `yaml:"execution_retention"`
	SnapshotRetention  time.Duration `yaml:"snapshot_retention"`
}

type Config struct {
	Logging     helpers.LoggingConfig `yaml:"logging"`
	Server      server.Config         `yaml:"server"`
	Health      HealthConfig          `yaml:"health"`
	DB          DBConfig              `yaml:"db"`
	Scheduler   scheduler.Config      `yaml:"scheduler"`
	Executor    executor.Config       `yaml:"executor"`
	StoreClient storeclient.Config    `yaml:"store_client"`
	Notifier    notifier.Config       `yaml:"notifier"`
	Cred        CredConfig            `yaml:"cred"`
	Operator    OperatorConfig        `yaml:"operator"`
}

func LoadConfig(reader io.Reader) (*Config, error) {
	conf := &Config{
		Logging: helpers.LoggingConfig{Level: DefaultLoggingLevel},
		Server:  server.Config{Port: DefaultServerPort},
		Health:  HealthConfig{Port: DefaultHealthServerPort},
		Cred:    CredConfig{CacheTTL: DefaultCredentialCacheTTL},
		Operator: OperatorConfig{
			Interval:           DefaultOperatorInterval,
			ExecutionRetention: DefaultExecutionRetention,
			SnapshotRetention:  DefaultSnapshotRetention,
		},
	}

	dec := yaml.NewDecoder(reader)
	dec.KnownFields(true)
	err := dec.Decode(conf)

	if err != nil {
		return nil, err
	}

	conf.Logging.Level = strings.ToLower(conf.Logging.Level)
	conf.Scheduler.ApplyDefaults()
	conf.Executor.ApplyDefaults()
	conf.StoreClient.ApplyDefaults()
	conf.Notifier.ApplyDefaults()

	return conf, nil
}

func (c *Config) Validate() error {
	if c.DB.ConfigDB.URL == "" {
		return fmt.Errorf("Configuration error: db.config_db.url is empty")
	}

	if c.DB.ExecutionDB.URL == "" {
		return fmt.Errorf("Configuration error: db.execution_db.url is empty")
	}

	if c.DB.MetricsDB.URL == "" {
		return fmt.Errorf("Configuration error: db.metrics_db.url is empty")
	}

	if c.DB.LockDB.URL == "" {
		return fmt.Errorf("Configuration error: db.lock_db.url is empty")
	}

	if c.Cred.Passphrase == "" {
		return fmt.Errorf("Configuration error: cred.passphrase is empty")
	}

	if c.Executor.WorkerCount <= 0 {
		return fmt.Errorf("Configuration error: executor.worker_count is less than or equal to 0")
	}

	if c.Executor.FailureThreshold <= 0 || c.Executor.FailureThreshold > 1 {
		return fmt.Errorf("Configuration error: executor.failure_threshold should be within (0, 1]")
	}

	if c.Executor.RetryPolicy != executor.RetryPolicyExponential && c.Executor.RetryPolicy != executor.RetryPolicyConstant {
		return fmt.Errorf("Configuration error: executor.retry_policy should be exponential or constant")
	}

	if c.Scheduler.LeaseRenewal >= c.Scheduler.LeaseTTL {
		return fmt.Errorf("Configuration error: scheduler.lease_renewal_interval should be less than scheduler.lease_ttl")
	}

	if c.Operator.Interval <= time.Duration(0) {
		return fmt.Errorf("Configuration error: operator.interval is less-equal than 0")
	}

	if c.Operator.ExecutionRetention <= time.Duration(0) {
		return fmt.Errorf("Configuration error: operator.execution_retention is less-equal than 0")
	}

	if c.Operator.SnapshotRetention <= time.Duration(0) {
		return fmt.Errorf("Configuration error: operator.snapshot_retention is less-equal than 0")
	}

	return nil
}
