package sqldb

import (
	"database/sql"
	"time"

	"code.cloudfoundry.org/lager/v3"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/appmetrics/appmonitor/db"
	"github.com/appmetrics/appmonitor/models"
)

// LockSQLDB implements the schedule-scoped lease over a `locks` table,
// one row per key. Acquisition runs in a transaction with the row
// selected FOR UPDATE; an expired lease is removed and taken over, a
// live one owned elsewhere yields acquired=false without error.
type LockSQLDB struct {
	dbConfig db.DatabaseConfig
	logger   lager.Logger
	sqldb    *sqlx.DB
}

func NewLockSQLDB(dbConfig db.DatabaseConfig, logger lager.Logger) (*LockSQLDB, error) {
	database, err := db.GetConnection(dbConfig.URL)
	if err != nil {
		return nil, err
	}

	sqldb, err := sqlx.Open(database.DriverName, database.DataSourceName)
	if err != nil {
		logger.Error("open-lock-db", err, lager.Data{"dbConfig": dbConfig})
		return nil, err
	}

	err = sqldb.Ping()
	if err != nil {
		_ = sqldb.Close()
		logger.Error("ping-lock-db", err, lager.Data{"dbConfig": dbConfig})
		return nil, err
	}

	sqldb.SetConnMaxLifetime(dbConfig.ConnectionMaxLifetime)
	sqldb.SetMaxIdleConns(dbConfig.MaxIdleConnections)
	sqldb.SetMaxOpenConns(dbConfig.MaxOpenConnections)
	sqldb.SetConnMaxIdleTime(dbConfig.ConnectionMaxIdleTime)

	return &LockSQLDB{
		dbConfig: dbConfig,
		logger:   logger,
		sqldb:    sqldb,
	}, nil
}

func (ldb *LockSQLDB) Ping() error {
	return ldb.sqldb.Ping()
}

func (ldb *LockSQLDB) Close() error {
	err := ldb.sqldb.Close()
	if err != nil {
		ldb.logger.Error("close-lock-db", err, lager.Data{"dbConfig": ldb.dbConfig})
		return err
	}
	return nil
}

func (ldb *LockSQLDB) fetch(key string, tx *sql.Tx) (*models.Lock, error) {
	var (
		owner      string
		timestamp  time.Time
		ttlSeconds int64
	)

	query := ldb.sqldb.Rebind("SELECT owner, lock_timestamp, ttl FROM locks WHERE lock_key = ? FOR UPDATE")
	row := tx.QueryRow(query, key)
	err := row.Scan(&owner, &timestamp, &ttlSeconds)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		ldb.logger.Error("failed-to-fetch-lock", err, lager.Data{"key": key})
		return nil, err
	}
	return &models.Lock{
		Key:                   key,
		Owner:                 owner,
		LastModifiedTimestamp: timestamp,
		Ttl:                   time.Duration(ttlSeconds) * time.Second,
	}, nil
}

func (ldb *LockSQLDB) remove(key string, tx *sql.Tx) error {
	query := ldb.sqldb.Rebind("DELETE FROM locks WHERE lock_key = ?")
	_, err := tx.Exec(query, key)
	return err
}

func (ldb *LockSQLDB) insert(lock *models.Lock, tx *sql.Tx) error {
	now, err := ldb.getDatabaseTimestamp(tx)
	if err != nil {
		return err
	}
	query := ldb.sqldb.Rebind("INSERT INTO locks (lock_key, owner, lock_timestamp, ttl) VALUES (?, ?, ?, ?)")
	_, err = tx.Exec(query, lock.Key, lock.Owner, now, int64(lock.Ttl/time.Second))
	return err
}

func (ldb *LockSQLDB) renew(lock *models.Lock, tx *sql.Tx) error {
	now, err := ldb.getDatabaseTimestamp(tx)
	if err != nil {
		return err
	}
	query := ldb.sqldb.Rebind("UPDATE locks SET lock_timestamp = ?, ttl = ? WHERE lock_key = ? AND owner = ?")
	_, err = tx.Exec(query, now, int64(lock.Ttl/time.Second), lock.Key, lock.Owner)
	return err
}

// Lock acquires or renews the lease for lock.Key. It returns false when
// another owner holds a live lease; that is a skip, not an error.
func (ldb *LockSQLDB) Lock(lock *models.Lock) (bool, error) {
	isLockAcquired := true
	err := ldb.transact(func(tx *sql.Tx) error {
		newLock := false
		fetched, err := ldb.fetch(lock.Key, tx)
		if err != nil {
			isLockAcquired = false
			return err
		}

		switch {
		case fetched == nil:
			newLock = true
		case fetched.Owner == lock.Owner:
			// renew below
		default:
			now, err := ldb.getDatabaseTimestamp(tx)
			if err != nil {
				isLockAcquired = false
				return err
			}
			if fetched.LastModifiedTimestamp.Add(fetched.Ttl).Before(now) {
				ldb.logger.Info("lock-expired", lager.Data{"key": lock.Key, "owner": fetched.Owner})
				if err := ldb.remove(lock.Key, tx); err != nil {
					isLockAcquired = false
					return err
				}
				newLock = true
			} else {
				ldb.logger.Debug("lock-held-elsewhere", lager.Data{"key": lock.Key, "owner": fetched.Owner})
				isLockAcquired = false
				return nil
			}
		}

		if newLock {
			if err := ldb.insert(lock, tx); err != nil {
				isLockAcquired = false
				return err
			}
			ldb.logger.Debug("acquired-lock", lager.Data{"key": lock.Key, "owner": lock.Owner})
			return nil
		}

		if err := ldb.renew(lock, tx); err != nil {
			isLockAcquired = false
			return err
		}
		ldb.logger.Debug("renewed-lock", lager.Data{"key": lock.Key, "owner": lock.Owner})
		return nil
	})

	return isLockAcquired, err
}

func (ldb *LockSQLDB) Release(key string, owner string) error {
	return ldb.transact(func(tx *sql.Tx) error {
		query := ldb.sqldb.Rebind("DELETE FROM locks WHERE lock_key = ? AND owner = ?")
		if _, err := tx.Exec(query, key, owner); err != nil {
			ldb.logger.Error("failed-to-release-lock", err, lager.Data{"key": key, "owner": owner})
			return err
		}
		return nil
	})
}

// getDatabaseTimestamp uses the database clock so replicas with skewed
// local clocks agree on lease expiry.
func (ldb *LockSQLDB) getDatabaseTimestamp(tx *sql.Tx) (time.Time, error) {
	var now time.Time
	query := "SELECT NOW()"
	if ldb.sqldb.DriverName() == db.PostgresDriverName {
		query = "SELECT NOW() AT TIME ZONE 'utc'"
	}
	if err := tx.QueryRow(query).Scan(&now); err != nil {
		return time.Time{}, err
	}
	return now.UTC(), nil
}

func (ldb *LockSQLDB) transact(f func(tx *sql.Tx) error) error {
	tx, err := ldb.sqldb.Begin()
	if err != nil {
		return err
	}
	if err := f(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
