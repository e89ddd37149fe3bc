package sqldb

import (
	"database/sql"
	"encoding/json"
	"time"

	"code.cloudfoundry.org/lager/v3"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/appmetrics/appmonitor/db"
	"github.com/appmetrics/appmonitor/models"
)

type MetricsSQLDB struct {
	dbConfig db.DatabaseConfig
	logger   lager.Logger
	sqldb    *sqlx.DB
}

func NewMetricsSQLDB(dbConfig db.DatabaseConfig, logger lager.Logger) (*MetricsSQLDB, error) {
	database, err := db.GetConnection(dbConfig.URL)
	if err != nil {
		return nil, err
	}

	sqldb, err := sqlx.Open(database.DriverName, database.DataSourceName)
	if err != nil {
		logger.Error("open-metrics-db", err, lager.Data{"dbConfig": dbConfig})
		return nil, err
	}

	err = sqldb.Ping()
	if err != nil {
		_ = sqldb.Close()
		logger.Error("ping-metrics-db", err, lager.Data{"dbConfig": dbConfig})
		return nil, err
	}

	sqldb.SetConnMaxLifetime(dbConfig.ConnectionMaxLifetime)
	sqldb.SetMaxIdleConns(dbConfig.MaxIdleConnections)
	sqldb.SetMaxOpenConns(dbConfig.MaxOpenConnections)
	sqldb.SetConnMaxIdleTime(dbConfig.ConnectionMaxIdleTime)

	return &MetricsSQLDB{
		dbConfig: dbConfig,
		logger:   logger,
		sqldb:    sqldb,
	}, nil
}

func (mdb *MetricsSQLDB) Close() error {
	err := mdb.sqldb.Close()
	if err != nil {
		mdb.logger.Error("close-metrics-db", err, lager.Data{"dbConfig": mdb.dbConfig})
		return err
	}
	return nil
}

// SaveSnapshot upserts: a re-run for the same app/date replaces the
// previous reading.
func (mdb *MetricsSQLDB) SaveSnapshot(snapshot *models.MetricsSnapshot) error {
	sources, err := json.Marshal(snapshot.DownloadSources)
	if err != nil {
		return err
	}

	deleteQuery := mdb.sqldb.Rebind("DELETE FROM metrics_snapshots WHERE app_id = ? AND date = ?")
	insertQuery := mdb.sqldb.Rebind("INSERT INTO metrics_snapshots" +
		"(app_id, date, downloads, sessions, deletions, unique_devices, download_sources, revenue, rating, created_at)" +
		" VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")

	tx, err := mdb.sqldb.Begin()
	if err != nil {
		return err
	}
	if _, err = tx.Exec(deleteQuery, snapshot.AppId, snapshot.Date); err != nil {
		_ = tx.Rollback()
		mdb.logger.Error("save-snapshot-delete", err, lager.Data{"appId": snapshot.AppId, "date": snapshot.Date})
		return err
	}
	if _, err = tx.Exec(insertQuery, snapshot.AppId, snapshot.Date, snapshot.Downloads, snapshot.Sessions,
		snapshot.Deletions, snapshot.UniqueDevices, string(sources), snapshot.Revenue.String(),
		snapshot.Rating, snapshot.CreatedAt); err != nil {
		_ = tx.Rollback()
		mdb.logger.Error("save-snapshot-insert", err, lager.Data{"appId": snapshot.AppId, "date": snapshot.Date})
		return err
	}
	return tx.Commit()
}

func (mdb *MetricsSQLDB) GetSnapshot(appId string, date time.Time) (*models.MetricsSnapshot, error) {
	query := mdb.sqldb.Rebind("SELECT app_id, date, downloads, sessions, deletions, unique_devices," +
		" download_sources, revenue, rating, created_at FROM metrics_snapshots WHERE app_id = ? AND date = ?")
	rows, err := mdb.sqldb.Query(query, appId, date)
	if err != nil {
		mdb.logger.Error("get-snapshot", err, lager.Data{"query": query, "appId": appId, "date": date})
		return nil, err
	}
	defer func() {
		_ = rows.Close()
		_ = rows.Err()
	}()

	if !rows.Next() {
		return nil, db.ErrDoesNotExist
	}

	var (
		snapshot models.MetricsSnapshot
		sources  []byte
		revenue  string
		rating   sql.NullFloat64
	)
	err = rows.Scan(&snapshot.AppId, &snapshot.Date, &snapshot.Downloads, &snapshot.Sessions,
		&snapshot.Deletions, &snapshot.UniqueDevices, &sources, &revenue, &rating, &snapshot.CreatedAt)
	if err != nil {
		mdb.logger.Error("get-snapshot-scan", err)
		return nil, err
	}
	if len(sources) > 0 {
		if err = json.Unmarshal(sources, &snapshot.DownloadSources); err != nil {
			return nil, err
		}
	}
	snapshot.Revenue, err = decimal.NewFromString(revenue)
	if err != nil {
		return nil, err
	}
	if rating.Valid {
		snapshot.Rating = rating.Float64
	}
	return &snapshot, nil
}

func (mdb *MetricsSQLDB) PruneSnapshots(before time.Time) error {
	query := mdb.sqldb.Rebind("DELETE FROM metrics_snapshots WHERE date < ?")
	_, err := mdb.sqldb.Exec(query, before)
	if err != nil {
		mdb.logger.Error("prune-snapshots", err, lager.Data{"query": query, "before": before})
	}
	return err
}

func (mdb *MetricsSQLDB) GetDBStatus() sql.DBStats {
	return mdb.sqldb.Stats()
}

func (mdb *MetricsSQLDB) Ping() error {
	return mdb.sqldb.Ping()
}
