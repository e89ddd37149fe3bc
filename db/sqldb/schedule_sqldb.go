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

type ScheduleSQLDB struct {
	dbConfig db.DatabaseConfig
	logger   lager.Logger
	sqldb    *sqlx.DB
}

func NewScheduleSQLDB(dbConfig db.DatabaseConfig, logger lager.Logger) (*ScheduleSQLDB, error) {
	database, err := db.GetConnection(dbConfig.URL)
	if err != nil {
		return nil, err
	}

	sqldb, err := sqlx.Open(database.DriverName, database.DataSourceName)
	if err != nil {
		logger.Error("open-schedule-db", err, lager.Data{"dbConfig": dbConfig})
		return nil, err
	}

	err = sqldb.Ping()
	if err != nil {
		_ = sqldb.Close()
		logger.Error("ping-schedule-db", err, lager.Data{"dbConfig": dbConfig})
		return nil, err
	}

	sqldb.SetConnMaxLifetime(dbConfig.ConnectionMaxLifetime)
	sqldb.SetMaxIdleConns(dbConfig.MaxIdleConnections)
	sqldb.SetMaxOpenConns(dbConfig.MaxOpenConnections)
	sqldb.SetConnMaxIdleTime(dbConfig.ConnectionMaxIdleTime)

	return &ScheduleSQLDB{
		dbConfig: dbConfig,
		logger:   logger,
		sqldb:    sqldb,
	}, nil
}

func (sdb *ScheduleSQLDB) Close() error {
	err := sdb.sqldb.Close()
	if err != nil {
		sdb.logger.Error("close-schedule-db", err, lager.Data{"dbConfig": sdb.dbConfig})
		return err
	}
	return nil
}

const scheduleColumns = "id, name, task_kind, app_id, frequency, hour, minute, weekday, day_of_month, active, skip_notifications, retry_limit, timeout_seconds"

func (sdb *ScheduleSQLDB) GetActiveSchedules() ([]*models.Schedule, error) {
	query := sdb.sqldb.Rebind("SELECT " + scheduleColumns + " FROM schedules WHERE active = ?")
	rows, err := sdb.sqldb.Query(query, true)
	if err != nil {
		sdb.logger.Error("get-active-schedules", err, lager.Data{"query": query})
		return nil, err
	}
	defer func() {
		_ = rows.Close()
		_ = rows.Err()
	}()

	schedules := []*models.Schedule{}
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			sdb.logger.Error("get-active-schedules-scan", err)
			return nil, err
		}
		schedules = append(schedules, schedule)
	}
	return schedules, nil
}

func (sdb *ScheduleSQLDB) GetSchedule(scheduleId string) (*models.Schedule, error) {
	query := sdb.sqldb.Rebind("SELECT " + scheduleColumns + " FROM schedules WHERE id = ?")
	rows, err := sdb.sqldb.Query(query, scheduleId)
	if err != nil {
		sdb.logger.Error("get-schedule", err, lager.Data{"query": query, "scheduleId": scheduleId})
		return nil, err
	}
	defer func() {
		_ = rows.Close()
		_ = rows.Err()
	}()

	if !rows.Next() {
		return nil, db.ErrDoesNotExist
	}
	return scanSchedule(rows)
}

func scanSchedule(rows *sql.Rows) (*models.Schedule, error) {
	var (
		schedule       models.Schedule
		appId          sql.NullString
		weekday        sql.NullInt64
		dayOfMonth     sql.NullInt64
		timeoutSeconds int64
	)
	err := rows.Scan(&schedule.Id, &schedule.Name, &schedule.TaskKind, &appId,
		&schedule.Frequency, &schedule.Hour, &schedule.Minute, &weekday, &dayOfMonth,
		&schedule.Active, &schedule.SkipNotifications, &schedule.RetryLimit, &timeoutSeconds)
	if err != nil {
		return nil, err
	}
	if appId.Valid {
		schedule.AppId = appId.String
	}
	if weekday.Valid {
		w := int(weekday.Int64)
		schedule.Weekday = &w
	}
	if dayOfMonth.Valid {
		d := int(dayOfMonth.Int64)
		schedule.DayOfMonth = &d
	}
	schedule.Timeout = time.Duration(timeoutSeconds) * time.Second
	return &schedule, nil
}

func (sdb *ScheduleSQLDB) GetDBStatus() sql.DBStats {
	return sdb.sqldb.Stats()
}

func (sdb *ScheduleSQLDB) Ping() error {
	return sdb.sqldb.Ping()
}
