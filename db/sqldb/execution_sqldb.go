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

type ExecutionSQLDB struct {
	dbConfig db.DatabaseConfig
	logger   lager.Logger
	sqldb    *sqlx.DB
}

func NewExecutionSQLDB(dbConfig db.DatabaseConfig, logger lager.Logger) (*ExecutionSQLDB, error) {
	database, err := db.GetConnection(dbConfig.URL)
	if err != nil {
		return nil, err
	}

	sqldb, err := sqlx.Open(database.DriverName, database.DataSourceName)
	if err != nil {
		logger.Error("open-execution-db", err, lager.Data{"dbConfig": dbConfig})
		return nil, err
	}

	err = sqldb.Ping()
	if err != nil {
		_ = sqldb.Close()
		logger.Error("ping-execution-db", err, lager.Data{"dbConfig": dbConfig})
		return nil, err
	}

	sqldb.SetConnMaxLifetime(dbConfig.ConnectionMaxLifetime)
	sqldb.SetMaxIdleConns(dbConfig.MaxIdleConnections)
	sqldb.SetMaxOpenConns(dbConfig.MaxOpenConnections)
	sqldb.SetConnMaxIdleTime(dbConfig.ConnectionMaxIdleTime)

	return &ExecutionSQLDB{
		dbConfig: dbConfig,
		logger:   logger,
		sqldb:    sqldb,
	}, nil
}

func (edb *ExecutionSQLDB) Close() error {
	err := edb.sqldb.Close()
	if err != nil {
		edb.logger.Error("close-execution-db", err, lager.Data{"dbConfig": edb.dbConfig})
		return err
	}
	return nil
}

func (edb *ExecutionSQLDB) SaveExecution(execution *models.Execution) error {
	query := edb.sqldb.Rebind("INSERT INTO executions" +
		"(id, schedule_id, trigger_kind, status, app_id, target_date, started_at, completed_at, duration_seconds," +
		" success_count, error_count, alerts_generated, notifications_sent, output_log, error_log, retry_count, created_at)" +
		" VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	_, err := edb.sqldb.Exec(query, execution.Id, nullString(execution.ScheduleId), execution.Trigger,
		execution.Status, nullString(execution.AppId), execution.TargetDate, execution.StartedAt,
		execution.CompletedAt, execution.DurationSeconds, execution.SuccessCount, execution.ErrorCount,
		execution.AlertsGenerated, execution.NotificationsSent, execution.OutputLog, execution.ErrorLog,
		execution.RetryCount, execution.CreatedAt)
	if err != nil {
		edb.logger.Error("save-execution", err, lager.Data{"query": query, "executionId": execution.Id})
	}
	return err
}

func (edb *ExecutionSQLDB) UpdateExecution(execution *models.Execution) error {
	query := edb.sqldb.Rebind("UPDATE executions SET" +
		" status = ?, started_at = ?, completed_at = ?, duration_seconds = ?," +
		" success_count = ?, error_count = ?, alerts_generated = ?, notifications_sent = ?," +
		" output_log = ?, error_log = ?" +
		" WHERE id = ?")
	result, err := edb.sqldb.Exec(query, execution.Status, execution.StartedAt, execution.CompletedAt,
		execution.DurationSeconds, execution.SuccessCount, execution.ErrorCount, execution.AlertsGenerated,
		execution.NotificationsSent, execution.OutputLog, execution.ErrorLog, execution.Id)
	if err != nil {
		edb.logger.Error("update-execution", err, lager.Data{"query": query, "executionId": execution.Id})
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return db.ErrDoesNotExist
	}
	return nil
}

const executionColumns = "id, schedule_id, trigger_kind, status, app_id, target_date, started_at, completed_at," +
	" duration_seconds, success_count, error_count, alerts_generated, notifications_sent, output_log, error_log," +
	" retry_count, created_at"

func (edb *ExecutionSQLDB) GetExecution(executionId string) (*models.Execution, error) {
	query := edb.sqldb.Rebind("SELECT " + executionColumns + " FROM executions WHERE id = ?")
	rows, err := edb.sqldb.Query(query, executionId)
	if err != nil {
		edb.logger.Error("get-execution", err, lager.Data{"query": query, "executionId": executionId})
		return nil, err
	}
	defer func() {
		_ = rows.Close()
		_ = rows.Err()
	}()

	if !rows.Next() {
		return nil, db.ErrDoesNotExist
	}
	return scanExecution(rows)
}

func (edb *ExecutionSQLDB) RetrieveExecutions(filter models.ExecutionFilter, orderType db.OrderType) ([]*models.Execution, error) {
	orderStr := db.DESCSTR
	if orderType == db.ASC {
		orderStr = db.ASCSTR
	}

	query := "SELECT " + executionColumns + " FROM executions WHERE 1=1"
	args := []interface{}{}
	if filter.ScheduleId != "" {
		query += " AND schedule_id = ?"
		args = append(args, filter.ScheduleId)
	}
	if filter.AppId != "" {
		query += " AND app_id = ?"
		args = append(args, filter.AppId)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.StartedAfter != 0 {
		query += " AND started_at >= ?"
		args = append(args, filter.StartedAfter)
	}
	if filter.StartedBefore != 0 {
		query += " AND started_at <= ?"
		args = append(args, filter.StartedBefore)
	}
	query += " ORDER BY created_at " + orderStr

	rows, err := edb.sqldb.Query(edb.sqldb.Rebind(query), args...)
	if err != nil {
		edb.logger.Error("retrieve-executions", err, lager.Data{"query": query, "filter": filter})
		return nil, err
	}
	defer func() {
		_ = rows.Close()
		_ = rows.Err()
	}()

	executions := []*models.Execution{}
	for rows.Next() {
		execution, err := scanExecution(rows)
		if err != nil {
			edb.logger.Error("retrieve-executions-scan", err)
			return nil, err
		}
		executions = append(executions, execution)
	}
	return executions, nil
}

func (edb *ExecutionSQLDB) GetLatestExecution(scheduleId string) (*models.Execution, error) {
	query := edb.sqldb.Rebind("SELECT " + executionColumns + " FROM executions" +
		" WHERE schedule_id = ? ORDER BY created_at DESC LIMIT 1")
	rows, err := edb.sqldb.Query(query, scheduleId)
	if err != nil {
		edb.logger.Error("get-latest-execution", err, lager.Data{"query": query, "scheduleId": scheduleId})
		return nil, err
	}
	defer func() {
		_ = rows.Close()
		_ = rows.Err()
	}()

	if !rows.Next() {
		return nil, nil
	}
	return scanExecution(rows)
}

func (edb *ExecutionSQLDB) HasRunningExecution(scheduleId string) (bool, error) {
	query := edb.sqldb.Rebind("SELECT COUNT(*) FROM executions WHERE schedule_id = ? AND status = ?")
	var count int
	err := edb.sqldb.QueryRow(query, scheduleId, models.ExecutionRunning).Scan(&count)
	if err != nil {
		edb.logger.Error("has-running-execution", err, lager.Data{"query": query, "scheduleId": scheduleId})
		return false, err
	}
	return count > 0, nil
}

func (edb *ExecutionSQLDB) PruneExecutions(before int64) error {
	query := edb.sqldb.Rebind("DELETE FROM executions WHERE created_at < ?")
	_, err := edb.sqldb.Exec(query, before)
	if err != nil {
		edb.logger.Error("prune-executions", err, lager.Data{"query": query, "before": before})
	}
	return err
}

func scanExecution(rows *sql.Rows) (*models.Execution, error) {
	var (
		execution  models.Execution
		scheduleId sql.NullString
		appId      sql.NullString
		targetDate time.Time
	)
	err := rows.Scan(&execution.Id, &scheduleId, &execution.Trigger, &execution.Status, &appId,
		&targetDate, &execution.StartedAt, &execution.CompletedAt, &execution.DurationSeconds,
		&execution.SuccessCount, &execution.ErrorCount, &execution.AlertsGenerated,
		&execution.NotificationsSent, &execution.OutputLog, &execution.ErrorLog,
		&execution.RetryCount, &execution.CreatedAt)
	if err != nil {
		return nil, err
	}
	if scheduleId.Valid {
		execution.ScheduleId = scheduleId.String
	}
	if appId.Valid {
		execution.AppId = appId.String
	}
	execution.TargetDate = targetDate
	return &execution, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func (edb *ExecutionSQLDB) GetDBStatus() sql.DBStats {
	return edb.sqldb.Stats()
}

func (edb *ExecutionSQLDB) Ping() error {
	return edb.sqldb.Ping()
}
