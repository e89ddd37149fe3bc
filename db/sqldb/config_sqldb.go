package sqldb

import (
	"database/sql"
	"encoding/base64"

	"code.cloudfoundry.org/lager/v3"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/appmetrics/appmonitor/db"
	"github.com/appmetrics/appmonitor/models"
)

// ConfigSQLDB reads admin-owned configuration: apps and alert rules.
// It satisfies both db.AppDB and db.AlertRuleDB.
type ConfigSQLDB struct {
	dbConfig db.DatabaseConfig
	logger   lager.Logger
	sqldb    *sqlx.DB
}

func NewConfigSQLDB(dbConfig db.DatabaseConfig, logger lager.Logger) (*ConfigSQLDB, error) {
	database, err := db.GetConnection(dbConfig.URL)
	if err != nil {
		return nil, err
	}

	sqldb, err := sqlx.Open(database.DriverName, database.DataSourceName)
	if err != nil {
		logger.Error("open-config-db", err, lager.Data{"dbConfig": dbConfig})
		return nil, err
	}

	err = sqldb.Ping()
	if err != nil {
		_ = sqldb.Close()
		logger.Error("ping-config-db", err, lager.Data{"dbConfig": dbConfig})
		return nil, err
	}

	sqldb.SetConnMaxLifetime(dbConfig.ConnectionMaxLifetime)
	sqldb.SetMaxIdleConns(dbConfig.MaxIdleConnections)
	sqldb.SetMaxOpenConns(dbConfig.MaxOpenConnections)
	sqldb.SetConnMaxIdleTime(dbConfig.ConnectionMaxIdleTime)

	return &ConfigSQLDB{
		dbConfig: dbConfig,
		logger:   logger,
		sqldb:    sqldb,
	}, nil
}

func (cdb *ConfigSQLDB) Close() error {
	err := cdb.sqldb.Close()
	if err != nil {
		cdb.logger.Error("close-config-db", err, lager.Data{"dbConfig": cdb.dbConfig})
		return err
	}
	return nil
}

const appColumns = "id, name, platform, bundle_id, active, daily_report, report_webhook_url"

func (cdb *ConfigSQLDB) GetApp(appId string) (*models.App, error) {
	query := cdb.sqldb.Rebind("SELECT " + appColumns + " FROM apps WHERE id = ?")
	rows, err := cdb.sqldb.Query(query, appId)
	if err != nil {
		cdb.logger.Error("get-app", err, lager.Data{"query": query, "appId": appId})
		return nil, err
	}
	defer func() {
		_ = rows.Close()
		_ = rows.Err()
	}()

	if !rows.Next() {
		return nil, db.ErrDoesNotExist
	}
	return scanApp(rows)
}

func (cdb *ConfigSQLDB) GetActiveApps() ([]*models.App, error) {
	query := cdb.sqldb.Rebind("SELECT " + appColumns + " FROM apps WHERE active = ? ORDER BY name")
	rows, err := cdb.sqldb.Query(query, true)
	if err != nil {
		cdb.logger.Error("get-active-apps", err, lager.Data{"query": query})
		return nil, err
	}
	defer func() {
		_ = rows.Close()
		_ = rows.Err()
	}()

	apps := []*models.App{}
	for rows.Next() {
		app, err := scanApp(rows)
		if err != nil {
			cdb.logger.Error("get-active-apps-scan", err)
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, nil
}

func scanApp(rows *sql.Rows) (*models.App, error) {
	var (
		app        models.App
		webhookURL sql.NullString
	)
	err := rows.Scan(&app.Id, &app.Name, &app.Platform, &app.BundleId, &app.Active,
		&app.DailyReport, &webhookURL)
	if err != nil {
		return nil, err
	}
	if webhookURL.Valid {
		app.ReportWebhookURL = webhookURL.String
	}
	return &app, nil
}

func (cdb *ConfigSQLDB) GetActiveRules(appId string) ([]*models.AlertRule, error) {
	query := cdb.sqldb.Rebind("SELECT id, app_id, metric, comparison, threshold_min, threshold_max," +
		" active, alert_webhook_url FROM alert_rules WHERE app_id = ? AND active = ?")
	rows, err := cdb.sqldb.Query(query, appId, true)
	if err != nil {
		cdb.logger.Error("get-active-rules", err, lager.Data{"query": query, "appId": appId})
		return nil, err
	}
	defer func() {
		_ = rows.Close()
		_ = rows.Err()
	}()

	rules := []*models.AlertRule{}
	for rows.Next() {
		var (
			rule       models.AlertRule
			min        sql.NullFloat64
			max        sql.NullFloat64
			webhookURL sql.NullString
		)
		err = rows.Scan(&rule.Id, &rule.AppId, &rule.Metric, &rule.Comparison, &min, &max,
			&rule.Active, &webhookURL)
		if err != nil {
			cdb.logger.Error("get-active-rules-scan", err)
			return nil, err
		}
		if min.Valid {
			v := min.Float64
			rule.ThresholdMin = &v
		}
		if max.Valid {
			v := max.Float64
			rule.ThresholdMax = &v
		}
		if webhookURL.Valid {
			rule.AlertWebhookURL = webhookURL.String
		}
		rules = append(rules, &rule)
	}
	return rules, nil
}

func (cdb *ConfigSQLDB) GetCredential(appId string) (*models.EncryptedCredential, error) {
	var saltB64, nonceB64, ciphertextB64 string

	query := cdb.sqldb.Rebind("SELECT salt, nonce, ciphertext FROM credentials WHERE app_id = ?")
	err := cdb.sqldb.QueryRow(query, appId).Scan(&saltB64, &nonceB64, &ciphertextB64)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, db.ErrDoesNotExist
		}
		cdb.logger.Error("get-credential", err, lager.Data{"appId": appId})
		return nil, err
	}

	cred := &models.EncryptedCredential{AppId: appId}
	for _, field := range []struct {
		raw string
		dst *[]byte
	}{
		{saltB64, &cred.Salt},
		{nonceB64, &cred.Nonce},
		{ciphertextB64, &cred.Ciphertext},
	} {
		decoded, err := base64.StdEncoding.DecodeString(field.raw)
		if err != nil {
			cdb.logger.Error("decode-credential", err, lager.Data{"appId": appId})
			return nil, err
		}
		*field.dst = decoded
	}
	return cred, nil
}

func (cdb *ConfigSQLDB) GetDBStatus() sql.DBStats {
	return cdb.sqldb.Stats()
}

func (cdb *ConfigSQLDB) Ping() error {
	return cdb.sqldb.Ping()
}
