// internal/storage/authdb.go
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3" // Driver registration

	"github.com/asklytics/asklytics-backend/config"
)

// ConnectAuthDB initializes the connection pool for the fixed auth database
// and ensures the 'users' and 'query_history' tables exist. MySQL is used
// when AUTH_DB_HOST is configured; otherwise a local SQLite file serves
// development and integration tests.
func ConnectAuthDB(cfg *config.Config) (*sql.DB, error) {
	if cfg.AuthDB.UseMySQL() {
		return connectAuthMySQL(cfg.AuthDB)
	}
	return connectAuthSQLite(cfg.AuthDB)
}

func connectAuthMySQL(a config.AuthDBConfig) (*sql.DB, error) {
	dsnCfg := mysql.NewConfig()
	dsnCfg.User = a.User
	dsnCfg.Passwd = a.Password
	dsnCfg.Net = "tcp"
	dsnCfg.Addr = fmt.Sprintf("%s:%d", a.Host, a.Port)
	dsnCfg.DBName = a.Name
	dsnCfg.ParseTime = true

	customLog.Printf("Storage: Connecting to auth database %s/%s", dsnCfg.Addr, a.Name)
	db, err := sql.Open("mysql", dsnCfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open auth db: %w", err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		customLog.Warnf("Storage: Failed to ping auth db '%s': %v", a.Name, err)
		return nil, fmt.Errorf("failed to connect to auth db: %w", err)
	}

	if err := ensureAuthTables(db, mysqlUsersDDL, mysqlHistoryDDL); err != nil {
		db.Close()
		return nil, err
	}
	customLog.Println("Storage: Auth database (MySQL) ready.")
	return db, nil
}

func connectAuthSQLite(a config.AuthDBConfig) (*sql.DB, error) {
	dbPath := filepath.Join(a.SQLiteDir, a.SQLiteFile)
	customLog.Printf("Storage: Initializing auth database (SQLite): %s", dbPath)

	if err := os.MkdirAll(a.SQLiteDir, 0o750); err != nil {
		customLog.Warnf("Storage: Error creating data directory '%s': %v", a.SQLiteDir, err)
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		customLog.Warnf("Storage: Failed to open auth db '%s': %v", dbPath, err)
		return nil, fmt.Errorf("failed to open auth db: %w", err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		customLog.Warnf("Storage: Failed to ping auth db '%s': %v", dbPath, err)
		return nil, fmt.Errorf("failed to connect to auth db: %w", err)
	}

	if err := ensureAuthTables(db, sqliteUsersDDL, sqliteHistoryDDL); err != nil {
		db.Close()
		return nil, err
	}
	customLog.Println("Storage: Auth database (SQLite) ready.")
	return db, nil
}

func ensureAuthTables(db *sql.DB, usersDDL, historyDDL string) error {
	if _, err := db.Exec(usersDDL); err != nil {
		customLog.Warnf("Storage: Failed to create users table: %v", err)
		return fmt.Errorf("failed to ensure users table: %w", err)
	}
	if _, err := db.Exec(historyDDL); err != nil {
		customLog.Warnf("Storage: Failed to create query_history table: %v", err)
		return fmt.Errorf("failed to ensure query_history table: %w", err)
	}
	return nil
}

const mysqlUsersDDL = `
CREATE TABLE IF NOT EXISTS users (
	id VARCHAR(36) PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL UNIQUE,
	mobile VARCHAR(32) NOT NULL UNIQUE,
	password_hash VARCHAR(255) NOT NULL,
	is_active TINYINT(1) NOT NULL DEFAULT 1,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	last_login TIMESTAMP NULL
);`

const mysqlHistoryDDL = `
CREATE TABLE IF NOT EXISTS query_history (
	id BIGINT PRIMARY KEY AUTO_INCREMENT,
	user_id VARCHAR(36) NOT NULL,
	prompt TEXT NOT NULL,
	sql_text TEXT NOT NULL,
	db_name VARCHAR(255) NOT NULL,
	row_count INT NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);`

const sqliteUsersDDL = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	mobile TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	last_login TIMESTAMP
);`

const sqliteHistoryDDL = `
CREATE TABLE IF NOT EXISTS query_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	prompt TEXT NOT NULL,
	sql_text TEXT NOT NULL,
	db_name TEXT NOT NULL,
	row_count INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);`
