// internal/storage/target.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/asklytics/asklytics-backend/config"
	"github.com/asklytics/asklytics-backend/internal/core"
	"github.com/asklytics/asklytics-backend/internal/logger"
)

var (
	customLog = logger.NewLogger()

	// ErrConnectionFailed wraps the driver's message when the target
	// database cannot be reached with the supplied credentials.
	ErrConnectionFailed = errors.New("database connection failed")
)

// TargetDSN builds a go-sql-driver DSN from a validated descriptor.
// mysql.Config handles reserved characters ('@', '#', ...) in the password,
// the same concern percent-encoding covers in URL-style connection strings.
func TargetDSN(conn core.ConnectionDescriptor) string {
	dsnCfg := mysql.NewConfig()
	dsnCfg.User = conn.User
	dsnCfg.Passwd = conn.Password
	dsnCfg.Net = "tcp"
	dsnCfg.Addr = fmt.Sprintf("%s:%d", conn.Host, conn.Port)
	dsnCfg.DBName = conn.Database
	dsnCfg.ParseTime = true
	return dsnCfg.FormatDSN()
}

// TargetOpener validates a descriptor and returns an open, pinged
// connection to the caller's database. Declared as a type so handlers can
// swap in a stub during tests.
type TargetOpener func(ctx context.Context, conn core.ConnectionDescriptor) (*sql.DB, error)

// NewTargetOpener returns the production opener. Validation failures
// surface as *core.MissingFieldsError; unreachable databases as
// ErrConnectionFailed with the driver message attached.
func NewTargetOpener(cfg *config.Config) TargetOpener {
	return func(ctx context.Context, conn core.ConnectionDescriptor) (*sql.DB, error) {
		if err := core.ValidateConnection(conn, cfg.RequireDBPassword); err != nil {
			return nil, err
		}

		// sql.Open defers dialing; the ping below is the first real use.
		db, err := sql.Open("mysql", TargetDSN(conn))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			customLog.Warnf("Storage: Failed to ping target %s:%d/%s: %v", conn.Host, conn.Port, conn.Database, err)
			return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
		}
		return db, nil
	}
}
