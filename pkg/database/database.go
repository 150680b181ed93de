// Package database owns the *sql.DB handle shared by repositories. Postgres
// (pgx stdlib driver) is the production store; sqlite (modernc) is the
// embedded development store selected with PERSISTENCE_DRIVER=sqlite.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/ghuser/mediaboard/pkg/logger"
)

// Driver names as registered with database/sql.
const (
	DriverPgx    = "pgx"
	DriverSQLite = "sqlite"
)

// Pool settings for Postgres.
const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
	connMaxIdleTime = 5 * time.Minute
)

var sqlitePragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA foreign_keys = ON",
	"PRAGMA busy_timeout = 5000",
}

// Database wraps a *sql.DB with transaction helpers.
type Database struct {
	db     *sql.DB
	driver string
}

// NewPool opens a Postgres connection pool and verifies it with a ping.
func NewPool(ctx context.Context, url string, log logger.Logger) (*Database, error) {
	db, err := sql.Open(DriverPgx, url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	d := &Database{db: db, driver: DriverPgx}
	if err := d.ping(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Debug("postgres pool configured", "max_open_conns", maxOpenConns, "max_idle_conns", maxIdleConns)
	return d, nil
}

// OpenSQLite opens the embedded store. A single connection is kept open so
// that in-memory databases survive between calls and writes are serialized.
func OpenSQLite(ctx context.Context, dsn string, log logger.Logger) (*Database, error) {
	db, err := sql.Open(DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range sqlitePragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	d := &Database{db: db, driver: DriverSQLite}
	if err := d.ping(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Debug("sqlite store opened", "dsn", dsn)
	return d, nil
}

// DB returns the underlying handle for query packages.
func (d *Database) DB() *sql.DB { return d.db }

// Driver returns the database/sql driver name.
func (d *Database) Driver() string { return d.driver }

// Ping satisfies httpx.HealthChecker.
func (d *Database) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	return nil
}

// Close releases all connections.
func (d *Database) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise, including when fn panics.
func (d *Database) WithTx(ctx context.Context, fn func(*sql.Tx) error) (err error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (d *Database) ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return d.Ping(pingCtx)
}
