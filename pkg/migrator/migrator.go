package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// RunMigrations runs all pending goose migrations from the embedded FS against dbUrl.
func RunMigrations(dbUrl string, files fs.FS) error {
	db, err := sql.Open("pgx", dbUrl)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	_, err = Up(context.Background(), db, goose.DialectPostgres, files)
	return err
}

// Up applies pending migrations found at the root of files to an open handle
// and returns how many ran. The sqlite store uses it at startup and in tests.
func Up(ctx context.Context, db *sql.DB, dialect goose.Dialect, files fs.FS) (int, error) {
	provider, err := goose.NewProvider(dialect, db, files)
	if err != nil {
		return 0, fmt.Errorf("failed to create goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to up migrations: %w", err)
	}
	return len(results), nil
}
