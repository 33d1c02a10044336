package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// Migrate applies the embedded migrations for the database named by url.
// The in-memory store needs none and is accepted as a no-op.
func Migrate(ctx context.Context, databaseURL string) error {
	switch dialectOf(databaseURL) {
	case dialectPostgres:
		sqlDB, err := sql.Open("pgx", databaseURL)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer sqlDB.Close()
		if err := sqlDB.PingContext(ctx); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}
		return migrateSQL(ctx, sqlDB, dialectPostgres)
	case dialectSQLite:
		store, err := OpenSQLite(ctx, sqlitePath(databaseURL))
		if err != nil {
			return err
		}
		store.Close()
		return nil
	case dialectMemory:
		return nil
	default:
		return fmt.Errorf("unsupported database url scheme: %q", schemeOf(databaseURL))
	}
}

func migrateSQL(ctx context.Context, sqlDB *sql.DB, d dialect) error {
	dir, gooseDialect := "migrations/postgres", "postgres"
	if d == dialectSQLite {
		dir, gooseDialect = "migrations/sqlite", "sqlite3"
	}
	sub, err := fs.Sub(migrations, dir)
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(sub)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
