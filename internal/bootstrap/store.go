package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/GoSim-25-26J-441/progress-tracker/config"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/storage/postgres"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/storage/schema"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/storage/sqlite"
)

// OpenStore connects to the configured database and ensures the schema.
func OpenStore(ctx context.Context, cfg *config.DatabaseConfig) (*sql.DB, error) {
	var (
		db      *sql.DB
		dialect schema.Dialect
		err     error
	)

	switch cfg.Driver {
	case config.DriverPostgres:
		db, err = postgres.NewConnection(ctx, cfg)
		dialect = schema.Postgres
	case config.DriverSQLite:
		db, err = sqlite.NewConnection(cfg.SQLitePath)
		dialect = schema.SQLite
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := schema.Ensure(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
