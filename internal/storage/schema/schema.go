// Package schema ensures the project and project_progress tables exist.
package schema

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
)

// Dialect names a supported SQL backend.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

//go:embed postgres.sql
var postgresDDL string

//go:embed sqlite.sql
var sqliteDDL string

// Statements returns the DDL for dialect split into single statements.
func Statements(d Dialect) ([]string, error) {
	var ddl string
	switch d {
	case Postgres:
		ddl = postgresDDL
	case SQLite:
		ddl = sqliteDDL
	default:
		return nil, fmt.Errorf("unsupported dialect %q", d)
	}

	var out []string
	for _, stmt := range strings.Split(ddl, ";") {
		if s := strings.TrimSpace(stmt); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// Ensure creates any missing tables and indexes. It is idempotent.
func Ensure(ctx context.Context, db *sql.DB, d Dialect) error {
	stmts, err := Statements(d)
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
