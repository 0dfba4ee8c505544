// Package migrations applies the embedded Postgres schema.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/poofware/rental-service/internal/utils"
)

//go:embed sql/*.sql
var files embed.FS

// Advisory lock key held while migrating so two replicas never race.
const lockID int64 = 7_245_001

// Migration is one embedded SQL file. Version is the numeric file prefix.
type Migration struct {
	Version string
	Name    string
	SQL     string
}

// Executor is satisfied by *pgxpool.Pool and pgx.Tx.
type Executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// List returns the embedded migrations ordered by version.
func List() ([]Migration, error) {
	entries, err := fs.ReadDir(files, "sql")
	if err != nil {
		return nil, err
	}
	var out []Migration
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		body, err := files.ReadFile("sql/" + e.Name())
		if err != nil {
			return nil, err
		}
		base := strings.TrimSuffix(e.Name(), ".sql")
		version, name, ok := strings.Cut(base, "_")
		if !ok {
			return nil, fmt.Errorf("migration %q has no version prefix", e.Name())
		}
		out = append(out, Migration{Version: version, Name: name, SQL: string(body)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// Up applies every migration not yet recorded in schema_migrations.
func Up(ctx context.Context, db Executor) error {
	if _, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    VARCHAR(14) PRIMARY KEY,
			name       VARCHAR(255) NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	if _, err := db.Exec(ctx, "SELECT pg_advisory_lock($1)", lockID); err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}
	defer func() {
		if _, err := db.Exec(context.Background(), "SELECT pg_advisory_unlock($1)", lockID); err != nil {
			utils.Logger.WithError(err).Warn("Failed to release migration lock")
		}
	}()

	migrations, err := List()
	if err != nil {
		return err
	}
	for _, m := range migrations {
		var applied bool
		if err := db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version=$1)`, m.Version,
		).Scan(&applied); err != nil {
			return fmt.Errorf("failed to check migration %s: %w", m.Version, err)
		}
		if applied {
			continue
		}
		if _, err := db.Exec(ctx, m.SQL); err != nil {
			return fmt.Errorf("migration %s_%s failed: %w", m.Version, m.Name, err)
		}
		if _, err := db.Exec(ctx,
			`INSERT INTO schema_migrations (version, name) VALUES ($1,$2)`, m.Version, m.Name,
		); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", m.Version, err)
		}
		utils.Logger.Infof("Applied migration %s_%s", m.Version, m.Name)
	}
	return nil
}
