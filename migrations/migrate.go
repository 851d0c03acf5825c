// Package migrations embeds the goose schema migrations of the local client
// store (sqlite3) and of the reference backend (postgres).
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed client/*.sql server/*.sql
var embedMigrations embed.FS

// Schema selects a migration set together with its goose dialect.
type Schema struct {
	dir     string
	dialect goose.Dialect
}

var (
	// ClientSchema is the local store schema: cache and mutation_queue tables.
	ClientSchema = Schema{dir: "client", dialect: goose.DialectSQLite3}

	// ServerSchema is the backend records schema.
	ServerSchema = Schema{dir: "server", dialect: goose.DialectPostgres}
)

// Migrate applies every pending migration of schema to db.
func Migrate(ctx context.Context, db *sql.DB, schema Schema) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	migrationsFS, err := fs.Sub(embedMigrations, schema.dir)
	if err != nil {
		return fmt.Errorf("migration error opening %s migrations: %w", schema.dir, err)
	}

	provider, err := goose.NewProvider(schema.dialect, db, migrationsFS)
	if err != nil {
		return fmt.Errorf("migration error creating provider: %w", err)
	}

	if _, err = provider.Up(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
