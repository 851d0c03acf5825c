package store

import (
	"context"
	"database/sql"

	"github.com/MKhiriev/go-clinic-keeper/internal/logger"
	"github.com/MKhiriev/go-clinic-keeper/migrations"
)

// DB wraps a database/sql handle together with the error classifier of its
// driver and the schema it migrates to.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	schema             migrations.Schema
	logger             *logger.Logger
}

// ErrorClassificator decides whether a driver error is worth retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// Migrate applies pending schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.schema)
}
