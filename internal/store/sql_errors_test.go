package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassifier_Classify(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{name: "nil", err: nil, want: NonRetryable},
		{name: "plain error", err: errors.New("boom"), want: NonRetryable},
		{name: "connection failure", err: &pgconn.PgError{Code: pgerrcode.ConnectionFailure}, want: Retryable},
		{name: "serialization failure", err: &pgconn.PgError{Code: pgerrcode.SerializationFailure}, want: Retryable},
		{name: "wrapped deadlock", err: fmt.Errorf("op: %w", &pgconn.PgError{Code: pgerrcode.DeadlockDetected}), want: Retryable},
		{name: "cannot connect now", err: &pgconn.PgError{Code: pgerrcode.CannotConnectNow}, want: Retryable},
		{name: "unique violation", err: &pgconn.PgError{Code: pgerrcode.UniqueViolation}, want: NonRetryable},
		{name: "invalid uuid text", err: &pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation}, want: NonRetryable},
		{name: "undefined table", err: &pgconn.PgError{Code: pgerrcode.UndefinedTable}, want: NonRetryable},
		{name: "admin shutdown", err: &pgconn.PgError{Code: pgerrcode.AdminShutdown}, want: Retryable},
		{name: "query canceled", err: &pgconn.PgError{Code: pgerrcode.QueryCanceled}, want: NonRetryable},
		{name: "foreign key violation", err: &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, want: NonRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestSQLiteErrorClassifier_Classify(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.Equal(t, Retryable, c.Classify(fmt.Errorf("put: %w", sqlite3.Error{Code: sqlite3.ErrLocked})))
	assert.Equal(t, NonRetryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("boom")))
}

func TestStorageError(t *testing.T) {
	err := storageError("put", sqlite3.Error{Code: sqlite3.ErrFull})
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	err = storageError("put", sqlite3.Error{Code: sqlite3.ErrReadonly})
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	err = storageError("put", sqlite3.Error{Code: sqlite3.ErrConstraint})
	assert.NotErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorContains(t, err, "put")
}

func TestWrapDriverError(t *testing.T) {
	c := NewPostgresErrorClassifier()
	cause := &pgconn.PgError{Code: pgerrcode.ConnectionException}

	err := wrapDriverError(c, ErrExecutingQuery, cause)
	assert.ErrorIs(t, err, ErrTransient)
	assert.ErrorIs(t, err, ErrExecutingQuery)

	var pgErr *pgconn.PgError
	assert.ErrorAs(t, err, &pgErr)

	err = wrapDriverError(c, ErrExecutingQuery, errors.New("syntax"))
	assert.NotErrorIs(t, err, ErrTransient)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file:/tmp/a.db?_busy_timeout=5000&_journal_mode=WAL", sqliteDSN("/tmp/a.db"))
	assert.Equal(t, "file:a.db?mode=ro", sqliteDSN("file:a.db?mode=ro"))
}
