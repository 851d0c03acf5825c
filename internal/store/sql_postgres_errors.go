package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells a caller whether a failed statement may succeed
// when repeated.
type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

// PostgresErrorClassifier is the [ErrorClassificator] of the backend record
// repository.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify marks lost connections, rolled back transactions and a server
// that is starting up or shutting down as [Retryable]. Driver errors that
// never reached the server count as retryable when pgconn says so. Anything
// else, constraint violations and malformed ids included, is [NonRetryable].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}
	if pgconn.SafeToRetry(err) {
		return Retryable
	}

	return NonRetryable
}

// ClassifyPgError classifies by SQLSTATE. Whole classes 08 (connection
// exception) and 40 (transaction rollback) are retryable, plus the class 57
// codes a restarting server reports.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	code := pgErr.Code

	switch {
	case pgerrcode.IsConnectionException(code),
		pgerrcode.IsTransactionRollback(code):
		return Retryable
	case code == pgerrcode.CannotConnectNow,
		code == pgerrcode.AdminShutdown,
		code == pgerrcode.CrashShutdown:
		return Retryable
	default:
		return NonRetryable
	}
}

// wrapDriverError wraps err with sentinel, and additionally with
// [ErrTransient] when classifier deems it [Retryable].
func wrapDriverError(classifier ErrorClassificator, sentinel, err error) error {
	if classifier != nil && classifier.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w: %w", ErrTransient, sentinel, err)
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
