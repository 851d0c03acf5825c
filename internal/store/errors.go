package store

import "errors"

// Sentinel errors returned by the storage layer. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrStorageUnavailable is returned when the underlying storage cannot be
	// opened or written: quota exhausted, read-only media, missing
	// permissions or a corrupt file.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrCacheMiss is returned by [LocalStore.Get] when the key has never
	// been written.
	ErrCacheMiss = errors.New("cache miss")

	// ErrRecordNotFound is returned when a record with the requested id and
	// entity type does not exist.
	ErrRecordNotFound = errors.New("record not found")

	// ErrRecordAlreadyExists is returned when a record is created with an id
	// that is already taken.
	ErrRecordAlreadyExists = errors.New("record already exists")

	// ErrTransient is wrapped around driver errors that [ErrorClassificator]
	// marks as [Retryable].
	ErrTransient = errors.New("transient storage failure")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT, UPDATE or
	// DELETE fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when multi-row iteration fails midway.
	ErrScanningRows = errors.New("failed to scan rows")
)
