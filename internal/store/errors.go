package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when a profile cannot be created
	// because another profile already uses the same login.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrProfileNotFound is returned when no profile matches the requested
	// login or ID.
	ErrProfileNotFound = errors.New("profile was not found")

	// ErrNoteNotFound is returned when a read, update or delete targets a
	// note (identified by id and profile_id) that does not exist.
	ErrNoteNotFound = errors.New("note was not found")

	// ErrUnsupportedDialect is returned when a DB is asked to migrate with a
	// dialect it was not opened with.
	ErrUnsupportedDialect = errors.New("unsupported sql dialect")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when squirrel cannot render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when row iteration fails mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
