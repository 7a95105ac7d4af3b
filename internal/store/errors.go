package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when a vault is created for an email
	// that already owns one. Both engines map their unique violation to it.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrVaultNotFound is returned when no vault matches the lookup.
	ErrVaultNotFound = errors.New("vault was not found")

	// ErrFileNotFound is returned when no file row matches the lookup.
	ErrFileNotFound = errors.New("file was not found")

	// ErrSessionNotFound is returned by the client session repository when
	// nothing was saved yet or the session was cleared.
	ErrSessionNotFound = errors.New("local session not found")
)

// Blob store errors.
var (
	// ErrBlobNotFound is returned when the blob key points to no file.
	ErrBlobNotFound = errors.New("blob was not found")

	// ErrInvalidBlobKey is returned for empty, absolute or escaping keys.
	ErrInvalidBlobKey = errors.New("invalid blob key")

	// ErrBlobExists is returned when a move would overwrite another blob.
	ErrBlobExists = errors.New("blob already exists")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query with
	// squirrel fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommittingTransaction is returned when committing fails.
	ErrCommittingTransaction = errors.New("failed to commit transaction")

	// ErrUnsupportedDSN is returned when the DSN selects no known engine.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")

	ErrDBNotInitialized = errors.New("database is not initialized")
)
