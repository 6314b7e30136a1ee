package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrAccountNotFound is returned when a lookup, update or delete targets
	// an account that does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrEmailAlreadyExists is returned when an insert or update violates the
	// unique index on users.email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNicknameAlreadyExists is returned when an insert or update violates
	// the unique index on users.nickname.
	ErrNicknameAlreadyExists = errors.New("nickname already exists")

	// ErrUnsupportedDSN is returned by NewConnect for DSNs that are neither
	// PostgreSQL nor SQLite.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan account rows")
)
