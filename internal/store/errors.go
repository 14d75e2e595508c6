package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEntityNotFound is returned when a catalog lookup by id or slug
	// matches no entity row.
	ErrEntityNotFound = errors.New("entity was not found")

	// ErrFieldNotFound is returned when a field lookup by id matches no
	// field definition row.
	ErrFieldNotFound = errors.New("field was not found")

	// ErrRecordNotFound is returned when a record lookup by id matches no
	// record row.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrSlugAlreadyExists is returned when an entity INSERT violates the
	// unique constraint on the slug column.
	ErrSlugAlreadyExists = errors.New("entity slug already exists")

	// ErrFieldNameAlreadyExists is returned when a field INSERT violates
	// the composite unique constraint on (entity_id, field_name).
	ErrFieldNameAlreadyExists = errors.New("field name already exists for this entity")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. an empty SET clause or unsupported argument type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
