package store

import "github.com/ivkonovalov/shopdesk/internal/logger"

// Repositories aggregates all persistence interfaces consumed by the
// service layer.
type Repositories struct {
	EntityRepository EntityRepository
	RecordRepository RecordRepository
}

// NewRepositories wires the PostgreSQL-backed repositories on top of a
// shared database connection.
func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		EntityRepository: NewEntityRepository(db, log),
		RecordRepository: NewRecordRepository(db, log),
	}
}
