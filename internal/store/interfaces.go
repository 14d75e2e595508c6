package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/ivkonovalov/shopdesk/models"
)

// EntityRepository persists the catalog side of the engine: entity
// definitions and their field lists.
type EntityRepository interface {
	ListEntities(ctx context.Context, onlyActive bool) ([]models.Entity, error)
	GetEntityByID(ctx context.Context, id int64) (models.Entity, error)
	GetEntityBySlug(ctx context.Context, slug string) (models.Entity, error)
	CreateEntity(ctx context.Context, entity models.Entity) (models.Entity, error)
	UpdateEntity(ctx context.Context, id int64, update models.EntityUpdate) error
	DeleteEntity(ctx context.Context, id int64) error

	ListFields(ctx context.Context, entityID int64) ([]models.Field, error)
	GetField(ctx context.Context, fieldID int64) (models.Field, error)
	CreateField(ctx context.Context, field models.Field) (models.Field, error)
	UpdateField(ctx context.Context, fieldID int64, update models.FieldUpdate) error
	DeleteField(ctx context.Context, fieldID int64) error

	// CountFieldValues reports how many value rows reference the field.
	// Used to hard-block field type changes once values exist.
	CountFieldValues(ctx context.Context, fieldID int64) (int64, error)
}

// RecordRepository persists the EAV side of the engine: record rows and
// their sparse value rows. Create and Update apply the whole mutation plan
// inside a single transaction so a record's values stay internally
// consistent even if the process dies mid-write.
type RecordRepository interface {
	ListRecords(ctx context.Context, entityID int64) ([]models.Record, error)
	GetRecord(ctx context.Context, id uuid.UUID) (models.Record, error)
	ListValues(ctx context.Context, recordIDs []uuid.UUID) ([]models.Value, error)

	CreateRecord(ctx context.Context, entityID int64, mutations []models.ValueMutation) (models.Record, error)
	UpdateRecord(ctx context.Context, id uuid.UUID, mutations []models.ValueMutation) error
	DeleteRecord(ctx context.Context, id uuid.UUID) error

	// ValueExists reports whether another record of the same entity already
	// stores the given slot value for the field. excludeRecordID (when not
	// uuid.Nil) is left out of the search so updates do not collide with
	// the record being updated.
	ValueExists(ctx context.Context, fieldID int64, value models.Value, excludeRecordID uuid.UUID) (bool, error)
}
