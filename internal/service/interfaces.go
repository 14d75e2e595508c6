package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/ivkonovalov/shopdesk/models"
)

// CatalogService exposes the entity catalog: entity definitions and their
// field lists. It owns all definition-level invariants (slug and field
// name patterns, the closed field type set, and the immutability rules)
// while uniqueness of slugs and field names is delegated to the store's
// constraints.
type CatalogService interface {
	ListEntities(ctx context.Context, onlyActive bool) ([]models.Entity, error)

	// GetEntity resolves an entity by numeric id or slug and returns it
	// with its ordered field list attached.
	GetEntity(ctx context.Context, idOrSlug string) (models.Entity, error)

	CreateEntity(ctx context.Context, entity models.Entity) (models.Entity, error)
	UpdateEntity(ctx context.Context, id int64, update models.EntityUpdate) error
	DeleteEntity(ctx context.Context, id int64) error

	CreateField(ctx context.Context, field models.Field) (models.Field, error)
	UpdateField(ctx context.Context, fieldID int64, update models.FieldUpdate) error
	DeleteField(ctx context.Context, fieldID int64) error
}

// RecordService exposes CRUD over EAV-backed records. Writes validate
// every submitted field before any value is stored, then hand the store a
// mutation plan applied in one transaction. Reads reconstruct dense, flat
// record objects from the sparse value rows.
type RecordService interface {
	ListRecords(ctx context.Context, entitySlug string) ([]models.AssembledRecord, error)
	GetRecord(ctx context.Context, entitySlug string, id uuid.UUID) (models.AssembledRecord, error)

	CreateRecord(ctx context.Context, entitySlug string, data models.RecordData) (models.Record, error)
	UpdateRecord(ctx context.Context, entitySlug string, id uuid.UUID, data models.RecordData) error
	DeleteRecord(ctx context.Context, entitySlug string, id uuid.UUID) error
}
