package http

import (
	"context"

	"github.com/google/uuid"
	"github.com/ivkonovalov/shopdesk/models"
)

// ─────────────────────────────────────────────
// CatalogService mock
// ─────────────────────────────────────────────

type mockCatalogService struct {
	listEntitiesFn func(ctx context.Context, onlyActive bool) ([]models.Entity, error)
	getEntityFn    func(ctx context.Context, idOrSlug string) (models.Entity, error)
	createEntityFn func(ctx context.Context, entity models.Entity) (models.Entity, error)
	updateEntityFn func(ctx context.Context, id int64, update models.EntityUpdate) error
	deleteEntityFn func(ctx context.Context, id int64) error
	createFieldFn  func(ctx context.Context, field models.Field) (models.Field, error)
	updateFieldFn  func(ctx context.Context, fieldID int64, update models.FieldUpdate) error
	deleteFieldFn  func(ctx context.Context, fieldID int64) error
}

func (m *mockCatalogService) ListEntities(ctx context.Context, onlyActive bool) ([]models.Entity, error) {
	if m.listEntitiesFn != nil {
		return m.listEntitiesFn(ctx, onlyActive)
	}
	return []models.Entity{}, nil
}

func (m *mockCatalogService) GetEntity(ctx context.Context, idOrSlug string) (models.Entity, error) {
	if m.getEntityFn != nil {
		return m.getEntityFn(ctx, idOrSlug)
	}
	return models.Entity{}, nil
}

func (m *mockCatalogService) CreateEntity(ctx context.Context, entity models.Entity) (models.Entity, error) {
	if m.createEntityFn != nil {
		return m.createEntityFn(ctx, entity)
	}
	return entity, nil
}

func (m *mockCatalogService) UpdateEntity(ctx context.Context, id int64, update models.EntityUpdate) error {
	if m.updateEntityFn != nil {
		return m.updateEntityFn(ctx, id, update)
	}
	return nil
}

func (m *mockCatalogService) DeleteEntity(ctx context.Context, id int64) error {
	if m.deleteEntityFn != nil {
		return m.deleteEntityFn(ctx, id)
	}
	return nil
}

func (m *mockCatalogService) CreateField(ctx context.Context, field models.Field) (models.Field, error) {
	if m.createFieldFn != nil {
		return m.createFieldFn(ctx, field)
	}
	return field, nil
}

func (m *mockCatalogService) UpdateField(ctx context.Context, fieldID int64, update models.FieldUpdate) error {
	if m.updateFieldFn != nil {
		return m.updateFieldFn(ctx, fieldID, update)
	}
	return nil
}

func (m *mockCatalogService) DeleteField(ctx context.Context, fieldID int64) error {
	if m.deleteFieldFn != nil {
		return m.deleteFieldFn(ctx, fieldID)
	}
	return nil
}

// ─────────────────────────────────────────────
// RecordService mock
// ─────────────────────────────────────────────

type mockRecordService struct {
	listRecordsFn  func(ctx context.Context, entitySlug string) ([]models.AssembledRecord, error)
	getRecordFn    func(ctx context.Context, entitySlug string, id uuid.UUID) (models.AssembledRecord, error)
	createRecordFn func(ctx context.Context, entitySlug string, data models.RecordData) (models.Record, error)
	updateRecordFn func(ctx context.Context, entitySlug string, id uuid.UUID, data models.RecordData) error
	deleteRecordFn func(ctx context.Context, entitySlug string, id uuid.UUID) error
}

func (m *mockRecordService) ListRecords(ctx context.Context, entitySlug string) ([]models.AssembledRecord, error) {
	if m.listRecordsFn != nil {
		return m.listRecordsFn(ctx, entitySlug)
	}
	return []models.AssembledRecord{}, nil
}

func (m *mockRecordService) GetRecord(ctx context.Context, entitySlug string, id uuid.UUID) (models.AssembledRecord, error) {
	if m.getRecordFn != nil {
		return m.getRecordFn(ctx, entitySlug, id)
	}
	return models.AssembledRecord{}, nil
}

func (m *mockRecordService) CreateRecord(ctx context.Context, entitySlug string, data models.RecordData) (models.Record, error) {
	if m.createRecordFn != nil {
		return m.createRecordFn(ctx, entitySlug, data)
	}
	return models.Record{}, nil
}

func (m *mockRecordService) UpdateRecord(ctx context.Context, entitySlug string, id uuid.UUID, data models.RecordData) error {
	if m.updateRecordFn != nil {
		return m.updateRecordFn(ctx, entitySlug, id, data)
	}
	return nil
}

func (m *mockRecordService) DeleteRecord(ctx context.Context, entitySlug string, id uuid.UUID) error {
	if m.deleteRecordFn != nil {
		return m.deleteRecordFn(ctx, entitySlug, id)
	}
	return nil
}
