package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ivkonovalov/shopdesk/models"
)

var errStorage = errors.New("storage error")

// ─────────────────────────────────────────────
// Mock: store.EntityRepository
// ─────────────────────────────────────────────

type mockEntityRepository struct {
	listEntitiesFn     func(ctx context.Context, onlyActive bool) ([]models.Entity, error)
	getEntityByIDFn    func(ctx context.Context, id int64) (models.Entity, error)
	getEntityBySlugFn  func(ctx context.Context, slug string) (models.Entity, error)
	createEntityFn     func(ctx context.Context, entity models.Entity) (models.Entity, error)
	updateEntityFn     func(ctx context.Context, id int64, update models.EntityUpdate) error
	deleteEntityFn     func(ctx context.Context, id int64) error
	listFieldsFn       func(ctx context.Context, entityID int64) ([]models.Field, error)
	getFieldFn         func(ctx context.Context, fieldID int64) (models.Field, error)
	createFieldFn      func(ctx context.Context, field models.Field) (models.Field, error)
	updateFieldFn      func(ctx context.Context, fieldID int64, update models.FieldUpdate) error
	deleteFieldFn      func(ctx context.Context, fieldID int64) error
	countFieldValuesFn func(ctx context.Context, fieldID int64) (int64, error)
}

func (m *mockEntityRepository) ListEntities(ctx context.Context, onlyActive bool) ([]models.Entity, error) {
	if m.listEntitiesFn != nil {
		return m.listEntitiesFn(ctx, onlyActive)
	}
	return nil, nil
}

func (m *mockEntityRepository) GetEntityByID(ctx context.Context, id int64) (models.Entity, error) {
	if m.getEntityByIDFn != nil {
		return m.getEntityByIDFn(ctx, id)
	}
	return models.Entity{}, nil
}

func (m *mockEntityRepository) GetEntityBySlug(ctx context.Context, slug string) (models.Entity, error) {
	if m.getEntityBySlugFn != nil {
		return m.getEntityBySlugFn(ctx, slug)
	}
	return models.Entity{}, nil
}

func (m *mockEntityRepository) CreateEntity(ctx context.Context, entity models.Entity) (models.Entity, error) {
	if m.createEntityFn != nil {
		return m.createEntityFn(ctx, entity)
	}
	return entity, nil
}

func (m *mockEntityRepository) UpdateEntity(ctx context.Context, id int64, update models.EntityUpdate) error {
	if m.updateEntityFn != nil {
		return m.updateEntityFn(ctx, id, update)
	}
	return nil
}

func (m *mockEntityRepository) DeleteEntity(ctx context.Context, id int64) error {
	if m.deleteEntityFn != nil {
		return m.deleteEntityFn(ctx, id)
	}
	return nil
}

func (m *mockEntityRepository) ListFields(ctx context.Context, entityID int64) ([]models.Field, error) {
	if m.listFieldsFn != nil {
		return m.listFieldsFn(ctx, entityID)
	}
	return nil, nil
}

func (m *mockEntityRepository) GetField(ctx context.Context, fieldID int64) (models.Field, error) {
	if m.getFieldFn != nil {
		return m.getFieldFn(ctx, fieldID)
	}
	return models.Field{}, nil
}

func (m *mockEntityRepository) CreateField(ctx context.Context, field models.Field) (models.Field, error) {
	if m.createFieldFn != nil {
		return m.createFieldFn(ctx, field)
	}
	return field, nil
}

func (m *mockEntityRepository) UpdateField(ctx context.Context, fieldID int64, update models.FieldUpdate) error {
	if m.updateFieldFn != nil {
		return m.updateFieldFn(ctx, fieldID, update)
	}
	return nil
}

func (m *mockEntityRepository) DeleteField(ctx context.Context, fieldID int64) error {
	if m.deleteFieldFn != nil {
		return m.deleteFieldFn(ctx, fieldID)
	}
	return nil
}

func (m *mockEntityRepository) CountFieldValues(ctx context.Context, fieldID int64) (int64, error) {
	if m.countFieldValuesFn != nil {
		return m.countFieldValuesFn(ctx, fieldID)
	}
	return 0, nil
}

// ─────────────────────────────────────────────
// Mock: store.RecordRepository
// ─────────────────────────────────────────────

type mockRecordRepository struct {
	listRecordsFn  func(ctx context.Context, entityID int64) ([]models.Record, error)
	getRecordFn    func(ctx context.Context, id uuid.UUID) (models.Record, error)
	listValuesFn   func(ctx context.Context, recordIDs []uuid.UUID) ([]models.Value, error)
	createRecordFn func(ctx context.Context, entityID int64, mutations []models.ValueMutation) (models.Record, error)
	updateRecordFn func(ctx context.Context, id uuid.UUID, mutations []models.ValueMutation) error
	deleteRecordFn func(ctx context.Context, id uuid.UUID) error
	valueExistsFn  func(ctx context.Context, fieldID int64, value models.Value, excludeRecordID uuid.UUID) (bool, error)
}

func (m *mockRecordRepository) ListRecords(ctx context.Context, entityID int64) ([]models.Record, error) {
	if m.listRecordsFn != nil {
		return m.listRecordsFn(ctx, entityID)
	}
	return nil, nil
}

func (m *mockRecordRepository) GetRecord(ctx context.Context, id uuid.UUID) (models.Record, error) {
	if m.getRecordFn != nil {
		return m.getRecordFn(ctx, id)
	}
	return models.Record{}, nil
}

func (m *mockRecordRepository) ListValues(ctx context.Context, recordIDs []uuid.UUID) ([]models.Value, error) {
	if m.listValuesFn != nil {
		return m.listValuesFn(ctx, recordIDs)
	}
	return nil, nil
}

func (m *mockRecordRepository) CreateRecord(ctx context.Context, entityID int64, mutations []models.ValueMutation) (models.Record, error) {
	if m.createRecordFn != nil {
		return m.createRecordFn(ctx, entityID, mutations)
	}
	return models.Record{ID: uuid.New(), EntityID: entityID}, nil
}

func (m *mockRecordRepository) UpdateRecord(ctx context.Context, id uuid.UUID, mutations []models.ValueMutation) error {
	if m.updateRecordFn != nil {
		return m.updateRecordFn(ctx, id, mutations)
	}
	return nil
}

func (m *mockRecordRepository) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	if m.deleteRecordFn != nil {
		return m.deleteRecordFn(ctx, id)
	}
	return nil
}

func (m *mockRecordRepository) ValueExists(ctx context.Context, fieldID int64, value models.Value, excludeRecordID uuid.UUID) (bool, error) {
	if m.valueExistsFn != nil {
		return m.valueExistsFn(ctx, fieldID, value, excludeRecordID)
	}
	return false, nil
}
