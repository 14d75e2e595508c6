package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ivkonovalov/shopdesk/internal/fieldtype"
	"github.com/ivkonovalov/shopdesk/internal/logger"
	"github.com/ivkonovalov/shopdesk/internal/store"
	"github.com/ivkonovalov/shopdesk/models"
)

type recordService struct {
	entityRepository store.EntityRepository
	recordRepository store.RecordRepository

	logger *logger.Logger
}

// NewRecordService constructs a [RecordService] backed by the catalog and
// record repositories. Entity and field definitions are re-read from the
// store on every call; nothing is cached across requests.
func NewRecordService(entityRepository store.EntityRepository, recordRepository store.RecordRepository, logger *logger.Logger) RecordService {
	return &recordService{
		entityRepository: entityRepository,
		recordRepository: recordRepository,
		logger:           logger,
	}
}

// CreateRecord validates the submitted data against the entity's field
// list and stores a new record with its values in one transaction.
//
// Fields omitted from the payload fall back to their declared default
// value when one exists; required fields must end up with a value.
func (s *recordService) CreateRecord(ctx context.Context, entitySlug string, data models.RecordData) (models.Record, error) {
	log := logger.FromContext(ctx)

	entity, fields, err := s.resolveEntity(ctx, entitySlug)
	if err != nil {
		return models.Record{}, err
	}

	mutations, err := buildMutationPlan(fields, data, true)
	if err != nil {
		log.Warn().
			Str("func", "recordService.CreateRecord").
			Str("entity_slug", entitySlug).
			Err(err).
			Msg("record payload failed validation")
		return models.Record{}, err
	}

	if err := s.checkUniqueValues(ctx, fields, mutations, uuid.Nil); err != nil {
		return models.Record{}, err
	}

	return s.recordRepository.CreateRecord(ctx, entity.ID, mutations)
}

// UpdateRecord validates the submitted data and applies it to an existing
// record of the entity. Omitted fields stay untouched; explicit nulls and
// empty strings clear; everything else upserts.
func (s *recordService) UpdateRecord(ctx context.Context, entitySlug string, id uuid.UUID, data models.RecordData) error {
	log := logger.FromContext(ctx)

	entity, fields, err := s.resolveEntity(ctx, entitySlug)
	if err != nil {
		return err
	}

	record, err := s.recordRepository.GetRecord(ctx, id)
	if err != nil {
		return err
	}
	if record.EntityID != entity.ID {
		// The id exists but belongs to a different entity; from this
		// caller's point of view the record does not exist.
		return store.ErrRecordNotFound
	}

	mutations, err := buildMutationPlan(fields, data, false)
	if err != nil {
		log.Warn().
			Str("func", "recordService.UpdateRecord").
			Str("entity_slug", entitySlug).
			Str("record_id", id.String()).
			Err(err).
			Msg("record payload failed validation")
		return err
	}

	if err := s.checkUniqueValues(ctx, fields, mutations, id); err != nil {
		return err
	}

	return s.recordRepository.UpdateRecord(ctx, id, mutations)
}

// ListRecords returns every record of the entity as an assembled flat
// object, newest first. Records with zero values still appear, fully
// null-populated.
func (s *recordService) ListRecords(ctx context.Context, entitySlug string) ([]models.AssembledRecord, error) {
	entity, fields, err := s.resolveEntity(ctx, entitySlug)
	if err != nil {
		return nil, err
	}

	records, err := s.recordRepository.ListRecords(ctx, entity.ID)
	if err != nil {
		return nil, err
	}

	recordIDs := make([]uuid.UUID, 0, len(records))
	for _, record := range records {
		recordIDs = append(recordIDs, record.ID)
	}

	values, err := s.recordRepository.ListValues(ctx, recordIDs)
	if err != nil {
		return nil, err
	}

	return assembleRecords(fields, records, values), nil
}

// GetRecord returns one assembled record of the entity.
func (s *recordService) GetRecord(ctx context.Context, entitySlug string, id uuid.UUID) (models.AssembledRecord, error) {
	entity, fields, err := s.resolveEntity(ctx, entitySlug)
	if err != nil {
		return nil, err
	}

	record, err := s.recordRepository.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.EntityID != entity.ID {
		return nil, store.ErrRecordNotFound
	}

	values, err := s.recordRepository.ListValues(ctx, []uuid.UUID{record.ID})
	if err != nil {
		return nil, err
	}

	assembled := assembleRecords(fields, []models.Record{record}, values)
	return assembled[0], nil
}

// DeleteRecord removes a record of the entity and all of its values.
func (s *recordService) DeleteRecord(ctx context.Context, entitySlug string, id uuid.UUID) error {
	entity, err := s.entityRepository.GetEntityBySlug(ctx, entitySlug)
	if err != nil {
		return err
	}

	record, err := s.recordRepository.GetRecord(ctx, id)
	if err != nil {
		return err
	}
	if record.EntityID != entity.ID {
		return store.ErrRecordNotFound
	}

	return s.recordRepository.DeleteRecord(ctx, id)
}

// resolveEntity loads the entity by slug together with its field list.
func (s *recordService) resolveEntity(ctx context.Context, entitySlug string) (models.Entity, []models.Field, error) {
	entity, err := s.entityRepository.GetEntityBySlug(ctx, entitySlug)
	if err != nil {
		return models.Entity{}, nil, err
	}

	fields, err := s.entityRepository.ListFields(ctx, entity.ID)
	if err != nil {
		return models.Entity{}, nil, err
	}

	return entity, fields, nil
}

// buildMutationPlan turns a raw payload into an ordered value mutation
// plan, validating every submitted field before any write happens. A
// single coercion failure aborts the whole mutation: no partial value
// writes for one record.
//
// The tri-state per field:
//   - key absent: no mutation (on create, a declared default value is
//     coerced and written instead when applyDefaults is set);
//   - explicit null or empty string: a Clear mutation, rejected for
//     required fields;
//   - anything else: a coerced Set mutation.
//
// Keys in data that match no field of the entity are silently ignored;
// they never create ad-hoc fields.
func buildMutationPlan(fields []models.Field, data models.RecordData, applyDefaults bool) ([]models.ValueMutation, error) {
	mutations := make([]models.ValueMutation, 0, len(data))

	for _, field := range fields {
		input, submitted := data[field.FieldName]

		if !submitted {
			if applyDefaults && field.DefaultValue != nil && *field.DefaultValue != "" {
				value, err := fieldtype.Coerce(field, *field.DefaultValue)
				if err != nil {
					return nil, fmt.Errorf("%w: field %q", ErrInvalidDefaultValue, field.FieldName)
				}
				mutations = append(mutations, models.ValueMutation{FieldID: field.ID, Value: value})
				continue
			}

			if applyDefaults && field.IsRequired {
				return nil, fmt.Errorf("%w: %q", ErrRequiredFieldMissing, field.FieldName)
			}
			continue
		}

		if input.IsClear() {
			if field.IsRequired {
				if applyDefaults {
					return nil, fmt.Errorf("%w: %q", ErrRequiredFieldMissing, field.FieldName)
				}
				return nil, fmt.Errorf("%w: %q", ErrRequiredFieldCleared, field.FieldName)
			}
			mutations = append(mutations, models.ValueMutation{FieldID: field.ID, Clear: true})
			continue
		}

		value, err := fieldtype.Coerce(field, input.Raw())
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field.FieldName, err)
		}
		mutations = append(mutations, models.ValueMutation{FieldID: field.ID, Value: value})
	}

	return mutations, nil
}

// checkUniqueValues probes the store for collisions on every Set mutation
// that targets a unique-flagged field. excludeRecordID keeps an update
// from colliding with the record's own current value.
func (s *recordService) checkUniqueValues(ctx context.Context, fields []models.Field, mutations []models.ValueMutation, excludeRecordID uuid.UUID) error {
	uniqueFields := make(map[int64]models.Field, len(fields))
	for _, field := range fields {
		if field.IsUnique {
			uniqueFields[field.ID] = field
		}
	}
	if len(uniqueFields) == 0 {
		return nil
	}

	for _, mutation := range mutations {
		if mutation.Clear {
			continue
		}
		field, unique := uniqueFields[mutation.FieldID]
		if !unique {
			continue
		}

		exists, err := s.recordRepository.ValueExists(ctx, mutation.FieldID, mutation.Value, excludeRecordID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %q", ErrUniqueValueConflict, field.FieldName)
		}
	}

	return nil
}

// valueKey is the composite lookup key of the in-memory join: one value
// row per (record, field) pair.
type valueKey struct {
	recordID uuid.UUID
	fieldID  int64
}

// assembleRecords performs the sparse-to-dense reconstruction: every
// record is seeded with every field name set to nil, then the fetched
// values are overlaid, reading the physical slot the field's type declares.
// One bulk value fetch plus this in-memory join keeps the read path at two
// queries regardless of record count.
func assembleRecords(fields []models.Field, records []models.Record, values []models.Value) []models.AssembledRecord {
	lookup := make(map[valueKey]models.Value, len(values))
	for _, value := range values {
		lookup[valueKey{recordID: value.RecordID, fieldID: value.FieldID}] = value
	}

	assembled := make([]models.AssembledRecord, 0, len(records))

	for _, record := range records {
		flat := models.AssembledRecord{
			"id":         record.ID,
			"created_at": record.CreatedAt,
			"updated_at": record.UpdatedAt,
		}

		for _, field := range fields {
			flat[field.FieldName] = nil

			if value, ok := lookup[valueKey{recordID: record.ID, fieldID: field.ID}]; ok {
				flat[field.FieldName] = fieldtype.Extract(field, value)
			}
		}

		assembled = append(assembled, flat)
	}

	return assembled
}
