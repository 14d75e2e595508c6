package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ivkonovalov/shopdesk/internal/logger"
	"github.com/ivkonovalov/shopdesk/models"
)

// entityRepository is the PostgreSQL-backed implementation of
// [EntityRepository]. It executes all catalog CRUD operations directly
// against the "entities" and "entity_fields" tables using the embedded
// [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (entity_id, slug, field_id, etc.).
type entityRepository struct {
	*DB
	logger *logger.Logger
}

// NewEntityRepository constructs an [EntityRepository] backed by the
// provided database connection and logger.
func NewEntityRepository(db *DB, logger *logger.Logger) EntityRepository {
	return &entityRepository{
		DB:     db,
		logger: logger,
	}
}

// ListEntities returns all entity definitions ordered by display_order.
// When onlyActive is true, soft-disabled entities are filtered out.
func (e *entityRepository) ListEntities(ctx context.Context, onlyActive bool) ([]models.Entity, error) {
	log := logger.FromContext(ctx)

	query := listEntitiesQuery
	if onlyActive {
		query = listActiveEntitiesQuery
	}

	rows, err := e.DB.QueryContext(ctx, query)
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.ListEntities").
			Bool("only_active", onlyActive).
			Msg("failed to execute query for listing entities")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entities := make([]models.Entity, 0, 16)

	for rows.Next() {
		var entity models.Entity

		scanErr := rows.Scan(
			&entity.ID,
			&entity.Slug,
			&entity.Label,
			&entity.Icon,
			&entity.Description,
			&entity.DisplayOrder,
			&entity.IsActive,
			&entity.CreatedAt,
			&entity.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "entityRepository.ListEntities").
				Msg("failed to scan entity row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		entities = append(entities, entity)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "entityRepository.ListEntities").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return entities, nil
}

// GetEntityByID retrieves a single entity definition by its id.
// Returns [ErrEntityNotFound] when the id matches no row.
func (e *entityRepository) GetEntityByID(ctx context.Context, id int64) (models.Entity, error) {
	return e.getEntity(ctx, getEntityByIDQuery, id)
}

// GetEntityBySlug retrieves a single entity definition by its slug.
// Returns [ErrEntityNotFound] when the slug matches no row.
func (e *entityRepository) GetEntityBySlug(ctx context.Context, slug string) (models.Entity, error) {
	return e.getEntity(ctx, getEntityBySlugQuery, slug)
}

func (e *entityRepository) getEntity(ctx context.Context, query string, key any) (models.Entity, error) {
	log := logger.FromContext(ctx)

	var entity models.Entity
	err := e.DB.QueryRowContext(ctx, query, key).Scan(
		&entity.ID,
		&entity.Slug,
		&entity.Label,
		&entity.Icon,
		&entity.Description,
		&entity.DisplayOrder,
		&entity.IsActive,
		&entity.CreatedAt,
		&entity.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Entity{}, ErrEntityNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.getEntity").
			Any("key", key).
			Msg("failed to execute query for getting entity")
		return models.Entity{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return entity, nil
}

// CreateEntity inserts a new entity definition and returns it with the
// server-assigned id and timestamps populated.
//
// A unique-constraint violation on the slug column is translated into
// [ErrSlugAlreadyExists].
func (e *entityRepository) CreateEntity(ctx context.Context, entity models.Entity) (models.Entity, error) {
	log := logger.FromContext(ctx)

	err := e.DB.QueryRowContext(ctx, createEntityQuery,
		entity.Slug,
		entity.Label,
		entity.Icon,
		entity.Description,
		entity.DisplayOrder,
		entity.IsActive,
	).Scan(&entity.ID, &entity.CreatedAt, &entity.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			log.Warn().
				Str("func", "entityRepository.CreateEntity").
				Str("slug", entity.Slug).
				Msg("entity slug already exists")
			return models.Entity{}, ErrSlugAlreadyExists
		}

		log.Err(err).
			Str("func", "entityRepository.CreateEntity").
			Str("slug", entity.Slug).
			Msg("failed to insert entity")
		return models.Entity{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	log.Info().
		Str("func", "entityRepository.CreateEntity").
		Str("slug", entity.Slug).
		Int64("entity_id", entity.ID).
		Msg("successfully created entity")

	return entity, nil
}

// UpdateEntity applies a partial update to an entity definition.
// Returns [ErrEntityNotFound] when the id matches no row.
func (e *entityRepository) UpdateEntity(ctx context.Context, id int64, update models.EntityUpdate) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateEntityQuery(id, update)
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.UpdateEntity").
			Int64("entity_id", id).
			Msg("failed to build update query")
		return err
	}

	result, execErr := e.DB.ExecContext(ctx, query, args...)
	if execErr != nil {
		log.Err(execErr).
			Str("func", "entityRepository.UpdateEntity").
			Int64("entity_id", id).
			Msg("failed to execute update query")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Warn().
			Str("func", "entityRepository.UpdateEntity").
			Int64("entity_id", id).
			Msg("entity not found")
		return ErrEntityNotFound
	}

	return nil
}

// DeleteEntity removes an entity definition. Fields, records, and values
// owned by the entity go with it through ON DELETE CASCADE; ownership is
// strictly hierarchical, so no orphan cleanup is needed here.
//
// Returns [ErrEntityNotFound] when the id matches no row.
func (e *entityRepository) DeleteEntity(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := e.DB.ExecContext(ctx, deleteEntityQuery, id)
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.DeleteEntity").
			Int64("entity_id", id).
			Msg("failed to execute delete query")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Warn().
			Str("func", "entityRepository.DeleteEntity").
			Int64("entity_id", id).
			Msg("entity not found")
		return ErrEntityNotFound
	}

	log.Info().
		Str("func", "entityRepository.DeleteEntity").
		Int64("entity_id", id).
		Msg("successfully deleted entity with all fields, records and values")

	return nil
}

// ListFields returns all field definitions of an entity ordered by
// display_order.
func (e *entityRepository) ListFields(ctx context.Context, entityID int64) ([]models.Field, error) {
	log := logger.FromContext(ctx)

	rows, err := e.DB.QueryContext(ctx, listFieldsQuery, entityID)
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.ListFields").
			Int64("entity_id", entityID).
			Msg("failed to execute query for listing fields")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	fields := make([]models.Field, 0, 16)

	for rows.Next() {
		field, scanErr := scanField(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "entityRepository.ListFields").
				Int64("entity_id", entityID).
				Msg("failed to scan field row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		fields = append(fields, field)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "entityRepository.ListFields").
			Int64("entity_id", entityID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return fields, nil
}

// GetField retrieves a single field definition by its id.
// Returns [ErrFieldNotFound] when the id matches no row.
func (e *entityRepository) GetField(ctx context.Context, fieldID int64) (models.Field, error) {
	log := logger.FromContext(ctx)

	row := e.DB.QueryRowContext(ctx, getFieldQuery, fieldID)
	field, err := scanField(row)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Field{}, ErrFieldNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.GetField").
			Int64("field_id", fieldID).
			Msg("failed to execute query for getting field")
		return models.Field{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return field, nil
}

// CreateField inserts a new field definition under its owning entity and
// returns it with the server-assigned id populated.
//
// A violation of the composite unique constraint (entity_id, field_name)
// is translated into [ErrFieldNameAlreadyExists].
func (e *entityRepository) CreateField(ctx context.Context, field models.Field) (models.Field, error) {
	log := logger.FromContext(ctx)

	err := e.DB.QueryRowContext(ctx, createFieldQuery,
		field.EntityID,
		field.FieldName,
		field.FieldLabel,
		field.FieldType,
		field.FieldOptions,
		field.IsRequired,
		field.IsUnique,
		field.ShowInList,
		field.ShowInForm,
		field.DisplayOrder,
		field.DefaultValue,
	).Scan(&field.ID, &field.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			log.Warn().
				Str("func", "entityRepository.CreateField").
				Int64("entity_id", field.EntityID).
				Str("field_name", field.FieldName).
				Msg("field name already exists for this entity")
			return models.Field{}, ErrFieldNameAlreadyExists
		}

		log.Err(err).
			Str("func", "entityRepository.CreateField").
			Int64("entity_id", field.EntityID).
			Str("field_name", field.FieldName).
			Msg("failed to insert field")
		return models.Field{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	log.Info().
		Str("func", "entityRepository.CreateField").
		Int64("entity_id", field.EntityID).
		Int64("field_id", field.ID).
		Str("field_name", field.FieldName).
		Msg("successfully created field")

	return field, nil
}

// UpdateField applies a partial update to a field definition.
// Returns [ErrFieldNotFound] when the id matches no row.
func (e *entityRepository) UpdateField(ctx context.Context, fieldID int64, update models.FieldUpdate) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateFieldQuery(fieldID, update)
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.UpdateField").
			Int64("field_id", fieldID).
			Msg("failed to build update query")
		return err
	}

	result, execErr := e.DB.ExecContext(ctx, query, args...)
	if execErr != nil {
		log.Err(execErr).
			Str("func", "entityRepository.UpdateField").
			Int64("field_id", fieldID).
			Msg("failed to execute update query")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Warn().
			Str("func", "entityRepository.UpdateField").
			Int64("field_id", fieldID).
			Msg("field not found")
		return ErrFieldNotFound
	}

	return nil
}

// DeleteField removes one field definition. Values referencing the field
// go with it through ON DELETE CASCADE; other fields and records of the
// entity stay untouched.
//
// Returns [ErrFieldNotFound] when the id matches no row.
func (e *entityRepository) DeleteField(ctx context.Context, fieldID int64) error {
	log := logger.FromContext(ctx)

	result, err := e.DB.ExecContext(ctx, deleteFieldQuery, fieldID)
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.DeleteField").
			Int64("field_id", fieldID).
			Msg("failed to execute delete query")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Warn().
			Str("func", "entityRepository.DeleteField").
			Int64("field_id", fieldID).
			Msg("field not found")
		return ErrFieldNotFound
	}

	return nil
}

// CountFieldValues reports how many value rows reference the field.
func (e *entityRepository) CountFieldValues(ctx context.Context, fieldID int64) (int64, error) {
	log := logger.FromContext(ctx)

	var count int64
	err := e.DB.QueryRowContext(ctx, countFieldValuesQuery, fieldID).Scan(&count)
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.CountFieldValues").
			Int64("field_id", fieldID).
			Msg("failed to count field values")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanField(row rowScanner) (models.Field, error) {
	var field models.Field

	err := row.Scan(
		&field.ID,
		&field.EntityID,
		&field.FieldName,
		&field.FieldLabel,
		&field.FieldType,
		&field.FieldOptions,
		&field.IsRequired,
		&field.IsUnique,
		&field.ShowInList,
		&field.ShowInForm,
		&field.DisplayOrder,
		&field.DefaultValue,
		&field.CreatedAt,
	)
	if err != nil {
		return models.Field{}, err
	}

	return field, nil
}
