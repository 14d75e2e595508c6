package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/ivkonovalov/shopdesk/internal/fieldtype"
	"github.com/ivkonovalov/shopdesk/internal/logger"
	"github.com/ivkonovalov/shopdesk/internal/store"
	"github.com/ivkonovalov/shopdesk/models"
)

// identifierPattern constrains entity slugs and field names: lowercase
// letter first, then lowercase letters, digits, or underscores.
var identifierPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// reservedFieldNames are the engine-managed keys of an assembled record.
// A field with one of these names would be shadowed on every read.
var reservedFieldNames = map[string]struct{}{
	"id":         {},
	"created_at": {},
	"updated_at": {},
}

type catalogService struct {
	entityRepository store.EntityRepository

	logger *logger.Logger
}

// NewCatalogService constructs a [CatalogService] backed by the entity
// repository.
func NewCatalogService(entityRepository store.EntityRepository, logger *logger.Logger) CatalogService {
	return &catalogService{
		entityRepository: entityRepository,
		logger:           logger,
	}
}

func (c *catalogService) ListEntities(ctx context.Context, onlyActive bool) ([]models.Entity, error) {
	return c.entityRepository.ListEntities(ctx, onlyActive)
}

// GetEntity resolves idOrSlug (an all-digits key is treated as a numeric
// id, anything else as a slug) and attaches the entity's ordered fields.
func (c *catalogService) GetEntity(ctx context.Context, idOrSlug string) (models.Entity, error) {
	var (
		entity models.Entity
		err    error
	)

	if id, convErr := strconv.ParseInt(idOrSlug, 10, 64); convErr == nil {
		entity, err = c.entityRepository.GetEntityByID(ctx, id)
	} else {
		entity, err = c.entityRepository.GetEntityBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return models.Entity{}, err
	}

	fields, err := c.entityRepository.ListFields(ctx, entity.ID)
	if err != nil {
		return models.Entity{}, err
	}
	entity.Fields = fields

	return entity, nil
}

// CreateEntity validates the slug and inserts the definition. New entities
// always start active; soft-disabling happens only through updates.
func (c *catalogService) CreateEntity(ctx context.Context, entity models.Entity) (models.Entity, error) {
	log := logger.FromContext(ctx)

	if !identifierPattern.MatchString(entity.Slug) {
		log.Warn().
			Str("func", "catalogService.CreateEntity").
			Str("slug", entity.Slug).
			Msg("rejected entity slug")
		return models.Entity{}, fmt.Errorf("%w: got %q", ErrInvalidSlug, entity.Slug)
	}

	entity.IsActive = true
	entity.Fields = nil

	return c.entityRepository.CreateEntity(ctx, entity)
}

// UpdateEntity applies a partial update. The slug cannot change: the
// update model does not carry it.
func (c *catalogService) UpdateEntity(ctx context.Context, id int64, update models.EntityUpdate) error {
	log := logger.FromContext(ctx)

	if update.IsZero() {
		log.Warn().
			Str("func", "catalogService.UpdateEntity").
			Int64("entity_id", id).
			Msg("no fields to update, skipping")
		// Still a lookup: an empty update of a missing entity is NotFound,
		// not a silent success.
		_, err := c.entityRepository.GetEntityByID(ctx, id)
		return err
	}

	return c.entityRepository.UpdateEntity(ctx, id, update)
}

func (c *catalogService) DeleteEntity(ctx context.Context, id int64) error {
	return c.entityRepository.DeleteEntity(ctx, id)
}

// CreateField validates the definition against the catalog invariants and
// inserts it:
//   - the owning entity must exist ([ErrFieldEntityNotFound]);
//   - the field name must match the identifier pattern and stay clear of
//     the engine-managed record keys;
//   - the field type must belong to the closed enumeration;
//   - a select field needs a non-empty options list;
//   - a declared default value must pass the type's coercion rule.
func (c *catalogService) CreateField(ctx context.Context, field models.Field) (models.Field, error) {
	log := logger.FromContext(ctx)

	if _, err := c.entityRepository.GetEntityByID(ctx, field.EntityID); err != nil {
		if errors.Is(err, store.ErrEntityNotFound) {
			log.Warn().
				Str("func", "catalogService.CreateField").
				Int64("entity_id", field.EntityID).
				Msg("field references missing entity")
			return models.Field{}, fmt.Errorf("%w: entity id %d", ErrFieldEntityNotFound, field.EntityID)
		}
		return models.Field{}, err
	}

	if !identifierPattern.MatchString(field.FieldName) {
		return models.Field{}, fmt.Errorf("%w: got %q", ErrInvalidFieldName, field.FieldName)
	}
	if _, reserved := reservedFieldNames[field.FieldName]; reserved {
		return models.Field{}, fmt.Errorf("%w: %q", ErrReservedFieldName, field.FieldName)
	}
	if !fieldtype.Known(field.FieldType) {
		return models.Field{}, fmt.Errorf("%w: %q", fieldtype.ErrUnknownFieldType, field.FieldType)
	}

	if field.FieldType == models.FieldTypeSelect {
		if len(field.FieldOptions) == 0 {
			return models.Field{}, ErrSelectOptionsRequired
		}
	} else {
		// Options are meaningless outside select fields.
		field.FieldOptions = nil
	}

	if field.DefaultValue != nil {
		if _, err := fieldtype.Coerce(field, *field.DefaultValue); err != nil {
			return models.Field{}, fmt.Errorf("%w: %w", ErrInvalidDefaultValue, err)
		}
	}

	return c.entityRepository.CreateField(ctx, field)
}

// UpdateField applies a partial update to a field definition. The field
// name and owning entity cannot change; a field type change is allowed
// only while no value references the field, otherwise previously-written
// values would sit in the old physical slot while reads look in the new
// one ([ErrFieldTypeLocked]).
func (c *catalogService) UpdateField(ctx context.Context, fieldID int64, update models.FieldUpdate) error {
	log := logger.FromContext(ctx)

	current, err := c.entityRepository.GetField(ctx, fieldID)
	if err != nil {
		return err
	}

	if update.IsZero() {
		log.Warn().
			Str("func", "catalogService.UpdateField").
			Int64("field_id", fieldID).
			Msg("no fields to update, skipping")
		return nil
	}

	effective := current
	if update.FieldType != nil && *update.FieldType != current.FieldType {
		if !fieldtype.Known(*update.FieldType) {
			return fmt.Errorf("%w: %q", fieldtype.ErrUnknownFieldType, *update.FieldType)
		}

		count, countErr := c.entityRepository.CountFieldValues(ctx, fieldID)
		if countErr != nil {
			return countErr
		}
		if count > 0 {
			log.Warn().
				Str("func", "catalogService.UpdateField").
				Int64("field_id", fieldID).
				Int64("values_count", count).
				Msg("rejected field type change")
			return fmt.Errorf("%w: %d values stored", ErrFieldTypeLocked, count)
		}

		effective.FieldType = *update.FieldType
	}

	if update.FieldOptions != nil {
		effective.FieldOptions = *update.FieldOptions
	}
	if effective.FieldType == models.FieldTypeSelect && len(effective.FieldOptions) == 0 {
		return ErrSelectOptionsRequired
	}

	if update.DefaultValue != nil {
		if _, coerceErr := fieldtype.Coerce(effective, *update.DefaultValue); coerceErr != nil {
			return fmt.Errorf("%w: %w", ErrInvalidDefaultValue, coerceErr)
		}
	}

	return c.entityRepository.UpdateField(ctx, fieldID, update)
}

func (c *catalogService) DeleteField(ctx context.Context, fieldID int64) error {
	return c.entityRepository.DeleteField(ctx, fieldID)
}
