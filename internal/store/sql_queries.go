// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Konovalov

package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/ivkonovalov/shopdesk/models"
)

const (
	entityColumns = `id, slug, label, icon, description, display_order, is_active, created_at, updated_at`
	fieldColumns  = `id, entity_id, field_name, field_label, field_type, field_options, is_required, is_unique, show_in_list, show_in_form, display_order, default_value, created_at`
	valueColumns  = `record_id, field_id, text_value, number_value, bool_value, date_value`

	listEntitiesQuery = `SELECT ` + entityColumns + `
		FROM entities
		ORDER BY display_order, id;`
	listActiveEntitiesQuery = `SELECT ` + entityColumns + `
		FROM entities
		WHERE is_active
		ORDER BY display_order, id;`
	getEntityByIDQuery = `SELECT ` + entityColumns + `
		FROM entities
		WHERE id = $1;`
	getEntityBySlugQuery = `SELECT ` + entityColumns + `
		FROM entities
		WHERE slug = $1;`
	createEntityQuery = `INSERT INTO entities (slug, label, icon, description, display_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at;`
	deleteEntityQuery = `DELETE FROM entities
		WHERE id = $1;`

	listFieldsQuery = `SELECT ` + fieldColumns + `
		FROM entity_fields
		WHERE entity_id = $1
		ORDER BY display_order, id;`
	getFieldQuery = `SELECT ` + fieldColumns + `
		FROM entity_fields
		WHERE id = $1;`
	createFieldQuery = `INSERT INTO entity_fields (entity_id, field_name, field_label, field_type, field_options, is_required, is_unique, show_in_list, show_in_form, display_order, default_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at;`
	deleteFieldQuery = `DELETE FROM entity_fields
		WHERE id = $1;`
	countFieldValuesQuery = `SELECT COUNT(*)
		FROM record_values
		WHERE field_id = $1;`

	listRecordsQuery = `SELECT id, entity_id, created_at, updated_at
		FROM records
		WHERE entity_id = $1
		ORDER BY created_at DESC, id;`
	getRecordQuery = `SELECT id, entity_id, created_at, updated_at
		FROM records
		WHERE id = $1;`
	createRecordQuery = `INSERT INTO records (id, entity_id)
		VALUES ($1, $2)
		RETURNING created_at, updated_at;`
	touchRecordQuery = `UPDATE records
		SET updated_at = NOW()
		WHERE id = $1;`
	deleteRecordQuery = `DELETE FROM records
		WHERE id = $1;`

	// The composite primary key (record_id, field_id) makes the upsert the
	// natural write primitive: first non-empty write inserts, subsequent
	// writes replace in place. All four slots are always assigned so a type
	// migration can never leave stale data in a previously used slot.
	upsertValueQuery = `INSERT INTO record_values (record_id, field_id, text_value, number_value, bool_value, date_value)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (record_id, field_id) DO UPDATE SET
			text_value = EXCLUDED.text_value,
			number_value = EXCLUDED.number_value,
			bool_value = EXCLUDED.bool_value,
			date_value = EXCLUDED.date_value;`
	deleteValueQuery = `DELETE FROM record_values
		WHERE record_id = $1 AND field_id = $2;`
)

// psql is the shared squirrel builder configured for PostgreSQL
// positional placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildUpdateEntityQuery dynamically builds a partial UPDATE for an entity
// definition. Only non-nil fields of the update produce SET clauses; the
// slug never appears because [models.EntityUpdate] cannot carry it.
func buildUpdateEntityQuery(id int64, update models.EntityUpdate) (string, []any, error) {
	builder := psql.Update("entities").Set("updated_at", sq.Expr("NOW()"))

	if update.Label != nil {
		builder = builder.Set("label", *update.Label)
	}
	if update.Icon != nil {
		builder = builder.Set("icon", *update.Icon)
	}
	if update.Description != nil {
		builder = builder.Set("description", *update.Description)
	}
	if update.DisplayOrder != nil {
		builder = builder.Set("display_order", *update.DisplayOrder)
	}
	if update.IsActive != nil {
		builder = builder.Set("is_active", *update.IsActive)
	}

	query, args, err := builder.Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateFieldQuery dynamically builds a partial UPDATE for a field
// definition. field_name and entity_id never appear: both are immutable
// and absent from [models.FieldUpdate].
func buildUpdateFieldQuery(fieldID int64, update models.FieldUpdate) (string, []any, error) {
	builder := psql.Update("entity_fields")

	if update.FieldLabel != nil {
		builder = builder.Set("field_label", *update.FieldLabel)
	}
	if update.FieldType != nil {
		builder = builder.Set("field_type", *update.FieldType)
	}
	if update.FieldOptions != nil {
		builder = builder.Set("field_options", *update.FieldOptions)
	}
	if update.IsRequired != nil {
		builder = builder.Set("is_required", *update.IsRequired)
	}
	if update.IsUnique != nil {
		builder = builder.Set("is_unique", *update.IsUnique)
	}
	if update.ShowInList != nil {
		builder = builder.Set("show_in_list", *update.ShowInList)
	}
	if update.ShowInForm != nil {
		builder = builder.Set("show_in_form", *update.ShowInForm)
	}
	if update.DisplayOrder != nil {
		builder = builder.Set("display_order", *update.DisplayOrder)
	}
	if update.DefaultValue != nil {
		builder = builder.Set("default_value", *update.DefaultValue)
	}

	query, args, err := builder.Where(sq.Eq{"id": fieldID}).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildListValuesQuery builds the bulk value fetch for a set of record ids.
// The single IN query is what lets assembly avoid the N+1 fan-out.
func buildListValuesQuery(recordIDs []uuid.UUID) (string, []any, error) {
	query, args, err := psql.
		Select("record_id", "field_id", "text_value", "number_value", "bool_value", "date_value").
		From("record_values").
		Where(sq.Eq{"record_id": recordIDs}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildValueExistsQuery builds the uniqueness probe for a unique-flagged
// field: does any other record store this slot value for the field?
// The slot column to compare is chosen from whichever slot of value is
// populated, mirroring the write path's slot dispatch.
func buildValueExistsQuery(fieldID int64, value models.Value, excludeRecordID uuid.UUID) (string, []any, error) {
	where := sq.And{sq.Eq{"field_id": fieldID}}

	switch {
	case value.TextValue != nil:
		where = append(where, sq.Eq{"text_value": *value.TextValue})
	case value.NumberValue != nil:
		where = append(where, sq.Eq{"number_value": *value.NumberValue})
	case value.BoolValue != nil:
		where = append(where, sq.Eq{"bool_value": *value.BoolValue})
	case value.DateValue != nil:
		where = append(where, sq.Eq{"date_value": *value.DateValue})
	default:
		return "", nil, fmt.Errorf("%w: value has no populated slot", ErrBuildingSQLQuery)
	}

	if excludeRecordID != uuid.Nil {
		where = append(where, sq.NotEq{"record_id": excludeRecordID})
	}

	query, args, err := psql.
		Select("1").
		From("record_values").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
