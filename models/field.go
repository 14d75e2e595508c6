// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Konovalov

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// FieldType defines the semantic type of a dynamically-defined field.
// The value determines which physical slot of a record value row holds
// the data and which coercion rule applies on write.
//
// The set is closed: the fieldtype registry is the single source of truth
// for which types exist and how each one maps to a physical slot.
type FieldType string

const (
	// FieldTypeText stores free-form text in the text slot.
	FieldTypeText FieldType = "text"

	// FieldTypeNumber stores a finite numeric value in the number slot.
	FieldTypeNumber FieldType = "number"

	// FieldTypeBoolean stores a boolean in the bool slot.
	FieldTypeBoolean FieldType = "boolean"

	// FieldTypeDate stores a calendar date (no time component) in the date slot.
	FieldTypeDate FieldType = "date"

	// FieldTypeSelect stores one of the field's declared options in the
	// text slot. The allowed options live in Field.FieldOptions.
	FieldTypeSelect FieldType = "select"
)

// Field represents one typed attribute definition owned by exactly one Entity.
type Field struct {
	// ID is the stable identifier assigned at creation.
	ID int64 `json:"id"`

	// EntityID links the field to its owning entity. Immutable.
	EntityID int64 `json:"entity_id"`

	// FieldName is the lowercase identifier of the field, unique within its
	// owning entity only. Immutable after creation; renaming would silently
	// orphan historical values.
	FieldName string `json:"field_name"`

	// FieldLabel is the mutable display name.
	FieldLabel string `json:"field_label"`

	// FieldType is one of the closed FieldType enumeration.
	FieldType FieldType `json:"field_type"`

	// FieldOptions is the ordered list of allowed option strings.
	// Only meaningful when FieldType is FieldTypeSelect.
	FieldOptions FieldOptions `json:"field_options,omitempty"`

	// IsRequired marks the field as mandatory on record creation.
	// Enforced by the service layer, not by the store.
	IsRequired bool `json:"is_required"`

	// IsUnique requires the field's value to be unique across all records
	// of the owning entity. Enforced by the service layer.
	IsUnique bool `json:"is_unique"`

	// ShowInList and ShowInForm are presentation-only visibility flags.
	ShowInList bool `json:"show_in_list"`
	ShowInForm bool `json:"show_in_form"`

	// DisplayOrder is a caller-controlled sort key.
	DisplayOrder int `json:"display_order"`

	// DefaultValue, when non-nil, is coerced and written for fields omitted
	// from a record-creation payload.
	DefaultValue *string `json:"default_value,omitempty"`

	// CreatedAt is the timestamp when the field was created.
	CreatedAt time.Time `json:"created_at"`
}

// FieldUpdate describes a partial update of a field definition.
// Nil pointers mean "leave unchanged". FieldName and EntityID are
// deliberately absent: both are immutable after creation.
//
// FieldType is present but the service rejects a type change once any
// value exists for the field, since old values would be stranded in the
// previous physical slot.
type FieldUpdate struct {
	FieldLabel   *string       `json:"field_label"`
	FieldType    *FieldType    `json:"field_type"`
	FieldOptions *FieldOptions `json:"field_options"`
	IsRequired   *bool         `json:"is_required"`
	IsUnique     *bool         `json:"is_unique"`
	ShowInList   *bool         `json:"show_in_list"`
	ShowInForm   *bool         `json:"show_in_form"`
	DisplayOrder *int          `json:"display_order"`
	DefaultValue *string       `json:"default_value"`
}

// IsZero reports whether the update carries no changes at all.
func (u FieldUpdate) IsZero() bool {
	return u.FieldLabel == nil && u.FieldType == nil && u.FieldOptions == nil &&
		u.IsRequired == nil && u.IsUnique == nil && u.ShowInList == nil &&
		u.ShowInForm == nil && u.DisplayOrder == nil && u.DefaultValue == nil
}

// FieldOptions is the ordered list of allowed option strings for a select
// field. It is persisted as a JSON array in a jsonb column.
type FieldOptions []string

// Contains reports whether option appears in the list.
// The comparison is case-sensitive and exact.
func (o FieldOptions) Contains(option string) bool {
	for _, candidate := range o {
		if candidate == option {
			return true
		}
	}
	return false
}

// Value implements [driver.Valuer] by serialising the options to JSON.
func (o FieldOptions) Value() (driver.Value, error) {
	if o == nil {
		return nil, nil
	}
	return json.Marshal(o)
}

// Scan implements [sql.Scanner] by deserialising a JSON array from the
// database. NULL scans into an empty list.
func (o *FieldOptions) Scan(src any) error {
	if src == nil {
		*o = nil
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	default:
		return fmt.Errorf("cannot scan %T into FieldOptions", src)
	}
}

// TableName returns the name of the database table
// associated with the Field model.
func (f *Field) TableName() string {
	return "entity_fields"
}
