// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Konovalov

package service

import "errors"

// Validation sentinels surfaced by the catalog operations. All of them map
// to HTTP 400 at the transport layer.
var (
	// ErrInvalidSlug is returned when an entity slug does not match the
	// identifier pattern (lowercase letter followed by lowercase letters,
	// digits, or underscores).
	ErrInvalidSlug = errors.New("entity slug must match ^[a-z][a-z0-9_]*$")

	// ErrInvalidFieldName is returned when a field name does not match the
	// identifier pattern.
	ErrInvalidFieldName = errors.New("field name must match ^[a-z][a-z0-9_]*$")

	// ErrReservedFieldName is returned when a field name collides with one
	// of the engine-managed record keys (id, created_at, updated_at).
	ErrReservedFieldName = errors.New("field name is reserved")

	// ErrFieldEntityNotFound is returned when a field is created under an
	// entity id that references no existing entity.
	ErrFieldEntityNotFound = errors.New("field does not reference an existing entity")

	// ErrSelectOptionsRequired is returned when a select field is declared
	// without at least one option.
	ErrSelectOptionsRequired = errors.New("select field requires a non-empty options list")

	// ErrFieldTypeLocked is returned when a field type change is attempted
	// after values were written for the field. Old values would be stranded
	// in the previous physical slot, so the change is hard-blocked.
	ErrFieldTypeLocked = errors.New("field type cannot change once values exist")

	// ErrInvalidDefaultValue is returned when a declared default value does
	// not pass the field type's coercion rule.
	ErrInvalidDefaultValue = errors.New("default value fails the field type's coercion rule")

	// ErrRequiredFieldMissing is returned when a record is created without
	// a value for a required field.
	ErrRequiredFieldMissing = errors.New("required field is missing")

	// ErrRequiredFieldCleared is returned when a record mutation explicitly
	// blanks a required field.
	ErrRequiredFieldCleared = errors.New("required field cannot be cleared")
)

// ErrUniqueValueConflict is returned when a value written to a
// unique-flagged field is already stored by another record of the same
// entity. Maps to HTTP 409.
var ErrUniqueValueConflict = errors.New("value already exists for a unique field")
