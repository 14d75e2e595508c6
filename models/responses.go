// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Konovalov

package models

import "github.com/google/uuid"

// ErrorKind labels the failure taxonomy exposed to API callers.
// Every failed request carries exactly one kind plus a human-readable message.
type ErrorKind string

const (
	// KindValidation covers malformed slugs and field names, unknown field
	// types, coercion failures, and missing required fields.
	KindValidation ErrorKind = "validation"

	// KindConflict covers duplicate entity slugs, duplicate field names
	// within an entity, and unique-field value collisions.
	KindConflict ErrorKind = "conflict"

	// KindNotFound covers references to entities, fields, or records that
	// do not exist.
	KindNotFound ErrorKind = "not_found"

	// KindStorage covers failures of the backing store outside this layer's
	// validation. They are surfaced as-is and never retried here.
	KindStorage ErrorKind = "storage"
)

// APIError is the structured failure object returned on every error
// response. There is no silent fallback value: all four kinds bubble to
// the caller unchanged.
type APIError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// CreatedResponse reports the identifier assigned to a newly created
// entity or field definition.
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// RecordCreatedResponse reports the identifier assigned to a newly
// created record.
type RecordCreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

// RecordRequest is the body of a record create or update call. Data maps
// field names to tri-state inputs; unknown field names are silently
// ignored and never create ad-hoc fields.
type RecordRequest struct {
	Data RecordData `json:"data"`
}
