// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Konovalov

package models

import (
	"time"

	"github.com/google/uuid"
)

// Value is the EAV atom: one field's data for one record. Exactly one of
// the four typed slots is populated according to the owning field's type;
// the other three stay nil. The pair (RecordID, FieldID) is unique: at
// most one Value per field per record, and absence of a row means "no
// value set", not "value is empty".
type Value struct {
	// RecordID is the owning record.
	RecordID uuid.UUID `json:"record_id"`

	// FieldID is the owning field definition.
	FieldID int64 `json:"field_id"`

	// TextValue holds text and select values.
	TextValue *string `json:"text_value,omitempty"`

	// NumberValue holds number values.
	NumberValue *float64 `json:"number_value,omitempty"`

	// BoolValue holds boolean values.
	BoolValue *bool `json:"bool_value,omitempty"`

	// DateValue holds date values at day precision.
	DateValue *time.Time `json:"date_value,omitempty"`
}

// ValueMutation is one entry of a record write plan produced by the service
// layer after validation. Clear removes any existing value row for the
// field; otherwise Value carries the coerced slot to upsert. Fields the
// caller omitted never appear in the plan at all.
type ValueMutation struct {
	FieldID int64
	Clear   bool
	Value   Value
}

// TableName returns the name of the database table
// associated with the Value model.
func (v *Value) TableName() string {
	return "record_values"
}
