// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Konovalov

// Package fieldtype implements the field type registry: the closed set of
// supported field types, the mapping from each type to the single physical
// value slot it occupies, and the coercion rules that turn raw caller input
// into that slot's representation.
//
// Both the write path (coerce and pick the slot to populate) and the read
// path (pick the slot to read during assembly) go through this package, so
// the two cannot drift out of sync.
package fieldtype

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/ivkonovalov/shopdesk/models"
)

// DateLayout is the only accepted calendar date format.
const DateLayout = "2006-01-02"

// Sentinel errors returned by the registry. Callers should use [errors.Is]
// to match against these values; both surface to API callers as
// validation failures.
var (
	// ErrUnknownFieldType is returned when a field type string is not part
	// of the closed enumeration.
	ErrUnknownFieldType = errors.New("unknown field type")

	// ErrCoercion is returned when a raw input value cannot be coerced into
	// the physical representation of the field's type.
	ErrCoercion = errors.New("value failed type coercion")
)

// Slot identifies the physical column of a value row that a field type
// occupies. Exactly one slot is populated per value.
type Slot int

const (
	// SlotText is the text column, used by text and select fields.
	SlotText Slot = iota

	// SlotNumber is the double-precision numeric column.
	SlotNumber

	// SlotBool is the boolean column.
	SlotBool

	// SlotDate is the day-precision date column.
	SlotDate
)

// typeSpec binds one field type to its physical slot and coercion rule.
type typeSpec struct {
	slot   Slot
	coerce func(field models.Field, raw any) (models.Value, error)
}

// registry is the single table of truth for the closed field type set.
var registry = map[models.FieldType]typeSpec{
	models.FieldTypeText:    {slot: SlotText, coerce: coerceText},
	models.FieldTypeNumber:  {slot: SlotNumber, coerce: coerceNumber},
	models.FieldTypeBoolean: {slot: SlotBool, coerce: coerceBool},
	models.FieldTypeDate:    {slot: SlotDate, coerce: coerceDate},
	models.FieldTypeSelect:  {slot: SlotText, coerce: coerceSelect},
}

// Known reports whether ft belongs to the closed field type enumeration.
func Known(ft models.FieldType) bool {
	_, ok := registry[ft]
	return ok
}

// SlotFor returns the physical slot occupied by the given field type.
func SlotFor(ft models.FieldType) (Slot, error) {
	spec, ok := registry[ft]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownFieldType, ft)
	}
	return spec.slot, nil
}

// Coerce validates and converts raw caller input into a [models.Value]
// with exactly the slot for the field's type populated. It is a pure
// function: no side effects, all failures reported synchronously.
//
// Raw input arrives as decoded JSON, so the concrete types seen here are
// string, float64, bool, json.Number, and nil.
func Coerce(field models.Field, raw any) (models.Value, error) {
	spec, ok := registry[field.FieldType]
	if !ok {
		return models.Value{}, fmt.Errorf("%w: %q", ErrUnknownFieldType, field.FieldType)
	}

	value, err := spec.coerce(field, raw)
	if err != nil {
		return models.Value{}, err
	}

	value.FieldID = field.ID
	return value, nil
}

// Extract reads the slot appropriate for the field's type out of a stored
// value row and returns it in its wire shape (dates as DateLayout strings).
// It is the read-path counterpart of [Coerce], used during assembly.
func Extract(field models.Field, value models.Value) any {
	spec, ok := registry[field.FieldType]
	if !ok {
		return nil
	}

	switch spec.slot {
	case SlotText:
		if value.TextValue != nil {
			return *value.TextValue
		}
	case SlotNumber:
		if value.NumberValue != nil {
			return *value.NumberValue
		}
	case SlotBool:
		if value.BoolValue != nil {
			return *value.BoolValue
		}
	case SlotDate:
		if value.DateValue != nil {
			// The driver may scan the stored date into the local zone;
			// format at UTC so the calendar day never shifts.
			return value.DateValue.In(time.UTC).Format(DateLayout)
		}
	}

	return nil
}

func coerceText(_ models.Field, raw any) (models.Value, error) {
	s, err := stringify(raw)
	if err != nil {
		return models.Value{}, err
	}
	return models.Value{TextValue: &s}, nil
}

func coerceSelect(field models.Field, raw any) (models.Value, error) {
	s, err := stringify(raw)
	if err != nil {
		return models.Value{}, err
	}

	// Case-sensitive exact match against the declared options.
	if !field.FieldOptions.Contains(s) {
		return models.Value{}, fmt.Errorf("%w: %q is not one of the declared options", ErrCoercion, s)
	}

	return models.Value{TextValue: &s}, nil
}

func coerceNumber(_ models.Field, raw any) (models.Value, error) {
	var (
		n   float64
		err error
	)

	switch v := raw.(type) {
	case float64:
		n = v
	case json.Number:
		n, err = v.Float64()
	case string:
		n, err = strconv.ParseFloat(v, 64)
	default:
		return models.Value{}, fmt.Errorf("%w: %T is not numeric", ErrCoercion, raw)
	}

	if err != nil {
		return models.Value{}, fmt.Errorf("%w: %v", ErrCoercion, err)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return models.Value{}, fmt.Errorf("%w: number must be finite", ErrCoercion)
	}

	return models.Value{NumberValue: &n}, nil
}

func coerceBool(_ models.Field, raw any) (models.Value, error) {
	var b bool

	switch v := raw.(type) {
	case bool:
		b = v
	case float64:
		b = v != 0
	case string:
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return models.Value{}, fmt.Errorf("%w: %q is not a boolean", ErrCoercion, v)
		}
		b = parsed
	default:
		return models.Value{}, fmt.Errorf("%w: %T is not a boolean", ErrCoercion, raw)
	}

	return models.Value{BoolValue: &b}, nil
}

func coerceDate(_ models.Field, raw any) (models.Value, error) {
	s, ok := raw.(string)
	if !ok {
		return models.Value{}, fmt.Errorf("%w: date must be a %q string", ErrCoercion, DateLayout)
	}

	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return models.Value{}, fmt.Errorf("%w: %q is not a valid %q date", ErrCoercion, s, DateLayout)
	}

	return models.Value{DateValue: &t}, nil
}

// stringify converts raw JSON scalars into their string form. Composite
// values (arrays, objects) are rejected.
func stringify(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("%w: %T is not coercible to a string", ErrCoercion, raw)
	}
}
