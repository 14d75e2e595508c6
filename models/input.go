package models

import "encoding/json"

// FieldInput is the tri-state write input for a single field of a record
// mutation. Together with key absence in [RecordData] it models the three
// distinct intents of the EAV write path:
//
//   - key absent from the payload  → omitted, leave the field untouched;
//   - key present with null or ""  → explicit clear, delete the value row;
//   - key present with a value     → coerce and upsert the value row.
//
// The distinction matters: a naive "always upsert" write path cannot
// represent an explicit blank, and a naive "clear then insert" path cannot
// represent "omitted = leave alone" needed for partial updates.
type FieldInput struct {
	raw any
}

// NewFieldInput wraps a raw value for programmatic construction of a
// [RecordData] payload (primarily in tests and internal callers).
func NewFieldInput(raw any) FieldInput {
	return FieldInput{raw: raw}
}

// Raw returns the decoded JSON value. It is nil when the caller submitted
// an explicit null.
func (in FieldInput) Raw() any {
	return in.raw
}

// IsClear reports whether the input is an explicit clear: a JSON null or
// an empty string. Cleared fields have their value row deleted outright so
// that "absent means unset" keeps holding, instead of storing an
// empty-string sentinel.
func (in FieldInput) IsClear() bool {
	if in.raw == nil {
		return true
	}
	s, ok := in.raw.(string)
	return ok && s == ""
}

// UnmarshalJSON decodes the submitted value, preserving null as a nil raw
// value. The method is only ever invoked for keys that are present in the
// payload, so decoding itself establishes the "not omitted" state.
func (in *FieldInput) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	in.raw = v
	return nil
}

// MarshalJSON renders the wrapped value back to JSON.
func (in FieldInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(in.raw)
}
