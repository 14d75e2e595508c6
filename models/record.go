package models

import (
	"time"

	"github.com/google/uuid"
)

// Record is one logical row belonging to exactly one Entity.
// Records carry no typed payload themselves; all payload lives in Values.
type Record struct {
	// ID is the stable record identifier assigned at creation.
	ID uuid.UUID `json:"id"`

	// EntityID links the record to its owning entity.
	EntityID int64 `json:"entity_id"`

	// CreatedAt is the timestamp when the record row was inserted.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is bumped on every successful value mutation.
	UpdatedAt time.Time `json:"updated_at"`
}

// AssembledRecord is the dense, flat shape of a record handed to callers:
// one property per field of the owning entity plus the engine-managed
// "id", "created_at", and "updated_at" keys. Fields without a stored value
// appear with a nil value; absence of a value row never drops the key.
type AssembledRecord map[string]any

// RecordData is the raw write payload of a record mutation, keyed by
// field_name. Keys absent from the map are omitted fields: on update they
// mean "do not touch this field". Keys present in the map carry a
// [FieldInput] whose state distinguishes an explicit clear from a value.
type RecordData map[string]FieldInput

// TableName returns the name of the database table
// associated with the Record model.
func (r *Record) TableName() string {
	return "records"
}
