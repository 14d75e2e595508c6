package models

import "time"

// Entity represents one dynamically-defined record kind: the catalog-level
// analogue of a table. Operators create entities at runtime and attach typed
// fields to them; records of the entity are then stored through the EAV engine.
type Entity struct {
	// ID is the stable identifier assigned at creation. Immutable.
	ID int64 `json:"id"`

	// Slug is the unique external lookup key (lowercase, alphanumeric and
	// underscore, starting with a letter). Immutable after creation.
	Slug string `json:"slug"`

	// Label is the human-readable display name.
	Label string `json:"label"`

	// Icon is a presentation-only icon identifier.
	Icon string `json:"icon"`

	// Description is optional presentation-only text.
	Description string `json:"description"`

	// DisplayOrder is a caller-controlled sort key. Not unique.
	DisplayOrder int `json:"display_order"`

	// IsActive soft-disables the entity: inactive entities are hidden from
	// active-only listings but keep their fields, records, and values.
	IsActive bool `json:"is_active"`

	// CreatedAt is the timestamp when the entity was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last definition change.
	UpdatedAt time.Time `json:"updated_at"`

	// Fields holds the entity's field definitions ordered by display_order.
	// Populated only by catalog reads that request the full definition.
	Fields []Field `json:"fields,omitempty"`
}

// EntityUpdate describes a partial update of an entity definition.
// Nil pointers mean "leave unchanged". The slug is deliberately absent:
// it is immutable after creation, so the update model cannot carry it.
type EntityUpdate struct {
	Label        *string `json:"label"`
	Icon         *string `json:"icon"`
	Description  *string `json:"description"`
	DisplayOrder *int    `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

// IsZero reports whether the update carries no changes at all.
func (u EntityUpdate) IsZero() bool {
	return u.Label == nil && u.Icon == nil && u.Description == nil &&
		u.DisplayOrder == nil && u.IsActive == nil
}

// TableName returns the name of the database table
// associated with the Entity model.
func (e *Entity) TableName() string {
	return "entities"
}
