package types

import "errors"

// Table provides uniform CRUD operations for a single entity type.
// Get and Fetch return any; callers type-assert to the concrete entity struct.
type Table interface {
	// Get retrieves the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Get(id string) (any, error)

	// Set creates or updates an entity. When id is empty a new UUID v7 is
	// generated. Returns the actual ID used (generated or provided).
	Set(id string, data any) (string, error)

	// Delete removes the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Delete(id string) error

	// Fetch returns all entities matching the filter. An empty filter
	// returns every entity in the table.
	Fetch(filter Filter) ([]any, error)
}

// Filter selects entities by column value. Keys are column names.
type Filter map[string]any

// Table operation errors.
var (
	ErrNotFound       = errors.New("entity not found")
	ErrInvalidID      = errors.New("invalid entity ID")
	ErrInvalidData    = errors.New("invalid entity data")
	ErrInvalidName    = errors.New("invalid name")
	ErrDuplicateName  = errors.New("name already exists")
	ErrInvalidFilter  = errors.New("invalid filter")
	ErrUnknownParent  = errors.New("parent entity does not exist")
	ErrNotRegistered  = errors.New("no caregiver is registered")
	ErrAlreadyPresent = errors.New("caregiver is already registered")
)
