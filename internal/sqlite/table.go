package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/firstwords/pkg/types"
)

// table implements types.Table for a single entity type.
// Each table knows its name and the backend it belongs to, which it uses
// for database access, cross-table cascades and JSONL writes.
type table struct {
	name    string
	backend *Backend
}

// Get retrieves an entity by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (t *table) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()
	if !t.backend.attached {
		return nil, types.ErrCupboardDetached
	}

	switch t.name {
	case types.CaregiversTable:
		return t.getCaregiver(id)
	case types.ChildrenTable:
		return t.getChild(id)
	case types.WordsTable:
		return t.getWord(id)
	default:
		return nil, types.ErrTableNotFound
	}
}

// Set creates or updates an entity. If id is empty, generates a UUID v7.
// Returns the entity ID.
func (t *table) Set(id string, data any) (string, error) {
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()
	if !t.backend.attached {
		return "", types.ErrCupboardDetached
	}

	switch t.name {
	case types.CaregiversTable:
		return t.setCaregiver(id, data)
	case types.ChildrenTable:
		return t.setChild(id, data)
	case types.WordsTable:
		return t.setWord(id, data)
	default:
		return "", types.ErrTableNotFound
	}
}

// Delete removes an entity by ID, cascading where the entity owns others.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (t *table) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()
	if !t.backend.attached {
		return types.ErrCupboardDetached
	}

	switch t.name {
	case types.CaregiversTable:
		return t.deleteCaregiver(id)
	case types.ChildrenTable:
		return t.deleteChild(id)
	case types.WordsTable:
		return t.deleteWord(id)
	default:
		return types.ErrTableNotFound
	}
}

// Fetch returns entities matching the filter. Empty filter matches all.
func (t *table) Fetch(filter types.Filter) ([]any, error) {
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()
	if !t.backend.attached {
		return nil, types.ErrCupboardDetached
	}

	switch t.name {
	case types.CaregiversTable:
		return t.fetchCaregivers(filter)
	case types.ChildrenTable:
		return t.fetchChildren(filter)
	case types.WordsTable:
		return t.fetchWords(filter)
	default:
		return nil, types.ErrTableNotFound
	}
}

// stringFilter extracts a string-valued filter key. ok is false when the
// key is absent; a present key of another type is ErrInvalidFilter.
func stringFilter(filter types.Filter, key string) (value string, ok bool, err error) {
	raw, present := filter[key]
	if !present {
		return "", false, nil
	}
	s, isString := raw.(string)
	if !isString {
		return "", false, fmt.Errorf("%w: %s must be a string", types.ErrInvalidFilter, key)
	}
	return s, true, nil
}

// checkFilterKeys rejects keys the table does not support.
func checkFilterKeys(filter types.Filter, allowed ...string) error {
	for key := range filter {
		known := false
		for _, a := range allowed {
			if key == a {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("%w: unknown key %q", types.ErrInvalidFilter, key)
		}
	}
	return nil
}
