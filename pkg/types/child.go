package types

import "time"

// Child is a tracked child together with their vocabulary.
// Words are kept in insertion order, which is not necessarily date order.
// A nil Birthday means age-based analytics cannot run.
type Child struct {
	ChildID   string      `json:"child_id"`
	Name      string      `json:"name"`
	Birthday  *Date       `json:"birthday,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Words     []WordEntry `json:"words,omitempty"`
}

// HasBirthday reports whether the birthday is known.
func (c Child) HasBirthday() bool {
	return c.Birthday != nil && !c.Birthday.IsZero()
}

// Caregiver is the registered user of the tracker.
type Caregiver struct {
	CaregiverID string    `json:"caregiver_id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
}
