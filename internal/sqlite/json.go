package sqlite

import (
	"encoding/json"
	"fmt"
	"time"
)

// timeLayout is a fixed-width RFC 3339 layout so timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// caregiverJSON is one line of caregivers.jsonl.
type caregiverJSON struct {
	CaregiverID string `json:"caregiver_id"`
	Name        string `json:"name"`
	CreatedAt   string `json:"created_at"`
}

// childJSON is one line of children.jsonl. Words live in words.jsonl.
type childJSON struct {
	ChildID   string  `json:"child_id"`
	Name      string  `json:"name"`
	Birthday  *string `json:"birthday"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// wordJSON is one line of words.jsonl. Position orders a child's words.
type wordJSON struct {
	WordID     string `json:"word_id"`
	ChildID    string `json:"child_id"`
	Position   int64  `json:"position"`
	Word       string `json:"word"`
	DateAdded  string `json:"date_added"`
	Speaks     bool   `json:"speaks"`
	ASL        bool   `json:"asl"`
	Confidence int    `json:"confidence"`
}

func dehydrate(v any) (json.RawMessage, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling record: %w", err)
	}
	return b, nil
}
