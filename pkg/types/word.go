package types

import "strings"

// Confidence bounds and the threshold below which a known word is
// considered uncertain enough to practice.
const (
	MinConfidence          = 0
	MaxConfidence          = 100
	LowConfidenceThreshold = 50
)

// WordEntry is one word a child has used, as logged by a caregiver.
// Entries belong to exactly one child and keep the literal spelling the
// caregiver typed.
type WordEntry struct {
	WordID     string `json:"word_id"`
	ChildID    string `json:"child_id"`
	Word       string `json:"word" validate:"required"`
	DateAdded  Date   `json:"date_added"`
	Speaks     bool   `json:"speaks"`
	ASL        bool   `json:"asl"`
	Confidence int    `json:"confidence" validate:"min=0,max=100"`
}

// Validate checks the entry invariants: the word is non-empty after
// trimming, the date is set, and confidence lies in [0,100]. It returns a
// *ValidationError naming the first offending field. Validate does not
// modify the entry.
func (w WordEntry) Validate() error {
	trimmed := w
	trimmed.Word = strings.TrimSpace(w.Word)
	if err := validateStruct(trimmed); err != nil {
		return err
	}
	if w.DateAdded.IsZero() {
		return &ValidationError{Field: "date_added", Message: "must not be empty"}
	}
	return nil
}

// IsLowConfidence reports whether the entry should be practiced.
func (w WordEntry) IsLowConfidence() bool {
	return w.Confidence < LowConfidenceThreshold
}
