package vocab

import (
	"strings"

	"golang.org/x/text/cases"
)

// Normalize returns the comparison key for a word: surrounding whitespace
// removed and Unicode case folded. Two spellings that normalize to the same
// key are the same word for lookups and for the fallback exclusion check.
// The literal spelling is kept everywhere else.
func Normalize(word string) string {
	// cases.Caser is stateful, so each call gets its own.
	return cases.Fold().String(strings.TrimSpace(word))
}
