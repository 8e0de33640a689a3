// Package export writes a child's vocabulary as CSV.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/mesh-intelligence/firstwords/pkg/types"
)

// ErrNoWords is returned when there is nothing to export.
var ErrNoWords = errors.New("no words to export")

// Header is the column row written before the words.
var Header = []string{"Word", "Date First Used", "Speaks", "ASL", "Confidence %"}

// WriteCSV writes words in the order given, one row per entry. Booleans are
// written as Yes or No. An empty vocabulary writes nothing and returns
// ErrNoWords.
func WriteCSV(w io.Writer, words []types.WordEntry) error {
	if len(words) == 0 {
		return ErrNoWords
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, entry := range words {
		row := []string{
			entry.Word,
			entry.DateAdded.String(),
			yesNo(entry.Speaks),
			yesNo(entry.ASL),
			strconv.Itoa(entry.Confidence),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing %q: %w", entry.Word, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// FileName returns the suggested export file name for a child.
func FileName(childName string) string {
	return childName + "_vocabulary.csv"
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
