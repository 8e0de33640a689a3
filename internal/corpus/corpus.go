// Package corpus loads the reference list of typical first words from CSV.
//
// The CSV has a header row. The "Word" and "Typical Age (Months)" columns
// are required and "Learning Strategy" is optional; header names are matched
// case-insensitively and other columns are ignored.
package corpus

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/firstwords/pkg/types"
)

// Header names recognized by Load.
const (
	ColumnWord     = "Word"
	ColumnAge      = "Typical Age (Months)"
	ColumnStrategy = "Learning Strategy"
)

// Loader errors.
var (
	ErrMissingColumn = errors.New("corpus: missing required column")
	ErrInvalidAge    = errors.New("corpus: invalid typical age")
)

//go:embed typical_baby_words.csv
var defaultCSV []byte

// Default returns the built-in corpus.
func Default() ([]types.TypicalWord, error) {
	return Load(bytes.NewReader(defaultCSV))
}

// LoadFile reads a corpus CSV from path.
func LoadFile(path string) ([]types.TypicalWord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus: %w", err)
	}
	defer f.Close()

	records, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return records, nil
}

// Load parses corpus rows from r in file order. Rows with a blank word are
// skipped. An empty input (no header) yields an empty corpus.
func Load(r io.Reader) ([]types.TypicalWord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return []types.TypicalWord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := columnIndex(header)
	wordCol, ok := cols[strings.ToLower(ColumnWord)]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrMissingColumn, ColumnWord)
	}
	ageCol, ok := cols[strings.ToLower(ColumnAge)]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrMissingColumn, ColumnAge)
	}
	strategyCol, hasStrategy := cols[strings.ToLower(ColumnStrategy)]

	records := []types.TypicalWord{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		line, _ := cr.FieldPos(0)

		word := strings.TrimSpace(field(row, wordCol))
		if word == "" {
			continue
		}
		rawAge := strings.TrimSpace(field(row, ageCol))
		age, err := strconv.ParseFloat(rawAge, 64)
		if err != nil || math.IsNaN(age) || math.IsInf(age, 0) {
			return nil, fmt.Errorf("%w %q on line %d", ErrInvalidAge, rawAge, line)
		}

		rec := types.TypicalWord{Word: word, TypicalAgeMonths: age}
		if hasStrategy {
			rec.LearningStrategy = strings.TrimSpace(field(row, strategyCol))
		}
		records = append(records, rec)
	}
	return records, nil
}

// SortByAge stably sorts records by typical age. Words with equal ages keep
// their file order.
func SortByAge(records []types.TypicalWord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].TypicalAgeMonths < records[j].TypicalAgeMonths
	})
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		// Strip a UTF-8 BOM left by spreadsheet exports.
		h = strings.TrimPrefix(h, "\ufeff")
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	return cols
}

func field(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
