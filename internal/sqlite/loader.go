package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/firstwords/pkg/types"
)

// jsonlTableMapping maps JSONL files to their SQLite tables and columns.
// Parents load before children. check, when set, rejects records that
// parse but break an entity invariant.
var jsonlTableMapping = []struct {
	file    string
	table   string
	columns []string
	check   func(json.RawMessage) error
}{
	{caregiversJSONL, "caregivers", []string{"caregiver_id", "name", "created_at"}, nil},
	{childrenJSONL, "children", []string{"child_id", "name", "birthday", "created_at", "updated_at"}, nil},
	{wordsJSONL, "words", []string{"word_id", "child_id", "position", "word", "date_added", "speaks", "asl", "confidence"}, checkWord},
}

// checkWord rejects stored words that fail WordEntry.Validate.
func checkWord(rec json.RawMessage) error {
	var w types.WordEntry
	if err := json.Unmarshal(rec, &w); err != nil {
		return err
	}
	return w.Validate()
}

// loadAllJSONL reads each JSONL file from dataDir and inserts its records
// into the matching SQLite table in a single transaction. Malformed lines,
// rows that violate constraints and words that fail validation are
// skipped, as are words whose child is missing. Unknown fields are ignored. It returns the number of rows
// loaded per file.
func loadAllJSONL(db *sql.DB, dataDir string) (map[string]int, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	counts := make(map[string]int, len(jsonlTableMapping))
	for _, mapping := range jsonlTableMapping {
		records, err := readJSONL(filepath.Join(dataDir, mapping.file))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", mapping.file, err)
		}
		if len(records) == 0 {
			continue
		}
		n, err := insertRecords(tx, mapping.table, mapping.columns, mapping.check, records)
		if err != nil {
			return nil, fmt.Errorf("loading %s into %s: %w", mapping.file, mapping.table, err)
		}
		counts[mapping.file] = n
	}

	res, err := tx.Exec("DELETE FROM words WHERE child_id NOT IN (SELECT child_id FROM children)")
	if err != nil {
		return nil, fmt.Errorf("dropping orphan words: %w", err)
	}
	if orphans, err := res.RowsAffected(); err == nil {
		counts[wordsJSONL] -= int(orphans)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing load transaction: %w", err)
	}
	return counts, nil
}

// insertRecords inserts parsed JSONL records into table. Only the listed
// columns are read from each record; missing fields insert NULL. Records
// rejected by check are skipped.
func insertRecords(tx *sql.Tx, table string, columns []string, check func(json.RawMessage) error, records []json.RawMessage) (int, error) {
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return 0, fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	inserted := 0
	for _, rec := range records {
		if check != nil && check(rec) != nil {
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal(rec, &obj); err != nil {
			continue
		}

		args := make([]any, len(columns))
		for i, col := range columns {
			switch v := obj[col].(type) {
			case bool:
				args[i] = boolToInt(v)
			case float64:
				args[i] = int64(v)
			default:
				args[i] = v
			}
		}

		if _, err := stmt.Exec(args...); err != nil {
			continue
		}
		inserted++
	}
	return inserted, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
