package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mesh-intelligence/firstwords/pkg/types"
)

const wordColumns = "word_id, child_id, word, date_added, speaks, asl, confidence"

func scanWord(row rowScanner) (*types.WordEntry, error) {
	var w types.WordEntry
	var dateAdded string
	err := row.Scan(&w.WordID, &w.ChildID, &w.Word, &dateAdded, &w.Speaks, &w.ASL, &w.Confidence)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning word: %w", err)
	}
	if w.DateAdded, err = types.ParseDate(dateAdded); err != nil {
		return nil, fmt.Errorf("parsing date of %q: %w", w.Word, err)
	}
	return &w, nil
}

// queryWords runs a words query with the given WHERE/ORDER clause.
func (t *table) queryWords(clause string, args ...any) ([]types.WordEntry, error) {
	rows, err := t.backend.db.Query("SELECT "+wordColumns+" FROM words "+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("querying words: %w", err)
	}
	defer rows.Close()

	words := []types.WordEntry{}
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, *w)
	}
	return words, rows.Err()
}

func (t *table) getWord(id string) (any, error) {
	row := t.backend.db.QueryRow("SELECT "+wordColumns+" FROM words WHERE word_id = ?", id)
	return scanWord(row)
}

// setWord validates and upserts a word. A new word is appended after the
// child's existing words; replacing a word keeps its position.
func (t *table) setWord(id string, data any) (string, error) {
	w, ok := data.(*types.WordEntry)
	if !ok {
		return "", types.ErrInvalidData
	}
	if err := w.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", types.ErrInvalidData, err)
	}
	if w.ChildID == "" {
		return "", types.ErrUnknownParent
	}
	var exists int
	err := t.backend.db.QueryRow("SELECT 1 FROM children WHERE child_id = ?", w.ChildID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return "", types.ErrUnknownParent
	}
	if err != nil {
		return "", fmt.Errorf("checking child: %w", err)
	}

	if id == "" {
		id = w.WordID
	}
	var position int64
	if id == "" {
		id = newUUID()
		if position, err = t.nextPosition(w.ChildID); err != nil {
			return "", err
		}
	} else {
		var owner string
		err := t.backend.db.QueryRow(
			"SELECT child_id, position FROM words WHERE word_id = ?", id).Scan(&owner, &position)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if position, err = t.nextPosition(w.ChildID); err != nil {
				return "", err
			}
		case err != nil:
			return "", fmt.Errorf("checking word: %w", err)
		case owner != w.ChildID:
			return "", fmt.Errorf("%w: word %s belongs to another child", types.ErrInvalidData, id)
		}
	}
	w.WordID = id

	_, err = t.backend.db.Exec(`
		INSERT INTO words (word_id, child_id, position, word, date_added, speaks, asl, confidence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(word_id) DO UPDATE SET
			word = excluded.word,
			date_added = excluded.date_added,
			speaks = excluded.speaks,
			asl = excluded.asl,
			confidence = excluded.confidence`,
		w.WordID, w.ChildID, position, w.Word, w.DateAdded.String(),
		boolToInt(w.Speaks), boolToInt(w.ASL), w.Confidence)
	if err != nil {
		return "", fmt.Errorf("upserting word: %w", err)
	}

	if err := t.backend.persist(types.WordsTable, t.persistWordsJSONL); err != nil {
		return "", err
	}
	return w.WordID, nil
}

func (t *table) nextPosition(childID string) (int64, error) {
	var next int64
	err := t.backend.db.QueryRow(
		"SELECT COALESCE(MAX(position), -1) + 1 FROM words WHERE child_id = ?", childID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("computing word position: %w", err)
	}
	return next, nil
}

func (t *table) deleteWord(id string) error {
	res, err := t.backend.db.Exec("DELETE FROM words WHERE word_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting word: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	return t.backend.persist(types.WordsTable, t.persistWordsJSONL)
}

// fetchWords lists words in insertion order. Supported filter keys:
// "child_id".
func (t *table) fetchWords(filter types.Filter) ([]any, error) {
	if err := checkFilterKeys(filter, "child_id"); err != nil {
		return nil, err
	}
	childID, ok, err := stringFilter(filter, "child_id")
	if err != nil {
		return nil, err
	}

	var words []types.WordEntry
	if ok {
		words, err = t.queryWords("WHERE child_id = ? ORDER BY position", childID)
	} else {
		words, err = t.queryWords("ORDER BY child_id, position")
	}
	if err != nil {
		return nil, err
	}

	results := make([]any, len(words))
	for i := range words {
		results[i] = &words[i]
	}
	return results, nil
}

func (t *table) persistWordsJSONL() error {
	rows, err := t.backend.db.Query(`
		SELECT word_id, child_id, position, word, date_added, speaks, asl, confidence
		FROM words ORDER BY child_id, position`)
	if err != nil {
		return fmt.Errorf("reading words for JSONL: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var rec wordJSON
		if err := rows.Scan(&rec.WordID, &rec.ChildID, &rec.Position, &rec.Word,
			&rec.DateAdded, &rec.Speaks, &rec.ASL, &rec.Confidence); err != nil {
			return fmt.Errorf("scanning word for JSONL: %w", err)
		}
		raw, err := dehydrate(rec)
		if err != nil {
			return err
		}
		records = append(records, raw)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return writeJSONL(filepath.Join(t.backend.dataDir, wordsJSONL), records)
}
