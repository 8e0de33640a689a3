package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mesh-intelligence/firstwords/pkg/types"
)

const childColumns = "child_id, name, birthday, created_at, updated_at"

func scanChild(row rowScanner) (*types.Child, error) {
	var c types.Child
	var birthday sql.NullString
	var createdAt, updatedAt string
	err := row.Scan(&c.ChildID, &c.Name, &birthday, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning child: %w", err)
	}
	if birthday.Valid && birthday.String != "" {
		d, err := types.ParseDate(birthday.String)
		if err != nil {
			return nil, fmt.Errorf("parsing birthday of %s: %w", c.Name, err)
		}
		c.Birthday = &d
	}
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing child created_at: %w", err)
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing child updated_at: %w", err)
	}
	return &c, nil
}

// getChild returns the child with their words in insertion order.
func (t *table) getChild(id string) (any, error) {
	row := t.backend.db.QueryRow(
		"SELECT "+childColumns+" FROM children WHERE child_id = ?", id)
	c, err := scanChild(row)
	if err != nil {
		return nil, err
	}
	words, err := t.queryWords("WHERE child_id = ? ORDER BY position", c.ChildID)
	if err != nil {
		return nil, err
	}
	c.Words = words
	return c, nil
}

// setChild upserts the child record. The Words field is ignored; words are
// written through the words table.
func (t *table) setChild(id string, data any) (string, error) {
	c, ok := data.(*types.Child)
	if !ok {
		return "", types.ErrInvalidData
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return "", types.ErrInvalidName
	}
	c.Name = name

	if id == "" {
		id = c.ChildID
	}
	now := time.Now()
	if id == "" {
		id = newUUID()
		c.CreatedAt = now
	} else {
		var createdAt string
		err := t.backend.db.QueryRow(
			"SELECT created_at FROM children WHERE child_id = ?", id).Scan(&createdAt)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if c.CreatedAt.IsZero() {
				c.CreatedAt = now
			}
		case err != nil:
			return "", fmt.Errorf("checking child: %w", err)
		default:
			if c.CreatedAt, err = parseTime(createdAt); err != nil {
				return "", fmt.Errorf("parsing child created_at: %w", err)
			}
		}
	}

	var other string
	err := t.backend.db.QueryRow(
		"SELECT child_id FROM children WHERE name = ? AND child_id <> ?", name, id).Scan(&other)
	if err == nil {
		return "", types.ErrDuplicateName
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("checking child name: %w", err)
	}

	c.ChildID = id
	c.UpdatedAt = now

	var birthday any
	if c.HasBirthday() {
		birthday = c.Birthday.String()
	}

	_, err = t.backend.db.Exec(`
		INSERT INTO children (child_id, name, birthday, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(child_id) DO UPDATE SET
			name = excluded.name,
			birthday = excluded.birthday,
			updated_at = excluded.updated_at`,
		c.ChildID, c.Name, birthday, formatTime(c.CreatedAt), formatTime(c.UpdatedAt))
	if err != nil {
		return "", fmt.Errorf("upserting child: %w", err)
	}

	if err := t.backend.persist(types.ChildrenTable, t.persistChildrenJSONL); err != nil {
		return "", err
	}
	return c.ChildID, nil
}

// deleteChild removes the child and every word they own.
func (t *table) deleteChild(id string) error {
	var exists int
	err := t.backend.db.QueryRow("SELECT 1 FROM children WHERE child_id = ?", id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking child: %w", err)
	}

	res, err := t.backend.db.Exec("DELETE FROM words WHERE child_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting child words: %w", err)
	}
	if _, err := t.backend.db.Exec("DELETE FROM children WHERE child_id = ?", id); err != nil {
		return fmt.Errorf("deleting child: %w", err)
	}

	removed, _ := res.RowsAffected()
	t.backend.logger.Debug("child deleted", "child_id", id, "words_removed", removed)

	if err := t.backend.persist(types.ChildrenTable, t.persistChildrenJSONL); err != nil {
		return err
	}
	return t.backend.persist(types.WordsTable, t.persistWordsJSONL)
}

// fetchChildren lists children in creation order without their words.
// Supported filter keys: "name".
func (t *table) fetchChildren(filter types.Filter) ([]any, error) {
	if err := checkFilterKeys(filter, "name"); err != nil {
		return nil, err
	}
	query := "SELECT " + childColumns + " FROM children"
	var args []any
	name, ok, err := stringFilter(filter, "name")
	if err != nil {
		return nil, err
	}
	if ok {
		query += " WHERE name = ?"
		args = append(args, name)
	}
	query += " ORDER BY created_at, child_id"

	rows, err := t.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching children: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		c, err := scanChild(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

func (t *table) persistChildrenJSONL() error {
	rows, err := t.backend.db.Query(
		"SELECT " + childColumns + " FROM children ORDER BY created_at, child_id")
	if err != nil {
		return fmt.Errorf("reading children for JSONL: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var rec childJSON
		var birthday sql.NullString
		if err := rows.Scan(&rec.ChildID, &rec.Name, &birthday, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return fmt.Errorf("scanning child for JSONL: %w", err)
		}
		if birthday.Valid {
			rec.Birthday = &birthday.String
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
	return writeJSONL(filepath.Join(t.backend.dataDir, childrenJSONL), records)
}
