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

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

const caregiverColumns = "caregiver_id, name, created_at"

func scanCaregiver(row rowScanner) (*types.Caregiver, error) {
	var c types.Caregiver
	var createdAt string
	err := row.Scan(&c.CaregiverID, &c.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning caregiver: %w", err)
	}
	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing caregiver created_at: %w", err)
	}
	return &c, nil
}

func (t *table) getCaregiver(id string) (any, error) {
	row := t.backend.db.QueryRow(
		"SELECT "+caregiverColumns+" FROM caregivers WHERE caregiver_id = ?", id)
	return scanCaregiver(row)
}

func (t *table) setCaregiver(id string, data any) (string, error) {
	c, ok := data.(*types.Caregiver)
	if !ok {
		return "", types.ErrInvalidData
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return "", types.ErrInvalidName
	}
	c.Name = name

	if id == "" {
		id = c.CaregiverID
	}
	if id == "" {
		id = newUUID()
	}
	c.CaregiverID = id
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	_, err := t.backend.db.Exec(`
		INSERT INTO caregivers (caregiver_id, name, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(caregiver_id) DO UPDATE SET
			name = excluded.name`,
		c.CaregiverID, c.Name, formatTime(c.CreatedAt))
	if err != nil {
		return "", fmt.Errorf("upserting caregiver: %w", err)
	}

	if err := t.backend.persist(types.CaregiversTable, t.persistCaregiversJSONL); err != nil {
		return "", err
	}
	return c.CaregiverID, nil
}

func (t *table) deleteCaregiver(id string) error {
	res, err := t.backend.db.Exec("DELETE FROM caregivers WHERE caregiver_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting caregiver: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	return t.backend.persist(types.CaregiversTable, t.persistCaregiversJSONL)
}

func (t *table) fetchCaregivers(filter types.Filter) ([]any, error) {
	if err := checkFilterKeys(filter); err != nil {
		return nil, err
	}
	rows, err := t.backend.db.Query(
		"SELECT " + caregiverColumns + " FROM caregivers ORDER BY created_at, caregiver_id")
	if err != nil {
		return nil, fmt.Errorf("fetching caregivers: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		c, err := scanCaregiver(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

func (t *table) persistCaregiversJSONL() error {
	rows, err := t.backend.db.Query(
		"SELECT " + caregiverColumns + " FROM caregivers ORDER BY created_at, caregiver_id")
	if err != nil {
		return fmt.Errorf("reading caregivers for JSONL: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var rec caregiverJSON
		if err := rows.Scan(&rec.CaregiverID, &rec.Name, &rec.CreatedAt); err != nil {
			return fmt.Errorf("scanning caregiver for JSONL: %w", err)
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
	return writeJSONL(filepath.Join(t.backend.dataDir, caregiversJSONL), records)
}
