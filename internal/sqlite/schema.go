package sqlite

import (
	"database/sql"
	"fmt"
)

// Schema DDL. Foreign keys are declared for readers of the schema; the
// table code enforces them, since SQLite leaves them off per connection.
const (
	createCaregivers = `CREATE TABLE caregivers (
    caregiver_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createChildren = `CREATE TABLE children (
    child_id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    birthday TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createWords = `CREATE TABLE words (
    word_id TEXT PRIMARY KEY,
    child_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    word TEXT NOT NULL,
    date_added TEXT NOT NULL,
    speaks INTEGER NOT NULL DEFAULT 0,
    asl INTEGER NOT NULL DEFAULT 0,
    confidence INTEGER NOT NULL,
    FOREIGN KEY (child_id) REFERENCES children(child_id) ON DELETE CASCADE
);`
)

// Index DDL for common queries.
const (
	idxWordsChild = `CREATE INDEX idx_words_child ON words(child_id, position);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createCaregivers,
	createChildren,
	createWords,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxWordsChild,
}

func createSchema(db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, stmt := range indexDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}
