// Package sqlite implements the SQLite storage backend for firstwords.
//
// JSONL files in the data directory are the source of truth. SQLite is a
// query cache: every Attach starts from a fresh database and reloads the
// JSONL files, and every write is persisted back to JSONL according to the
// configured sync strategy.
package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/firstwords/pkg/types"
)

// dbFileName is the SQLite cache file inside the data directory.
const dbFileName = "firstwords.db"

// Backend implements types.Cupboard using SQLite as the query engine
// and JSONL files as the source of truth.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	dataDir  string
	db       *sql.DB
	tables   map[string]*table
	logger   *slog.Logger

	syncStrategy  string
	pendingMu     sync.Mutex
	pendingWrites []pendingWrite
}

// pendingWrite is a deferred JSONL rewrite queued by the on_close strategy.
type pendingWrite struct {
	tableName string
	persist   func() error
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Backend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		tables: make(map[string]*table),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// GetTable returns the Table for the given name.
// Returns ErrCupboardDetached if the backend is not attached and
// ErrTableNotFound if the name is not a standard table.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrCupboardDetached
	}

	t, ok := b.tables[name]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	return t, nil
}

// Attach validates config, creates DataDir if needed, builds a fresh SQLite
// cache and loads every JSONL file into it.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	// The cache is rebuilt from JSONL on every attach.
	dbPath := filepath.Join(dataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening sqlite: %w", err)
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return err
	}
	if err := initJSONLFiles(dataDir); err != nil {
		db.Close()
		return err
	}
	counts, err := loadAllJSONL(db, dataDir)
	if err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.dataDir = dataDir
	b.syncStrategy = config.EffectiveSyncStrategy()
	b.pendingWrites = nil
	b.attached = true

	for _, name := range types.StandardTableNames {
		b.tables[name] = &table{name: name, backend: b}
	}

	b.logger.Debug("backend attached",
		"data_dir", dataDir,
		"sync_strategy", b.syncStrategy,
		"caregivers", counts[caregiversJSONL],
		"children", counts[childrenJSONL],
		"words", counts[wordsJSONL],
	)
	return nil
}

// Detach flushes queued JSONL writes and closes the SQLite connection.
// After Detach, all operations return ErrCupboardDetached.
// Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if err := b.flushPendingWrites(); err != nil {
		return fmt.Errorf("flush pending writes: %w", err)
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return fmt.Errorf("closing sqlite: %w", err)
		}
		b.db = nil
	}

	b.attached = false
	b.tables = make(map[string]*table)
	b.logger.Debug("backend detached", "data_dir", b.dataDir)
	return nil
}

// newUUID generates a UUID v7 string for entity IDs.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// persist writes a table's JSONL file now or queues it for Detach,
// depending on the sync strategy. The caller must hold b.mu.
func (b *Backend) persist(tableName string, fn func() error) error {
	if b.syncStrategy == types.SyncImmediate {
		return fn()
	}

	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()

	// Each persist rewrites the whole file, so one queued write per table
	// is enough.
	for _, pw := range b.pendingWrites {
		if pw.tableName == tableName {
			return nil
		}
	}
	b.pendingWrites = append(b.pendingWrites, pendingWrite{tableName: tableName, persist: fn})
	return nil
}

// flushPendingWrites runs every queued JSONL write.
// The caller must hold b.mu write lock.
func (b *Backend) flushPendingWrites() error {
	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()

	if len(b.pendingWrites) == 0 {
		return nil
	}
	for _, pw := range b.pendingWrites {
		if err := pw.persist(); err != nil {
			return fmt.Errorf("flush %s: %w", pw.tableName, err)
		}
	}
	b.logger.Debug("flushed pending writes", "tables", len(b.pendingWrites))
	b.pendingWrites = nil
	return nil
}
