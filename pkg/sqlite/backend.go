// Package sqlite provides the public API for the SQLite Cupboard backend.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"log/slog"

	"github.com/mesh-intelligence/firstwords/internal/sqlite"
	"github.com/mesh-intelligence/firstwords/pkg/types"
)

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
// A nil logger discards backend logs.
//
// Example:
//
//	backend := sqlite.NewBackend(logger)
//	err := backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".firstwords-db",
//	})
//	defer backend.Detach()
func NewBackend(logger *slog.Logger) types.Cupboard {
	return sqlite.NewBackend(sqlite.WithLogger(logger))
}
