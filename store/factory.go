package store

import (
	"path/filepath"

	"github.com/go-faster/errors"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// New creates a Store based on the backend name.
//
// Supported backends:
//
//	"json"   - dataDir/items.json (default)
//	"sqlite" - SQLite database at dataDir/items.db
//	"memory" - In-memory (ephemeral, for testing)
func New(backend, dataDir string) (Store, error) {
	switch backend {
	case "json", "":
		return NewJsonFileStore(dataDir)
	case "sqlite":
		return NewSqliteStore(filepath.Join(dataDir, "items.db"))
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, errors.Errorf("unknown store backend: %q (supported: json, sqlite, memory)", backend)
	}
}
