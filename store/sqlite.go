package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-faster/errors"

	"github.com/stevemurr/inventory-server/item"
)

// SqliteStore keeps the collection in a single SQLite table, one row per
// item, ordered by position. Save rewrites the table in one transaction.
//
// Tables:
//
//	items(pos, id, name, price, size)  PRIMARY KEY (pos), UNIQUE (id)
type SqliteStore struct {
	mu sync.Mutex
	db *sql.DB
}

func NewSqliteStore(dbPath string) (*SqliteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "enable WAL")
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS items (
		pos INTEGER PRIMARY KEY,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		price REAL NOT NULL,
		size TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create items table")
	}
	return &SqliteStore{db: db}, nil
}

func (s *SqliteStore) Close() error {
	return s.db.Close()
}

func (s *SqliteStore) Load() ([]item.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.Query("SELECT id, name, price, size FROM items ORDER BY pos")
	if err != nil {
		return nil, errors.Wrap(err, "query items")
	}
	defer rows.Close()
	items := []item.Item{}
	for rows.Next() {
		var it item.Item
		var size string
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &size); err != nil {
			return nil, errors.Wrap(err, "scan item")
		}
		it.Size = item.Size(size)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "read items")
	}
	return keepValid(items, "sqlite"), nil
}

func (s *SqliteStore) Save(items []item.Item) error {
	if err := checkItems(items); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer tx.Rollback()
	if _, err := tx.Exec("DELETE FROM items"); err != nil {
		return errors.Wrap(err, "clear items")
	}
	stmt, err := tx.Prepare("INSERT INTO items (pos, id, name, price, size) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return errors.Wrap(err, "prepare insert")
	}
	defer stmt.Close()
	for i, it := range items {
		if _, err := stmt.Exec(i, it.ID, it.Name, it.Price, string(it.Size)); err != nil {
			return errors.Wrapf(err, "insert item %q", it.ID)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit")
	}
	return nil
}
