package store

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-faster/errors"

	"github.com/stevemurr/inventory-server/item"
)

// JsonFileName is the collection document inside the data directory.
const JsonFileName = "items.json"

// JsonFileStore keeps the collection as a single JSON array on disk.
//
// Layout:
//
//	data_dir/
//	  items.json   # [{"id": ..., "name": ..., "price": ..., "size": ...}, ...]
type JsonFileStore struct {
	mu   sync.Mutex
	path string
}

func NewJsonFileStore(dir string) (*JsonFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	return &JsonFileStore{path: filepath.Join(dir, JsonFileName)}, nil
}

// Path returns the location of the collection document.
func (s *JsonFileStore) Path() string {
	return s.path
}

func (s *JsonFileStore) Load() ([]item.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := s.saveFile([]item.Item{}); err != nil {
				return nil, err
			}
			return []item.Item{}, nil
		}
		return nil, errors.Wrap(err, "read items")
	}
	var items []item.Item
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("store: %s is not a valid item array, treating as empty: %v", s.path, err)
		return []item.Item{}, nil
	}
	return keepValid(items, s.path), nil
}

func (s *JsonFileStore) Save(items []item.Item) error {
	if err := checkItems(items); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveFile(items)
}

func (s *JsonFileStore) saveFile(items []item.Item) error {
	if items == nil {
		items = []item.Item{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode items")
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return errors.Wrap(err, "write items")
	}
	return nil
}
