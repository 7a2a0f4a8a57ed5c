package store

import (
	"slices"
	"sync"

	"github.com/stevemurr/inventory-server/item"
)

// MemoryStore keeps the collection in memory. Data is lost on restart.
// Safe for concurrent use.
type MemoryStore struct {
	mu    sync.Mutex
	items []item.Item
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: []item.Item{}}
}

func (m *MemoryStore) Load() ([]item.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.items), nil
}

func (m *MemoryStore) Save(items []item.Item) error {
	if err := checkItems(items); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append([]item.Item{}, items...)
	return nil
}
