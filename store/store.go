// Package store defines the backing store interface and implementations.
package store

import (
	"log"

	"github.com/go-faster/errors"

	"github.com/stevemurr/inventory-server/item"
)

// ErrInvalidItem is returned by Save when an item would break the
// persisted-document invariants (non-empty id, price >= 0, valid size).
var ErrInvalidItem = errors.New("invalid item")

// Store persists the whole item collection as one unit.
// Every mutation is load whole, change in memory, save whole; there is no
// isolation between concurrent callers.
type Store interface {
	// Load returns the full collection in insertion order. A missing
	// document yields an empty collection; a corrupt one is logged and
	// also yields an empty collection.
	Load() ([]item.Item, error)

	// Save replaces the stored collection with items.
	Save(items []item.Item) error
}

func checkItems(items []item.Item) error {
	for i, it := range items {
		if !it.Valid() {
			return errors.Wrapf(ErrInvalidItem, "item %d (id %q)", i, it.ID)
		}
	}
	return nil
}

// keepValid drops entries that could not have been written by Save.
func keepValid(items []item.Item, source string) []item.Item {
	out := make([]item.Item, 0, len(items))
	for _, it := range items {
		if !it.Valid() {
			log.Printf("store: dropping invalid item %q from %s", it.ID, source)
			continue
		}
		out = append(out, it)
	}
	return out
}
