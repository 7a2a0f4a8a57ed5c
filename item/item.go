// Package item defines the inventory Item model and the rules a payload must
// satisfy before it can become one.
package item

import "strings"

// Item is a single inventory record as persisted in the collection document.
type Item struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Size  Size    `json:"size"`
}

// Size is the canonical form of an item size.
type Size string

const (
	SizeSmall  Size = "s"
	SizeMedium Size = "m"
	SizeLarge  Size = "l"
)

// Sizes lists the valid sizes in display order.
var Sizes = []Size{SizeSmall, SizeMedium, SizeLarge}

var sizeAliases = map[string]Size{
	"s":      SizeSmall,
	"small":  SizeSmall,
	"m":      SizeMedium,
	"medium": SizeMedium,
	"l":      SizeLarge,
	"large":  SizeLarge,
}

// ParseSize matches s case-insensitively against the size letters and their
// long names and returns the canonical size.
func ParseSize(s string) (Size, bool) {
	size, ok := sizeAliases[strings.ToLower(strings.TrimSpace(s))]
	return size, ok
}

// Valid reports whether s is a canonical size.
func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Valid reports whether the item may be persisted.
func (it Item) Valid() bool {
	return it.ID != "" && it.Price >= 0 && it.Size.Valid()
}

// Index returns the position of the item with the given id, or -1.
func Index(items []Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
