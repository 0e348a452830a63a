package epub

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Item is one manifest entry. Path is slash-separated and relative to the
// archive root.
type Item struct {
	UID  string
	Path string
	MIME string
}

// UID derives the manifest id of an archive path. It depends on nothing but
// the path, so identical inputs always produce identical manifests.
func UID(p string) string {
	return fmt.Sprintf("item-%016x", xxhash.Sum64String(p))
}

// Manifest is the ordered list of archive items. Insertion order is kept.
type Manifest struct {
	items []Item
	index map[string]int
}

// NewManifest returns an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{index: make(map[string]int)}
}

// Add appends the item for p and returns it. Adding a path that is already
// present returns the existing item without appending a second one.
func (m *Manifest) Add(p string) (Item, error) {
	if i, ok := m.index[p]; ok {
		return m.items[i], nil
	}
	mt, err := MediaType(p)
	if err != nil {
		return Item{}, err
	}
	item := Item{UID: UID(p), Path: p, MIME: mt}
	m.index[p] = len(m.items)
	m.items = append(m.items, item)
	return item, nil
}

// Contains reports whether p has been added.
func (m *Manifest) Contains(p string) bool {
	_, ok := m.index[p]
	return ok
}

// Lookup returns the item recorded for p.
func (m *Manifest) Lookup(p string) (Item, bool) {
	i, ok := m.index[p]
	if !ok {
		return Item{}, false
	}
	return m.items[i], true
}

// Items returns a copy of the items in insertion order.
func (m *Manifest) Items() []Item {
	return append([]Item(nil), m.items...)
}

// Len returns the number of items.
func (m *Manifest) Len() int { return len(m.items) }
