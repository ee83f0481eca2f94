// Package dict implements the insertion-ordered Id interning table that
// backs model.WireDictionaries / model.DictionaryBuilder.
//
// A dictionary must support two operations in O(1) amortized time: append
// a new Id and get back its index (encode-side), and look up the index of
// an Id that may already be present (encode-side de-duplication). A plain
// Go map keyed by the 16-byte Id array already gives O(1) average-case
// lookup, but this module instead buckets Ids by xxHash64 and resolves
// bucket collisions by a short linear scan with true byte-equality. That
// scan is what keeps an xxHash64 collision between two distinct Ids from
// silently aliasing one dictionary entry onto another.
package dict

import "github.com/apex-algorithms/grc20-go/internal/hash"

// Table is an insertion-ordered interning table for 16-byte Ids.
//
// The zero value is not usable; construct with New.
type Table struct {
	items   [][16]byte
	buckets map[uint64][]int // xxHash64 bucket -> indices of items with that hash
}

// New creates an empty Table.
func New() *Table {
	return &Table{buckets: make(map[uint64][]int)}
}

// NewWithCapacity creates an empty Table pre-sized for n entries.
func NewWithCapacity(n int) *Table {
	return &Table{
		items:   make([][16]byte, 0, n),
		buckets: make(map[uint64][]int, n),
	}
}

// IndexOf returns the index of id in the table and true, or (-1, false) if
// id has not been interned.
func (t *Table) IndexOf(id [16]byte) (int, bool) {
	h := hash.Bucket(id)
	for _, idx := range t.buckets[h] {
		if t.items[idx] == id {
			return idx, true
		}
	}

	return -1, false
}

// Add interns id, returning its index. If id is already present, Add
// returns its existing index without appending a duplicate — this is the
// de-duplication step the two-pass edit encoder relies on (spec §4.6).
func (t *Table) Add(id [16]byte) int {
	if idx, ok := t.IndexOf(id); ok {
		return idx
	}

	idx := len(t.items)
	t.items = append(t.items, id)
	h := hash.Bucket(id)
	t.buckets[h] = append(t.buckets[h], idx)

	return idx
}

// At returns the Id stored at idx and true, or a zero Id and false if idx
// is out of range.
func (t *Table) At(idx int) ([16]byte, bool) {
	if idx < 0 || idx >= len(t.items) {
		return [16]byte{}, false
	}

	return t.items[idx], true
}

// Len returns the number of interned entries.
func (t *Table) Len() int {
	return len(t.items)
}

// Items returns the interned Ids in insertion order. The returned slice is
// owned by the caller and safe to retain.
func (t *Table) Items() [][16]byte {
	out := make([][16]byte, len(t.items))
	copy(out, t.items)

	return out
}
