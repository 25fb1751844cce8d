// Package registry provides the ordered, capacity-bounded table backing the
// mapper's name map and a tower's visit log.
package registry

import "slices"

// DefaultCapacity is the operating ceiling on entries per table.
const DefaultCapacity = 1000

// Entry is one key/value pair held by a Table.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Table keeps entries in ascending lexicographic key order. It performs no
// locking of its own: the owning service serializes every read-modify-write
// sequence, response emission included, under one process-wide mutex.
type Table struct {
	capacity int
	entries  []Entry
}

// NewTable builds an empty table. A non-positive capacity selects
// DefaultCapacity.
func NewTable(capacity int) *Table {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Table{
		capacity: capacity,
		entries:  make([]Entry, 0, capacity),
	}
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Lookup scans for an exact key match.
func (t *Table) Lookup(key string) (string, bool) {
	for _, e := range t.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// InsertUnique inserts key/value preserving order. It reports false without
// modifying the table when the key is already present or the table is full.
func (t *Table) InsertUnique(key, value string) bool {
	if _, exists := t.Lookup(key); exists {
		return false
	}
	return t.insert(key, value)
}

// InsertSorted inserts key/value preserving order; duplicate keys are
// permitted and a new entry lands after existing equal keys. A full table
// drops the entry, reported as false.
func (t *Table) InsertSorted(key, value string) bool {
	return t.insert(key, value)
}

func (t *Table) insert(key, value string) bool {
	if len(t.entries) >= t.capacity {
		return false
	}
	i := 0
	for i < len(t.entries) && key >= t.entries[i].Key {
		i++
	}
	t.entries = slices.Insert(t.entries, i, Entry{Key: key, Value: value})
	return true
}

// Snapshot copies out every entry in ascending key order. Callers must hold
// the owning service's lock for the copy to reflect a single instant.
func (t *Table) Snapshot() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}
