// Package nametable interns identifier strings into dense integer IDs.
//
// IDs are assigned by insertion order and names are never removed, so ID i
// always refers to the i-th inserted name for the lifetime of the table.
package nametable

import (
	"fmt"
	"math"
)

// NameID identifies an interned name.
type NameID uint32

// InvalidID is distinct from every ID a Table will ever assign.
const InvalidID = NameID(math.MaxUint32)

// Table maps strings to dense NameIDs and back. A single Table is shared
// mutably by the lexer and parser within one compilation pipeline.
type Table struct {
	names    []string
	nameToID map[string]NameID
}

// New returns an empty name table.
func New() *Table {
	return &Table{nameToID: map[string]NameID{}}
}

// GetID returns the ID for name, or InvalidID if it was never interned.
func (t *Table) GetID(name string) NameID {
	if id, ok := t.nameToID[name]; ok {
		return id
	}
	return InvalidID
}

// GetIDOrInsert returns the ID for name, interning it first if needed.
// Go strings are immutable, so the map key safely shares storage with the
// interned copy in the names slice.
func (t *Table) GetIDOrInsert(name string) NameID {
	if id, ok := t.nameToID[name]; ok {
		return id
	}
	id := NameID(len(t.names))
	t.names = append(t.names, name)
	t.nameToID[name] = id
	return id
}

// GetName returns the string for an ID previously returned by this table.
// Passing an ID outside [0, Size()) is a programming error.
func (t *Table) GetName(id NameID) string {
	if int(id) >= len(t.names) {
		panic(fmt.Sprintf("nametable: invalid name id %d (size %d)", id, len(t.names)))
	}
	return t.names[id]
}

// Size returns the number of interned names.
func (t *Table) Size() int {
	return len(t.names)
}
