package nametable

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetIDOrInsert(t *testing.T) {
	nt := New()
	a := nt.GetIDOrInsert("alpha")
	b := nt.GetIDOrInsert("beta")
	require.Equal(t, NameID(0), a)
	require.Equal(t, NameID(1), b)
	require.Equal(t, 2, nt.Size())

	// inserting an existing name returns the same ID
	require.Equal(t, a, nt.GetIDOrInsert("alpha"))
	require.Equal(t, b, nt.GetIDOrInsert("beta"))
	require.Equal(t, 2, nt.Size())
}

func TestGetID(t *testing.T) {
	nt := New()
	require.Equal(t, InvalidID, nt.GetID("missing"))
	id := nt.GetIDOrInsert("present")
	require.Equal(t, id, nt.GetID("present"))
}

func TestGetName(t *testing.T) {
	nt := New()
	id := nt.GetIDOrInsert("x")
	require.Equal(t, "x", nt.GetName(id))
	require.Panics(t, func() { nt.GetName(NameID(1)) })
	require.Panics(t, func() { nt.GetName(InvalidID) })
}

func TestInsertionOrder(t *testing.T) {
	nt := New()
	for i := 0; i < 100; i++ {
		name := fmt.Sprintf("name%d", i)
		require.Equal(t, NameID(i), nt.GetIDOrInsert(name))
	}
	for i := 0; i < 100; i++ {
		name := fmt.Sprintf("name%d", i)
		require.Equal(t, name, nt.GetName(NameID(i)))
	}
	require.Equal(t, 100, nt.Size())
}
