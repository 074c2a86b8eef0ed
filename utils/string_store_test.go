package utils

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func backingData(s string) *byte {
	return unsafe.StringData(s)
}

func TestStringStoreInternsWhileUnlocked(t *testing.T) {
	store := new(stringStoreImpl)

	line := "the/at dog/nn"
	first := store.Get(line[:3])
	second := store.Get("the")

	require.Equal(t, "the", first)
	require.Same(t, backingData(first), backingData(second))
	// The canonical copy must not alias the parsed line buffer.
	require.NotSame(t, backingData(line), backingData(first))
}

func TestStringStoreLockedLookups(t *testing.T) {
	store := new(stringStoreImpl)
	canonical := store.Get("nn")
	store.Lock()
	require.True(t, store.IsLocked())

	// Known strings still resolve to the canonical instance.
	require.Same(t, backingData(canonical), backingData(store.Get("nn")))

	// Unseen strings are copied but never stored once locked.
	first := store.Get("vb")
	second := store.Get("vb")
	require.Equal(t, "vb", first)
	require.NotSame(t, backingData(first), backingData(second))
}
