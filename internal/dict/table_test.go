package dict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_AddAssignsFirstSeenOrder(t *testing.T) {
	tbl := New()

	a := [16]byte{1}
	b := [16]byte{2}
	c := [16]byte{3}

	assert.Equal(t, 0, tbl.Add(a))
	assert.Equal(t, 1, tbl.Add(b))
	assert.Equal(t, 2, tbl.Add(c))

	assert.Equal(t, [][16]byte{a, b, c}, tbl.Items())
}

func TestTable_AddDeduplicates(t *testing.T) {
	tbl := New()

	a := [16]byte{1}
	idx1 := tbl.Add(a)
	idx2 := tbl.Add(a)

	assert.Equal(t, idx1, idx2)
	assert.Equal(t, 1, tbl.Len())
}

func TestTable_IndexOf(t *testing.T) {
	tbl := New()
	a := [16]byte{1}
	b := [16]byte{2}
	tbl.Add(a)

	idx, ok := tbl.IndexOf(a)
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	_, ok = tbl.IndexOf(b)
	assert.False(t, ok)
}

func TestTable_At(t *testing.T) {
	tbl := New()
	a := [16]byte{1}
	tbl.Add(a)

	got, ok := tbl.At(0)
	require.True(t, ok)
	assert.Equal(t, a, got)

	_, ok = tbl.At(1)
	assert.False(t, ok)

	_, ok = tbl.At(-1)
	assert.False(t, ok)
}

func TestTable_ItemsIsACopy(t *testing.T) {
	tbl := New()
	tbl.Add([16]byte{1})

	items := tbl.Items()
	items[0][0] = 0xFF

	got, _ := tbl.At(0)
	assert.NotEqual(t, items[0], got)
}
