package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDSetAddRemove(t *testing.T) {
	s := newIDSet()
	s.Add("a")
	s.Add("b")
	s.Add("c")

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains("b"))
	assert.Equal(t, []string{"a", "b", "c"}, s.IDs())

	// Adding a present id is a no-op.
	s.Add("b")
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"a", "b", "c"}, s.IDs())
}

func TestIDSetRemoveSwapsLastIntoSlot(t *testing.T) {
	s := newIDSet()
	for _, id := range []string{"a", "b", "c", "d"} {
		s.Add(id)
	}

	// Removing an interior member moves the last member into its slot.
	require.True(t, s.Remove("b"))
	assert.Equal(t, []string{"a", "d", "c"}, s.IDs())
	assert.False(t, s.Contains("b"))

	// Removing the last member just shrinks the set.
	require.True(t, s.Remove("c"))
	assert.Equal(t, []string{"a", "d"}, s.IDs())

	// Removing an absent member reports false and changes nothing.
	assert.False(t, s.Remove("zzz"))
	assert.Equal(t, []string{"a", "d"}, s.IDs())
}

func TestIDSetPage(t *testing.T) {
	s := newIDSet()
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		s.Add(id)
	}

	tests := []struct {
		name  string
		from  int
		limit int
		want  []string
	}{
		{name: "full window", from: 0, limit: 10, want: []string{"a", "b", "c", "d", "e"}},
		{name: "first page", from: 0, limit: 2, want: []string{"a", "b"}},
		{name: "middle page", from: 2, limit: 2, want: []string{"c", "d"}},
		{name: "last partial page", from: 4, limit: 2, want: []string{"e"}},
		{name: "offset past end", from: 7, limit: 2, want: []string{}},
		{name: "negative offset clamps to zero", from: -3, limit: 2, want: []string{"a", "b"}},
		{name: "non-positive limit returns rest", from: 1, limit: 0, want: []string{"b", "c", "d", "e"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Page(tt.from, tt.limit))
		})
	}
}

func TestIDSetClone(t *testing.T) {
	s := newIDSet()
	s.Add("a")
	s.Add("b")

	c := s.clone()
	c.Add("c")
	require.True(t, c.Remove("a"))

	// The original is untouched by mutations of the clone.
	assert.Equal(t, []string{"a", "b"}, s.IDs())
	assert.Equal(t, []string{"c", "b"}, c.IDs())
}

func TestIndexDropsEmptySets(t *testing.T) {
	ix := make(index)
	ix.add("alice", "1")
	ix.add("alice", "2")

	require.NoError(t, ix.remove("alice", "1"))
	_, ok := ix["alice"]
	assert.True(t, ok)

	// Removing the last member removes the whole set; there is no such
	// thing as an empty set under a key.
	require.NoError(t, ix.remove("alice", "2"))
	_, ok = ix["alice"]
	assert.False(t, ok)
}

func TestIndexRemoveInconsistency(t *testing.T) {
	ix := make(index)
	ix.add("alice", "1")

	err := ix.remove("bob", "1")
	assert.Error(t, err)

	err = ix.remove("alice", "999")
	assert.Error(t, err)
}
