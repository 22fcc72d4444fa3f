package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase unchanged", "read book", "read book"},
		{"mixed case folded", "Read Book", "read book"},
		{"all caps folded", "READ BOOK", "read book"},
		{"whitespace trimmed", "  Read Book \t", "read book"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.input))
		})
	}
}

func TestBuildHabitIndex_Match(t *testing.T) {
	idx, collisions := BuildHabitIndex([]Habit{
		{ID: "h1", Name: "Read Book"},
		{ID: "h2", Name: "Meditate"},
	})
	require.Empty(t, collisions)
	assert.Equal(t, 2, idx.Len())

	// Names differing only in case must match.
	h, ok := idx.Match("read book")
	require.True(t, ok)
	assert.Equal(t, "h1", h.ID)

	h, ok = idx.Match("READ BOOK")
	require.True(t, ok)
	assert.Equal(t, "h1", h.ID)

	_, ok = idx.Match("write book")
	assert.False(t, ok)
}

func TestBuildHabitIndex_CollisionFirstWins(t *testing.T) {
	idx, collisions := BuildHabitIndex([]Habit{
		{ID: "h1", Name: "Read Book"},
		{ID: "h2", Name: "read book"},
		{ID: "h3", Name: "READ BOOK"},
	})

	assert.Equal(t, []string{"read book", "read book"}, collisions)
	assert.Equal(t, 1, idx.Len())

	h, ok := idx.Match("Read Book")
	require.True(t, ok)
	assert.Equal(t, "h1", h.ID, "first habit listed by the service wins")
}

func TestBuildHabitIndex_SkipsEmptyNames(t *testing.T) {
	idx, collisions := BuildHabitIndex([]Habit{
		{ID: "h1", Name: "  "},
		{ID: "h2", Name: "Stretch"},
	})
	assert.Empty(t, collisions)
	assert.Equal(t, 1, idx.Len())
}
