package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuides(t *testing.T) {
	all := Guides()
	require.Len(t, all, 6)

	ids := make([]string, len(all))
	for i, g := range all {
		ids[i] = g.ID
		assert.NotEmpty(t, g.Title)
		assert.NotEmpty(t, g.Summary)
		assert.NotEmpty(t, g.Sections)
	}
	assert.Equal(t, []string{"basic", "water", "shelter", "fire", "food", "medical"}, ids)
}

func TestGuideByID(t *testing.T) {
	g := GuideByID("fire")
	assert.Equal(t, "Fire Starting Guide", g.Title)

	t.Run("unknown id falls back to the basic guide", func(t *testing.T) {
		g := GuideByID("quantum")
		assert.Equal(t, "basic", g.ID)
	})
}

func TestSearchGuides(t *testing.T) {
	t.Run("matches title case-insensitively", func(t *testing.T) {
		results := SearchGuides("WATER")
		require.Len(t, results, 1)
		assert.Equal(t, "water", results[0].ID)
	})

	t.Run("matches summary text", func(t *testing.T) {
		results := SearchGuides("lean-to")
		require.Len(t, results, 1)
		assert.Equal(t, "shelter", results[0].ID)
	})

	t.Run("empty query returns everything", func(t *testing.T) {
		assert.Len(t, SearchGuides("  "), 6)
	})

	t.Run("no match returns empty", func(t *testing.T) {
		assert.Empty(t, SearchGuides("submarine"))
	})
}
