package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOrder(t *testing.T) {
	c := Default()
	assert.Equal(t, []string{"icloud", "applemusic", "netflix", "spotify"}, c.IDs())
	assert.Equal(t, 4, c.Len())
}

func TestGet(t *testing.T) {
	c := Default()

	entry, ok := c.Get("netflix")
	require.True(t, ok)
	assert.Equal(t, "Netflix Premium", entry.Title)
	assert.Equal(t, "$15.99", entry.Price)
	assert.Equal(t, "button-netflix", entry.DisplayStyle)

	_, ok = c.Get("disneyplus")
	assert.False(t, ok)
}

func TestMustGetPanicsOnUnknownID(t *testing.T) {
	c := Default()
	assert.NotPanics(t, func() { c.MustGet("spotify") })
	assert.Panics(t, func() { c.MustGet("nope") })
}

func TestPhraseDefaultsToID(t *testing.T) {
	c := Default()

	am := c.MustGet("applemusic")
	assert.Equal(t, "apple music", am.Phrase)

	for _, id := range []string{"icloud", "netflix", "spotify"} {
		assert.Equal(t, id, c.MustGet(id).Phrase)
	}
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	assert.Panics(t, func() {
		New(Entry{ID: "a"}, Entry{ID: "a"})
	})
}

func TestEntriesCopiesOrder(t *testing.T) {
	c := Default()
	entries := c.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, "icloud", entries[0].ID)
	assert.Equal(t, "spotify", entries[3].ID)

	ids := c.IDs()
	ids[0] = "mutated"
	assert.Equal(t, "icloud", c.IDs()[0])
}
