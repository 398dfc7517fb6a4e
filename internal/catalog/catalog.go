package catalog

import "fmt"

// Entry is one subscription deal with its display metadata. Entries are
// built once at startup and never mutated.
type Entry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	// DisplayStyle selects the visual style of the deal's checkout button.
	DisplayStyle string `json:"display_style"`
	// Phrase is the literal spoken form matched in free text. It differs
	// from the id when the id has no spaces ("applemusic" -> "apple music").
	Phrase string `json:"-"`
}

// Catalog is an immutable, ordered lookup table of deals. Iteration order
// is the insertion order and is observable: the chat matcher scans ids in
// this order and stops at the first hit.
type Catalog struct {
	order   []string
	entries map[string]Entry
}

// New builds a catalog from entries, preserving their order. Entries with
// an empty Phrase default to matching their own id.
func New(entries ...Entry) *Catalog {
	c := &Catalog{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		if e.Phrase == "" {
			e.Phrase = e.ID
		}
		if _, dup := c.entries[e.ID]; dup {
			panic(fmt.Sprintf("catalog: duplicate entry id %q", e.ID))
		}
		c.order = append(c.order, e.ID)
		c.entries[e.ID] = e
	}
	return c
}

// Get returns the entry for id.
func (c *Catalog) Get(id string) (Entry, bool) {
	e, ok := c.entries[id]
	return e, ok
}

// MustGet returns the entry for id and panics when it is absent. Callers
// pass only ids that came from the catalog itself; an unknown id here is a
// programming error, not a runtime condition.
func (c *Catalog) MustGet(id string) Entry {
	e, ok := c.entries[id]
	if !ok {
		panic(fmt.Sprintf("catalog: unknown entry id %q", id))
	}
	return e
}

// IDs returns the ids in fixed catalog order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Entries returns all entries in fixed catalog order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.entries[id])
	}
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Default returns the fixed deal catalog for the marketing page.
func Default() *Catalog {
	return New(
		Entry{
			ID:           "icloud",
			Title:        "iCloud+ Storage",
			Description:  "Get 2TB of iCloud storage to securely keep all your files, photos, and backups in one place. Share with your family at no extra cost.",
			Price:        "$9.99",
			DisplayStyle: "button-icloud",
		},
		Entry{
			ID:           "applemusic",
			Title:        "Apple Music Family",
			Description:  "Enjoy unlimited, ad-free access to over 90 million songs. Download your favorite tracks and listen offline.",
			Price:        "$14.99",
			DisplayStyle: "button-applemusic",
			Phrase:       "apple music",
		},
		Entry{
			ID:           "netflix",
			Title:        "Netflix Premium",
			Description:  "Watch on 4 screens at a time in stunning 4K Ultra HD. Download your favorite shows and movies to watch on the go.",
			Price:        "$15.99",
			DisplayStyle: "button-netflix",
		},
		Entry{
			ID:           "spotify",
			Title:        "Spotify Premium",
			Description:  "Listen without limits. Enjoy ad-free music, offline listening, and on-demand playback for all your favorite artists.",
			Price:        "$9.99",
			DisplayStyle: "button-spotify",
		},
	)
}
