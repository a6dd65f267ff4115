package entity

import (
	"time"

	"github.com/gfmartins/trcheck/constants"
)

// CatalogEntry is one reference record of the product catalog.
type CatalogEntry struct {
	Code         string                `json:"code"`
	OfficialUnit string                `json:"official_unit"`
	Status       constants.EntryStatus `json:"status"`
	Description  string                `json:"description,omitempty"`
}

// Catalog is an immutable snapshot of the reference catalog: a mapping from
// product code to its entry, plus the instant it was fetched. A snapshot is
// never mutated after construction; refreshes build a new one.
type Catalog struct {
	entries   map[string]CatalogEntry
	FetchedAt time.Time
}

// NewCatalog builds a snapshot from entries in source order. Duplicate codes
// keep the first occurrence; the caller is told which codes were dropped so
// it can log them.
func NewCatalog(entries []CatalogEntry, fetchedAt time.Time) (*Catalog, []string) {
	m := make(map[string]CatalogEntry, len(entries))
	var dupes []string
	for _, e := range entries {
		if _, ok := m[e.Code]; ok {
			dupes = append(dupes, e.Code)
			continue
		}
		m[e.Code] = e
	}
	return &Catalog{entries: m, FetchedAt: fetchedAt}, dupes
}

// Lookup returns the entry for a product code, exact string match.
func (c *Catalog) Lookup(code string) (CatalogEntry, bool) {
	e, ok := c.entries[code]
	return e, ok
}

// Len reports the number of distinct codes in the snapshot.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Codes returns the snapshot's codes in unspecified order.
func (c *Catalog) Codes() []string {
	out := make([]string, 0, len(c.entries))
	for k := range c.entries {
		out = append(out, k)
	}
	return out
}
