package catalog

import (
	"slices"

	"github.com/dogfinder/dogfinder/internal/domain"
)

// HydratedCatalog holds the full records fetched for one search context.
// Records keep the order in which they were first fetched and ids are
// unique; merging an id that is already present replaces its value in place.
type HydratedCatalog struct {
	order []string
	byID  map[string]domain.Dog
}

// NewHydratedCatalog returns an empty catalog.
func NewHydratedCatalog() *HydratedCatalog {
	return &HydratedCatalog{byID: make(map[string]domain.Dog)}
}

// Merge appends dogs not yet present and replaces those that are.
func (c *HydratedCatalog) Merge(dogs []domain.Dog) {
	for _, d := range dogs {
		if _, ok := c.byID[d.ID]; !ok {
			c.order = append(c.order, d.ID)
		}
		c.byID[d.ID] = d
	}
}

// Len returns the number of records.
func (c *HydratedCatalog) Len() int {
	return len(c.order)
}

// Get returns the record for id.
func (c *HydratedCatalog) Get(id string) (domain.Dog, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// Slice returns a copy of records in [start, end), clamped to the catalog.
func (c *HydratedCatalog) Slice(start, end int) []domain.Dog {
	start = max(start, 0)
	end = min(end, len(c.order))
	if start >= end {
		return []domain.Dog{}
	}
	out := make([]domain.Dog, 0, end-start)
	for _, id := range c.order[start:end] {
		out = append(out, c.byID[id])
	}
	return out
}

// Records returns a copy of all records in order.
func (c *HydratedCatalog) Records() []domain.Dog {
	return c.Slice(0, len(c.order))
}

// IDs returns the ids in order.
func (c *HydratedCatalog) IDs() []string {
	return slices.Clone(c.order)
}

// Clone returns an independent copy.
func (c *HydratedCatalog) Clone() *HydratedCatalog {
	out := &HydratedCatalog{
		order: slices.Clone(c.order),
		byID:  make(map[string]domain.Dog, len(c.byID)),
	}
	for k, v := range c.byID {
		out.byID[k] = v
	}
	return out
}
