package repository

import (
	"errors"
	"fmt"

	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/model"
)

// Catalog is the process-wide property store. It is built once at startup
// from the fixture generator and never written again, so it is safe for
// concurrent readers without locking.
type Catalog struct {
	props []model.Property
	byID  map[string]int
}

// NewCatalog wraps a generated property list. An empty list is refused:
// a server with nothing to serve should fail at startup, not answer every
// search with zero results.
func NewCatalog(props []model.Property) (*Catalog, error) {
	if len(props) == 0 {
		return nil, errors.New("catalog: no properties to serve")
	}
	byID := make(map[string]int, len(props))
	for i, p := range props {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog: property at index %d has no id", i)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate property id %q", p.ID)
		}
		byID[p.ID] = i
	}
	return &Catalog{props: props, byID: byID}, nil
}

// All returns every property in catalog order. The slice is shared; callers
// must treat it as read-only.
func (c *Catalog) All() []model.Property {
	return c.props
}

// GetByID looks up a single property.
func (c *Catalog) GetByID(id string) (model.Property, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Property{}, false
	}
	return c.props[i], true
}

// Size returns the number of properties in the catalog.
func (c *Catalog) Size() int {
	return len(c.props)
}
