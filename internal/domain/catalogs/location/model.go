// Package location provides the Location catalog (موقع).
// Locations are the physical places stock sits in: stores, shelves,
// vehicles. Balances are tracked per (item, location) pair.
package location

import (
	"makhzan/internal/core/entity"
)

// Location represents a physical storage place.
type Location struct {
	entity.Catalog

	// Description is optional free text
	Description *string `db:"description" json:"description,omitempty"`
}

// NewLocation creates a new Location with required fields.
func NewLocation(name string) *Location {
	return &Location{
		Catalog: entity.NewCatalog(name),
	}
}
