package item

import (
	"context"

	"makhzan/internal/core/id"
)

// ListParams controls search and pagination for item listing.
type ListParams struct {
	// Search matches name or code, case-insensitive substring
	Search string

	// CategoryID filters by category when set
	CategoryID *id.ID

	// SubcategoryID filters by subcategory when set
	SubcategoryID *id.ID

	// Page is 1-based
	Page int

	// Limit is the page size
	Limit int
}

// Normalize applies defaults for unset pagination fields.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
}

// Repository defines the interface for Item persistence.
type Repository interface {
	// GetByID retrieves an item by primary key.
	GetByID(ctx context.Context, id id.ID) (*Item, error)

	// GetByCode retrieves an item by its natural key.
	// Returns (nil, nil) when no item has that code.
	GetByCode(ctx context.Context, code string) (*Item, error)

	// List returns a page of items matching params and the total count.
	List(ctx context.Context, params ListParams) ([]*Item, int, error)

	// ListAll returns all items ordered by name.
	ListAll(ctx context.Context) ([]*Item, error)

	Create(ctx context.Context, i *Item) error
	Update(ctx context.Context, i *Item) error
	Delete(ctx context.Context, id id.ID) error
}
