package category

import (
	"context"

	"makhzan/internal/core/id"
)

// Repository defines the interface for Category persistence.
type Repository interface {
	// GetByID retrieves a category by primary key.
	GetByID(ctx context.Context, id id.ID) (*Category, error)

	// GetByName retrieves a category by its natural key.
	// Returns (nil, nil) when no category has that name.
	GetByName(ctx context.Context, name string) (*Category, error)

	// ListAll returns all categories ordered by name.
	ListAll(ctx context.Context) ([]*Category, error)

	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id id.ID) error
}

// SubcategoryRepository defines the interface for Subcategory persistence.
type SubcategoryRepository interface {
	// GetByID retrieves a subcategory by primary key.
	GetByID(ctx context.Context, id id.ID) (*Subcategory, error)

	// GetByName retrieves a subcategory by its natural key (parent, name).
	// Returns (nil, nil) when the parent has no subcategory with that name.
	GetByName(ctx context.Context, categoryID id.ID, name string) (*Subcategory, error)

	// ListAll returns all subcategories ordered by name.
	ListAll(ctx context.Context) ([]*Subcategory, error)

	// ListByCategory returns the subcategories of one category ordered by name.
	ListByCategory(ctx context.Context, categoryID id.ID) ([]*Subcategory, error)

	Create(ctx context.Context, s *Subcategory) error
	Delete(ctx context.Context, id id.ID) error
}
