// Package entity provides core domain entities shared across modules.
package entity

import (
	"context"
	"time"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Catalog is the base type for reference data: items, locations, categories.
// Catalog rows are looked up by natural key (name, or code for items) and
// created lazily during import when unseen.
type Catalog struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// Name is the display name (natural key for most catalogs)
	Name string `db:"name" json:"name"`

	// Audit fields
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewCatalog creates a new Catalog with generated ID.
func NewCatalog(name string) Catalog {
	now := time.Now().UTC()
	return Catalog{
		ID:        id.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

// Touch updates the modification timestamp.
func (c *Catalog) Touch() {
	c.UpdatedAt = time.Now().UTC()
}
