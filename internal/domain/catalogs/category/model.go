// Package category provides the Category catalog (فئة) and its
// Subcategory children. Categories classify items in two levels and are
// created lazily during import when a sheet names an unknown one.
package category

import (
	"context"
	"time"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/entity"
	"makhzan/internal/core/id"
)

// Category represents a top-level item classification.
type Category struct {
	entity.Catalog

	// Description is optional free text
	Description *string `db:"description" json:"description,omitempty"`
}

// NewCategory creates a new Category with required fields.
func NewCategory(name string) *Category {
	return &Category{
		Catalog: entity.NewCatalog(name),
	}
}

// Subcategory represents a second-level classification under a Category.
// Its natural key is (CategoryID, Name): the same name may appear under
// different parents.
type Subcategory struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// CategoryID is the owning category
	CategoryID id.ID `db:"category_id" json:"categoryId"`

	// Name is the display name, unique within the parent
	Name string `db:"name" json:"name"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewSubcategory creates a new Subcategory under the given category.
func NewSubcategory(categoryID id.ID, name string) *Subcategory {
	now := time.Now().UTC()
	return &Subcategory{
		ID:         id.New(),
		CategoryID: categoryID,
		Name:       name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Validate implements entity.Validatable interface.
func (s *Subcategory) Validate(ctx context.Context) error {
	if s.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if id.IsNil(s.CategoryID) {
		return apperror.NewValidation("categoryId is required").
			WithDetail("field", "categoryId")
	}
	return nil
}
