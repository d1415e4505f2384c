// Package item provides the Item catalog (صنف).
// Items are identified by a unique code and optionally classified by
// category and subcategory. Unknown items are created during import.
package item

import (
	"context"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/entity"
	"makhzan/internal/core/id"
)

// Item represents a tracked stock item.
type Item struct {
	entity.Catalog

	// Code is the unique business identifier (natural key)
	Code string `db:"code" json:"code"`

	// CategoryID is the optional classification
	CategoryID *id.ID `db:"category_id" json:"categoryId,omitempty"`

	// SubcategoryID is the optional second-level classification
	SubcategoryID *id.ID `db:"subcategory_id" json:"subcategoryId,omitempty"`
}

// NewItem creates a new Item with required fields.
func NewItem(code, name string) *Item {
	return &Item{
		Catalog: entity.NewCatalog(name),
		Code:    code,
	}
}

// Validate implements entity.Validatable interface.
func (i *Item) Validate(ctx context.Context) error {
	if err := i.Catalog.Validate(ctx); err != nil {
		return err
	}
	if i.Code == "" {
		return apperror.NewValidation("code is required").
			WithDetail("field", "code")
	}
	return nil
}

// WithTotal pairs an item with its balance summed across locations.
type WithTotal struct {
	*Item
	TotalOnHand int64 `json:"totalOnHand"`
}
