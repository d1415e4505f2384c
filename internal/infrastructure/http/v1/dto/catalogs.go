package dto

import (
	"makhzan/internal/core/id"
	"makhzan/internal/domain/catalogs/category"
	"makhzan/internal/domain/catalogs/item"
	"makhzan/internal/domain/catalogs/location"
)

// --- Category ---

// CreateCategoryRequest is the payload for creating a category.
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// ToEntity converts the request to a domain entity.
func (r CreateCategoryRequest) ToEntity() *category.Category {
	c := category.NewCategory(r.Name)
	c.Description = r.Description
	return c
}

// UpdateCategoryRequest is the payload for updating a category.
type UpdateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// ApplyTo copies the request fields onto an existing category.
func (r UpdateCategoryRequest) ApplyTo(c *category.Category) {
	c.Name = r.Name
	c.Description = r.Description
}

// CreateSubcategoryRequest is the payload for creating a subcategory.
type CreateSubcategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// --- Location ---

// CreateLocationRequest is the payload for creating a location.
type CreateLocationRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// ToEntity converts the request to a domain entity.
func (r CreateLocationRequest) ToEntity() *location.Location {
	l := location.NewLocation(r.Name)
	l.Description = r.Description
	return l
}

// UpdateLocationRequest is the payload for updating a location.
type UpdateLocationRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// ApplyTo copies the request fields onto an existing location.
func (r UpdateLocationRequest) ApplyTo(l *location.Location) {
	l.Name = r.Name
	l.Description = r.Description
}

// --- Item ---

// CreateItemRequest is the payload for creating an item.
type CreateItemRequest struct {
	Code          string `json:"code" binding:"required"`
	Name          string `json:"name" binding:"required"`
	CategoryID    *id.ID `json:"categoryId"`
	SubcategoryID *id.ID `json:"subcategoryId"`
}

// ToEntity converts the request to a domain entity.
func (r CreateItemRequest) ToEntity() *item.Item {
	it := item.NewItem(r.Code, r.Name)
	it.CategoryID = r.CategoryID
	it.SubcategoryID = r.SubcategoryID
	return it
}

// UpdateItemRequest is the payload for updating an item.
type UpdateItemRequest struct {
	Code          string `json:"code" binding:"required"`
	Name          string `json:"name" binding:"required"`
	CategoryID    *id.ID `json:"categoryId"`
	SubcategoryID *id.ID `json:"subcategoryId"`
}

// ApplyTo copies the request fields onto an existing item.
func (r UpdateItemRequest) ApplyTo(it *item.Item) {
	it.Code = r.Code
	it.Name = r.Name
	it.CategoryID = r.CategoryID
	it.SubcategoryID = r.SubcategoryID
}

// ListItemsRequest holds the query parameters for item listing.
type ListItemsRequest struct {
	PaginationRequest
	Search        string `form:"search"`
	CategoryID    *id.ID `form:"categoryId"`
	SubcategoryID *id.ID `form:"subcategoryId"`
}
