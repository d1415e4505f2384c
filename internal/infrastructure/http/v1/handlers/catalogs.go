package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"makhzan/internal/domain/catalogs/category"
	"makhzan/internal/domain/catalogs/item"
	"makhzan/internal/domain/catalogs/location"
	"makhzan/internal/infrastructure/http/v1/dto"
)

// CategoryHandler serves the category and subcategory endpoints.
type CategoryHandler struct {
	*BaseHandler
	svc *category.Service
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(base *BaseHandler, svc *category.Service) *CategoryHandler {
	return &CategoryHandler{BaseHandler: base, svc: svc}
}

// List handles GET /categories.
func (h *CategoryHandler) List(c *gin.Context) {
	cats, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": cats})
}

// Get handles GET /categories/:id.
func (h *CategoryHandler) Get(c *gin.Context) {
	catID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	cat, err := h.svc.Get(c.Request.Context(), catID)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// Create handles POST /categories.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	cat := req.ToEntity()
	if err := h.svc.Create(c.Request.Context(), cat); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// Update handles PUT /categories/:id.
func (h *CategoryHandler) Update(c *gin.Context) {
	catID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cat, err := h.svc.Get(c.Request.Context(), catID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(cat)
	if err := h.svc.Update(c.Request.Context(), cat); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// Delete handles DELETE /categories/:id.
func (h *CategoryHandler) Delete(c *gin.Context) {
	catID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), catID); err != nil {
		h.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListSubcategories handles GET /categories/:id/subcategories.
func (h *CategoryHandler) ListSubcategories(c *gin.Context) {
	catID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	subs, err := h.svc.ListSubcategories(c.Request.Context(), catID)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": subs})
}

// CreateSubcategory handles POST /categories/:id/subcategories.
func (h *CategoryHandler) CreateSubcategory(c *gin.Context) {
	catID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateSubcategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	sub := category.NewSubcategory(catID, req.Name)
	if err := h.svc.CreateSubcategory(c.Request.Context(), sub); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// DeleteSubcategory handles DELETE /subcategories/:id.
func (h *CategoryHandler) DeleteSubcategory(c *gin.Context) {
	subID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteSubcategory(c.Request.Context(), subID); err != nil {
		h.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LocationHandler serves the location endpoints.
type LocationHandler struct {
	*BaseHandler
	svc *location.Service
}

// NewLocationHandler creates a new location handler.
func NewLocationHandler(base *BaseHandler, svc *location.Service) *LocationHandler {
	return &LocationHandler{BaseHandler: base, svc: svc}
}

// List handles GET /locations.
func (h *LocationHandler) List(c *gin.Context) {
	locs, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": locs})
}

// Get handles GET /locations/:id.
func (h *LocationHandler) Get(c *gin.Context) {
	locID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	loc, err := h.svc.Get(c.Request.Context(), locID)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, loc)
}

// Create handles POST /locations.
func (h *LocationHandler) Create(c *gin.Context) {
	var req dto.CreateLocationRequest
	if !h.BindJSON(c, &req) {
		return
	}
	loc := req.ToEntity()
	if err := h.svc.Create(c.Request.Context(), loc); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, loc)
}

// Update handles PUT /locations/:id.
func (h *LocationHandler) Update(c *gin.Context) {
	locID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateLocationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	loc, err := h.svc.Get(c.Request.Context(), locID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(loc)
	if err := h.svc.Update(c.Request.Context(), loc); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, loc)
}

// Delete handles DELETE /locations/:id.
// Refused while stock remains at the location.
func (h *LocationHandler) Delete(c *gin.Context) {
	locID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), locID); err != nil {
		h.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ItemHandler serves the item endpoints.
type ItemHandler struct {
	*BaseHandler
	svc *item.Service
}

// NewItemHandler creates a new item handler.
func NewItemHandler(base *BaseHandler, svc *item.Service) *ItemHandler {
	return &ItemHandler{BaseHandler: base, svc: svc}
}

// List handles GET /items with search, filters and pagination.
func (h *ItemHandler) List(c *gin.Context) {
	var req dto.ListItemsRequest
	if !h.BindQuery(c, &req) {
		return
	}
	req.Defaults()

	items, total, err := h.svc.List(c.Request.Context(), item.ListParams{
		Search:        req.Search,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		Page:          req.Page,
		Limit:         req.Limit,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		Pagination: dto.NewPaginationResponse(req.Page, req.Limit, total),
	})
}

// Get handles GET /items/:id.
func (h *ItemHandler) Get(c *gin.Context) {
	itemID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	it, err := h.svc.Get(c.Request.Context(), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

// Create handles POST /items.
func (h *ItemHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	it := req.ToEntity()
	if err := h.svc.Create(c.Request.Context(), it); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, it)
}

// Update handles PUT /items/:id.
func (h *ItemHandler) Update(c *gin.Context) {
	itemID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	it, err := h.svc.Get(c.Request.Context(), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(it)
	if err := h.svc.Update(c.Request.Context(), it); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

// Delete handles DELETE /items/:id.
func (h *ItemHandler) Delete(c *gin.Context) {
	itemID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), itemID); err != nil {
		h.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
