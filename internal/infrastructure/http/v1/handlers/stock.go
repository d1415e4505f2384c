package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"makhzan/internal/core/entity"
	"makhzan/internal/domain/ledger"
	"makhzan/internal/infrastructure/http/v1/dto"
)

// StockHandler serves balance and movement endpoints.
type StockHandler struct {
	*BaseHandler
	svc *ledger.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, svc *ledger.Service) *StockHandler {
	return &StockHandler{BaseHandler: base, svc: svc}
}

// ItemStock handles GET /stock/items/:id.
func (h *StockHandler) ItemStock(c *gin.Context) {
	itemID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	snaps, err := h.svc.GetSnapshotsForItem(c.Request.Context(), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	var total int64
	for _, s := range snaps {
		total += s.OnHand
	}

	c.JSON(http.StatusOK, dto.ItemStockResponse{
		ItemID:    itemID,
		Total:     total,
		Snapshots: snaps,
	})
}

// LocationStock handles GET /stock/locations/:id.
func (h *StockHandler) LocationStock(c *gin.Context) {
	locID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	snaps, err := h.svc.GetSnapshotsForLocation(c.Request.Context(), locID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LocationStockResponse{
		LocationID: locID,
		Snapshots:  snaps,
	})
}

// ListMovements handles GET /movements with filters and pagination.
func (h *StockHandler) ListMovements(c *gin.Context) {
	var req dto.ListMovementsRequest
	if !h.BindQuery(c, &req) {
		return
	}
	req.Defaults()

	filter := ledger.MovementFilter{
		ItemID:     req.ItemID,
		LocationID: req.LocationID,
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
		Page:       req.Page,
		Limit:      req.Limit,
	}
	if req.Type != nil {
		mt := entity.MovementType(*req.Type)
		filter.Type = &mt
	}

	movements, total, err := h.svc.GetMovementHistory(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      movements,
		Pagination: dto.NewPaginationResponse(req.Page, req.Limit, total),
	})
}

// PostMovement handles POST /movements.
func (h *StockHandler) PostMovement(c *gin.Context) {
	var req dto.PostMovementRequest
	if !h.BindJSON(c, &req) {
		return
	}

	m := req.ToEntity()
	if err := h.svc.Post(c.Request.Context(), m); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}
