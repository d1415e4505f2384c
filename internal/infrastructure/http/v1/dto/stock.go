package dto

import (
	"time"

	"makhzan/internal/core/entity"
	"makhzan/internal/core/id"
)

// PostMovementRequest is the payload for manually recording a movement.
type PostMovementRequest struct {
	Date           time.Time           `json:"date" binding:"required"`
	Type           entity.MovementType `json:"type" binding:"required"`
	Quantity       int64               `json:"quantity" binding:"required"`
	ItemID         id.ID               `json:"itemId" binding:"required"`
	FromLocationID *id.ID              `json:"fromLocationId"`
	ToLocationID   *id.ID              `json:"toLocationId"`
	Note           *string             `json:"note"`
}

// ToEntity converts the request to a domain movement.
func (r PostMovementRequest) ToEntity() *entity.Movement {
	return &entity.Movement{
		Date:           r.Date,
		Type:           r.Type,
		Quantity:       r.Quantity,
		ItemID:         r.ItemID,
		FromLocationID: r.FromLocationID,
		ToLocationID:   r.ToLocationID,
		Note:           r.Note,
	}
}

// ListMovementsRequest holds the query parameters for movement history.
type ListMovementsRequest struct {
	PaginationRequest
	ItemID     *id.ID     `form:"itemId"`
	LocationID *id.ID     `form:"locationId"`
	Type       *string    `form:"type"`
	DateFrom   *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo     *time.Time `form:"dateTo" time_format:"2006-01-02"`
}

// ItemStockResponse is an item's balances per location plus the total.
type ItemStockResponse struct {
	ItemID    id.ID                   `json:"itemId"`
	Total     int64                   `json:"total"`
	Snapshots []*entity.StockSnapshot `json:"snapshots"`
}

// LocationStockResponse lists the balances held at one location.
type LocationStockResponse struct {
	LocationID id.ID                   `json:"locationId"`
	Snapshots  []*entity.StockSnapshot `json:"snapshots"`
}
