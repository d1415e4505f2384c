package entity

import (
	"context"
	"time"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/id"
)

// MovementType defines the direction of a stock movement.
type MovementType string

const (
	// MovementIn increases balance at the destination location (وارد)
	MovementIn MovementType = "IN"
	// MovementOut decreases balance at the source location (صادر)
	MovementOut MovementType = "OUT"
	// MovementTransfer moves quantity between two locations (تحويل)
	MovementTransfer MovementType = "TRANSFER"
)

// Valid reports whether t is one of the three canonical kinds.
func (t MovementType) Valid() bool {
	switch t {
	case MovementIn, MovementOut, MovementTransfer:
		return true
	}
	return false
}

// RequiresFrom reports whether the type needs a source location.
func (t MovementType) RequiresFrom() bool {
	return t == MovementOut || t == MovementTransfer
}

// RequiresTo reports whether the type needs a destination location.
func (t MovementType) RequiresTo() bool {
	return t == MovementIn || t == MovementTransfer
}

// Movement is an immutable historical stock transaction.
// Movements are append-only: never updated or deleted by the ledger engine.
type Movement struct {
	ID id.ID `db:"id" json:"id"`

	// Date is the business date of the movement
	Date time.Time `db:"date" json:"date"`

	Type     MovementType `db:"type" json:"type"`
	Quantity int64        `db:"quantity" json:"quantity"`

	ItemID id.ID `db:"item_id" json:"itemId"`

	// FromLocationID is required for OUT and TRANSFER
	FromLocationID *id.ID `db:"from_location_id" json:"fromLocationId,omitempty"`

	// ToLocationID is required for IN and TRANSFER
	ToLocationID *id.ID `db:"to_location_id" json:"toLocationId,omitempty"`

	Note *string `db:"note" json:"note,omitempty"`

	// Provenance of imported rows. SourceRowHash is unique when present;
	// it is the sole dedupe mechanism for re-imported files.
	SourceFileName *string `db:"source_file_name" json:"sourceFileName,omitempty"`
	SourceRowHash  *string `db:"source_row_hash" json:"sourceRowHash,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Validate implements Validatable interface.
// Checks the location-presence invariant for the movement type.
func (m *Movement) Validate(ctx context.Context) error {
	if !m.Type.Valid() {
		return apperror.NewValidation("invalid movement type").
			WithDetail("field", "type").
			WithDetail("value", string(m.Type))
	}
	if m.Quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}
	if id.IsNil(m.ItemID) {
		return apperror.NewValidation("item is required").
			WithDetail("field", "itemId")
	}
	if m.Type.RequiresFrom() && (m.FromLocationID == nil || id.IsNil(*m.FromLocationID)) {
		return apperror.NewValidation("source location is required").
			WithDetail("field", "fromLocationId").
			WithDetail("type", string(m.Type))
	}
	if m.Type.RequiresTo() && (m.ToLocationID == nil || id.IsNil(*m.ToLocationID)) {
		return apperror.NewValidation("destination location is required").
			WithDetail("field", "toLocationId").
			WithDetail("type", string(m.Type))
	}
	if m.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return nil
}

// StockSnapshot is the cached current balance for an (item, location) pair.
// This is a materialized view over movement history, maintained incrementally
// and mutated exclusively by the ledger engine.
type StockSnapshot struct {
	// Dimensions
	ItemID     id.ID `db:"item_id" json:"itemId"`
	LocationID id.ID `db:"location_id" json:"locationId"`

	// OnHand may only go negative if validation is bypassed; the ledger
	// engine rejects OUT/TRANSFER rows that would drive it below zero.
	OnHand int64 `db:"on_hand" json:"onHand"`

	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
