// Package importer implements the bulk-import pipeline: column mapping
// suggestion, row validation and normalization, and dedupe fingerprinting.
// Rows it produces are consumed one at a time by the ledger engine.
package importer

import (
	"context"
	"fmt"
	"time"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/entity"
)

// headerRowOffset converts a 0-based data-row index to the 1-based row
// number the user sees in the spreadsheet (row 1 is the header row).
const headerRowOffset = 2

// Row is one raw spreadsheet row: header string -> raw cell text.
// Missing cells are simply absent from the map.
type Row map[string]string

// Sheet is what the spreadsheet-reading collaborator produces. The importer
// never touches binary workbook formats itself.
type Sheet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// FieldError is a single row-level validation failure. Message is fully
// formed (row number embedded) so it can go straight into a batch summary.
type FieldError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportRow is a fully normalized, validated movement ready for the ledger.
type ImportRow struct {
	Date         time.Time           `json:"date"`
	ItemCode     string              `json:"itemCode"`
	ItemName     string              `json:"itemName"`
	Quantity     int64               `json:"quantity"`
	MovementType entity.MovementType `json:"movementType"`
	FromLocation string              `json:"fromLocation,omitempty"`
	ToLocation   string              `json:"toLocation,omitempty"`
	Category     string              `json:"category,omitempty"`
	Subcategory  string              `json:"subcategory,omitempty"`
	Note         string              `json:"note,omitempty"`

	// Fingerprint is the dedupe key computed from the normalized tuple.
	Fingerprint string `json:"fingerprint"`

	// RowNumber is the 1-based spreadsheet row (header row included) so
	// user-facing errors match what the user sees in the file.
	RowNumber int `json:"rowNumber"`
}

// Validate implements entity.Validatable. This is the schema-level safety
// net re-checking everything the per-field steps already enforced.
func (r *ImportRow) Validate(ctx context.Context) error {
	if r.Date.IsZero() {
		return apperror.NewValidation("date is required").WithDetail("field", "date")
	}
	if r.ItemCode == "" {
		return apperror.NewValidation("item code is required").WithDetail("field", "itemCode")
	}
	if r.ItemName == "" {
		return apperror.NewValidation("item name is required").WithDetail("field", "itemName")
	}
	if r.Quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").WithDetail("field", "quantity")
	}
	if !r.MovementType.Valid() {
		return apperror.NewValidation("invalid movement type").WithDetail("field", "movementType")
	}
	if r.MovementType.RequiresFrom() && r.FromLocation == "" {
		return apperror.NewValidation("source location is required").WithDetail("field", "fromLocation")
	}
	if r.MovementType.RequiresTo() && r.ToLocation == "" {
		return apperror.NewValidation("destination location is required").WithDetail("field", "toLocation")
	}
	return nil
}

func rowError(rowNumber int, field, format string, args ...any) FieldError {
	return FieldError{
		Row:     rowNumber,
		Field:   field,
		Message: fmt.Sprintf("سطر %d: ", rowNumber) + fmt.Sprintf(format, args...),
	}
}
