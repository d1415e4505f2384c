package dto

import (
	"makhzan/internal/domain/importer"
	"makhzan/internal/domain/ledger"
)

// SheetPreview describes one workbook sheet for the mapping UI.
type SheetPreview struct {
	Name             string           `json:"name"`
	Headers          []string         `json:"headers"`
	RowCount         int              `json:"rowCount"`
	SampleRows       []importer.Row   `json:"sampleRows"`
	SuggestedMapping importer.Mapping `json:"suggestedMapping"`
	MissingRequired  []importer.Field `json:"missingRequired"`
}

// UploadResponse is returned by the upload endpoint.
type UploadResponse struct {
	FileName string         `json:"fileName"`
	Sheets   []SheetPreview `json:"sheets"`
}

// ValidateRequest carries rows and a mapping for dry-run validation.
type ValidateRequest struct {
	Rows    []importer.Row   `json:"rows" binding:"required"`
	Mapping importer.Mapping `json:"mapping" binding:"required"`
}

// ValidateResponse reports the dry-run outcome.
type ValidateResponse struct {
	ValidCount int                   `json:"validCount"`
	ErrorCount int                   `json:"errorCount"`
	Errors     []importer.FieldError `json:"errors"`
	ValidRows  []importer.ImportRow  `json:"validRows"`
}

// CommitResponse reports what a committed import changed.
type CommitResponse struct {
	Summary          *ledger.Summary       `json:"summary"`
	ValidationErrors []importer.FieldError `json:"validationErrors"`
}
