package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"makhzan/internal/core/apperror"
	"makhzan/internal/domain/importer"
	"makhzan/internal/domain/ledger"
	"makhzan/internal/infrastructure/excel"
	"makhzan/internal/infrastructure/http/v1/dto"
	"makhzan/internal/infrastructure/storage/postgres"
	"makhzan/pkg/logger"
)

const (
	maxUploadBytes = 20 << 20 // 20MB
	sampleRowCount = 5
)

// ImportHandler serves the spreadsheet import flow: upload for preview,
// dry-run validation, and commit.
type ImportHandler struct {
	*BaseHandler
	engine  *ledger.Engine
	archive *postgres.ArchiveStore
}

// NewImportHandler creates a new import handler. The archive store is
// optional; without it committed workbooks are not retained.
func NewImportHandler(base *BaseHandler, engine *ledger.Engine, archive *postgres.ArchiveStore) *ImportHandler {
	return &ImportHandler{BaseHandler: base, engine: engine, archive: archive}
}

// Upload handles POST /import/upload. Returns each sheet's headers, a
// sample of rows, and a suggested column mapping for the mapping UI.
func (h *ImportHandler) Upload(c *gin.Context) {
	fileName, content, ok := h.readUpload(c)
	if !ok {
		return
	}

	sheets, err := excel.ReadWorkbook(bytes.NewReader(content))
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := dto.UploadResponse{FileName: fileName}
	for _, sheet := range sheets {
		mapping := importer.SuggestColumnMapping(sheet.Headers)
		sample := sheet.Rows
		if len(sample) > sampleRowCount {
			sample = sample[:sampleRowCount]
		}
		resp.Sheets = append(resp.Sheets, dto.SheetPreview{
			Name:             sheet.Name,
			Headers:          sheet.Headers,
			RowCount:         len(sheet.Rows),
			SampleRows:       sample,
			SuggestedMapping: mapping,
			MissingRequired:  mapping.MissingRequired(),
		})
	}

	c.JSON(http.StatusOK, resp)
}

// Validate handles POST /import/validate. Dry run: parses and validates
// rows against a mapping without touching the ledger.
func (h *ImportHandler) Validate(c *gin.Context) {
	var req dto.ValidateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	valid, fieldErrors, err := importer.ValidateRows(req.Rows, req.Mapping)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ValidateResponse{
		ValidCount: len(valid),
		ErrorCount: len(fieldErrors),
		Errors:     fieldErrors,
		ValidRows:  valid,
	})
}

// Commit handles POST /import/commit. Re-reads the uploaded workbook,
// validates the chosen sheet against the mapping, applies valid rows to
// the ledger, and archives the source file.
func (h *ImportHandler) Commit(c *gin.Context) {
	fileName, content, ok := h.readUpload(c)
	if !ok {
		return
	}

	sheets, err := excel.ReadWorkbook(bytes.NewReader(content))
	if err != nil {
		h.Error(c, err)
		return
	}

	sheet, ok := h.pickSheet(c, sheets)
	if !ok {
		return
	}
	if len(sheet.Rows) == 0 {
		h.Error(c, apperror.NewEmptySheet(sheet.Name))
		return
	}

	mapping, ok := h.resolveMapping(c, sheet.Headers)
	if !ok {
		return
	}

	valid, fieldErrors, err := importer.ValidateRows(sheet.Rows, mapping)
	if err != nil {
		h.Error(c, err)
		return
	}

	summary, err := h.engine.ImportRows(c.Request.Context(), valid, fileName)
	if err != nil {
		h.Error(c, err)
		return
	}

	if h.archive != nil {
		if _, err := h.archive.Save(c.Request.Context(), fileName, sheet.Name, len(sheet.Rows), content); err != nil {
			// the ledger changes are already committed; losing the
			// archive copy is not worth failing the import
			logger.Error(c.Request.Context(), "archive import file failed",
				"file", fileName, "error", err)
		}
	}

	c.JSON(http.StatusOK, dto.CommitResponse{
		Summary:          summary,
		ValidationErrors: fieldErrors,
	})
}

// ListFiles handles GET /import/files. Metadata only, newest first.
func (h *ImportHandler) ListFiles(c *gin.Context) {
	if h.archive == nil {
		c.JSON(http.StatusOK, gin.H{"items": []any{}})
		return
	}
	files, err := h.archive.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": files})
}

// DownloadFile handles GET /import/files/:id. Streams the archived
// workbook back as an xlsx attachment.
func (h *ImportHandler) DownloadFile(c *gin.Context) {
	if h.archive == nil {
		h.Error(c, apperror.NewNotFound("import file", c.Param("id")))
		return
	}
	fileID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	f, content, err := h.archive.Get(c.Request.Context(), fileID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if f == nil {
		h.Error(c, apperror.NewNotFound("import file", fileID))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+f.FileName+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}

func (h *ImportHandler) readUpload(c *gin.Context) (string, []byte, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		h.Error(c, apperror.NewValidation("ملف الإكسل مطلوب"))
		return "", nil, false
	}
	if header.Size > maxUploadBytes {
		h.Error(c, apperror.NewValidation("حجم الملف يتجاوز الحد المسموح"))
		return "", nil, false
	}

	f, err := header.Open()
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return "", nil, false
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return "", nil, false
	}
	return header.Filename, content, true
}

func (h *ImportHandler) pickSheet(c *gin.Context, sheets []importer.Sheet) (*importer.Sheet, bool) {
	name := c.PostForm("sheet")
	if name == "" {
		return &sheets[0], true
	}
	for i := range sheets {
		if sheets[i].Name == name {
			return &sheets[i], true
		}
	}
	h.Error(c, apperror.NewNotFound("sheet", name))
	return nil, false
}

func (h *ImportHandler) resolveMapping(c *gin.Context, headers []string) (importer.Mapping, bool) {
	raw := c.PostForm("mapping")
	var mapping importer.Mapping
	if raw == "" {
		mapping = importer.SuggestColumnMapping(headers)
	} else {
		if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
			h.Error(c, apperror.NewValidation("invalid mapping").WithDetail("error", err.Error()))
			return nil, false
		}
	}
	if err := mapping.Validate(); err != nil {
		h.Error(c, err)
		return nil, false
	}
	return mapping, true
}
