// Package excel reads uploaded workbooks into the importer's sheet
// model. The importer never touches excelize directly, so the reader
// stays a swappable collaborator.
package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"makhzan/internal/core/apperror"
	"makhzan/internal/domain/importer"
)

// ReadWorkbook parses an xlsx stream into sheets of header→cell maps.
// Headers come from each sheet's first row; fully blank rows are
// dropped. Sheets without a header row are skipped.
func ReadWorkbook(r io.Reader) ([]importer.Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperror.NewValidation("تعذر قراءة ملف الإكسل").WithCause(err)
	}
	defer f.Close()

	var sheets []importer.Sheet
	for _, name := range f.GetSheetList() {
		sheet, err := readSheet(f, name)
		if err != nil {
			return nil, err
		}
		if sheet != nil {
			sheets = append(sheets, *sheet)
		}
	}

	if len(sheets) == 0 {
		return nil, apperror.NewEmptySheet("")
	}
	return sheets, nil
}

func readSheet(f *excelize.File, name string) (*importer.Sheet, error) {
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := make([]string, 0, len(rows[0]))
	for _, h := range rows[0] {
		headers = append(headers, strings.TrimSpace(h))
	}
	if len(headers) == 0 {
		return nil, nil
	}

	sheet := &importer.Sheet{
		Name:    name,
		Headers: headers,
	}

	for _, raw := range rows[1:] {
		row := make(importer.Row, len(headers))
		blank := true
		for i, header := range headers {
			if header == "" {
				continue
			}
			var cell string
			if i < len(raw) {
				cell = strings.TrimSpace(raw[i])
			}
			row[header] = cell
			if cell != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	return sheet, nil
}
