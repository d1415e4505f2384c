package excel_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"makhzan/internal/core/apperror"
	"makhzan/internal/infrastructure/excel"
)

func buildWorkbook(t *testing.T, sheet string, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestReadWorkbook(t *testing.T) {
	buf := buildWorkbook(t, "المخزون", [][]any{
		{"التاريخ", "كود الصنف", "اسم الصنف", "الكمية", "نوع الحركة"},
		{"2024-03-01", "X1", "Widget", "١٠", "وارد"},
		{"", "", "", "", ""},
		{"2024-03-02", "X2", "Gadget", "5", "صادر"},
	})

	sheets, err := excel.ReadWorkbook(buf)
	require.NoError(t, err)
	require.Len(t, sheets, 1)

	sheet := sheets[0]
	assert.Equal(t, "المخزون", sheet.Name)
	assert.Equal(t, []string{"التاريخ", "كود الصنف", "اسم الصنف", "الكمية", "نوع الحركة"}, sheet.Headers)

	// the blank row is dropped
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "X1", sheet.Rows[0]["كود الصنف"])
	assert.Equal(t, "١٠", sheet.Rows[0]["الكمية"])
	assert.Equal(t, "صادر", sheet.Rows[1]["نوع الحركة"])
}

func TestReadWorkbookTrimsCells(t *testing.T) {
	buf := buildWorkbook(t, "Data", [][]any{
		{" code ", " qty "},
		{"  X1  ", " 5 "},
	})

	sheets, err := excel.ReadWorkbook(buf)
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.Equal(t, []string{"code", "qty"}, sheets[0].Headers)
	assert.Equal(t, "X1", sheets[0].Rows[0]["code"])
}

func TestReadWorkbookRejectsGarbage(t *testing.T) {
	_, err := excel.ReadWorkbook(bytes.NewReader([]byte("not an xlsx")))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}
