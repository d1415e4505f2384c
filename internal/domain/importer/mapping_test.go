package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"makhzan/internal/core/apperror"
)

func TestSuggestColumnMapping(t *testing.T) {
	headers := []string{
		"التاريخ", "كود الصنف", "اسم الصنف", "الكمية", "نوع الحركة",
		"من موقع", "إلى موقع", "الفئة", "ملاحظات",
	}

	mapping := SuggestColumnMapping(headers)

	assert.Equal(t, "التاريخ", mapping[FieldDate])
	assert.Equal(t, "كود الصنف", mapping[FieldItemCode])
	assert.Equal(t, "اسم الصنف", mapping[FieldItemName])
	assert.Equal(t, "الكمية", mapping[FieldQuantity])
	assert.Equal(t, "نوع الحركة", mapping[FieldMovementType])
	assert.Equal(t, "من موقع", mapping[FieldFromLocation])
	assert.Equal(t, "إلى موقع", mapping[FieldToLocation])
	assert.Equal(t, "الفئة", mapping[FieldCategory])
	assert.Equal(t, "ملاحظات", mapping[FieldNote])
}

func TestSuggestColumnMappingEnglishHeaders(t *testing.T) {
	headers := []string{"Date", "Code", "Name", "Qty", "Type", "From", "To"}

	mapping := SuggestColumnMapping(headers)

	assert.Equal(t, "Date", mapping[FieldDate])
	assert.Equal(t, "Code", mapping[FieldItemCode])
	assert.Equal(t, "Name", mapping[FieldItemName])
	assert.Equal(t, "Qty", mapping[FieldQuantity])
	assert.Equal(t, "Type", mapping[FieldMovementType])
	assert.Equal(t, "From", mapping[FieldFromLocation])
	assert.Equal(t, "To", mapping[FieldToLocation])
}

func TestSuggestColumnMappingDoesNotOverwrite(t *testing.T) {
	// Two headers both match the date patterns; the first one sticks.
	mapping := SuggestColumnMapping([]string{"تاريخ الحركة", "تاريخ الإدخال"})
	assert.Equal(t, "تاريخ الحركة", mapping[FieldDate])
}

func TestSuggestColumnMappingUnknownHeaders(t *testing.T) {
	mapping := SuggestColumnMapping([]string{"عمود غامض", "misc"})
	assert.Empty(t, mapping[FieldDate])
	assert.Empty(t, mapping[FieldQuantity])
}

func TestMappingValidate(t *testing.T) {
	complete := Mapping{
		FieldDate:         "التاريخ",
		FieldItemCode:     "كود",
		FieldItemName:     "اسم",
		FieldQuantity:     "كمية",
		FieldMovementType: "نوع",
	}
	assert.NoError(t, complete.Validate())

	partial := Mapping{
		FieldDate:     "التاريخ",
		FieldItemCode: "كود",
	}
	err := partial.Validate()
	assert.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeUnmappedColumn))

	missing := partial.MissingRequired()
	assert.ElementsMatch(t, []Field{FieldItemName, FieldQuantity, FieldMovementType}, missing)
}
