package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/entity"
)

var testMapping = Mapping{
	FieldDate:         "التاريخ",
	FieldItemCode:     "كود الصنف",
	FieldItemName:     "اسم الصنف",
	FieldQuantity:     "الكمية",
	FieldMovementType: "نوع الحركة",
	FieldFromLocation: "من موقع",
	FieldToLocation:   "إلى موقع",
	FieldCategory:     "الفئة",
	FieldSubcategory:  "الفئة الفرعية",
	FieldNote:         "ملاحظات",
}

func makeRow(overrides map[string]string) Row {
	row := Row{
		"التاريخ":    "2024-03-01",
		"كود الصنف":  "X1",
		"اسم الصنف":  "Widget",
		"الكمية":     "10",
		"نوع الحركة": "وارد",
		"إلى موقع":   "Main",
	}
	for k, v := range overrides {
		if v == "" {
			delete(row, k)
		} else {
			row[k] = v
		}
	}
	return row
}

func TestValidateRowsHappyPath(t *testing.T) {
	valid, errs, err := ValidateRows([]Row{makeRow(nil)}, testMapping)
	require.NoError(t, err)
	assert.Empty(t, errs)
	require.Len(t, valid, 1)

	row := valid[0]
	assert.Equal(t, "X1", row.ItemCode)
	assert.Equal(t, "Widget", row.ItemName)
	assert.Equal(t, int64(10), row.Quantity)
	assert.Equal(t, entity.MovementIn, row.MovementType)
	assert.Equal(t, "Main", row.ToLocation)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), row.Date)
	assert.Equal(t, 2, row.RowNumber)
	assert.NotEmpty(t, row.Fingerprint)
}

func TestValidateRowsArabicDigitsAndTruncation(t *testing.T) {
	valid, errs, err := ValidateRows([]Row{makeRow(map[string]string{
		"الكمية":  "١٢.٧",
		"التاريخ": "١٥/٠٣/٢٠٢٤",
	})}, testMapping)
	require.NoError(t, err)
	assert.Empty(t, errs)
	require.Len(t, valid, 1)

	// Fractional part truncated toward zero after positivity check.
	assert.Equal(t, int64(12), valid[0].Quantity)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), valid[0].Date)
}

func TestValidateRowsQuantityAtInt64Boundary(t *testing.T) {
	valid, errs, err := ValidateRows([]Row{makeRow(map[string]string{
		"الكمية": "9223372036854775806",
	})}, testMapping)
	require.NoError(t, err)
	assert.Empty(t, errs)
	require.Len(t, valid, 1)
	assert.Equal(t, int64(9223372036854775806), valid[0].Quantity)
}

func TestValidateRowsFieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
		field     string
	}{
		{"bad quantity", map[string]string{"الكمية": "abc"}, "quantity"},
		{"zero quantity", map[string]string{"الكمية": "0"}, "quantity"},
		{"negative quantity", map[string]string{"الكمية": "-4"}, "quantity"},
		{"missing quantity", map[string]string{"الكمية": ""}, "quantity"},
		{"quantity beyond int64", map[string]string{"الكمية": "1e30"}, "quantity"},
		{"quantity just past int64", map[string]string{"الكمية": "9223372036854775808"}, "quantity"},
		{"unknown movement type", map[string]string{"نوع الحركة": "غامض"}, "movementType"},
		{"bad date", map[string]string{"التاريخ": "31/02/2024"}, "date"},
		{"garbage date", map[string]string{"التاريخ": "متى؟"}, "date"},
		{"blank item code", map[string]string{"كود الصنف": "  "}, "itemCode"},
		{"blank item name", map[string]string{"اسم الصنف": ""}, "itemName"},
		{"IN without destination", map[string]string{"إلى موقع": ""}, "toLocation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, errs, err := ValidateRows([]Row{makeRow(tt.overrides)}, testMapping)
			require.NoError(t, err)
			assert.Empty(t, valid)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
			assert.Equal(t, 2, errs[0].Row)
			assert.Contains(t, errs[0].Message, "سطر 2")
		})
	}
}

func TestValidateRowsLocationRulesByType(t *testing.T) {
	outRow := makeRow(map[string]string{
		"نوع الحركة": "صادر",
		"إلى موقع":   "",
	})
	_, errs, err := ValidateRows([]Row{outRow}, testMapping)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "fromLocation", errs[0].Field)

	transferRow := makeRow(map[string]string{
		"نوع الحركة": "تحويل",
		"من موقع":    "A",
		"إلى موقع":   "",
	})
	_, errs, err = ValidateRows([]Row{transferRow}, testMapping)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "locations", errs[0].Field)
}

func TestValidateRowsCollectsAllErrors(t *testing.T) {
	rows := []Row{
		makeRow(nil),
		makeRow(map[string]string{"الكمية": "bad"}),
		makeRow(map[string]string{"التاريخ": "nope"}),
		makeRow(map[string]string{"كود الصنف": "X2"}),
	}

	valid, errs, err := ValidateRows(rows, testMapping)
	require.NoError(t, err)
	assert.Len(t, valid, 2)
	require.Len(t, errs, 2)

	// Row numbers are offset by the header row.
	assert.Equal(t, 3, errs[0].Row)
	assert.Equal(t, 4, errs[1].Row)
}

func TestValidateRowsUnmappedRequiredColumn(t *testing.T) {
	_, _, err := ValidateRows([]Row{makeRow(nil)}, Mapping{FieldDate: "التاريخ"})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeUnmappedColumn))
}

func TestFingerprintDeterminism(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	a := Fingerprint(date, "X1", entity.MovementIn, 10, "", "Main")
	b := Fingerprint(date, "X1", entity.MovementIn, 10, "", "Main")
	assert.Equal(t, a, b)

	// Changing any one component of the tuple changes the fingerprint.
	assert.NotEqual(t, a, Fingerprint(date.AddDate(0, 0, 1), "X1", entity.MovementIn, 10, "", "Main"))
	assert.NotEqual(t, a, Fingerprint(date, "X2", entity.MovementIn, 10, "", "Main"))
	assert.NotEqual(t, a, Fingerprint(date, "X1", entity.MovementOut, 10, "", "Main"))
	assert.NotEqual(t, a, Fingerprint(date, "X1", entity.MovementIn, 11, "", "Main"))
	assert.NotEqual(t, a, Fingerprint(date, "X1", entity.MovementIn, 10, "B", "Main"))
	assert.NotEqual(t, a, Fingerprint(date, "X1", entity.MovementIn, 10, "", "Other"))
}

func TestFingerprintStableForArabicNames(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	a := Fingerprint(date, "X1", entity.MovementTransfer, 3, "المخزن الرئيسي", "فرع المعادي")
	b := Fingerprint(date, "X1", entity.MovementTransfer, 3, "المخزن الرئيسي", "فرع المعادي")
	assert.Equal(t, a, b)
	assert.Regexp(t, `^[0-9a-z]+$`, a)
}
