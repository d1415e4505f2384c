package arabic

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"makhzan/internal/core/entity"
)

func TestNormalizeDigits(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"western digits unchanged", "0123456789", "0123456789"},
		{"arabic-indic alphabet", "٠١٢٣٤٥٦٧٨٩", "0123456789"},
		{"extended arabic-indic alphabet", "۰۱۲۳۴۵۶۷۸۹", "0123456789"},
		{"mixed text", "كمية ١٢ قطعة", "كمية 12 قطعة"},
		{"date with arabic digits", "٢٠٢٤/٠٣/٠١", "2024/03/01"},
		{"empty", "", ""},
		{"no digits", "مخزن رئيسي", "مخزن رئيسي"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeDigits(tt.input))
		})
	}
}

func TestNormalizeDigitsIdentityOnWestern(t *testing.T) {
	s := "20240301 qty=150"
	assert.Equal(t, s, NormalizeDigits(s))
}

func TestParseMovementType(t *testing.T) {
	tests := []struct {
		input    string
		expected entity.MovementType
		ok       bool
	}{
		{"وارد", entity.MovementIn, true},
		{"إضافة", entity.MovementIn, true},
		{"شراء", entity.MovementIn, true},
		{"in", entity.MovementIn, true},
		{"IN", entity.MovementIn, true},
		{"صادر", entity.MovementOut, true},
		{"بيع", entity.MovementOut, true},
		{"out", entity.MovementOut, true},
		{"تحويل", entity.MovementTransfer, true},
		{"نقل", entity.MovementTransfer, true},
		{"transfer", entity.MovementTransfer, true},
		{"  وارد  ", entity.MovementIn, true},
		// substring containment
		{"حركة وارد جديدة", entity.MovementIn, true},
		{"stock transfer", entity.MovementTransfer, true},
		// no match
		{"", "", false},
		{"غير معروف", "", false},
		{"xyz", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, ok := ParseMovementType(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, kind)
			}
		})
	}
}

func TestParseMovementTypeFirstMatchWins(t *testing.T) {
	// "إدخال" contains "دخول" as a substring; "دخول" is declared first,
	// both map to IN so either way the result is IN. The declared order is
	// the documented tie-break.
	kind, ok := ParseMovementType("إدخال")
	assert.True(t, ok)
	assert.Equal(t, entity.MovementIn, kind)
}

func TestParseFlexibleDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string // yyyy-mm-dd, empty means no match
	}{
		{"iso", "2024-03-01", "2024-03-01"},
		{"iso with time", "2024-03-01T10:30:00", "2024-03-01"},
		{"dd/mm/yyyy", "15/03/2024", "2024-03-15"},
		{"dd-mm-yyyy", "15-03-2024", "2024-03-15"},
		{"single digit day and month", "1/3/2024", "2024-03-01"},
		{"yyyy/mm/dd", "2024/03/15", "2024-03-15"},
		{"arabic digits", "١٥/٠٣/٢٠٢٤", "2024-03-15"},
		{"extended arabic digits", "۲۰۲۴-۰۳-۱۵", "2024-03-15"},
		{"whitespace", "  2024-03-01  ", "2024-03-01"},
		{"impossible date", "31/02/2024", ""},
		{"month out of range", "01/13/2024", ""},
		{"garbage", "not a date", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, ok := ParseFlexibleDate(tt.input)
			if tt.expected == "" {
				assert.False(t, ok)
				return
			}
			assert.True(t, ok)
			assert.Equal(t, tt.expected, parsed.Format("2006-01-02"))
		})
	}
}

func TestMovementTypeLabel(t *testing.T) {
	assert.Equal(t, "وارد", MovementTypeLabel(entity.MovementIn))
	assert.Equal(t, "صادر", MovementTypeLabel(entity.MovementOut))
	assert.Equal(t, "تحويل", MovementTypeLabel(entity.MovementTransfer))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "٥", FormatNumber(5))

	// Larger values must contain no Western digits at all.
	formatted := FormatNumber(1500)
	assert.False(t, strings.ContainsAny(formatted, "0123456789"), formatted)
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "١٥ مارس ٢٠٢٤", FormatDate(d))
	assert.Equal(t, "١٥/٠٣/٢٠٢٤", FormatDateShort(d))
}
