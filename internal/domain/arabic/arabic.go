// Package arabic provides locale-aware normalization for Arabic spreadsheet
// input: digit conversion, movement-type keyword mapping, and flexible date
// parsing. All functions are pure.
package arabic

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"makhzan/internal/core/entity"
)

// NormalizeDigits replaces Arabic-Indic (U+0660..U+0669) and Extended
// Arabic-Indic (U+06F0..U+06F9) digits with their Western equivalents.
// All other characters pass through untouched.
func NormalizeDigits(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '٠' && r <= '٩': // Arabic-Indic
			b.WriteRune('0' + (r - '٠'))
		case r >= '۰' && r <= '۹': // Extended Arabic-Indic
			b.WriteRune('0' + (r - '۰'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// movementSynonym binds one natural-language keyword to a canonical type.
// Declaration order matters: the first synonym that matches wins, both for
// exact equality and substring containment.
type movementSynonym struct {
	keyword string
	kind    entity.MovementType
}

var movementSynonyms = []movementSynonym{
	// وارد
	{"وارد", entity.MovementIn},
	{"إضافة", entity.MovementIn},
	{"استلام", entity.MovementIn},
	{"دخول", entity.MovementIn},
	{"شراء", entity.MovementIn},
	{"إدخال", entity.MovementIn},
	{"in", entity.MovementIn},

	// صادر
	{"صادر", entity.MovementOut},
	{"صرف", entity.MovementOut},
	{"خروج", entity.MovementOut},
	{"بيع", entity.MovementOut},
	{"إخراج", entity.MovementOut},
	{"out", entity.MovementOut},

	// تحويل
	{"تحويل", entity.MovementTransfer},
	{"نقل", entity.MovementTransfer},
	{"transfer", entity.MovementTransfer},
}

// ParseMovementType maps free text to one of the three canonical movement
// kinds. Input is trimmed and lowercased, then checked against the synonym
// table: exact equality or substring containment, first match authoritative.
func ParseMovementType(s string) (entity.MovementType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return "", false
	}
	for _, syn := range movementSynonyms {
		if normalized == syn.keyword || strings.Contains(normalized, syn.keyword) {
			return syn.kind, true
		}
	}
	return "", false
}

// MovementTypeLabel returns the canonical Arabic label for a movement type.
func MovementTypeLabel(t entity.MovementType) string {
	switch t {
	case entity.MovementIn:
		return "وارد"
	case entity.MovementOut:
		return "صادر"
	case entity.MovementTransfer:
		return "تحويل"
	}
	return string(t)
}

// Date layouts tried in order. Direct ISO-like forms first, then the common
// regional forms with day-first ordering, then year-first with either
// separator. time.Parse rejects impossible calendar dates (e.g. 31/02).
var dateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2/1/2006",
	"2-1-2006",
	"2006/1/2",
	"2006-1-2",
}

// ParseFlexibleDate parses a date from multiple layouts after digit
// normalization. Returns false when no layout yields a valid calendar date.
func ParseFlexibleDate(s string) (time.Time, bool) {
	normalized := NormalizeDigits(strings.TrimSpace(s))
	if normalized == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// --- Presentation formatting (ar-EG locale) ---
// Not used by the ledger logic; read handlers render balances and dates
// with these for Arabic-facing clients.

var arEG = message.NewPrinter(language.MustParse("ar-EG"))

// FormatNumber renders n with Arabic-Egypt locale digits and grouping.
func FormatNumber(n int64) string {
	return arEG.Sprint(number.Decimal(n))
}

var arabicMonths = [...]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

// arabicDigits converts Western digits in s to Arabic-Indic. Years and day
// numbers are rendered without grouping separators, so this is a plain
// digit substitution rather than a locale number format.
func arabicDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune('٠' + (r - '0'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatDate renders t as a long Arabic date (e.g. "١٥ مارس ٢٠٢٤").
func FormatDate(t time.Time) string {
	return arabicDigits(strconv.Itoa(t.Day())) + " " +
		arabicMonths[t.Month()-1] + " " +
		arabicDigits(strconv.Itoa(t.Year()))
}

// FormatDateShort renders t as a compact numeric Arabic date (DD/MM/YYYY).
func FormatDateShort(t time.Time) string {
	return arabicDigits(fmt.Sprintf("%02d/%02d/%04d",
		t.Day(), int(t.Month()), t.Year()))
}
