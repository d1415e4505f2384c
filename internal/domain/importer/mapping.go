package importer

import (
	"regexp"
	"strings"

	"makhzan/internal/core/apperror"
)

// Field names the canonical import columns spreadsheet headers map onto.
type Field string

const (
	FieldDate         Field = "date"
	FieldItemCode     Field = "itemCode"
	FieldItemName     Field = "itemName"
	FieldQuantity     Field = "quantity"
	FieldMovementType Field = "movementType"
	FieldFromLocation Field = "fromLocation"
	FieldToLocation   Field = "toLocation"
	FieldCategory     Field = "category"
	FieldSubcategory  Field = "subcategory"
	FieldNote         Field = "note"
)

// RequiredFields must all be bound to a header before validation can run.
var RequiredFields = []Field{
	FieldDate, FieldItemCode, FieldItemName, FieldQuantity, FieldMovementType,
}

// Mapping binds canonical fields to spreadsheet header strings. The mapper
// only produces a suggestion; callers may override it before validating.
type Mapping map[Field]string

// fieldPatterns pairs a canonical field with its header-recognition
// patterns. Both slices are order-sensitive: fields are tried in declared
// order and the first pattern match wins.
type fieldPatterns struct {
	field    Field
	patterns []*regexp.Regexp
}

var mappingPatterns = []fieldPatterns{
	{FieldDate, compilePatterns(`تاريخ`, `date`, `التاريخ`)},
	{FieldItemCode, compilePatterns(`كود`, `رقم.*صنف`, `code`, `رقم`)},
	{FieldItemName, compilePatterns(`اسم.*صنف`, `الصنف`, `اسم`, `name`, `المنتج`)},
	{FieldQuantity, compilePatterns(`كمية`, `الكمية`, `qty`, `quantity`, `عدد`)},
	{FieldMovementType, compilePatterns(`نوع.*حرك`, `نوع`, `type`, `الحركة`)},
	{FieldFromLocation, compilePatterns(`من.*موقع`, `مصدر`, `from`, `خروج`)},
	{FieldToLocation, compilePatterns(`إلى.*موقع`, `وجهة`, `to`, `دخول`)},
	{FieldCategory, compilePatterns(`فئة`, `category`, `تصنيف`)},
	{FieldSubcategory, compilePatterns(`فئة.*فرع`, `subcategory`, `فرعي`)},
	{FieldNote, compilePatterns(`ملاحظ`, `note`, `تعليق`)},
}

func compilePatterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(`(?i)`+e))
	}
	return out
}

// SuggestColumnMapping heuristically assigns headers to canonical fields.
// Headers are tested trimmed and lowercased; an already-assigned field is
// never overwritten, so the first matching header sticks.
func SuggestColumnMapping(headers []string) Mapping {
	mapping := make(Mapping)

	for _, header := range headers {
		normalized := strings.ToLower(strings.TrimSpace(header))
		if normalized == "" {
			continue
		}
		for _, fp := range mappingPatterns {
			if _, assigned := mapping[fp.field]; assigned {
				continue
			}
			for _, re := range fp.patterns {
				if re.MatchString(normalized) {
					mapping[fp.field] = header
					break
				}
			}
		}
	}

	return mapping
}

// MissingRequired returns required fields with no bound header.
func (m Mapping) MissingRequired() []Field {
	var missing []Field
	for _, f := range RequiredFields {
		if m[f] == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Validate returns an UNMAPPED_COLUMN error when a required field is
// unbound. This is a pre-batch failure: no row is processed after it.
func (m Mapping) Validate() error {
	missing := m.MissingRequired()
	if len(missing) == 0 {
		return nil
	}
	fields := make([]string, len(missing))
	for i, f := range missing {
		fields[i] = string(f)
	}
	return apperror.NewUnmappedColumn(fields)
}
