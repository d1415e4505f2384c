package importer

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"makhzan/internal/domain/arabic"
)

// ValidateRows normalizes and validates raw rows against a finalized
// mapping. Rows are independent: the first failing step of a row emits one
// error and processing continues with the next row, so the caller sees
// every problem in a single pass. Only an invalid mapping aborts the call.
func ValidateRows(rows []Row, mapping Mapping) ([]ImportRow, []FieldError, error) {
	if err := mapping.Validate(); err != nil {
		return nil, nil, err
	}

	valid := make([]ImportRow, 0, len(rows))
	var errs []FieldError

	for i, row := range rows {
		rowNumber := i + headerRowOffset

		imported, fieldErr := validateRow(row, mapping, rowNumber)
		if fieldErr != nil {
			errs = append(errs, *fieldErr)
			continue
		}
		valid = append(valid, *imported)
	}

	return valid, errs, nil
}

// validateRow runs the fixed validation sequence for one row. Returns the
// normalized row or the first field error encountered.
func validateRow(row Row, mapping Mapping, rowNumber int) (*ImportRow, *FieldError) {
	cell := func(f Field) string {
		header := mapping[f]
		if header == "" {
			return ""
		}
		return row[header]
	}

	rawQuantity := cell(FieldQuantity)
	rawType := cell(FieldMovementType)
	rawDate := cell(FieldDate)

	// Quantity: digit-normalize, parse, require > 0, truncate toward zero.
	qty, ok := parseQuantity(rawQuantity)
	if !ok {
		e := rowError(rowNumber, string(FieldQuantity), `الكمية غير صحيحة "%s"`, rawQuantity)
		return nil, &e
	}

	movementType, ok := arabic.ParseMovementType(rawType)
	if !ok {
		e := rowError(rowNumber, string(FieldMovementType), `نوع الحركة غير معروف "%s"`, rawType)
		return nil, &e
	}

	date, ok := arabic.ParseFlexibleDate(rawDate)
	if !ok {
		e := rowError(rowNumber, string(FieldDate), `تنسيق التاريخ غير صحيح "%s"`, rawDate)
		return nil, &e
	}

	itemCode := strings.TrimSpace(arabic.NormalizeDigits(cell(FieldItemCode)))
	if itemCode == "" {
		e := rowError(rowNumber, string(FieldItemCode), `كود الصنف مطلوب`)
		return nil, &e
	}

	itemName := strings.TrimSpace(cell(FieldItemName))
	if itemName == "" {
		e := rowError(rowNumber, string(FieldItemName), `اسم الصنف مطلوب`)
		return nil, &e
	}

	fromLocation := strings.TrimSpace(cell(FieldFromLocation))
	toLocation := strings.TrimSpace(cell(FieldToLocation))

	// Location presence by movement type. Missing required locations are
	// distinct field errors, never silently defaulted.
	if movementType.RequiresTo() && !movementType.RequiresFrom() && toLocation == "" {
		e := rowError(rowNumber, string(FieldToLocation), `موقع الوجهة مطلوب لحركة الوارد`)
		return nil, &e
	}
	if movementType.RequiresFrom() && !movementType.RequiresTo() && fromLocation == "" {
		e := rowError(rowNumber, string(FieldFromLocation), `موقع المصدر مطلوب لحركة الصادر`)
		return nil, &e
	}
	if movementType.RequiresFrom() && movementType.RequiresTo() && (fromLocation == "" || toLocation == "") {
		e := rowError(rowNumber, "locations", `موقع المصدر والوجهة مطلوبان لحركة التحويل`)
		return nil, &e
	}

	imported := &ImportRow{
		Date:         date,
		ItemCode:     itemCode,
		ItemName:     itemName,
		Quantity:     qty,
		MovementType: movementType,
		FromLocation: fromLocation,
		ToLocation:   toLocation,
		Category:     strings.TrimSpace(cell(FieldCategory)),
		Subcategory:  strings.TrimSpace(cell(FieldSubcategory)),
		Note:         strings.TrimSpace(cell(FieldNote)),
		RowNumber:    rowNumber,
	}

	// Schema-level re-validation as a safety net over the steps above.
	if err := imported.Validate(context.Background()); err != nil {
		e := rowError(rowNumber, "unknown", `خطأ غير متوقع في معالجة البيانات`)
		return nil, &e
	}

	imported.Fingerprint = RowFingerprint(imported)
	return imported, nil
}

// parseQuantity digit-normalizes and parses a quantity cell. The decimal
// value must be finite and strictly positive; the fractional part is then
// truncated toward zero for storage.
func parseQuantity(raw string) (int64, bool) {
	normalized := strings.TrimSpace(arabic.NormalizeDigits(raw))
	if normalized == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return 0, false
	}
	if !d.IsPositive() {
		return 0, false
	}
	// IntPart wraps silently when the value exceeds int64 range.
	truncated := d.Truncate(0).BigInt()
	if !truncated.IsInt64() {
		return 0, false
	}
	return truncated.Int64(), true
}
