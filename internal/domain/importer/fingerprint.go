package importer

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"makhzan/internal/core/entity"
)

// Fingerprint computes the deduplication key for a normalized movement:
// a 31-multiplier rolling checksum over the canonical tuple, wrapped to
// signed 32-bit and rendered as an absolute-value base-36 string.
//
// The fold runs over UTF-16 code units so fingerprints stay stable for
// Arabic location names regardless of how the source text was encoded.
// Non-cryptographic: collisions are accepted, determinism is the contract.
func Fingerprint(date time.Time, itemCode string, movementType entity.MovementType, quantity int64, fromLocation, toLocation string) string {
	canonical := strings.Join([]string{
		date.Format("2006-01-02"),
		itemCode,
		string(movementType),
		strconv.FormatInt(quantity, 10),
		fromLocation,
		toLocation,
	}, "|")

	var hash int32
	for _, unit := range utf16.Encode([]rune(canonical)) {
		hash = hash*31 + int32(unit)
	}

	abs := int64(hash)
	if abs < 0 {
		abs = -abs
	}
	return strconv.FormatInt(abs, 36)
}

// RowFingerprint is a convenience wrapper over Fingerprint for a
// normalized ImportRow.
func RowFingerprint(r *ImportRow) string {
	return Fingerprint(r.Date, r.ItemCode, r.MovementType, r.Quantity, r.FromLocation, r.ToLocation)
}
