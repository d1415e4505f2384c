package postgres

import (
	"github.com/Masterminds/squirrel"
)

// Table names.
const (
	categoryTable    = "categories"
	subcategoryTable = "subcategories"
	locationTable    = "locations"
	itemTable        = "items"
	movementTable    = "movements"
	snapshotTable    = "stock_snapshots"
	importFileTable  = "import_files"
)

// builder returns a squirrel builder with PostgreSQL placeholder format.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
