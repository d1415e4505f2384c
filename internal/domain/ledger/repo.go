package ledger

import (
	"context"
	"time"

	"makhzan/internal/core/entity"
	"makhzan/internal/core/id"
)

// MovementFilter controls filtering and pagination for movement history.
type MovementFilter struct {
	// ItemID restricts to one item when set
	ItemID *id.ID

	// LocationID matches either side of the movement when set
	LocationID *id.ID

	// Type restricts to one movement kind when set
	Type *entity.MovementType

	// DateFrom and DateTo bound the business date, inclusive
	DateFrom *time.Time
	DateTo   *time.Time

	// Page is 1-based
	Page int

	// Limit is the page size
	Limit int
}

// Normalize applies defaults for unset pagination fields.
func (f *MovementFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 50
	}
}

// MovementRepository defines the interface for Movement persistence.
// Movements are append-only; there is no update or delete.
type MovementRepository interface {
	// GetByFingerprint retrieves a movement by its import dedupe hash.
	// Returns (nil, nil) when no movement carries that fingerprint.
	GetByFingerprint(ctx context.Context, fingerprint string) (*entity.Movement, error)

	// Create inserts a new movement.
	Create(ctx context.Context, m *entity.Movement) error

	// List returns a page of movements matching the filter, newest
	// business date first, and the total match count.
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, int, error)
}

// SnapshotRepository defines the interface for StockSnapshot persistence.
// Snapshots are keyed by (item, location); an absent row means zero.
type SnapshotRepository interface {
	// Get retrieves the snapshot for one (item, location) pair.
	// Returns (nil, nil) when none exists.
	Get(ctx context.Context, itemID, locationID id.ID) (*entity.StockSnapshot, error)

	// GetForUpdate retrieves the snapshot with a row lock, for balance
	// checks inside a transaction. Returns (nil, nil) when none exists.
	GetForUpdate(ctx context.Context, itemID, locationID id.ID) (*entity.StockSnapshot, error)

	// AddOnHand applies a signed delta, inserting the row if absent.
	AddOnHand(ctx context.Context, itemID, locationID id.ID, delta int64) error

	// ListByItem returns an item's snapshots ordered by location name.
	ListByItem(ctx context.Context, itemID id.ID) ([]*entity.StockSnapshot, error)

	// ListByLocation returns a location's snapshots ordered by item name.
	ListByLocation(ctx context.Context, locationID id.ID) ([]*entity.StockSnapshot, error)

	// HasNonZeroForLocation reports whether any item has a non-zero
	// balance at the location.
	HasNonZeroForLocation(ctx context.Context, locationID id.ID) (bool, error)
}
