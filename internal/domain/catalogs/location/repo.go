package location

import (
	"context"

	"makhzan/internal/core/id"
)

// Repository defines the interface for Location persistence.
type Repository interface {
	// GetByID retrieves a location by primary key.
	GetByID(ctx context.Context, id id.ID) (*Location, error)

	// GetByName retrieves a location by its natural key.
	// Returns (nil, nil) when no location has that name.
	GetByName(ctx context.Context, name string) (*Location, error)

	// ListAll returns all locations ordered by name.
	ListAll(ctx context.Context) ([]*Location, error)

	Create(ctx context.Context, l *Location) error
	Update(ctx context.Context, l *Location) error
	Delete(ctx context.Context, id id.ID) error
}

// BalanceChecker reports whether a location still holds stock.
// Implemented by the ledger snapshot store; kept as a local interface so
// the catalog does not depend on the ledger package.
type BalanceChecker interface {
	HasNonZeroForLocation(ctx context.Context, locationID id.ID) (bool, error)
}
