// Package memory provides an in-memory Store implementing every
// repository contract plus tx.Manager. It backs the domain tests and
// makes the ledger engine runnable without Postgres.
package memory

import (
	"context"
	"sync"

	"makhzan/internal/core/entity"
	"makhzan/internal/core/id"
	"makhzan/internal/domain/catalogs/category"
	"makhzan/internal/domain/catalogs/item"
	"makhzan/internal/domain/catalogs/location"
)

type snapshotKey struct {
	itemID     id.ID
	locationID id.ID
}

// dataset holds all tables. Transactions clone it wholesale and restore
// the clone on rollback, which is fine at test scale.
type dataset struct {
	categories    map[id.ID]*category.Category
	subcategories map[id.ID]*category.Subcategory
	locations     map[id.ID]*location.Location
	items         map[id.ID]*item.Item
	movements     map[id.ID]*entity.Movement
	snapshots     map[snapshotKey]*entity.StockSnapshot
}

func newDataset() *dataset {
	return &dataset{
		categories:    make(map[id.ID]*category.Category),
		subcategories: make(map[id.ID]*category.Subcategory),
		locations:     make(map[id.ID]*location.Location),
		items:         make(map[id.ID]*item.Item),
		movements:     make(map[id.ID]*entity.Movement),
		snapshots:     make(map[snapshotKey]*entity.StockSnapshot),
	}
}

func (d *dataset) clone() *dataset {
	c := newDataset()
	for k, v := range d.categories {
		cp := *v
		c.categories[k] = &cp
	}
	for k, v := range d.subcategories {
		cp := *v
		c.subcategories[k] = &cp
	}
	for k, v := range d.locations {
		cp := *v
		c.locations[k] = &cp
	}
	for k, v := range d.items {
		cp := *v
		c.items[k] = &cp
	}
	for k, v := range d.movements {
		cp := *v
		c.movements[k] = &cp
	}
	for k, v := range d.snapshots {
		cp := *v
		c.snapshots[k] = &cp
	}
	return c
}

// Store is the in-memory database.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex
	data *dataset
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{data: newDataset()}
}

// RunInTransaction implements tx.Manager. The dataset is snapshotted on
// entry and restored when fn returns an error.
func (s *Store) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	saved := s.data.clone()
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.data = saved
		s.mu.Unlock()
		return err
	}
	return nil
}

// --- typed repository accessors ---

// Categories returns the category repository view of the store.
func (s *Store) Categories() category.Repository {
	return &categoryRepo{s: s}
}

// Subcategories returns the subcategory repository view of the store.
func (s *Store) Subcategories() category.SubcategoryRepository {
	return &subcategoryRepo{s: s}
}

// Locations returns the location repository view of the store.
func (s *Store) Locations() location.Repository {
	return &locationRepo{s: s}
}

// Items returns the item repository view of the store.
func (s *Store) Items() item.Repository {
	return &itemRepo{s: s}
}
