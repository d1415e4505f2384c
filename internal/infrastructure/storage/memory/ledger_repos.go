package memory

import (
	"context"
	"sort"
	"time"

	"makhzan/internal/core/entity"
	"makhzan/internal/core/id"
	"makhzan/internal/domain/ledger"
)

// Movements returns the movement repository view of the store.
func (s *Store) Movements() ledger.MovementRepository {
	return &movementRepo{s: s}
}

// Snapshots returns the snapshot repository view of the store.
func (s *Store) Snapshots() ledger.SnapshotRepository {
	return &snapshotRepo{s: s}
}

// --- movement ---

type movementRepo struct {
	s *Store
}

func (r *movementRepo) GetByFingerprint(ctx context.Context, fingerprint string) (*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.data.movements {
		if m.SourceRowHash != nil && *m.SourceRowHash == fingerprint {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *movementRepo) Create(ctx context.Context, m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *m
	r.s.data.movements[m.ID] = &cp
	return nil
}

func (r *movementRepo) List(ctx context.Context, filter ledger.MovementFilter) ([]*entity.Movement, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []*entity.Movement
	for _, m := range r.s.data.movements {
		if !movementMatches(m, filter) {
			continue
		}
		cp := *m
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := (filter.Page - 1) * filter.Limit
	if start >= total {
		return []*entity.Movement{}, total, nil
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func movementMatches(m *entity.Movement, f ledger.MovementFilter) bool {
	if f.ItemID != nil && m.ItemID != *f.ItemID {
		return false
	}
	if f.LocationID != nil {
		from := m.FromLocationID != nil && *m.FromLocationID == *f.LocationID
		to := m.ToLocationID != nil && *m.ToLocationID == *f.LocationID
		if !from && !to {
			return false
		}
	}
	if f.Type != nil && m.Type != *f.Type {
		return false
	}
	if f.DateFrom != nil && m.Date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && m.Date.After(*f.DateTo) {
		return false
	}
	return true
}

// --- snapshot ---

type snapshotRepo struct {
	s *Store
}

func (r *snapshotRepo) Get(ctx context.Context, itemID, locationID id.ID) (*entity.StockSnapshot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if snap, ok := r.s.data.snapshots[snapshotKey{itemID, locationID}]; ok {
		cp := *snap
		return &cp, nil
	}
	return nil, nil
}

// GetForUpdate is a plain read; the store's transaction mutex already
// serializes writers.
func (r *snapshotRepo) GetForUpdate(ctx context.Context, itemID, locationID id.ID) (*entity.StockSnapshot, error) {
	return r.Get(ctx, itemID, locationID)
}

func (r *snapshotRepo) AddOnHand(ctx context.Context, itemID, locationID id.ID, delta int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := snapshotKey{itemID, locationID}
	snap, ok := r.s.data.snapshots[key]
	if !ok {
		snap = &entity.StockSnapshot{
			ItemID:     itemID,
			LocationID: locationID,
		}
		r.s.data.snapshots[key] = snap
	}
	snap.OnHand += delta
	snap.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *snapshotRepo) ListByItem(ctx context.Context, itemID id.ID) ([]*entity.StockSnapshot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockSnapshot
	for _, snap := range r.s.data.snapshots {
		if snap.ItemID == itemID {
			cp := *snap
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LocationID.String() < out[j].LocationID.String()
	})
	return out, nil
}

func (r *snapshotRepo) ListByLocation(ctx context.Context, locationID id.ID) ([]*entity.StockSnapshot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockSnapshot
	for _, snap := range r.s.data.snapshots {
		if snap.LocationID == locationID {
			cp := *snap
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ItemID.String() < out[j].ItemID.String()
	})
	return out, nil
}

func (r *snapshotRepo) HasNonZeroForLocation(ctx context.Context, locationID id.ID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, snap := range r.s.data.snapshots {
		if snap.LocationID == locationID && snap.OnHand != 0 {
			return true, nil
		}
	}
	return false, nil
}
