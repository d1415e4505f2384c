package ledger

import (
	"context"
	"fmt"
	"time"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/entity"
	"makhzan/internal/core/id"
	"makhzan/internal/core/tx"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

// Service provides ledger reads and manual movement posting.
type Service struct {
	txm       tx.Manager
	movements MovementRepository
	snapshots SnapshotRepository
}

// NewService creates a new ledger service.
func NewService(txm tx.Manager, movements MovementRepository, snapshots SnapshotRepository) *Service {
	return &Service{
		txm:       txm,
		movements: movements,
		snapshots: snapshots,
	}
}

// GetSnapshotsForItem returns an item's balances per location.
func (s *Service) GetSnapshotsForItem(ctx context.Context, itemID id.ID) ([]*entity.StockSnapshot, error) {
	return s.snapshots.ListByItem(ctx, itemID)
}

// GetSnapshotsForLocation returns the balances held at one location.
func (s *Service) GetSnapshotsForLocation(ctx context.Context, locationID id.ID) ([]*entity.StockSnapshot, error) {
	return s.snapshots.ListByLocation(ctx, locationID)
}

// GetTotalOnHand sums an item's balance across all locations.
func (s *Service) GetTotalOnHand(ctx context.Context, itemID id.ID) (int64, error) {
	snaps, err := s.snapshots.ListByItem(ctx, itemID)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, snap := range snaps {
		total += snap.OnHand
	}
	return total, nil
}

// GetMovementHistory returns a page of movements matching the filter and
// the total match count.
func (s *Service) GetMovementHistory(ctx context.Context, filter MovementFilter) ([]*entity.Movement, int, error) {
	filter.Normalize()
	return s.movements.List(ctx, filter)
}

// Post records one manually entered movement and updates the balances,
// under the same rules the import engine applies: dedupe by fingerprint
// when one is set, and no overdraft from the source location.
func (s *Service) Post(ctx context.Context, m *entity.Movement) error {
	if id.IsNil(m.ID) {
		m.ID = id.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = nowUTC()
	}
	if err := m.Validate(ctx); err != nil {
		return err
	}

	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if m.SourceRowHash != nil {
			existing, err := s.movements.GetByFingerprint(ctx, *m.SourceRowHash)
			if err != nil {
				return fmt.Errorf("check fingerprint: %w", err)
			}
			if existing != nil {
				return apperror.NewDuplicateMovement(*m.SourceRowHash)
			}
		}

		if m.Type.RequiresFrom() {
			snap, err := s.snapshots.GetForUpdate(ctx, m.ItemID, *m.FromLocationID)
			if err != nil {
				return fmt.Errorf("read balance: %w", err)
			}
			var current int64
			if snap != nil {
				current = snap.OnHand
			}
			if current < m.Quantity {
				return apperror.NewInsufficientStock(current, m.Quantity)
			}
		}

		if err := s.movements.Create(ctx, m); err != nil {
			return fmt.Errorf("create movement: %w", err)
		}

		if m.Type.RequiresFrom() {
			if err := s.snapshots.AddOnHand(ctx, m.ItemID, *m.FromLocationID, -m.Quantity); err != nil {
				return fmt.Errorf("debit balance: %w", err)
			}
		}
		if m.Type.RequiresTo() {
			if err := s.snapshots.AddOnHand(ctx, m.ItemID, *m.ToLocationID, m.Quantity); err != nil {
				return fmt.Errorf("credit balance: %w", err)
			}
		}
		return nil
	})
}
