package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"makhzan/internal/core/entity"
	"makhzan/internal/core/id"
)

var snapshotColumns = []string{"item_id", "location_id", "on_hand", "updated_at"}

// SnapshotRepo implements ledger.SnapshotRepository.
type SnapshotRepo struct {
	txm *TxManager
}

// NewSnapshotRepo creates a new snapshot repository.
func NewSnapshotRepo(txm *TxManager) *SnapshotRepo {
	return &SnapshotRepo{txm: txm}
}

func (r *SnapshotRepo) Get(ctx context.Context, itemID, locationID id.ID) (*entity.StockSnapshot, error) {
	return r.get(ctx, itemID, locationID, false)
}

// GetForUpdate takes a row lock so balance checks and the following
// delta happen against a stable value.
func (r *SnapshotRepo) GetForUpdate(ctx context.Context, itemID, locationID id.ID) (*entity.StockSnapshot, error) {
	return r.get(ctx, itemID, locationID, true)
}

func (r *SnapshotRepo) get(ctx context.Context, itemID, locationID id.ID, forUpdate bool) (*entity.StockSnapshot, error) {
	q := builder().
		Select(snapshotColumns...).
		From(snapshotTable).
		Where(squirrel.Eq{"item_id": itemID, "location_id": locationID})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var s entity.StockSnapshot
	err = pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &s, sql, args...)
	if pgxscan.NotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return &s, nil
}

// AddOnHand upserts the (item, location) row and applies the delta
// atomically.
func (r *SnapshotRepo) AddOnHand(ctx context.Context, itemID, locationID id.ID, delta int64) error {
	sql := `
		INSERT INTO stock_snapshots (item_id, location_id, on_hand, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (item_id, location_id)
		DO UPDATE SET on_hand = stock_snapshots.on_hand + EXCLUDED.on_hand, updated_at = now()`

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, itemID, locationID, delta); err != nil {
		return fmt.Errorf("apply balance delta: %w", err)
	}
	return nil
}

func (r *SnapshotRepo) ListByItem(ctx context.Context, itemID id.ID) ([]*entity.StockSnapshot, error) {
	sql := `
		SELECT s.item_id, s.location_id, s.on_hand, s.updated_at
		FROM stock_snapshots s
		JOIN locations l ON l.id = s.location_id
		WHERE s.item_id = $1
		ORDER BY l.name`

	var out []*entity.StockSnapshot
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, itemID); err != nil {
		return nil, fmt.Errorf("list snapshots by item: %w", err)
	}
	return out, nil
}

func (r *SnapshotRepo) ListByLocation(ctx context.Context, locationID id.ID) ([]*entity.StockSnapshot, error) {
	sql := `
		SELECT s.item_id, s.location_id, s.on_hand, s.updated_at
		FROM stock_snapshots s
		JOIN items i ON i.id = s.item_id
		WHERE s.location_id = $1
		ORDER BY i.name`

	var out []*entity.StockSnapshot
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, locationID); err != nil {
		return nil, fmt.Errorf("list snapshots by location: %w", err)
	}
	return out, nil
}

func (r *SnapshotRepo) HasNonZeroForLocation(ctx context.Context, locationID id.ID) (bool, error) {
	sql, args, err := builder().
		Select("COUNT(*)").
		From(snapshotTable).
		Where(squirrel.Eq{"location_id": locationID}).
		Where(squirrel.NotEq{"on_hand": 0}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var count int
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("count location balances: %w", err)
	}
	return count > 0, nil
}
