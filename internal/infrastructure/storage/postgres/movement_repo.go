package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"makhzan/internal/core/entity"
	"makhzan/internal/domain/ledger"
)

var movementColumns = []string{
	"id", "date", "type", "quantity", "item_id",
	"from_location_id", "to_location_id", "note",
	"source_file_name", "source_row_hash", "created_at",
}

// MovementRepo implements ledger.MovementRepository.
type MovementRepo struct {
	txm *TxManager
}

// NewMovementRepo creates a new movement repository.
func NewMovementRepo(txm *TxManager) *MovementRepo {
	return &MovementRepo{txm: txm}
}

func (r *MovementRepo) GetByFingerprint(ctx context.Context, fingerprint string) (*entity.Movement, error) {
	sql, args, err := builder().
		Select(movementColumns...).
		From(movementTable).
		Where(squirrel.Eq{"source_row_hash": fingerprint}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var m entity.Movement
	err = pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &m, sql, args...)
	if pgxscan.NotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get movement by fingerprint: %w", err)
	}
	return &m, nil
}

func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	sql, args, err := builder().
		Insert(movementTable).
		Columns(movementColumns...).
		Values(
			m.ID, m.Date, m.Type, m.Quantity, m.ItemID,
			m.FromLocationID, m.ToLocationID, m.Note,
			m.SourceFileName, m.SourceRowHash, m.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func (r *MovementRepo) List(ctx context.Context, filter ledger.MovementFilter) ([]*entity.Movement, int, error) {
	base := builder().
		Select(movementColumns...).
		From(movementTable)
	countQ := builder().
		Select("COUNT(*)").
		From(movementTable)

	var preds []squirrel.Sqlizer
	if filter.ItemID != nil {
		preds = append(preds, squirrel.Eq{"item_id": *filter.ItemID})
	}
	if filter.LocationID != nil {
		preds = append(preds, squirrel.Or{
			squirrel.Eq{"from_location_id": *filter.LocationID},
			squirrel.Eq{"to_location_id": *filter.LocationID},
		})
	}
	if filter.Type != nil {
		preds = append(preds, squirrel.Eq{"type": *filter.Type})
	}
	if filter.DateFrom != nil {
		preds = append(preds, squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		preds = append(preds, squirrel.LtOrEq{"date": *filter.DateTo})
	}
	for _, p := range preds {
		base = base.Where(p)
		countQ = countQ.Where(p)
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}
	var total int
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	offset := uint64((filter.Page - 1) * filter.Limit)
	sql, args, err := base.
		OrderBy("date DESC", "created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build query: %w", err)
	}

	var out []*entity.Movement
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	return out, total, nil
}
