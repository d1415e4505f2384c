package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"makhzan/internal/core/id"
	"makhzan/internal/domain/catalogs/location"
)

var locationColumns = []string{"id", "name", "description", "created_at", "updated_at"}

// LocationRepo implements location.Repository.
type LocationRepo struct {
	txm *TxManager
}

// NewLocationRepo creates a new location repository.
func NewLocationRepo(txm *TxManager) *LocationRepo {
	return &LocationRepo{txm: txm}
}

func (r *LocationRepo) GetByID(ctx context.Context, locID id.ID) (*location.Location, error) {
	return r.getOne(ctx, squirrel.Eq{"id": locID})
}

func (r *LocationRepo) GetByName(ctx context.Context, name string) (*location.Location, error) {
	return r.getOne(ctx, squirrel.Eq{"name": name})
}

func (r *LocationRepo) getOne(ctx context.Context, pred squirrel.Eq) (*location.Location, error) {
	sql, args, err := builder().
		Select(locationColumns...).
		From(locationTable).
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var l location.Location
	err = pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &l, sql, args...)
	if pgxscan.NotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

func (r *LocationRepo) ListAll(ctx context.Context) ([]*location.Location, error) {
	sql, args, err := builder().
		Select(locationColumns...).
		From(locationTable).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []*location.Location
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return out, nil
}

func (r *LocationRepo) Create(ctx context.Context, l *location.Location) error {
	sql, args, err := builder().
		Insert(locationTable).
		Columns(locationColumns...).
		Values(l.ID, l.Name, l.Description, l.CreatedAt, l.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

func (r *LocationRepo) Update(ctx context.Context, l *location.Location) error {
	sql, args, err := builder().
		Update(locationTable).
		Set("name", l.Name).
		Set("description", l.Description).
		Set("updated_at", l.UpdatedAt).
		Where(squirrel.Eq{"id": l.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

func (r *LocationRepo) Delete(ctx context.Context, locID id.ID) error {
	sql, args, err := builder().
		Delete(locationTable).
		Where(squirrel.Eq{"id": locID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	return nil
}
