package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"makhzan/internal/core/id"
	"makhzan/internal/domain/catalogs/item"
)

var itemColumns = []string{"id", "code", "name", "category_id", "subcategory_id", "created_at", "updated_at"}

// ItemRepo implements item.Repository.
type ItemRepo struct {
	txm *TxManager
}

// NewItemRepo creates a new item repository.
func NewItemRepo(txm *TxManager) *ItemRepo {
	return &ItemRepo{txm: txm}
}

func (r *ItemRepo) GetByID(ctx context.Context, itemID id.ID) (*item.Item, error) {
	return r.getOne(ctx, squirrel.Eq{"id": itemID})
}

func (r *ItemRepo) GetByCode(ctx context.Context, code string) (*item.Item, error) {
	return r.getOne(ctx, squirrel.Eq{"code": code})
}

func (r *ItemRepo) getOne(ctx context.Context, pred squirrel.Eq) (*item.Item, error) {
	sql, args, err := builder().
		Select(itemColumns...).
		From(itemTable).
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var it item.Item
	err = pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &it, sql, args...)
	if pgxscan.NotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// List applies search and filters, returning one page plus the total
// match count.
func (r *ItemRepo) List(ctx context.Context, params item.ListParams) ([]*item.Item, int, error) {
	base := builder().
		Select(itemColumns...).
		From(itemTable)
	countQ := builder().
		Select("COUNT(*)").
		From(itemTable)

	var preds []squirrel.Sqlizer
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		preds = append(preds, squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"code": pattern},
		})
	}
	if params.CategoryID != nil {
		preds = append(preds, squirrel.Eq{"category_id": *params.CategoryID})
	}
	if params.SubcategoryID != nil {
		preds = append(preds, squirrel.Eq{"subcategory_id": *params.SubcategoryID})
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
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	offset := uint64((params.Page - 1) * params.Limit)
	sql, args, err := base.
		OrderBy("name").
		Limit(uint64(params.Limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build query: %w", err)
	}

	var out []*item.Item
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	return out, total, nil
}

func (r *ItemRepo) ListAll(ctx context.Context) ([]*item.Item, error) {
	sql, args, err := builder().
		Select(itemColumns...).
		From(itemTable).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []*item.Item
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return out, nil
}

func (r *ItemRepo) Create(ctx context.Context, it *item.Item) error {
	sql, args, err := builder().
		Insert(itemTable).
		Columns(itemColumns...).
		Values(it.ID, it.Code, it.Name, it.CategoryID, it.SubcategoryID, it.CreatedAt, it.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *ItemRepo) Update(ctx context.Context, it *item.Item) error {
	sql, args, err := builder().
		Update(itemTable).
		Set("code", it.Code).
		Set("name", it.Name).
		Set("category_id", it.CategoryID).
		Set("subcategory_id", it.SubcategoryID).
		Set("updated_at", it.UpdatedAt).
		Where(squirrel.Eq{"id": it.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

func (r *ItemRepo) Delete(ctx context.Context, itemID id.ID) error {
	sql, args, err := builder().
		Delete(itemTable).
		Where(squirrel.Eq{"id": itemID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
