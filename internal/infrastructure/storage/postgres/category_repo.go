package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"makhzan/internal/core/id"
	"makhzan/internal/domain/catalogs/category"
)

var categoryColumns = []string{"id", "name", "description", "created_at", "updated_at"}

// CategoryRepo implements category.Repository.
type CategoryRepo struct {
	txm *TxManager
}

// NewCategoryRepo creates a new category repository.
func NewCategoryRepo(txm *TxManager) *CategoryRepo {
	return &CategoryRepo{txm: txm}
}

func (r *CategoryRepo) GetByID(ctx context.Context, catID id.ID) (*category.Category, error) {
	return r.getOne(ctx, squirrel.Eq{"id": catID})
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*category.Category, error) {
	return r.getOne(ctx, squirrel.Eq{"name": name})
}

func (r *CategoryRepo) getOne(ctx context.Context, pred squirrel.Eq) (*category.Category, error) {
	sql, args, err := builder().
		Select(categoryColumns...).
		From(categoryTable).
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var c category.Category
	err = pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &c, sql, args...)
	if pgxscan.NotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) ListAll(ctx context.Context) ([]*category.Category, error) {
	sql, args, err := builder().
		Select(categoryColumns...).
		From(categoryTable).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []*category.Category
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (r *CategoryRepo) Create(ctx context.Context, c *category.Category) error {
	sql, args, err := builder().
		Insert(categoryTable).
		Columns(categoryColumns...).
		Values(c.ID, c.Name, c.Description, c.CreatedAt, c.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *category.Category) error {
	sql, args, err := builder().
		Update(categoryTable).
		Set("name", c.Name).
		Set("description", c.Description).
		Set("updated_at", c.UpdatedAt).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, catID id.ID) error {
	sql, args, err := builder().
		Delete(categoryTable).
		Where(squirrel.Eq{"id": catID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

var subcategoryColumns = []string{"id", "category_id", "name", "created_at", "updated_at"}

// SubcategoryRepo implements category.SubcategoryRepository.
type SubcategoryRepo struct {
	txm *TxManager
}

// NewSubcategoryRepo creates a new subcategory repository.
func NewSubcategoryRepo(txm *TxManager) *SubcategoryRepo {
	return &SubcategoryRepo{txm: txm}
}

func (r *SubcategoryRepo) GetByID(ctx context.Context, subID id.ID) (*category.Subcategory, error) {
	return r.getOne(ctx, squirrel.Eq{"id": subID})
}

func (r *SubcategoryRepo) GetByName(ctx context.Context, categoryID id.ID, name string) (*category.Subcategory, error) {
	return r.getOne(ctx, squirrel.Eq{"category_id": categoryID, "name": name})
}

func (r *SubcategoryRepo) getOne(ctx context.Context, pred squirrel.Eq) (*category.Subcategory, error) {
	sql, args, err := builder().
		Select(subcategoryColumns...).
		From(subcategoryTable).
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var s category.Subcategory
	err = pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &s, sql, args...)
	if pgxscan.NotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get subcategory: %w", err)
	}
	return &s, nil
}

func (r *SubcategoryRepo) ListAll(ctx context.Context) ([]*category.Subcategory, error) {
	return r.list(ctx, nil)
}

func (r *SubcategoryRepo) ListByCategory(ctx context.Context, categoryID id.ID) ([]*category.Subcategory, error) {
	return r.list(ctx, squirrel.Eq{"category_id": categoryID})
}

func (r *SubcategoryRepo) list(ctx context.Context, pred squirrel.Eq) ([]*category.Subcategory, error) {
	q := builder().
		Select(subcategoryColumns...).
		From(subcategoryTable).
		OrderBy("name")
	if pred != nil {
		q = q.Where(pred)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []*category.Subcategory
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	return out, nil
}

func (r *SubcategoryRepo) Create(ctx context.Context, s *category.Subcategory) error {
	sql, args, err := builder().
		Insert(subcategoryTable).
		Columns(subcategoryColumns...).
		Values(s.ID, s.CategoryID, s.Name, s.CreatedAt, s.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert subcategory: %w", err)
	}
	return nil
}

func (r *SubcategoryRepo) Delete(ctx context.Context, subID id.ID) error {
	sql, args, err := builder().
		Delete(subcategoryTable).
		Where(squirrel.Eq{"id": subID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete subcategory: %w", err)
	}
	return nil
}
