package category

import (
	"context"
	"fmt"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/id"
)

// Service provides business logic for the Category catalog.
type Service struct {
	repo    Repository
	subRepo SubcategoryRepository
}

// NewService creates a new Category service.
func NewService(repo Repository, subRepo SubcategoryRepository) *Service {
	return &Service{
		repo:    repo,
		subRepo: subRepo,
	}
}

// Get retrieves a category by ID.
func (s *Service) Get(ctx context.Context, categoryID id.ID) (*Category, error) {
	c, err := s.repo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if c == nil {
		return nil, apperror.NewNotFound("category", categoryID)
	}
	return c, nil
}

// List returns all categories ordered by name.
func (s *Service) List(ctx context.Context) ([]*Category, error) {
	return s.repo.ListAll(ctx)
}

// Create validates and persists a new category.
// Name is the natural key, so duplicates are rejected up front.
func (s *Service) Create(ctx context.Context, c *Category) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.GetByName(ctx, c.Name)
	if err != nil {
		return fmt.Errorf("check category name: %w", err)
	}
	if existing != nil {
		return apperror.NewDuplicate("category", "name", c.Name)
	}

	return s.repo.Create(ctx, c)
}

// Update validates and persists category changes.
func (s *Service) Update(ctx context.Context, c *Category) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.GetByName(ctx, c.Name)
	if err != nil {
		return fmt.Errorf("check category name: %w", err)
	}
	if existing != nil && existing.ID != c.ID {
		return apperror.NewDuplicate("category", "name", c.Name)
	}

	c.Touch()
	return s.repo.Update(ctx, c)
}

// Delete removes a category. Subcategories are removed with it and items
// referencing it are detached by the storage layer.
func (s *Service) Delete(ctx context.Context, categoryID id.ID) error {
	if _, err := s.Get(ctx, categoryID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, categoryID)
}

// ListSubcategories returns the subcategories of one category.
func (s *Service) ListSubcategories(ctx context.Context, categoryID id.ID) ([]*Subcategory, error) {
	return s.subRepo.ListByCategory(ctx, categoryID)
}

// CreateSubcategory validates and persists a new subcategory.
// The natural key is (category, name).
func (s *Service) CreateSubcategory(ctx context.Context, sub *Subcategory) error {
	if err := sub.Validate(ctx); err != nil {
		return err
	}

	parent, err := s.repo.GetByID(ctx, sub.CategoryID)
	if err != nil {
		return fmt.Errorf("get parent category: %w", err)
	}
	if parent == nil {
		return apperror.NewNotFound("category", sub.CategoryID)
	}

	existing, err := s.subRepo.GetByName(ctx, sub.CategoryID, sub.Name)
	if err != nil {
		return fmt.Errorf("check subcategory name: %w", err)
	}
	if existing != nil {
		return apperror.NewDuplicate("subcategory", "name", sub.Name)
	}

	return s.subRepo.Create(ctx, sub)
}

// DeleteSubcategory removes a subcategory.
func (s *Service) DeleteSubcategory(ctx context.Context, subID id.ID) error {
	sub, err := s.subRepo.GetByID(ctx, subID)
	if err != nil {
		return fmt.Errorf("get subcategory: %w", err)
	}
	if sub == nil {
		return apperror.NewNotFound("subcategory", subID)
	}
	return s.subRepo.Delete(ctx, subID)
}
