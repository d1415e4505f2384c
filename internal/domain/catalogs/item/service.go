package item

import (
	"context"
	"fmt"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/id"
)

// Service provides business logic for the Item catalog.
type Service struct {
	repo Repository
}

// NewService creates a new Item service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get retrieves an item by ID.
func (s *Service) Get(ctx context.Context, itemID id.ID) (*Item, error) {
	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if i == nil {
		return nil, apperror.NewNotFound("item", itemID)
	}
	return i, nil
}

// GetByCode retrieves an item by its business code.
func (s *Service) GetByCode(ctx context.Context, code string) (*Item, error) {
	i, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("get item by code: %w", err)
	}
	if i == nil {
		return nil, apperror.NewNotFound("item", code)
	}
	return i, nil
}

// List returns a page of items and the total match count.
func (s *Service) List(ctx context.Context, params ListParams) ([]*Item, int, error) {
	params.Normalize()
	return s.repo.List(ctx, params)
}

// Create validates and persists a new item.
// Code is the natural key, so duplicates are rejected up front.
func (s *Service) Create(ctx context.Context, i *Item) error {
	if err := i.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.GetByCode(ctx, i.Code)
	if err != nil {
		return fmt.Errorf("check item code: %w", err)
	}
	if existing != nil {
		return apperror.NewDuplicate("item", "code", i.Code)
	}

	return s.repo.Create(ctx, i)
}

// Update validates and persists item changes.
func (s *Service) Update(ctx context.Context, i *Item) error {
	if err := i.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.GetByCode(ctx, i.Code)
	if err != nil {
		return fmt.Errorf("check item code: %w", err)
	}
	if existing != nil && existing.ID != i.ID {
		return apperror.NewDuplicate("item", "code", i.Code)
	}

	i.Touch()
	return s.repo.Update(ctx, i)
}

// Delete removes an item.
func (s *Service) Delete(ctx context.Context, itemID id.ID) error {
	if _, err := s.Get(ctx, itemID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, itemID)
}
