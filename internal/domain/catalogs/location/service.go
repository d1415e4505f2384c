package location

import (
	"context"
	"fmt"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/id"
)

// Service provides business logic for the Location catalog.
type Service struct {
	repo     Repository
	balances BalanceChecker
}

// NewService creates a new Location service.
func NewService(repo Repository, balances BalanceChecker) *Service {
	return &Service{
		repo:     repo,
		balances: balances,
	}
}

// Get retrieves a location by ID.
func (s *Service) Get(ctx context.Context, locationID id.ID) (*Location, error) {
	l, err := s.repo.GetByID(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("get location: %w", err)
	}
	if l == nil {
		return nil, apperror.NewNotFound("location", locationID)
	}
	return l, nil
}

// List returns all locations ordered by name.
func (s *Service) List(ctx context.Context) ([]*Location, error) {
	return s.repo.ListAll(ctx)
}

// Create validates and persists a new location.
func (s *Service) Create(ctx context.Context, l *Location) error {
	if err := l.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.GetByName(ctx, l.Name)
	if err != nil {
		return fmt.Errorf("check location name: %w", err)
	}
	if existing != nil {
		return apperror.NewDuplicate("location", "name", l.Name)
	}

	return s.repo.Create(ctx, l)
}

// Update validates and persists location changes.
func (s *Service) Update(ctx context.Context, l *Location) error {
	if err := l.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.GetByName(ctx, l.Name)
	if err != nil {
		return fmt.Errorf("check location name: %w", err)
	}
	if existing != nil && existing.ID != l.ID {
		return apperror.NewDuplicate("location", "name", l.Name)
	}

	l.Touch()
	return s.repo.Update(ctx, l)
}

// Delete removes a location. Refused while any item still has a non-zero
// balance there, so history stays reconstructible.
func (s *Service) Delete(ctx context.Context, locationID id.ID) error {
	if _, err := s.Get(ctx, locationID); err != nil {
		return err
	}

	hasStock, err := s.balances.HasNonZeroForLocation(ctx, locationID)
	if err != nil {
		return fmt.Errorf("check location balances: %w", err)
	}
	if hasStock {
		return apperror.NewConflict("لا يمكن حذف الموقع لوجود أرصدة مخزون مرتبطة به")
	}

	return s.repo.Delete(ctx, locationID)
}
