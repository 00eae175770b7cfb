package service

import (
	"context"
	"errors"
	"strings"

	"bookbrew-catalog/internal/domain"
	"bookbrew-catalog/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrNoBrands              = errors.New("no brands found")
	ErrBrandInUse            = errors.New("brand has products associated with it")
	ErrBrandDescriptionBlank = errors.New("brand description cannot be empty")
)

// BrandService defines the interface for brand business logic. Product update
// and create resolve their brand reference through FindByID, so a brand set on
// a product is always one of these records.
type BrandService interface {
	FindAll(ctx context.Context) ([]*domain.Brand, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Brand, error)
	Create(ctx context.Context, brand *domain.Brand) (*domain.Brand, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.BrandPatch) (*domain.Brand, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type brandService struct {
	repos repository.Repositories
	tx    repository.TxRunner
}

// NewBrandService creates a new instance of BrandService
func NewBrandService(repos repository.Repositories, tx repository.TxRunner) BrandService {
	return &brandService{
		repos: repos,
		tx:    tx,
	}
}

// FindAll retrieves all brands
func (s *brandService) FindAll(ctx context.Context) ([]*domain.Brand, error) {
	brands, err := s.repos.Brands.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(brands) == 0 {
		return nil, ErrNoBrands
	}
	return brands, nil
}

// FindByID retrieves a brand by ID
func (s *brandService) FindByID(ctx context.Context, id uuid.UUID) (*domain.Brand, error) {
	return s.repos.Brands.FindByID(ctx, id)
}

// Create persists a new brand after checking its description is non-blank and
// not already in use
func (s *brandService) Create(ctx context.Context, brand *domain.Brand) (*domain.Brand, error) {
	err := s.tx.RunInTx(ctx, func(r repository.Repositories) error {
		if strings.TrimSpace(brand.Description) == "" {
			return ErrBrandDescriptionBlank
		}

		if err := s.checkDuplicate(ctx, r, brand.Description); err != nil {
			return err
		}

		brand.ID = uuid.New()
		return r.Brands.Create(ctx, brand)
	})
	if err != nil {
		return nil, err
	}

	return brand, nil
}

// Update applies a partial update to a brand; nil patch fields keep their
// stored value
func (s *brandService) Update(ctx context.Context, id uuid.UUID, patch domain.BrandPatch) (*domain.Brand, error) {
	var updated *domain.Brand

	err := s.tx.RunInTx(ctx, func(r repository.Repositories) error {
		brand, err := r.Brands.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.Description != nil && *patch.Description != brand.Description {
			if strings.TrimSpace(*patch.Description) == "" {
				return ErrBrandDescriptionBlank
			}
			if err := s.checkDuplicate(ctx, r, *patch.Description); err != nil {
				return err
			}
			brand.Description = *patch.Description
		}
		if patch.Status != nil {
			brand.Status = *patch.Status
		}

		if err := r.Brands.Update(ctx, brand); err != nil {
			return err
		}

		updated = brand
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a brand. The delete is rejected while any product still
// references the brand.
func (s *brandService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.RunInTx(ctx, func(r repository.Repositories) error {
		brand, err := r.Brands.FindByID(ctx, id)
		if err != nil {
			return err
		}

		inUse, err := r.Products.ExistsByBrand(ctx, brand.ID)
		if err != nil {
			return err
		}
		if inUse {
			return ErrBrandInUse
		}

		return r.Brands.Delete(ctx, brand.ID)
	})
}

func (s *brandService) checkDuplicate(ctx context.Context, r repository.Repositories, description string) error {
	_, err := r.Brands.FindByDescription(ctx, description)
	if err == nil {
		return repository.ErrBrandDescriptionTaken
	}
	if err != repository.ErrBrandNotFound {
		return err
	}
	return nil
}
