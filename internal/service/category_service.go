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
	ErrNoCategories             = errors.New("no categories found")
	ErrCategoryInUse            = errors.New("category has products associated with it")
	ErrCategoryDescriptionBlank = errors.New("category description cannot be empty")
)

// CategoryService defines the interface for category business logic
type CategoryService interface {
	FindAll(ctx context.Context) ([]*domain.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.CategoryPatch) (*domain.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repos repository.Repositories
	tx    repository.TxRunner
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(repos repository.Repositories, tx repository.TxRunner) CategoryService {
	return &categoryService{
		repos: repos,
		tx:    tx,
	}
}

// FindAll retrieves all categories
func (s *categoryService) FindAll(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.repos.Categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}
	return categories, nil
}

// FindByID retrieves a category by ID
func (s *categoryService) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	return s.repos.Categories.FindByID(ctx, id)
}

// Create persists a new category after checking its description is non-blank
// and not already in use
func (s *categoryService) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	err := s.tx.RunInTx(ctx, func(r repository.Repositories) error {
		if strings.TrimSpace(category.Description) == "" {
			return ErrCategoryDescriptionBlank
		}

		if err := s.checkDuplicate(ctx, r, category.Description); err != nil {
			return err
		}

		category.ID = uuid.New()
		return r.Categories.Create(ctx, category)
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

// Update applies a partial update to a category; nil patch fields keep their
// stored value
func (s *categoryService) Update(ctx context.Context, id uuid.UUID, patch domain.CategoryPatch) (*domain.Category, error) {
	var updated *domain.Category

	err := s.tx.RunInTx(ctx, func(r repository.Repositories) error {
		category, err := r.Categories.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.Description != nil && *patch.Description != category.Description {
			if strings.TrimSpace(*patch.Description) == "" {
				return ErrCategoryDescriptionBlank
			}
			if err := s.checkDuplicate(ctx, r, *patch.Description); err != nil {
				return err
			}
			category.Description = *patch.Description
		}
		if patch.Status != nil {
			category.Status = *patch.Status
		}

		if err := r.Categories.Update(ctx, category); err != nil {
			return err
		}

		updated = category
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a category. The delete is rejected while any product still
// references the category.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.RunInTx(ctx, func(r repository.Repositories) error {
		category, err := r.Categories.FindByID(ctx, id)
		if err != nil {
			return err
		}

		inUse, err := r.Products.ExistsByCategory(ctx, category.ID)
		if err != nil {
			return err
		}
		if inUse {
			return ErrCategoryInUse
		}

		return r.Categories.Delete(ctx, category.ID)
	})
}

func (s *categoryService) checkDuplicate(ctx context.Context, r repository.Repositories, description string) error {
	_, err := r.Categories.FindByDescription(ctx, description)
	if err == nil {
		return repository.ErrCategoryDescriptionTaken
	}
	if err != repository.ErrCategoryNotFound {
		return err
	}
	return nil
}
