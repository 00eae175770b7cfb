package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bookbrew-catalog/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrBrandNotFound         = errors.New("brand not found")
	ErrBrandDescriptionTaken = errors.New("brand with this description already exists")
)

// BrandRepository defines the interface for brand data access
type BrandRepository interface {
	Create(ctx context.Context, brand *domain.Brand) error
	Update(ctx context.Context, brand *domain.Brand) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Brand, error)
	FindAll(ctx context.Context) ([]*domain.Brand, error)
	FindByDescription(ctx context.Context, description string) (*domain.Brand, error)
}

type brandRepository struct {
	db DBTX
}

// NewBrandRepository creates a new instance of BrandRepository
func NewBrandRepository(db DBTX) BrandRepository {
	return &brandRepository{db: db}
}

// Create inserts a new brand into the database using parameterized queries
func (r *brandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	query := `
		INSERT INTO brands (id, description, status)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.ExecContext(ctx, query, brand.ID, brand.Description, brand.Status)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrBrandDescriptionTaken
		}
		return fmt.Errorf("failed to create brand: %w", err)
	}

	return nil
}

// Update updates an existing brand in the database using parameterized queries
func (r *brandRepository) Update(ctx context.Context, brand *domain.Brand) error {
	query := `
		UPDATE brands
		SET description = $2, status = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, brand.ID, brand.Description, brand.Status)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrBrandDescriptionTaken
		}
		return fmt.Errorf("failed to update brand: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrBrandNotFound
	}

	return nil
}

// Delete removes a brand from the database using parameterized queries
func (r *brandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM brands WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrBrandNotFound
	}

	return nil
}

// FindByID retrieves a brand by ID using parameterized queries
func (r *brandRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Brand, error) {
	query := `
		SELECT id, description, status
		FROM brands
		WHERE id = $1
	`

	brand := &domain.Brand{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&brand.ID, &brand.Description, &brand.Status)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to find brand by ID: %w", err)
	}

	return brand, nil
}

// FindAll retrieves all brands ordered by description
func (r *brandRepository) FindAll(ctx context.Context) ([]*domain.Brand, error) {
	query := `
		SELECT id, description, status
		FROM brands
		ORDER BY description ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	defer rows.Close()

	brands := []*domain.Brand{}
	for rows.Next() {
		brand := &domain.Brand{}
		if err := rows.Scan(&brand.ID, &brand.Description, &brand.Status); err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, brand)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating brands: %w", err)
	}

	return brands, nil
}

// FindByDescription retrieves a brand by its exact description (case-sensitive)
func (r *brandRepository) FindByDescription(ctx context.Context, description string) (*domain.Brand, error) {
	query := `
		SELECT id, description, status
		FROM brands
		WHERE description = $1
	`

	brand := &domain.Brand{}
	err := r.db.QueryRowContext(ctx, query, description).Scan(&brand.ID, &brand.Description, &brand.Status)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to find brand by description: %w", err)
	}

	return brand, nil
}
