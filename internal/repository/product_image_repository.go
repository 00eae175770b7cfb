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
	ErrProductImageNotFound = errors.New("product image not found")
)

// ProductImageRepository defines the interface for product image data access
type ProductImageRepository interface {
	Create(ctx context.Context, image *domain.ProductImage) error
	Update(ctx context.Context, image *domain.ProductImage) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ProductImage, error)
	FindAll(ctx context.Context) ([]*domain.ProductImage, error)
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]*domain.ProductImage, error)
}

type productImageRepository struct {
	db DBTX
}

// NewProductImageRepository creates a new instance of ProductImageRepository
func NewProductImageRepository(db DBTX) ProductImageRepository {
	return &productImageRepository{db: db}
}

// Create inserts a new product image into the database using parameterized queries
func (r *productImageRepository) Create(ctx context.Context, image *domain.ProductImage) error {
	query := `
		INSERT INTO product_images (id, description, image_data, product_id)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		image.ID,
		image.Description,
		image.ImageData,
		image.ProductID,
	)

	if err != nil {
		return fmt.Errorf("failed to create product image: %w", err)
	}

	return nil
}

// Update updates an existing product image, including its owning product
func (r *productImageRepository) Update(ctx context.Context, image *domain.ProductImage) error {
	query := `
		UPDATE product_images
		SET description = $2, image_data = $3, product_id = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		image.ID,
		image.Description,
		image.ImageData,
		image.ProductID,
	)

	if err != nil {
		return fmt.Errorf("failed to update product image: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductImageNotFound
	}

	return nil
}

// Delete removes a product image from the database
func (r *productImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM product_images WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product image: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductImageNotFound
	}

	return nil
}

// FindByID retrieves a product image by ID using parameterized queries
func (r *productImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ProductImage, error) {
	query := `
		SELECT id, description, image_data, product_id
		FROM product_images
		WHERE id = $1
	`

	image := &domain.ProductImage{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&image.ID,
		&image.Description,
		&image.ImageData,
		&image.ProductID,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductImageNotFound
		}
		return nil, fmt.Errorf("failed to find product image by ID: %w", err)
	}

	return image, nil
}

// FindAll retrieves all product images
func (r *productImageRepository) FindAll(ctx context.Context) ([]*domain.ProductImage, error) {
	query := `
		SELECT id, description, image_data, product_id
		FROM product_images
	`

	return r.queryImages(ctx, query)
}

// FindByProductID retrieves the images owned by the given product
func (r *productImageRepository) FindByProductID(ctx context.Context, productID uuid.UUID) ([]*domain.ProductImage, error) {
	query := `
		SELECT id, description, image_data, product_id
		FROM product_images
		WHERE product_id = $1
	`

	return r.queryImages(ctx, query, productID)
}

func (r *productImageRepository) queryImages(ctx context.Context, query string, args ...any) ([]*domain.ProductImage, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list product images: %w", err)
	}
	defer rows.Close()

	images := []*domain.ProductImage{}
	for rows.Next() {
		image := &domain.ProductImage{}
		err := rows.Scan(
			&image.ID,
			&image.Description,
			&image.ImageData,
			&image.ProductID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product image: %w", err)
		}
		images = append(images, image)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product images: %w", err)
	}

	return images, nil
}
