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
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindAll(ctx context.Context) ([]*domain.Product, error)
	ExistsByBrand(ctx context.Context, brandID uuid.UUID) (bool, error)
	ExistsByCategory(ctx context.Context, categoryID uuid.UUID) (bool, error)
}

type productRepository struct {
	db DBTX
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db DBTX) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, code, title, description, price, stock, minimum_stock, status,
		weight, height, width, length, sales_quantity, brand_id, category_id,
		creation_date, update_date`

// Create inserts a new product into the database using parameterized queries
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Code,
		product.Title,
		product.Description,
		product.Price,
		product.Stock,
		product.MinimumStock,
		product.Status,
		product.Weight,
		product.Height,
		product.Width,
		product.Length,
		product.SalesQuantity,
		product.BrandID,
		product.CategoryID,
		product.CreationDate,
		product.UpdateDate,
	)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update updates an existing product in the database using parameterized queries
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET code = $2, title = $3, description = $4, price = $5, stock = $6,
		    minimum_stock = $7, status = $8, weight = $9, height = $10, width = $11,
		    length = $12, sales_quantity = $13, brand_id = $14, category_id = $15,
		    update_date = $16
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Code,
		product.Title,
		product.Description,
		product.Price,
		product.Stock,
		product.MinimumStock,
		product.Status,
		product.Weight,
		product.Height,
		product.Width,
		product.Length,
		product.SalesQuantity,
		product.BrandID,
		product.CategoryID,
		product.UpdateDate,
	)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product from the database. Owned images go with it via the
// product_images foreign key cascade.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByID retrieves a product by ID using parameterized queries
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`

	product := &domain.Product{}
	err := r.scanProduct(r.db.QueryRowContext(ctx, query, id), product)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// FindAll retrieves all products ordered by creation date
func (r *productRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY creation_date ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		if err := r.scanProduct(rows, product); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// ExistsByBrand reports whether any product references the given brand
func (r *productRepository) ExistsByBrand(ctx context.Context, brandID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM products WHERE brand_id = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, brandID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check products by brand: %w", err)
	}

	return exists, nil
}

// ExistsByCategory reports whether any product references the given category
func (r *productRepository) ExistsByCategory(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM products WHERE category_id = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, categoryID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check products by category: %w", err)
	}

	return exists, nil
}

// scanner matches both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func (r *productRepository) scanProduct(row scanner, product *domain.Product) error {
	return row.Scan(
		&product.ID,
		&product.Code,
		&product.Title,
		&product.Description,
		&product.Price,
		&product.Stock,
		&product.MinimumStock,
		&product.Status,
		&product.Weight,
		&product.Height,
		&product.Width,
		&product.Length,
		&product.SalesQuantity,
		&product.BrandID,
		&product.CategoryID,
		&product.CreationDate,
		&product.UpdateDate,
	)
}
