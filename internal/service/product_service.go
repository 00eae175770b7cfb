package service

import (
	"context"
	"errors"
	"time"

	"bookbrew-catalog/internal/domain"
	"bookbrew-catalog/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrNoProducts      = errors.New("no products found")
	ErrNoProductImages = errors.New("no product images found")
	ErrImageNotOwned   = errors.New("image does not belong to this product")
)

// ProductService defines the interface for product business logic
type ProductService interface {
	FindAll(ctx context.Context) ([]*domain.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product, images []domain.ImagePatch) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, patch *domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error

	FindAllImages(ctx context.Context) ([]*domain.ProductImage, error)
	FindImageByID(ctx context.Context, id uuid.UUID) (*domain.ProductImage, error)
	CreateImage(ctx context.Context, productID uuid.UUID, description string, imageData []byte) (*domain.ProductImage, error)
	UpdateImage(ctx context.Context, productID, imageID uuid.UUID, patch domain.ImagePatch) (*domain.ProductImage, error)
	DeleteImage(ctx context.Context, productID, imageID uuid.UUID) error
}

type productService struct {
	repos repository.Repositories
	tx    repository.TxRunner
}

// NewProductService creates a new instance of ProductService. repos is used for
// read-only lookups; every mutating operation runs through tx.
func NewProductService(repos repository.Repositories, tx repository.TxRunner) ProductService {
	return &productService{
		repos: repos,
		tx:    tx,
	}
}

// FindAll retrieves all products with their brand, category and images
func (s *productService) FindAll(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.repos.Products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrNoProducts
	}

	for _, product := range products {
		if err := s.hydrate(ctx, s.repos, product); err != nil {
			return nil, err
		}
	}

	return products, nil
}

// FindByID retrieves a product by ID with its brand, category and images
func (s *productService) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.repos.Products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.hydrate(ctx, s.repos, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Create persists a new product, resolving its brand and category and
// attaching any submitted images, all in one transaction. An image entry with
// an ID reattaches the existing row; one without an ID is created fresh.
// CreationDate and UpdateDate are stamped to the same instant.
func (s *productService) Create(ctx context.Context, product *domain.Product, images []domain.ImagePatch) (*domain.Product, error) {
	err := s.tx.RunInTx(ctx, func(r repository.Repositories) error {
		brand, err := r.Brands.FindByID(ctx, product.BrandID)
		if err != nil {
			return err
		}

		category, err := r.Categories.FindByID(ctx, product.CategoryID)
		if err != nil {
			return err
		}

		now := time.Now()
		product.ID = uuid.New()
		product.Brand = brand
		product.Category = category
		product.CreationDate = now
		product.UpdateDate = now

		if err := r.Products.Create(ctx, product); err != nil {
			return err
		}

		attached := []*domain.ProductImage{}
		for _, spec := range images {
			if spec.ID != nil {
				existing, err := r.Images.FindByID(ctx, *spec.ID)
				if err != nil {
					return err
				}
				existing.ProductID = product.ID
				if err := r.Images.Update(ctx, existing); err != nil {
					return err
				}
				attached = append(attached, existing)
				continue
			}

			image := &domain.ProductImage{
				ID:        uuid.New(),
				ImageData: spec.ImageData,
				ProductID: product.ID,
			}
			if spec.Description != nil {
				image.Description = *spec.Description
			}
			if err := r.Images.Create(ctx, image); err != nil {
				return err
			}
			attached = append(attached, image)
		}
		product.Images = attached

		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// Update applies a partial-update payload to an existing product. Fields left
// nil in the patch keep their stored value. A submitted brand or category is
// re-resolved by ID; a submitted image list is reconciled against the current
// collection. UpdateDate is restamped regardless of which fields changed. The
// load, merge, reconciliation and save commit or fail together.
func (s *productService) Update(ctx context.Context, id uuid.UUID, patch *domain.ProductPatch) (*domain.Product, error) {
	var updated *domain.Product

	err := s.tx.RunInTx(ctx, func(r repository.Repositories) error {
		product, err := r.Products.FindByID(ctx, id)
		if err != nil {
			return err
		}

		applyPatch(product, patch)

		if patch.BrandID != nil {
			brand, err := r.Brands.FindByID(ctx, *patch.BrandID)
			if err != nil {
				return err
			}
			product.BrandID = brand.ID
			product.Brand = brand
		}

		if patch.CategoryID != nil {
			category, err := r.Categories.FindByID(ctx, *patch.CategoryID)
			if err != nil {
				return err
			}
			product.CategoryID = category.ID
			product.Category = category
		}

		if patch.Images != nil {
			current, err := r.Images.FindByProductID(ctx, product.ID)
			if err != nil {
				return err
			}
			images, err := reconcileImages(ctx, r.Images, product.ID, current, patch.Images)
			if err != nil {
				return err
			}
			product.Images = images
		}

		product.UpdateDate = time.Now()

		if err := r.Products.Update(ctx, product); err != nil {
			return err
		}

		if err := s.hydrate(ctx, r, product); err != nil {
			return err
		}

		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a product and, via the owning relationship, its images
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.RunInTx(ctx, func(r repository.Repositories) error {
		if _, err := r.Products.FindByID(ctx, id); err != nil {
			return err
		}
		return r.Products.Delete(ctx, id)
	})
}

// FindAllImages retrieves all product images
func (s *productService) FindAllImages(ctx context.Context) ([]*domain.ProductImage, error) {
	images, err := s.repos.Images.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, ErrNoProductImages
	}
	return images, nil
}

// FindImageByID retrieves a product image by ID
func (s *productService) FindImageByID(ctx context.Context, id uuid.UUID) (*domain.ProductImage, error) {
	return s.repos.Images.FindByID(ctx, id)
}

// CreateImage adds a single image to an existing product
func (s *productService) CreateImage(ctx context.Context, productID uuid.UUID, description string, imageData []byte) (*domain.ProductImage, error) {
	var image *domain.ProductImage

	err := s.tx.RunInTx(ctx, func(r repository.Repositories) error {
		product, err := r.Products.FindByID(ctx, productID)
		if err != nil {
			return err
		}

		image = &domain.ProductImage{
			ID:          uuid.New(),
			Description: description,
			ImageData:   imageData,
			ProductID:   product.ID,
		}
		return r.Images.Create(ctx, image)
	})
	if err != nil {
		return nil, err
	}

	return image, nil
}

// UpdateImage applies a partial update to a single image. Nil patch fields
// keep their stored value; the image stays attached to its current product.
func (s *productService) UpdateImage(ctx context.Context, productID, imageID uuid.UUID, patch domain.ImagePatch) (*domain.ProductImage, error) {
	var image *domain.ProductImage

	err := s.tx.RunInTx(ctx, func(r repository.Repositories) error {
		existing, err := r.Images.FindByID(ctx, imageID)
		if err != nil {
			return err
		}

		if patch.Description != nil {
			existing.Description = *patch.Description
		}
		if patch.ImageData != nil {
			existing.ImageData = patch.ImageData
		}

		if err := r.Images.Update(ctx, existing); err != nil {
			return err
		}

		image = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return image, nil
}

// DeleteImage removes an image from a product's collection and deletes the
// row. The image must belong to the addressed product.
func (s *productService) DeleteImage(ctx context.Context, productID, imageID uuid.UUID) error {
	return s.tx.RunInTx(ctx, func(r repository.Repositories) error {
		product, err := r.Products.FindByID(ctx, productID)
		if err != nil {
			return err
		}

		image, err := r.Images.FindByID(ctx, imageID)
		if err != nil {
			return err
		}

		if image.ProductID != product.ID {
			return ErrImageNotOwned
		}

		return r.Images.Delete(ctx, image.ID)
	})
}

// applyPatch overwrites product fields with the non-nil scalar fields of the
// patch. Classification and image changes are handled by the caller.
func applyPatch(product *domain.Product, patch *domain.ProductPatch) {
	if patch.Code != nil {
		product.Code = *patch.Code
	}
	if patch.Title != nil {
		product.Title = *patch.Title
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Stock != nil {
		product.Stock = *patch.Stock
	}
	if patch.MinimumStock != nil {
		product.MinimumStock = *patch.MinimumStock
	}
	if patch.Status != nil {
		product.Status = *patch.Status
	}
	if patch.Weight != nil {
		product.Weight = *patch.Weight
	}
	if patch.Height != nil {
		product.Height = *patch.Height
	}
	if patch.Width != nil {
		product.Width = *patch.Width
	}
	if patch.Length != nil {
		product.Length = *patch.Length
	}
	if patch.SalesQuantity != nil {
		product.SalesQuantity = *patch.SalesQuantity
	}
}

// hydrate fills the product's brand, category and image associations where
// they are not already loaded
func (s *productService) hydrate(ctx context.Context, r repository.Repositories, product *domain.Product) error {
	if product.Brand == nil {
		brand, err := r.Brands.FindByID(ctx, product.BrandID)
		if err != nil {
			return err
		}
		product.Brand = brand
	}

	if product.Category == nil {
		category, err := r.Categories.FindByID(ctx, product.CategoryID)
		if err != nil {
			return err
		}
		product.Category = category
	}

	if product.Images == nil {
		images, err := r.Images.FindByProductID(ctx, product.ID)
		if err != nil {
			return err
		}
		product.Images = images
	}

	return nil
}
