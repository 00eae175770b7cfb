package service

import (
	"context"

	"bookbrew-catalog/internal/domain"
	"bookbrew-catalog/internal/repository"

	"github.com/google/uuid"
)

// Mock repositories for testing. FindByID/FindAll return row copies without
// associations, the way the SQL repositories scan them.

type mockProductRepository struct {
	products map[uuid.UUID]*domain.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[uuid.UUID]*domain.Product)}
}

func (m *mockProductRepository) row(p *domain.Product) *domain.Product {
	row := *p
	row.Brand = nil
	row.Category = nil
	row.Images = nil
	return &row
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.products[product.ID] = m.row(product)
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if _, exists := m.products[product.ID]; !exists {
		return repository.ErrProductNotFound
	}
	m.products[product.ID] = m.row(product)
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, exists := m.products[id]; !exists {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	return m.row(product), nil
}

func (m *mockProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	products := []*domain.Product{}
	for _, product := range m.products {
		products = append(products, m.row(product))
	}
	return products, nil
}

func (m *mockProductRepository) ExistsByBrand(ctx context.Context, brandID uuid.UUID) (bool, error) {
	for _, product := range m.products {
		if product.BrandID == brandID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockProductRepository) ExistsByCategory(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	for _, product := range m.products {
		if product.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

type mockImageRepository struct {
	images map[uuid.UUID]*domain.ProductImage
}

func newMockImageRepository() *mockImageRepository {
	return &mockImageRepository{images: make(map[uuid.UUID]*domain.ProductImage)}
}

func (m *mockImageRepository) row(image *domain.ProductImage) *domain.ProductImage {
	row := *image
	return &row
}

func (m *mockImageRepository) Create(ctx context.Context, image *domain.ProductImage) error {
	m.images[image.ID] = m.row(image)
	return nil
}

func (m *mockImageRepository) Update(ctx context.Context, image *domain.ProductImage) error {
	if _, exists := m.images[image.ID]; !exists {
		return repository.ErrProductImageNotFound
	}
	m.images[image.ID] = m.row(image)
	return nil
}

func (m *mockImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, exists := m.images[id]; !exists {
		return repository.ErrProductImageNotFound
	}
	delete(m.images, id)
	return nil
}

func (m *mockImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ProductImage, error) {
	image, exists := m.images[id]
	if !exists {
		return nil, repository.ErrProductImageNotFound
	}
	return m.row(image), nil
}

func (m *mockImageRepository) FindAll(ctx context.Context) ([]*domain.ProductImage, error) {
	images := []*domain.ProductImage{}
	for _, image := range m.images {
		images = append(images, m.row(image))
	}
	return images, nil
}

func (m *mockImageRepository) FindByProductID(ctx context.Context, productID uuid.UUID) ([]*domain.ProductImage, error) {
	images := []*domain.ProductImage{}
	for _, image := range m.images {
		if image.ProductID == productID {
			images = append(images, m.row(image))
		}
	}
	return images, nil
}

type mockBrandRepository struct {
	brands map[uuid.UUID]*domain.Brand
}

func newMockBrandRepository() *mockBrandRepository {
	return &mockBrandRepository{brands: make(map[uuid.UUID]*domain.Brand)}
}

func (m *mockBrandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	for _, existing := range m.brands {
		if existing.Description == brand.Description {
			return repository.ErrBrandDescriptionTaken
		}
	}
	row := *brand
	m.brands[brand.ID] = &row
	return nil
}

func (m *mockBrandRepository) Update(ctx context.Context, brand *domain.Brand) error {
	if _, exists := m.brands[brand.ID]; !exists {
		return repository.ErrBrandNotFound
	}
	row := *brand
	m.brands[brand.ID] = &row
	return nil
}

func (m *mockBrandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, exists := m.brands[id]; !exists {
		return repository.ErrBrandNotFound
	}
	delete(m.brands, id)
	return nil
}

func (m *mockBrandRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Brand, error) {
	brand, exists := m.brands[id]
	if !exists {
		return nil, repository.ErrBrandNotFound
	}
	row := *brand
	return &row, nil
}

func (m *mockBrandRepository) FindAll(ctx context.Context) ([]*domain.Brand, error) {
	brands := []*domain.Brand{}
	for _, brand := range m.brands {
		row := *brand
		brands = append(brands, &row)
	}
	return brands, nil
}

func (m *mockBrandRepository) FindByDescription(ctx context.Context, description string) (*domain.Brand, error) {
	for _, brand := range m.brands {
		if brand.Description == description {
			row := *brand
			return &row, nil
		}
	}
	return nil, repository.ErrBrandNotFound
}

type mockCategoryRepository struct {
	categories map[uuid.UUID]*domain.Category
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{categories: make(map[uuid.UUID]*domain.Category)}
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	for _, existing := range m.categories {
		if existing.Description == category.Description {
			return repository.ErrCategoryDescriptionTaken
		}
	}
	row := *category
	m.categories[category.ID] = &row
	return nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if _, exists := m.categories[category.ID]; !exists {
		return repository.ErrCategoryNotFound
	}
	row := *category
	m.categories[category.ID] = &row
	return nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, exists := m.categories[id]; !exists {
		return repository.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	category, exists := m.categories[id]
	if !exists {
		return nil, repository.ErrCategoryNotFound
	}
	row := *category
	return &row, nil
}

func (m *mockCategoryRepository) FindAll(ctx context.Context) ([]*domain.Category, error) {
	categories := []*domain.Category{}
	for _, category := range m.categories {
		row := *category
		categories = append(categories, &row)
	}
	return categories, nil
}

func (m *mockCategoryRepository) FindByDescription(ctx context.Context, description string) (*domain.Category, error) {
	for _, category := range m.categories {
		if category.Description == description {
			row := *category
			return &row, nil
		}
	}
	return nil, repository.ErrCategoryNotFound
}

// mockTxRunner hands the same repositories to the transactional function; the
// services under test are exercised against in-memory state, not a real
// transaction.
type mockTxRunner struct {
	repos repository.Repositories
}

func (m *mockTxRunner) RunInTx(ctx context.Context, fn func(r repository.Repositories) error) error {
	return fn(m.repos)
}

type testEnv struct {
	products   *mockProductRepository
	images     *mockImageRepository
	brands     *mockBrandRepository
	categories *mockCategoryRepository
	repos      repository.Repositories
	tx         repository.TxRunner
}

func newTestEnv() *testEnv {
	products := newMockProductRepository()
	images := newMockImageRepository()
	brands := newMockBrandRepository()
	categories := newMockCategoryRepository()

	repos := repository.Repositories{
		Products:   products,
		Images:     images,
		Brands:     brands,
		Categories: categories,
	}

	return &testEnv{
		products:   products,
		images:     images,
		brands:     brands,
		categories: categories,
		repos:      repos,
		tx:         &mockTxRunner{repos: repos},
	}
}

func (e *testEnv) seedBrand(description string) *domain.Brand {
	brand := &domain.Brand{ID: uuid.New(), Description: description, Status: true}
	m := *brand
	e.brands.brands[brand.ID] = &m
	return brand
}

func (e *testEnv) seedCategory(description string) *domain.Category {
	category := &domain.Category{ID: uuid.New(), Description: description, Status: true}
	m := *category
	e.categories.categories[category.ID] = &m
	return category
}

func (e *testEnv) seedImage(productID uuid.UUID, description string, data []byte) *domain.ProductImage {
	image := &domain.ProductImage{ID: uuid.New(), Description: description, ImageData: data, ProductID: productID}
	m := *image
	e.images.images[image.ID] = &m
	return image
}
