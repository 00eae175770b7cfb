package transport

import (
	"errors"
	"net/http"

	"bookbrew-catalog/internal/domain"
	"bookbrew-catalog/internal/middleware"
	"bookbrew-catalog/internal/repository"
	"bookbrew-catalog/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ImageRequest represents one entry of a submitted image list. An entry with
// an ID targets an existing image; one without describes a new image.
type ImageRequest struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	Description *string    `json:"description,omitempty" validate:"omitempty,min=2,max=30"`
	ImageData   []byte     `json:"image_data,omitempty"`
}

// CreateProductRequest represents the product creation payload
type CreateProductRequest struct {
	Code          string          `json:"code" validate:"required"`
	Title         string          `json:"title" validate:"required"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock" validate:"gte=0"`
	MinimumStock  int             `json:"minimum_stock" validate:"gte=0"`
	Status        bool            `json:"status"`
	Weight        float64         `json:"weight" validate:"gte=0"`
	Height        float64         `json:"height" validate:"gte=0"`
	Width         float64         `json:"width" validate:"gte=0"`
	Length        float64         `json:"length" validate:"gte=0"`
	SalesQuantity int             `json:"sales_quantity" validate:"gte=0"`
	BrandID       uuid.UUID       `json:"brand_id" validate:"required"`
	CategoryID    uuid.UUID       `json:"category_id" validate:"required"`
	Images        []ImageRequest  `json:"product_images" validate:"dive"`
}

// UpdateProductRequest represents the partial product update payload. Absent
// fields leave the stored value unchanged; an absent image list leaves the
// image collection untouched.
type UpdateProductRequest struct {
	Code          *string          `json:"code,omitempty"`
	Title         *string          `json:"title,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	Stock         *int             `json:"stock,omitempty" validate:"omitempty,gte=0"`
	MinimumStock  *int             `json:"minimum_stock,omitempty" validate:"omitempty,gte=0"`
	Status        *bool            `json:"status,omitempty"`
	Weight        *float64         `json:"weight,omitempty" validate:"omitempty,gte=0"`
	Height        *float64         `json:"height,omitempty" validate:"omitempty,gte=0"`
	Width         *float64         `json:"width,omitempty" validate:"omitempty,gte=0"`
	Length        *float64         `json:"length,omitempty" validate:"omitempty,gte=0"`
	SalesQuantity *int             `json:"sales_quantity,omitempty" validate:"omitempty,gte=0"`
	BrandID       *uuid.UUID       `json:"brand_id,omitempty"`
	CategoryID    *uuid.UUID       `json:"category_id,omitempty"`
	Images        []ImageRequest   `json:"product_images,omitempty" validate:"omitempty,dive"`
}

// CreateImageRequest represents the single-image creation payload
type CreateImageRequest struct {
	ProductID   uuid.UUID `json:"product_id" validate:"required"`
	Description string    `json:"description" validate:"required,min=2,max=30"`
	ImageData   []byte    `json:"image_data" validate:"required"`
}

// UpdateImageRequest represents the single-image partial update payload
type UpdateImageRequest struct {
	Description *string `json:"description,omitempty" validate:"omitempty,min=2,max=30"`
	ImageData   []byte  `json:"image_data,omitempty"`
}

// ProductHandler handles HTTP requests for product and product image operations
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product and product image routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.GetAll)
		r.Post("/", h.Create)

		r.Get("/images", h.GetAllImages)
		r.Post("/images", h.CreateImage)
		r.Get("/images/{id}", h.GetImageByID)

		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)

		r.Put("/{productId}/images/{imageId}", h.UpdateImage)
		r.Delete("/{productId}/images/{imageId}", h.DeleteImage)
	})
}

// GetAll returns all products with their brand, category and images
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.FindAll(r.Context())
	if err != nil {
		h.respondError(w, err, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// GetByID returns a single product
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := h.productService.FindByID(r.Context(), id)
	if err != nil {
		h.respondError(w, err, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Create handles product creation
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	product := &domain.Product{
		Code:          req.Code,
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		Stock:         req.Stock,
		MinimumStock:  req.MinimumStock,
		Status:        req.Status,
		Weight:        req.Weight,
		Height:        req.Height,
		Width:         req.Width,
		Length:        req.Length,
		SalesQuantity: req.SalesQuantity,
		BrandID:       req.BrandID,
		CategoryID:    req.CategoryID,
	}

	created, err := h.productService.Create(r.Context(), product, toImagePatches(req.Images))
	if err != nil {
		h.respondError(w, err, "failed to create product")
		return
	}

	h.logger.Info("Product created", zap.String("product_id", created.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, created)
}

// Update handles the partial product update
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req UpdateProductRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	patch := &domain.ProductPatch{
		Code:          req.Code,
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		Stock:         req.Stock,
		MinimumStock:  req.MinimumStock,
		Status:        req.Status,
		Weight:        req.Weight,
		Height:        req.Height,
		Width:         req.Width,
		Length:        req.Length,
		SalesQuantity: req.SalesQuantity,
		BrandID:       req.BrandID,
		CategoryID:    req.CategoryID,
	}
	if req.Images != nil {
		patch.Images = toImagePatches(req.Images)
	}

	updated, err := h.productService.Update(r.Context(), id, patch)
	if err != nil {
		h.respondError(w, err, "failed to update product")
		return
	}

	h.logger.Info("Product updated", zap.String("product_id", updated.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, updated)
}

// Delete handles product deletion
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	if err := h.productService.Delete(r.Context(), id); err != nil {
		h.respondError(w, err, "failed to delete product")
		return
	}

	h.logger.Info("Product deleted", zap.String("product_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

// GetAllImages returns all product images
func (h *ProductHandler) GetAllImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.productService.FindAllImages(r.Context())
	if err != nil {
		h.respondError(w, err, "failed to list product images")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, images)
}

// GetImageByID returns the raw image content
func (h *ProductHandler) GetImageByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid image ID")
		return
	}

	image, err := h.productService.FindImageByID(r.Context(), id)
	if err != nil {
		h.respondError(w, err, "failed to get product image")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.WriteHeader(http.StatusOK)
	w.Write(image.ImageData)
}

// CreateImage adds a single image to an existing product
func (h *ProductHandler) CreateImage(w http.ResponseWriter, r *http.Request) {
	var req CreateImageRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	image, err := h.productService.CreateImage(r.Context(), req.ProductID, req.Description, req.ImageData)
	if err != nil {
		h.respondError(w, err, "failed to create product image")
		return
	}

	h.logger.Info("Product image created",
		zap.String("product_id", req.ProductID.String()),
		zap.String("image_id", image.ID.String()),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, image)
}

// UpdateImage handles the single-image partial update
func (h *ProductHandler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "productId"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}
	imageID, err := uuid.Parse(chi.URLParam(r, "imageId"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid image ID")
		return
	}

	var req UpdateImageRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	patch := domain.ImagePatch{
		Description: req.Description,
		ImageData:   req.ImageData,
	}

	image, err := h.productService.UpdateImage(r.Context(), productID, imageID, patch)
	if err != nil {
		h.respondError(w, err, "failed to update product image")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, image)
}

// DeleteImage removes a single image from a product
func (h *ProductHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "productId"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}
	imageID, err := uuid.Parse(chi.URLParam(r, "imageId"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid image ID")
		return
	}

	if err := h.productService.DeleteImage(r.Context(), productID, imageID); err != nil {
		h.respondError(w, err, "failed to delete product image")
		return
	}

	h.logger.Info("Product image deleted",
		zap.String("product_id", productID.String()),
		zap.String("image_id", imageID.String()),
	)
	w.WriteHeader(http.StatusNoContent)
}

// decodeAndValidate decodes the request body into v and writes the error
// response itself when decoding or validation fails
func (h *ProductHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := middleware.DecodeAndValidate(r, v); err != nil {
		h.logger.Debug("Request validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return false
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (h *ProductHandler) respondError(w http.ResponseWriter, err error, logMessage string) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrProductImageNotFound),
		errors.Is(err, repository.ErrBrandNotFound),
		errors.Is(err, repository.ErrCategoryNotFound),
		errors.Is(err, service.ErrNoProducts),
		errors.Is(err, service.ErrNoProductImages),
		errors.Is(err, service.ErrImageNotOwned):
		middleware.RespondWithError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error(logMessage, zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toImagePatches(reqs []ImageRequest) []domain.ImagePatch {
	if reqs == nil {
		return nil
	}

	patches := make([]domain.ImagePatch, 0, len(reqs))
	for _, req := range reqs {
		patches = append(patches, domain.ImagePatch{
			ID:          req.ID,
			Description: req.Description,
			ImageData:   req.ImageData,
		})
	}
	return patches
}
