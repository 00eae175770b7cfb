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
	"go.uber.org/zap"
)

// CreateBrandRequest represents the brand creation payload
type CreateBrandRequest struct {
	Description string `json:"description" validate:"required,min=2,max=30"`
	Status      *bool  `json:"status" validate:"required"`
}

// UpdateBrandRequest represents the partial brand update payload
type UpdateBrandRequest struct {
	Description *string `json:"description,omitempty" validate:"omitempty,min=2,max=30"`
	Status      *bool   `json:"status,omitempty"`
}

// BrandHandler handles HTTP requests for brand operations
type BrandHandler struct {
	brandService service.BrandService
	logger       *zap.Logger
}

// NewBrandHandler creates a new BrandHandler
func NewBrandHandler(brandService service.BrandService, logger *zap.Logger) *BrandHandler {
	return &BrandHandler{
		brandService: brandService,
		logger:       logger,
	}
}

// RegisterRoutes registers all brand routes
func (h *BrandHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/brands", func(r chi.Router) {
		r.Get("/", h.GetAll)
		r.Post("/", h.Create)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// GetAll returns all brands
func (h *BrandHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	brands, err := h.brandService.FindAll(r.Context())
	if err != nil {
		h.respondError(w, err, "failed to list brands")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, brands)
}

// GetByID returns a single brand
func (h *BrandHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid brand ID")
		return
	}

	brand, err := h.brandService.FindByID(r.Context(), id)
	if err != nil {
		h.respondError(w, err, "failed to get brand")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, brand)
}

// Create handles brand creation
func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBrandRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Brand validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	brand := &domain.Brand{
		Description: req.Description,
		Status:      *req.Status,
	}

	created, err := h.brandService.Create(r.Context(), brand)
	if err != nil {
		h.respondError(w, err, "failed to create brand")
		return
	}

	h.logger.Info("Brand created", zap.String("brand_id", created.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, created)
}

// Update handles the partial brand update
func (h *BrandHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid brand ID")
		return
	}

	var req UpdateBrandRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Brand validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := domain.BrandPatch{
		Description: req.Description,
		Status:      req.Status,
	}

	updated, err := h.brandService.Update(r.Context(), id, patch)
	if err != nil {
		h.respondError(w, err, "failed to update brand")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, updated)
}

// Delete handles brand deletion
func (h *BrandHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid brand ID")
		return
	}

	if err := h.brandService.Delete(r.Context(), id); err != nil {
		h.respondError(w, err, "failed to delete brand")
		return
	}

	h.logger.Info("Brand deleted", zap.String("brand_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *BrandHandler) respondError(w http.ResponseWriter, err error, logMessage string) {
	switch {
	case errors.Is(err, repository.ErrBrandNotFound),
		errors.Is(err, service.ErrNoBrands):
		middleware.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrBrandDescriptionTaken),
		errors.Is(err, service.ErrBrandInUse),
		errors.Is(err, service.ErrBrandDescriptionBlank):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(logMessage, zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
