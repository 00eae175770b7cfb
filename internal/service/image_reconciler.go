package service

import (
	"context"

	"bookbrew-catalog/internal/domain"
	"bookbrew-catalog/internal/repository"

	"github.com/google/uuid"
)

// reconcileImages merges a submitted image list into a product's current
// collection and returns the resulting collection.
//
// Entries carrying an ID update the existing image row: non-nil fields
// overwrite the stored values and the image is reattached to the product.
// Entries without an ID insert a fresh image. Current images not named by any
// update entry are kept untouched; the bulk operation never deletes an image.
// Removal happens only through the explicit single-image delete.
//
// Must run inside the caller's transaction so a missing image ID rolls back
// the whole update.
func reconcileImages(
	ctx context.Context,
	images repository.ProductImageRepository,
	productID uuid.UUID,
	current []*domain.ProductImage,
	desired []domain.ImagePatch,
) ([]*domain.ProductImage, error) {
	updatedIDs := make(map[uuid.UUID]struct{})
	for _, spec := range desired {
		if spec.ID != nil {
			updatedIDs[*spec.ID] = struct{}{}
		}
	}

	result := []*domain.ProductImage{}

	for _, image := range current {
		if _, updated := updatedIDs[image.ID]; !updated {
			result = append(result, image)
		}
	}

	for _, spec := range desired {
		if spec.ID != nil {
			existing, err := images.FindByID(ctx, *spec.ID)
			if err != nil {
				return nil, err
			}

			if spec.Description != nil {
				existing.Description = *spec.Description
			}
			if spec.ImageData != nil {
				existing.ImageData = spec.ImageData
			}
			existing.ProductID = productID

			if err := images.Update(ctx, existing); err != nil {
				return nil, err
			}
			result = append(result, existing)
			continue
		}

		newImage := &domain.ProductImage{
			ID:        uuid.New(),
			ImageData: spec.ImageData,
			ProductID: productID,
		}
		if spec.Description != nil {
			newImage.Description = *spec.Description
		}

		if err := images.Create(ctx, newImage); err != nil {
			return nil, err
		}
		result = append(result, newImage)
	}

	return result, nil
}
