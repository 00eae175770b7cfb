package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a catalog product with its classification and owned images
type Product struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	Code          string          `json:"code" db:"code"`
	Title         string          `json:"title" db:"title"`
	Description   string          `json:"description" db:"description"`
	Price         decimal.Decimal `json:"price" db:"price"`
	Stock         int             `json:"stock" db:"stock"`
	MinimumStock  int             `json:"minimum_stock" db:"minimum_stock"`
	Status        bool            `json:"status" db:"status"`
	Weight        float64         `json:"weight" db:"weight"`
	Height        float64         `json:"height" db:"height"`
	Width         float64         `json:"width" db:"width"`
	Length        float64         `json:"length" db:"length"`
	SalesQuantity int             `json:"sales_quantity" db:"sales_quantity"`
	BrandID       uuid.UUID       `json:"brand_id" db:"brand_id"`
	CategoryID    uuid.UUID       `json:"category_id" db:"category_id"`
	Brand         *Brand          `json:"brand,omitempty" db:"-"`
	Category      *Category       `json:"category,omitempty" db:"-"`
	Images        []*ProductImage `json:"product_images" db:"-"`
	CreationDate  time.Time       `json:"creation_date" db:"creation_date"`
	UpdateDate    time.Time       `json:"update_date" db:"update_date"`
}

// ProductImage represents an image owned by exactly one product.
// ImageData is the opaque image content; it is stored alongside the row.
type ProductImage struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Description string    `json:"description" db:"description"`
	ImageData   []byte    `json:"image_data,omitempty" db:"image_data"`
	ProductID   uuid.UUID `json:"product_id" db:"product_id"`
}

// Brand represents a product brand
type Brand struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Description string    `json:"description" db:"description"`
	Status      bool      `json:"status" db:"status"`
}

// Category represents a product category
type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Description string    `json:"description" db:"description"`
	Status      bool      `json:"status" db:"status"`
}

// ProductPatch is a partial product representation. A nil field means
// "leave unchanged"; a nil Images slice means the image list was not submitted.
type ProductPatch struct {
	Code          *string
	Title         *string
	Description   *string
	Price         *decimal.Decimal
	Stock         *int
	MinimumStock  *int
	Status        *bool
	Weight        *float64
	Height        *float64
	Width         *float64
	Length        *float64
	SalesQuantity *int
	BrandID       *uuid.UUID
	CategoryID    *uuid.UUID
	Images        []ImagePatch
}

// ImagePatch is a partial image representation. An entry with an ID targets an
// existing image; an entry without an ID describes a new image. Nil fields are
// left unchanged on the targeted image.
type ImagePatch struct {
	ID          *uuid.UUID
	Description *string
	ImageData   []byte
}

// BrandPatch is a partial brand representation with nil-means-unchanged fields.
type BrandPatch struct {
	Description *string
	Status      *bool
}

// CategoryPatch is a partial category representation with nil-means-unchanged fields.
type CategoryPatch struct {
	Description *string
	Status      *bool
}
