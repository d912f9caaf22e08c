package ports

import (
	"context"

	"github.com/egreat/storefront-api/internal/core/domain"
)

// CreateProductInput carries all data needed to create a product. Category
// may be an ID or a category name; the service resolves it either way.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Subcategory string
	Specs       map[string]any
	InStock     bool
	Featured    bool
	Images      []ImageUpload
}

// UpdateProductInput carries partial product mutations. Nil means "leave
// unchanged"; new Images are appended to the existing list.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Subcategory *string
	Specs       map[string]any
	InStock     *bool
	Featured    *bool
	Images      []ImageUpload
}

// Pagination describes one page of a list result.
type Pagination struct {
	Total           int64
	TotalPages      int
	CurrentPage     int
	Limit           int
	HasNextPage     bool
	HasPreviousPage bool
}

// ProductPage is one page of products plus its pagination envelope.
type ProductPage struct {
	Items      []*domain.Product
	Pagination Pagination
}

// ProductService defines use-case operations for products.
type ProductService interface {
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ListProductsFilter) (*ProductPage, error)
	ListFeatured(ctx context.Context, page, limit int) (*ProductPage, error)
	Update(ctx context.Context, id string, in UpdateProductInput) (*domain.Product, error)
	// Delete removes the product and schedules its images for background
	// cloud deletion.
	Delete(ctx context.Context, id string) error
	// DeleteImage detaches one image URL from the product and schedules the
	// remote copy for deletion.
	DeleteImage(ctx context.Context, id, imageURL string) (*domain.Product, error)
}
