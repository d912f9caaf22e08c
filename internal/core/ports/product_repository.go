package ports

import (
	"context"

	"github.com/egreat/storefront-api/internal/core/domain"
)

// ListProductsFilter carries all query parameters for listing products.
// Pointer fields are tri-state: nil means "no filter".
type ListProductsFilter struct {
	Query         string // partial, case-insensitive match on name
	CategoryID    string
	SubcategoryID string
	InStock       *bool
	Featured      *bool
	MinPrice      *float64
	MaxPrice      *float64
	Page          int // 1-based
	Limit         int // capped at 100 by the service
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// List returns a page of products matching filter and the total count.
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, int64, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	CountBySubcategory(ctx context.Context, subcategoryID string) (int64, error)
}
