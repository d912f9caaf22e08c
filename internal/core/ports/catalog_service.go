package ports

import (
	"context"

	"github.com/egreat/storefront-api/internal/core/domain"
)

// CreateCategoryInput carries the fields accepted at category creation.
type CreateCategoryInput struct {
	Name        string
	Description string
	IsActive    bool
	CoverImage  *ImageUpload
}

// UpdateCategoryInput carries partial category mutations.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	IsActive    *bool
	CoverImage  *ImageUpload
}

// CategoryPage is one page of categories plus its pagination envelope.
type CategoryPage struct {
	Items      []*domain.Category
	Pagination Pagination
}

// CategoryService defines use-case operations for categories.
type CategoryService interface {
	Create(ctx context.Context, in CreateCategoryInput) (*domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context, filter ListFilter) (*CategoryPage, error)
	Update(ctx context.Context, id string, in UpdateCategoryInput) (*domain.Category, error)
	// Delete refuses while products still reference the category.
	Delete(ctx context.Context, id string) error
}

// CreateSubcategoryInput carries the fields accepted at subcategory creation.
type CreateSubcategoryInput struct {
	Name        string
	Description string
	IsActive    bool
}

// UpdateSubcategoryInput carries partial subcategory mutations.
type UpdateSubcategoryInput struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// SubcategoryPage is one page of subcategories plus its pagination envelope.
type SubcategoryPage struct {
	Items      []*domain.Subcategory
	Pagination Pagination
}

// SubcategoryInstance pairs a subcategory with a product count and a small
// sample of its products, for the cross-catalog name lookup.
type SubcategoryInstance struct {
	Subcategory    *domain.Subcategory
	ProductCount   int64
	SampleProducts []*domain.Product
}

// SubcategoryService defines use-case operations for subcategories.
type SubcategoryService interface {
	Create(ctx context.Context, in CreateSubcategoryInput) (*domain.Subcategory, error)
	Get(ctx context.Context, id string) (*domain.Subcategory, error)
	List(ctx context.Context, filter ListFilter) (*SubcategoryPage, error)
	Update(ctx context.Context, id string, in UpdateSubcategoryInput) (*domain.Subcategory, error)
	// Delete refuses while products still reference the subcategory.
	Delete(ctx context.Context, id string) error
	// Products lists the products attached to the subcategory, honouring
	// the standard product filters.
	Products(ctx context.Context, id string, filter ListProductsFilter) (*domain.Subcategory, *ProductPage, error)
	// InstancesByName resolves every subcategory sharing a name, each with
	// its product count and up to five sample products.
	InstancesByName(ctx context.Context, name string) ([]SubcategoryInstance, error)
}
