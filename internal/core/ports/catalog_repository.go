package ports

import (
	"context"

	"github.com/egreat/storefront-api/internal/core/domain"
)

// ListFilter is the shared pagination filter for catalog collections.
type ListFilter struct {
	Query string // partial, case-insensitive match on name
	Page  int    // 1-based
	Limit int
}

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	// FindByName matches the exact name, case-insensitively.
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Category, int64, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id string) error
}

// SubcategoryRepository defines persistence operations for subcategories.
type SubcategoryRepository interface {
	Create(ctx context.Context, s *domain.Subcategory) (*domain.Subcategory, error)
	FindByID(ctx context.Context, id string) (*domain.Subcategory, error)
	// FindByName matches the exact name, case-insensitively.
	FindByName(ctx context.Context, name string) (*domain.Subcategory, error)
	// FindAllByName returns every subcategory whose name matches exactly,
	// case-insensitively.
	FindAllByName(ctx context.Context, name string) ([]*domain.Subcategory, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Subcategory, int64, error)
	Update(ctx context.Context, s *domain.Subcategory) error
	Delete(ctx context.Context, id string) error
}
