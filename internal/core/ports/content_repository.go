package ports

import (
	"context"

	"github.com/egreat/storefront-api/internal/core/domain"
)

// HeroRepository defines persistence operations for hero banners.
type HeroRepository interface {
	Create(ctx context.Context, h *domain.HeroBanner) (*domain.HeroBanner, error)
	FindByID(ctx context.Context, id string) (*domain.HeroBanner, error)
	// List returns all banners ordered by position.
	List(ctx context.Context) ([]*domain.HeroBanner, error)
	Update(ctx context.Context, h *domain.HeroBanner) error
	Delete(ctx context.Context, id string) error
}

// SettingsRepository manages the site settings singleton.
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.SiteSettings, error)
	// Seed creates the singleton with zero values when it does not exist.
	Seed(ctx context.Context) error
	Update(ctx context.Context, s *domain.SiteSettings) (*domain.SiteSettings, error)
}
