package ports

import (
	"context"

	"github.com/egreat/storefront-api/internal/core/domain"
)

// CreateHeroInput carries the fields accepted at hero banner creation.
type CreateHeroInput struct {
	Position    int
	Title       string
	Highlight   string
	Description string
	Image       *ImageUpload
}

// UpdateHeroInput carries partial banner mutations.
type UpdateHeroInput struct {
	Position    *int
	Title       *string
	Highlight   *string
	Description *string
	Image       *ImageUpload
}

// HeroService defines use-case operations for hero banners.
type HeroService interface {
	Create(ctx context.Context, in CreateHeroInput) (*domain.HeroBanner, error)
	List(ctx context.Context) ([]*domain.HeroBanner, error)
	Update(ctx context.Context, id string, in UpdateHeroInput) (*domain.HeroBanner, error)
	Delete(ctx context.Context, id string) error
}

// UpdateSettingsInput carries partial settings mutations.
type UpdateSettingsInput struct {
	SocialLinks *domain.SocialLinks
	WhatsApp    *string
	Email       *string
	Address     *string
}

// SettingsService manages the site settings singleton.
type SettingsService interface {
	Get(ctx context.Context) (*domain.SiteSettings, error)
	Update(ctx context.Context, in UpdateSettingsInput) (*domain.SiteSettings, error)
	// EnsureDefaults seeds the singleton at startup when missing.
	EnsureDefaults(ctx context.Context) error
}
