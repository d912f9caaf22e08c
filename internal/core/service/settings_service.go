package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/egreat/storefront-api/internal/core/domain"
	"github.com/egreat/storefront-api/internal/core/ports"
)

const (
	settingsCacheKey = "content:settings"
	settingsCacheTTL = 10 * time.Minute
)

// SettingsService manages the site settings singleton with a cached read
// path.
type SettingsService struct {
	settings ports.SettingsRepository
	cache    Cache
	log      zerolog.Logger
}

func NewSettingsService(settings ports.SettingsRepository, cache Cache, log zerolog.Logger) *SettingsService {
	return &SettingsService{settings: settings, cache: cache, log: log}
}

// EnsureDefaults seeds the singleton at startup when missing, so Get never
// has to handle an empty store.
func (s *SettingsService) EnsureDefaults(ctx context.Context) error {
	if err := s.settings.Seed(ctx); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	return nil
}

func (s *SettingsService) Get(ctx context.Context) (*domain.SiteSettings, error) {
	var cached domain.SiteSettings
	if hit, err := s.cache.Get(ctx, settingsCacheKey, &cached); err != nil {
		s.log.Warn().Err(err).Msg("settings cache read failed, falling back to store")
	} else if hit {
		return &cached, nil
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, settingsCacheKey, settings, settingsCacheTTL); err != nil {
		s.log.Warn().Err(err).Msg("settings cache write failed")
	}
	return settings, nil
}

func (s *SettingsService) Update(ctx context.Context, in ports.UpdateSettingsInput) (*domain.SiteSettings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	if in.SocialLinks != nil {
		settings.SocialLinks = *in.SocialLinks
	}
	if in.WhatsApp != nil {
		settings.WhatsApp = *in.WhatsApp
	}
	if in.Email != nil {
		settings.Email = *in.Email
	}
	if in.Address != nil {
		settings.Address = *in.Address
	}
	settings.UpdatedAt = time.Now().UTC()

	updated, err := s.settings.Update(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}

	if err := s.cache.Invalidate(ctx, settingsCacheKey); err != nil {
		s.log.Warn().Err(err).Msg("settings cache invalidation failed")
	}
	return updated, nil
}
