package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/egreat/storefront-api/internal/api/metrics"
	"github.com/egreat/storefront-api/internal/core/domain"
	"github.com/egreat/storefront-api/internal/core/ports"
)

// Cache abstracts the read-through cache (Redis). Get reports whether the
// key was present; a miss is not an error.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

const (
	heroCacheKey = "content:hero"
	heroCacheTTL = 10 * time.Minute
)

// HeroService implements hero banner CRUD with a cached public read path.
type HeroService struct {
	banners ports.HeroRepository
	images  ports.ImageStore
	cleanup ports.ImageCleanup
	cache   Cache
	log     zerolog.Logger
}

func NewHeroService(
	banners ports.HeroRepository,
	images ports.ImageStore,
	cleanup ports.ImageCleanup,
	cache Cache,
	log zerolog.Logger,
) *HeroService {
	return &HeroService{banners: banners, images: images, cleanup: cleanup, cache: cache, log: log}
}

func (s *HeroService) Create(ctx context.Context, in ports.CreateHeroInput) (*domain.HeroBanner, error) {
	name := fmt.Sprintf("%s-%d", FolderHero, time.Now().UnixNano())
	url, err := s.images.Upload(ctx, in.Image.Reader, FolderHero, name)
	if err != nil {
		metrics.ImageUploadsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %s", domain.ErrImageUpload, in.Image.Filename)
	}
	metrics.ImageUploadsTotal.WithLabelValues("success").Inc()

	now := time.Now().UTC()
	banner := &domain.HeroBanner{
		Position:    in.Position,
		Title:       in.Title,
		Highlight:   in.Highlight,
		Description: in.Description,
		Image:       url,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.banners.Create(ctx, banner)
	if err != nil {
		s.cleanup.Enqueue(ports.ImageCleanupTask{Folder: FolderHero, URL: url})
		return nil, err
	}

	s.invalidate(ctx)
	return created, nil
}

// List serves from cache when possible; the banner set changes rarely and
// every storefront visit reads it.
func (s *HeroService) List(ctx context.Context) ([]*domain.HeroBanner, error) {
	var cached []*domain.HeroBanner
	if hit, err := s.cache.Get(ctx, heroCacheKey, &cached); err != nil {
		s.log.Warn().Err(err).Msg("hero cache read failed, falling back to store")
	} else if hit {
		return cached, nil
	}

	banners, err := s.banners.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hero banners: %w", err)
	}

	if err := s.cache.Set(ctx, heroCacheKey, banners, heroCacheTTL); err != nil {
		s.log.Warn().Err(err).Msg("hero cache write failed")
	}
	return banners, nil
}

func (s *HeroService) Update(ctx context.Context, id string, in ports.UpdateHeroInput) (*domain.HeroBanner, error) {
	banner, err := s.banners.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Position != nil {
		banner.Position = *in.Position
	}
	if in.Title != nil {
		banner.Title = *in.Title
	}
	if in.Highlight != nil {
		banner.Highlight = *in.Highlight
	}
	if in.Description != nil {
		banner.Description = *in.Description
	}

	oldImage := ""
	if in.Image != nil {
		name := fmt.Sprintf("%s-%d", FolderHero, time.Now().UnixNano())
		url, err := s.images.Upload(ctx, in.Image.Reader, FolderHero, name)
		if err != nil {
			metrics.ImageUploadsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("%w: %s", domain.ErrImageUpload, in.Image.Filename)
		}
		metrics.ImageUploadsTotal.WithLabelValues("success").Inc()
		oldImage = banner.Image
		banner.Image = url
	}

	banner.UpdatedAt = time.Now().UTC()
	if err := s.banners.Update(ctx, banner); err != nil {
		// A failed write leaves the stored record pointing at the old image;
		// only the fresh upload is orphaned.
		if in.Image != nil {
			s.cleanup.Enqueue(ports.ImageCleanupTask{Folder: FolderHero, URL: banner.Image})
		}
		return nil, fmt.Errorf("update hero banner: %w", err)
	}

	if oldImage != "" {
		s.cleanup.Enqueue(ports.ImageCleanupTask{Folder: FolderHero, URL: oldImage})
	}
	s.invalidate(ctx)
	return banner, nil
}

func (s *HeroService) Delete(ctx context.Context, id string) error {
	banner, err := s.banners.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.banners.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete hero banner: %w", err)
	}

	s.cleanup.Enqueue(ports.ImageCleanupTask{Folder: FolderHero, URL: banner.Image})
	s.invalidate(ctx)
	return nil
}

func (s *HeroService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, heroCacheKey); err != nil {
		s.log.Warn().Err(err).Msg("hero cache invalidation failed")
	}
}
