package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/egreat/storefront-api/internal/api/metrics"
	"github.com/egreat/storefront-api/internal/core/domain"
	"github.com/egreat/storefront-api/internal/core/ports"
)

// CategoryService implements category CRUD with a referential delete guard.
type CategoryService struct {
	categories ports.CategoryRepository
	products   ports.ProductRepository
	images     ports.ImageStore
	cleanup    ports.ImageCleanup
	log        zerolog.Logger
}

func NewCategoryService(
	categories ports.CategoryRepository,
	products ports.ProductRepository,
	images ports.ImageStore,
	cleanup ports.ImageCleanup,
	log zerolog.Logger,
) *CategoryService {
	return &CategoryService{
		categories: categories,
		products:   products,
		images:     images,
		cleanup:    cleanup,
		log:        log,
	}
}

func (s *CategoryService) Create(ctx context.Context, in ports.CreateCategoryInput) (*domain.Category, error) {
	if _, err := s.categories.FindByName(ctx, in.Name); err == nil {
		return nil, domain.ErrCategoryExists
	} else if !errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, err
	}

	coverURL := ""
	if in.CoverImage != nil {
		name := fmt.Sprintf("%s-%d", FolderCategory, time.Now().UnixNano())
		url, err := s.images.Upload(ctx, in.CoverImage.Reader, FolderCategory, name)
		if err != nil {
			metrics.ImageUploadsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("%w: %s", domain.ErrImageUpload, in.CoverImage.Filename)
		}
		metrics.ImageUploadsTotal.WithLabelValues("success").Inc()
		coverURL = url
	}

	now := time.Now().UTC()
	category := &domain.Category{
		Name:        in.Name,
		Slug:        domain.Slugify(in.Name),
		Description: in.Description,
		CoverImage:  coverURL,
		IsActive:    in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.categories.Create(ctx, category)
	if err != nil {
		if coverURL != "" {
			s.cleanup.Enqueue(ports.ImageCleanupTask{Folder: FolderCategory, URL: coverURL})
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.log.Info().Str("category_id", created.ID).Str("slug", created.Slug).Msg("category created")
	return created, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.categories.FindByID(ctx, id)
}

func (s *CategoryService) List(ctx context.Context, filter ports.ListFilter) (*ports.CategoryPage, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.categories.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return &ports.CategoryPage{Items: items, Pagination: paginate(total, filter.Page, filter.Limit)}, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, in ports.UpdateCategoryInput) (*domain.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != category.Name {
		existing, err := s.categories.FindByName(ctx, *in.Name)
		if err == nil && existing.ID != id {
			return nil, domain.ErrCategoryExists
		}
		if err != nil && !errors.Is(err, domain.ErrCategoryNotFound) {
			return nil, err
		}
		category.Name = *in.Name
		category.Slug = domain.Slugify(*in.Name)
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}

	oldCover := ""
	if in.CoverImage != nil {
		name := fmt.Sprintf("%s-%d", FolderCategory, time.Now().UnixNano())
		url, err := s.images.Upload(ctx, in.CoverImage.Reader, FolderCategory, name)
		if err != nil {
			metrics.ImageUploadsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("%w: %s", domain.ErrImageUpload, in.CoverImage.Filename)
		}
		metrics.ImageUploadsTotal.WithLabelValues("success").Inc()
		oldCover = category.CoverImage
		category.CoverImage = url
	}

	category.UpdatedAt = time.Now().UTC()
	if err := s.categories.Update(ctx, category); err != nil {
		// The stored record still references the old cover; only the fresh
		// upload is orphaned.
		if in.CoverImage != nil {
			s.cleanup.Enqueue(ports.ImageCleanupTask{Folder: FolderCategory, URL: category.CoverImage})
		}
		return nil, fmt.Errorf("update category: %w", err)
	}

	if oldCover != "" {
		s.cleanup.Enqueue(ports.ImageCleanupTask{Folder: FolderCategory, URL: oldCover})
	}
	return category, nil
}

// Delete refuses while products still reference the category.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return err
	}

	inUse, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("delete category: count products: %w", err)
	}
	if inUse > 0 {
		return fmt.Errorf("%w: %d product(s)", domain.ErrCategoryInUse, inUse)
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	if category.CoverImage != "" {
		s.cleanup.Enqueue(ports.ImageCleanupTask{Folder: FolderCategory, URL: category.CoverImage})
	}
	return nil
}
