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

// Cloud storage folders, one per asset kind.
const (
	FolderProduct  = "product"
	FolderCategory = "category"
	FolderHero     = "hero"
)

// ProductService implements product CRUD and image orchestration.
type ProductService struct {
	products      ports.ProductRepository
	categories    ports.CategoryRepository
	subcategories ports.SubcategoryRepository
	images        ports.ImageStore
	cleanup       ports.ImageCleanup
	log           zerolog.Logger
}

func NewProductService(
	products ports.ProductRepository,
	categories ports.CategoryRepository,
	subcategories ports.SubcategoryRepository,
	images ports.ImageStore,
	cleanup ports.ImageCleanup,
	log zerolog.Logger,
) *ProductService {
	return &ProductService{
		products:      products,
		categories:    categories,
		subcategories: subcategories,
		images:        images,
		cleanup:       cleanup,
		log:           log,
	}
}

// Create validates references, uploads the product images, and persists the
// product. Any failed upload aborts the create; images that did make it to
// the cloud are scheduled for cleanup so nothing is orphaned.
func (s *ProductService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	category, err := s.resolveCategory(ctx, in.Category)
	if err != nil {
		return nil, err
	}

	subcategoryID := ""
	if in.Subcategory != "" {
		sub, err := s.subcategories.FindByID(ctx, in.Subcategory)
		if err != nil {
			return nil, err
		}
		subcategoryID = sub.ID
	}

	urls, err := s.uploadAll(ctx, in.Images, FolderProduct)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		CategoryID:    category.ID,
		SubcategoryID: subcategoryID,
		Images:        urls,
		Specs:         in.Specs,
		InStock:       in.InStock,
		Featured:      in.Featured,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		s.scheduleCleanup(FolderProduct, urls)
		return nil, fmt.Errorf("create product: %w", err)
	}

	metrics.ProductsCreatedTotal.Inc()
	s.log.Info().Str("product_id", created.ID).Str("category_id", category.ID).Msg("product created")
	return created, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context, filter ports.ListProductsFilter) (*ports.ProductPage, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return &ports.ProductPage{Items: items, Pagination: paginate(total, filter.Page, filter.Limit)}, nil
}

func (s *ProductService) ListFeatured(ctx context.Context, page, limit int) (*ports.ProductPage, error) {
	featured := true
	return s.List(ctx, ports.ListProductsFilter{Featured: &featured, Page: page, Limit: limit})
}

// Update applies partial mutations; newly uploaded images are appended to
// the existing list.
func (s *ProductService) Update(ctx context.Context, id string, in ports.UpdateProductInput) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Category != nil {
		category, err := s.resolveCategory(ctx, *in.Category)
		if err != nil {
			return nil, err
		}
		product.CategoryID = category.ID
	}
	if in.Subcategory != nil {
		if *in.Subcategory == "" {
			product.SubcategoryID = ""
		} else {
			sub, err := s.subcategories.FindByID(ctx, *in.Subcategory)
			if err != nil {
				return nil, err
			}
			product.SubcategoryID = sub.ID
		}
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Specs != nil {
		product.Specs = in.Specs
	}
	if in.InStock != nil {
		product.InStock = *in.InStock
	}
	if in.Featured != nil {
		product.Featured = *in.Featured
	}

	var newURLs []string
	if len(in.Images) > 0 {
		urls, err := s.uploadAll(ctx, in.Images, FolderProduct)
		if err != nil {
			return nil, err
		}
		newURLs = urls
		product.Images = append(product.Images, urls...)
	}

	product.UpdatedAt = time.Now().UTC()
	if err := s.products.Update(ctx, product); err != nil {
		// The stored record never saw the new uploads; schedule them for
		// cleanup so they are not orphaned in the cloud.
		s.scheduleCleanup(FolderProduct, newURLs)
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

// Delete removes the product and schedules its images for background cloud
// deletion. Cleanup failures never surface to the caller.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.scheduleCleanup(FolderProduct, product.Images)
	s.log.Info().Str("product_id", id).Int("images", len(product.Images)).Msg("product deleted")
	return nil
}

// DeleteImage detaches one image URL from the product and schedules the
// remote copy for deletion.
func (s *ProductService) DeleteImage(ctx context.Context, id, imageURL string) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !product.RemoveImage(imageURL) {
		return nil, domain.ErrImageNotFound
	}

	product.UpdatedAt = time.Now().UTC()
	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("delete product image: %w", err)
	}

	s.scheduleCleanup(FolderProduct, []string{imageURL})
	return product, nil
}

// resolveCategory accepts either a category ID or an exact name.
func (s *ProductService) resolveCategory(ctx context.Context, ref string) (*domain.Category, error) {
	category, err := s.categories.FindByID(ctx, ref)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, err
	}
	return s.categories.FindByName(ctx, ref)
}

// uploadAll pushes every image to the cloud store. On the first failure the
// already-uploaded images are scheduled for cleanup and the whole batch is
// reported as failed.
func (s *ProductService) uploadAll(ctx context.Context, images []ports.ImageUpload, folder string) ([]string, error) {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		name := fmt.Sprintf("%s-%d", folder, time.Now().UnixNano())
		url, err := s.images.Upload(ctx, img.Reader, folder, name)
		if err != nil {
			metrics.ImageUploadsTotal.WithLabelValues("error").Inc()
			s.log.Error().Err(err).Str("filename", img.Filename).Msg("image upload failed")
			s.scheduleCleanup(folder, urls)
			return nil, fmt.Errorf("%w: %s", domain.ErrImageUpload, img.Filename)
		}
		metrics.ImageUploadsTotal.WithLabelValues("success").Inc()
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *ProductService) scheduleCleanup(folder string, urls []string) {
	for _, url := range urls {
		s.cleanup.Enqueue(ports.ImageCleanupTask{Folder: folder, URL: url})
	}
}
