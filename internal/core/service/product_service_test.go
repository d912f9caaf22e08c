package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/egreat/storefront-api/internal/core/domain"
	"github.com/egreat/storefront-api/internal/core/ports"
)

func newProductFixture() (*ProductService, *stubProductRepo, *stubCategoryRepo, *stubSubcategoryRepo, *stubImageStore, *stubCleanup) {
	products := newStubProductRepo()
	categories := newStubCategoryRepo()
	subcategories := newStubSubcategoryRepo()
	images := &stubImageStore{}
	cleanup := &stubCleanup{}
	svc := NewProductService(products, categories, subcategories, images, cleanup, zerolog.Nop())
	return svc, products, categories, subcategories, images, cleanup
}

func seedCategory(t *testing.T, categories *stubCategoryRepo, name string) *domain.Category {
	t.Helper()
	c, err := categories.Create(context.Background(), &domain.Category{Name: name, Slug: domain.Slugify(name), IsActive: true})
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return c
}

func TestProductService_Create_ResolvesCategoryByName(t *testing.T) {
	svc, products, categories, _, _, _ := newProductFixture()
	cat := seedCategory(t, categories, "Laptops")

	created, err := svc.Create(context.Background(), ports.CreateProductInput{
		Name:        "ThinkBook 14",
		Description: "A sturdy workhorse",
		Price:       899.99,
		Category:    "Laptops", // by name, not ID
		InStock:     true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.CategoryID != cat.ID {
		t.Fatalf("expected category %s, got %s", cat.ID, created.CategoryID)
	}
	if _, ok := products.products[created.ID]; !ok {
		t.Fatalf("product not persisted")
	}
}

func TestProductService_Create_UnknownCategory(t *testing.T) {
	svc, _, _, _, _, _ := newProductFixture()

	_, err := svc.Create(context.Background(), ports.CreateProductInput{
		Name:     "Orphan",
		Category: "nope",
	})
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestProductService_Create_UploadsImages(t *testing.T) {
	svc, _, categories, _, images, _ := newProductFixture()
	seedCategory(t, categories, "Laptops")

	created, err := svc.Create(context.Background(), ports.CreateProductInput{
		Name:     "ThinkBook 14",
		Category: "Laptops",
		Images: []ports.ImageUpload{
			{Filename: "front.png", Reader: strings.NewReader("img1")},
			{Filename: "back.png", Reader: strings.NewReader("img2")},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(created.Images) != 2 {
		t.Fatalf("expected 2 image URLs, got %d", len(created.Images))
	}
	if images.uploads != 2 {
		t.Fatalf("expected 2 uploads, got %d", images.uploads)
	}
}

func TestProductService_Create_FailedUploadCleansUpEarlierOnes(t *testing.T) {
	svc, products, categories, _, images, cleanup := newProductFixture()
	seedCategory(t, categories, "Laptops")
	images.failAfter = 1 // second upload fails

	_, err := svc.Create(context.Background(), ports.CreateProductInput{
		Name:     "ThinkBook 14",
		Category: "Laptops",
		Images: []ports.ImageUpload{
			{Filename: "front.png", Reader: strings.NewReader("img1")},
			{Filename: "back.png", Reader: strings.NewReader("img2")},
		},
	})
	if !errors.Is(err, domain.ErrImageUpload) {
		t.Fatalf("expected ErrImageUpload, got %v", err)
	}
	if len(products.products) != 0 {
		t.Fatalf("product should not be persisted on upload failure")
	}
	if len(cleanup.urls()) != 1 {
		t.Fatalf("expected 1 cleanup task for the uploaded image, got %d", len(cleanup.urls()))
	}
}

func TestProductService_Update_AppendsImages(t *testing.T) {
	svc, _, categories, _, _, _ := newProductFixture()
	seedCategory(t, categories, "Laptops")

	created, err := svc.Create(context.Background(), ports.CreateProductInput{
		Name:     "ThinkBook 14",
		Category: "Laptops",
		Images:   []ports.ImageUpload{{Filename: "a.png", Reader: strings.NewReader("a")}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateProductInput{
		Images: []ports.ImageUpload{{Filename: "b.png", Reader: strings.NewReader("b")}},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.Images) != 2 {
		t.Fatalf("expected appended images, got %v", updated.Images)
	}
	if updated.Images[0] != created.Images[0] {
		t.Fatalf("existing image was replaced")
	}
}

func TestProductService_Update_FailedWriteCleansNewUploads(t *testing.T) {
	svc, products, categories, _, _, cleanup := newProductFixture()
	seedCategory(t, categories, "Laptops")

	created, err := svc.Create(context.Background(), ports.CreateProductInput{
		Name:     "ThinkBook 14",
		Category: "Laptops",
		Images:   []ports.ImageUpload{{Filename: "a.png", Reader: strings.NewReader("a")}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	products.updateErr = errors.New("write failed")
	_, err = svc.Update(context.Background(), created.ID, ports.UpdateProductInput{
		Images: []ports.ImageUpload{{Filename: "b.png", Reader: strings.NewReader("b")}},
	})
	if err == nil {
		t.Fatalf("expected update to fail")
	}

	// The new upload never made it into the stored record, so it must be
	// scheduled for cleanup; the original image stays referenced and alone.
	urls := cleanup.urls()
	if len(urls) != 1 {
		t.Fatalf("expected 1 cleanup task for the orphaned upload, got %v", urls)
	}
	if urls[0] == created.Images[0] {
		t.Fatalf("still-referenced image scheduled for deletion")
	}
}

func TestProductService_Delete_SchedulesImageCleanup(t *testing.T) {
	svc, _, categories, _, _, cleanup := newProductFixture()
	seedCategory(t, categories, "Laptops")

	created, err := svc.Create(context.Background(), ports.CreateProductInput{
		Name:     "ThinkBook 14",
		Category: "Laptops",
		Images: []ports.ImageUpload{
			{Filename: "a.png", Reader: strings.NewReader("a")},
			{Filename: "b.png", Reader: strings.NewReader("b")},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := len(cleanup.urls()); got != 2 {
		t.Fatalf("expected 2 cleanup tasks, got %d", got)
	}
}

func TestProductService_DeleteImage(t *testing.T) {
	svc, _, categories, _, _, cleanup := newProductFixture()
	seedCategory(t, categories, "Laptops")

	created, err := svc.Create(context.Background(), ports.CreateProductInput{
		Name:     "ThinkBook 14",
		Category: "Laptops",
		Images:   []ports.ImageUpload{{Filename: "a.png", Reader: strings.NewReader("a")}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	url := created.Images[0]

	if _, err := svc.DeleteImage(context.Background(), created.ID, "https://img.example.com/unknown.png"); !errors.Is(err, domain.ErrImageNotFound) {
		t.Fatalf("expected ErrImageNotFound, got %v", err)
	}

	updated, err := svc.DeleteImage(context.Background(), created.ID, url)
	if err != nil {
		t.Fatalf("delete image: %v", err)
	}
	if len(updated.Images) != 0 {
		t.Fatalf("image not detached: %v", updated.Images)
	}
	if got := cleanup.urls(); len(got) != 1 || got[0] != url {
		t.Fatalf("expected cleanup of %s, got %v", url, got)
	}
}

func TestProductService_ListFeatured_ForcesFilter(t *testing.T) {
	svc, products, categories, _, _, _ := newProductFixture()
	cat := seedCategory(t, categories, "Laptops")

	for i, featured := range []bool{true, false, true} {
		_, err := products.Create(context.Background(), &domain.Product{
			Name:       "p",
			CategoryID: cat.ID,
			Featured:   featured,
			Rating:     float64(i),
		})
		if err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}

	page, err := svc.ListFeatured(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("list featured: %v", err)
	}
	if page.Pagination.Total != 2 {
		t.Fatalf("expected 2 featured products, got %d", page.Pagination.Total)
	}
	for _, p := range page.Items {
		if !p.Featured {
			t.Fatalf("non-featured product in result: %+v", p)
		}
	}
}
