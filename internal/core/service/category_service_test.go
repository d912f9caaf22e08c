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

func newCategoryFixture() (*CategoryService, *stubCategoryRepo, *stubProductRepo, *stubCleanup) {
	categories := newStubCategoryRepo()
	products := newStubProductRepo()
	cleanup := &stubCleanup{}
	svc := NewCategoryService(categories, products, &stubImageStore{}, cleanup, zerolog.Nop())
	return svc, categories, products, cleanup
}

func TestCategoryService_Create_SetsSlug(t *testing.T) {
	svc, _, _, _ := newCategoryFixture()

	created, err := svc.Create(context.Background(), ports.CreateCategoryInput{
		Name:        "Gaming Laptops",
		Description: "High-end machines",
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Slug != "gaming-laptops" {
		t.Fatalf("expected slug gaming-laptops, got %s", created.Slug)
	}
}

func TestCategoryService_Create_DuplicateName(t *testing.T) {
	svc, _, _, _ := newCategoryFixture()

	if _, err := svc.Create(context.Background(), ports.CreateCategoryInput{Name: "Laptops", Description: "d"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(context.Background(), ports.CreateCategoryInput{Name: "Laptops", Description: "d"})
	if !errors.Is(err, domain.ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
}

func TestCategoryService_Create_UploadsCover(t *testing.T) {
	svc, _, _, _ := newCategoryFixture()

	created, err := svc.Create(context.Background(), ports.CreateCategoryInput{
		Name:        "Laptops",
		Description: "d",
		CoverImage:  &ports.ImageUpload{Filename: "cover.png", Reader: strings.NewReader("img")},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.CoverImage == "" {
		t.Fatalf("expected cover image URL")
	}
}

func TestCategoryService_Update_RenameRegeneratesSlugAndChecksConflict(t *testing.T) {
	svc, _, _, _ := newCategoryFixture()

	first, _ := svc.Create(context.Background(), ports.CreateCategoryInput{Name: "Laptops", Description: "d"})
	_, _ = svc.Create(context.Background(), ports.CreateCategoryInput{Name: "Phones", Description: "d"})

	conflict := "Phones"
	if _, err := svc.Update(context.Background(), first.ID, ports.UpdateCategoryInput{Name: &conflict}); !errors.Is(err, domain.ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists on rename conflict, got %v", err)
	}

	rename := "Gaming Laptops"
	updated, err := svc.Update(context.Background(), first.ID, ports.UpdateCategoryInput{Name: &rename})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != "gaming-laptops" {
		t.Fatalf("slug not regenerated: %s", updated.Slug)
	}
}

func TestCategoryService_Update_ReplacedCoverIsCleanedUp(t *testing.T) {
	svc, _, _, cleanup := newCategoryFixture()

	created, err := svc.Create(context.Background(), ports.CreateCategoryInput{
		Name:        "Laptops",
		Description: "d",
		CoverImage:  &ports.ImageUpload{Filename: "old.png", Reader: strings.NewReader("old")},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	oldCover := created.CoverImage

	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateCategoryInput{
		CoverImage: &ports.ImageUpload{Filename: "new.png", Reader: strings.NewReader("new")},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.CoverImage == oldCover {
		t.Fatalf("cover not replaced")
	}
	if got := cleanup.urls(); len(got) != 1 || got[0] != oldCover {
		t.Fatalf("expected cleanup of old cover, got %v", got)
	}
}

func TestCategoryService_Update_FailedWriteKeepsStoredCover(t *testing.T) {
	svc, categories, _, cleanup := newCategoryFixture()

	created, err := svc.Create(context.Background(), ports.CreateCategoryInput{
		Name:        "Laptops",
		Description: "d",
		CoverImage:  &ports.ImageUpload{Filename: "old.png", Reader: strings.NewReader("old")},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	oldCover := created.CoverImage

	categories.updateErr = errors.New("write failed")
	_, err = svc.Update(context.Background(), created.ID, ports.UpdateCategoryInput{
		CoverImage: &ports.ImageUpload{Filename: "new.png", Reader: strings.NewReader("new")},
	})
	if err == nil {
		t.Fatalf("expected update to fail")
	}

	// The stored record still references the old cover; only the fresh
	// upload may be scheduled for deletion.
	urls := cleanup.urls()
	for _, url := range urls {
		if url == oldCover {
			t.Fatalf("still-referenced cover scheduled for deletion")
		}
	}
	if len(urls) != 1 {
		t.Fatalf("expected only the orphaned upload scheduled, got %v", urls)
	}
}

func TestCategoryService_Delete_RefusedWhileInUse(t *testing.T) {
	svc, _, products, _ := newCategoryFixture()

	created, err := svc.Create(context.Background(), ports.CreateCategoryInput{Name: "Laptops", Description: "d"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := products.Create(context.Background(), &domain.Product{Name: "p", CategoryID: created.ID}); err != nil {
		t.Fatalf("seed product: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}

	if err := products.Delete(context.Background(), "prod-1"); err != nil {
		t.Fatalf("remove product: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete after detach: %v", err)
	}
}
