package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/egreat/storefront-api/internal/core/domain"
	"github.com/egreat/storefront-api/internal/core/ports"
)

// In-memory fakes shared by the service tests.

type stubProductRepo struct {
	products  map[string]*domain.Product
	nextID    int
	updateErr error // forced failure for the next Update calls
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.nextID++
	created := *p
	created.ID = fmt.Sprintf("prod-%d", r.nextID)
	stored := created
	r.products[created.ID] = &stored
	return &created, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	clone.Images = append([]string(nil), p.Images...)
	return &clone, nil
}

func (r *stubProductRepo) List(_ context.Context, filter ports.ListProductsFilter) ([]*domain.Product, int64, error) {
	var matched []*domain.Product
	for _, p := range r.products {
		if filter.SubcategoryID != "" && p.SubcategoryID != filter.SubcategoryID {
			continue
		}
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		if filter.Featured != nil && p.Featured != *filter.Featured {
			continue
		}
		clone := *p
		matched = append(matched, &clone)
	}
	total := int64(len(matched))
	if len(matched) > filter.Limit && filter.Limit > 0 {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) CountByCategory(_ context.Context, categoryID string) (int64, error) {
	var n int64
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *stubProductRepo) CountBySubcategory(_ context.Context, subcategoryID string) (int64, error) {
	var n int64
	for _, p := range r.products {
		if p.SubcategoryID == subcategoryID {
			n++
		}
	}
	return n, nil
}

type stubCategoryRepo struct {
	categories map[string]*domain.Category
	nextID     int
	updateErr  error
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[string]*domain.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) (*domain.Category, error) {
	r.nextID++
	created := *c
	created.ID = fmt.Sprintf("cat-%d", r.nextID)
	stored := created
	r.categories[created.ID] = &stored
	return &created, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*domain.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *stubCategoryRepo) List(_ context.Context, _ ports.ListFilter) ([]*domain.Category, int64, error) {
	var out []*domain.Category
	for _, c := range r.categories {
		clone := *c
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *domain.Category) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.categories[c.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	clone := *c
	r.categories[c.ID] = &clone
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

type stubSubcategoryRepo struct {
	subcategories map[string]*domain.Subcategory
	nextID        int
}

func newStubSubcategoryRepo() *stubSubcategoryRepo {
	return &stubSubcategoryRepo{subcategories: make(map[string]*domain.Subcategory)}
}

func (r *stubSubcategoryRepo) Create(_ context.Context, s *domain.Subcategory) (*domain.Subcategory, error) {
	r.nextID++
	created := *s
	created.ID = fmt.Sprintf("sub-%d", r.nextID)
	stored := created
	r.subcategories[created.ID] = &stored
	return &created, nil
}

func (r *stubSubcategoryRepo) FindByID(_ context.Context, id string) (*domain.Subcategory, error) {
	s, ok := r.subcategories[id]
	if !ok {
		return nil, domain.ErrSubcategoryNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSubcategoryRepo) FindByName(_ context.Context, name string) (*domain.Subcategory, error) {
	for _, s := range r.subcategories {
		if s.Name == name {
			clone := *s
			return &clone, nil
		}
	}
	return nil, domain.ErrSubcategoryNotFound
}

func (r *stubSubcategoryRepo) FindAllByName(_ context.Context, name string) ([]*domain.Subcategory, error) {
	var out []*domain.Subcategory
	for _, s := range r.subcategories {
		if s.Name == name {
			clone := *s
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubSubcategoryRepo) List(_ context.Context, _ ports.ListFilter) ([]*domain.Subcategory, int64, error) {
	var out []*domain.Subcategory
	for _, s := range r.subcategories {
		clone := *s
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubSubcategoryRepo) Update(_ context.Context, s *domain.Subcategory) error {
	if _, ok := r.subcategories[s.ID]; !ok {
		return domain.ErrSubcategoryNotFound
	}
	clone := *s
	r.subcategories[s.ID] = &clone
	return nil
}

func (r *stubSubcategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.subcategories[id]; !ok {
		return domain.ErrSubcategoryNotFound
	}
	delete(r.subcategories, id)
	return nil
}

// stubImageStore records uploads and can be made to fail after a number of
// successful uploads.
type stubImageStore struct {
	uploads   int
	failAfter int // fail uploads once this many have succeeded; 0 = never
	deleted   []string
}

func (s *stubImageStore) Upload(_ context.Context, _ io.Reader, folder, name string) (string, error) {
	if s.failAfter > 0 && s.uploads >= s.failAfter {
		return "", fmt.Errorf("upload rejected")
	}
	s.uploads++
	return fmt.Sprintf("https://img.example.com/%s/%s.png", folder, name), nil
}

func (s *stubImageStore) Delete(_ context.Context, _, url string) error {
	s.deleted = append(s.deleted, url)
	return nil
}

// stubCleanup records enqueued cleanup tasks.
type stubCleanup struct {
	mu    sync.Mutex
	tasks []ports.ImageCleanupTask
}

func (s *stubCleanup) Enqueue(task ports.ImageCleanupTask) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
}

func (s *stubCleanup) urls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t.URL)
	}
	return out
}

// stubCache is an in-memory Cache storing values directly.
type stubCache struct {
	entries map[string]any
	hits    int
	sets    int
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]any)}
}

func (c *stubCache) Get(_ context.Context, key string, dest any) (bool, error) {
	v, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	c.hits++
	switch d := dest.(type) {
	case *[]*domain.HeroBanner:
		*d = v.([]*domain.HeroBanner)
	case *domain.SiteSettings:
		*d = v.(domain.SiteSettings)
	default:
		return false, fmt.Errorf("unsupported cache dest %T", dest)
	}
	return true, nil
}

func (c *stubCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.sets++
	switch v := value.(type) {
	case []*domain.HeroBanner:
		c.entries[key] = v
	case *domain.SiteSettings:
		c.entries[key] = *v
	case domain.SiteSettings:
		c.entries[key] = v
	default:
		return fmt.Errorf("unsupported cache value %T", value)
	}
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, key string) error {
	delete(c.entries, key)
	return nil
}
