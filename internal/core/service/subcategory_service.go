package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/egreat/storefront-api/internal/core/domain"
	"github.com/egreat/storefront-api/internal/core/ports"
)

// sampleProductCount limits the per-instance product preview in the
// cross-catalog name lookup.
const sampleProductCount = 5

// SubcategoryService implements subcategory CRUD and the cross-catalog
// product queries.
type SubcategoryService struct {
	subcategories ports.SubcategoryRepository
	products      ports.ProductRepository
	log           zerolog.Logger
}

func NewSubcategoryService(
	subcategories ports.SubcategoryRepository,
	products ports.ProductRepository,
	log zerolog.Logger,
) *SubcategoryService {
	return &SubcategoryService{subcategories: subcategories, products: products, log: log}
}

func (s *SubcategoryService) Create(ctx context.Context, in ports.CreateSubcategoryInput) (*domain.Subcategory, error) {
	if _, err := s.subcategories.FindByName(ctx, in.Name); err == nil {
		return nil, domain.ErrSubcategoryExists
	} else if !errors.Is(err, domain.ErrSubcategoryNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	sub := &domain.Subcategory{
		Name:        in.Name,
		Slug:        domain.Slugify(in.Name),
		Description: in.Description,
		IsActive:    in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.subcategories.Create(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("create subcategory: %w", err)
	}
	return created, nil
}

func (s *SubcategoryService) Get(ctx context.Context, id string) (*domain.Subcategory, error) {
	return s.subcategories.FindByID(ctx, id)
}

func (s *SubcategoryService) List(ctx context.Context, filter ports.ListFilter) (*ports.SubcategoryPage, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.subcategories.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	return &ports.SubcategoryPage{Items: items, Pagination: paginate(total, filter.Page, filter.Limit)}, nil
}

func (s *SubcategoryService) Update(ctx context.Context, id string, in ports.UpdateSubcategoryInput) (*domain.Subcategory, error) {
	sub, err := s.subcategories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != sub.Name {
		existing, err := s.subcategories.FindByName(ctx, *in.Name)
		if err == nil && existing.ID != id {
			return nil, domain.ErrSubcategoryExists
		}
		if err != nil && !errors.Is(err, domain.ErrSubcategoryNotFound) {
			return nil, err
		}
		sub.Name = *in.Name
		sub.Slug = domain.Slugify(*in.Name)
	}
	if in.Description != nil {
		sub.Description = *in.Description
	}
	if in.IsActive != nil {
		sub.IsActive = *in.IsActive
	}

	sub.UpdatedAt = time.Now().UTC()
	if err := s.subcategories.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("update subcategory: %w", err)
	}
	return sub, nil
}

// Delete refuses while products still reference the subcategory.
func (s *SubcategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.subcategories.FindByID(ctx, id); err != nil {
		return err
	}

	inUse, err := s.products.CountBySubcategory(ctx, id)
	if err != nil {
		return fmt.Errorf("delete subcategory: count products: %w", err)
	}
	if inUse > 0 {
		return fmt.Errorf("%w: %d product(s)", domain.ErrSubcategoryInUse, inUse)
	}

	return s.subcategories.Delete(ctx, id)
}

// Products lists the products attached to the subcategory, honouring the
// standard product filters.
func (s *SubcategoryService) Products(ctx context.Context, id string, filter ports.ListProductsFilter) (*domain.Subcategory, *ports.ProductPage, error) {
	sub, err := s.subcategories.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	filter.SubcategoryID = sub.ID
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("list subcategory products: %w", err)
	}
	return sub, &ports.ProductPage{Items: items, Pagination: paginate(total, filter.Page, filter.Limit)}, nil
}

// InstancesByName resolves every subcategory sharing a name, each with its
// product count and a small product sample.
func (s *SubcategoryService) InstancesByName(ctx context.Context, name string) ([]ports.SubcategoryInstance, error) {
	subs, err := s.subcategories.FindAllByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, domain.ErrSubcategoryNotFound
	}

	instances := make([]ports.SubcategoryInstance, 0, len(subs))
	for _, sub := range subs {
		count, err := s.products.CountBySubcategory(ctx, sub.ID)
		if err != nil {
			return nil, fmt.Errorf("count subcategory products: %w", err)
		}

		sample, _, err := s.products.List(ctx, ports.ListProductsFilter{
			SubcategoryID: sub.ID,
			Page:          1,
			Limit:         sampleProductCount,
		})
		if err != nil {
			return nil, fmt.Errorf("sample subcategory products: %w", err)
		}

		instances = append(instances, ports.SubcategoryInstance{
			Subcategory:    sub,
			ProductCount:   count,
			SampleProducts: sample,
		})
	}
	return instances, nil
}
