package service

import "github.com/egreat/storefront-api/internal/core/ports"

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// normalizePage clamps page/limit to sane bounds.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// paginate builds the pagination envelope for one page of total results.
func paginate(total int64, page, limit int) ports.Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return ports.Pagination{
		Total:           total,
		TotalPages:      totalPages,
		CurrentPage:     page,
		Limit:           limit,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}
