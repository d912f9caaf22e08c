package handler

import "github.com/egreat/storefront-api/internal/core/ports"

// successResponse is the standard success envelope: data holds the named
// resource(s), pagination is present on list responses only.
type successResponse struct {
	Status     string              `json:"status"`
	Data       any                 `json:"data,omitempty"`
	Pagination *paginationResponse `json:"pagination,omitempty"`
}

// errorResponse documents the error envelope for swagger; the actual
// rendering happens in the centralized error handler.
type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type paginationResponse struct {
	Total           int64 `json:"total"`
	TotalPages      int   `json:"total_pages"`
	CurrentPage     int   `json:"current_page"`
	Limit           int   `json:"limit"`
	HasNextPage     bool  `json:"has_next_page"`
	HasPreviousPage bool  `json:"has_previous_page"`
}

func toPagination(p ports.Pagination) *paginationResponse {
	return &paginationResponse{
		Total:           p.Total,
		TotalPages:      p.TotalPages,
		CurrentPage:     p.CurrentPage,
		Limit:           p.Limit,
		HasNextPage:     p.HasNextPage,
		HasPreviousPage: p.HasPreviousPage,
	}
}

func success(data any) successResponse {
	return successResponse{Status: "success", Data: data}
}

func successPage(data any, p ports.Pagination) successResponse {
	return successResponse{Status: "success", Data: data, Pagination: toPagination(p)}
}
