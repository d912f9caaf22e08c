package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/egreat/storefront-api/internal/core/ports"
)

// SubcategoryHandler handles HTTP requests for subcategory operations.
// Subcategories carry no images, so writes are plain JSON.
type SubcategoryHandler struct {
	service ports.SubcategoryService
}

func NewSubcategoryHandler(service ports.SubcategoryService) *SubcategoryHandler {
	return &SubcategoryHandler{service: service}
}

type createSubcategoryRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description" validate:"required"`
	IsActive    *bool  `json:"is_active"`
}

type updateSubcategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type subcategoryInstanceResponse struct {
	Subcategory    any   `json:"subcategory"`
	ProductCount   int64 `json:"product_count"`
	SampleProducts any   `json:"sample_products"`
}

// Create handles POST /api/v1/subcategory (admin only).
//
// @Summary      Create a subcategory
// @Tags         subcategories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSubcategoryRequest  true  "Subcategory details"
// @Success      201   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/v1/subcategory [post]
func (h *SubcategoryHandler) Create(c echo.Context) error {
	var req createSubcategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	sub, err := h.service.Create(c.Request().Context(), ports.CreateSubcategoryInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    isActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, success(echo.Map{"subcategory": sub}))
}

// Get handles GET /api/v1/subcategory/:id (public).
//
// @Summary      Get a subcategory
// @Tags         subcategories
// @Produce      json
// @Param        id  path  string  true  "Subcategory ID"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/subcategory/{id} [get]
func (h *SubcategoryHandler) Get(c echo.Context) error {
	sub, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(echo.Map{"subcategory": sub}))
}

// List handles GET /api/v1/subcategory (public, paginated).
//
// @Summary      List subcategories
// @Tags         subcategories
// @Produce      json
// @Param        query  query  string   false  "Name search"
// @Param        page   query  integer  false  "Page (1-based)"
// @Param        limit  query  integer  false  "Page size (max 100)"
// @Success      200  {object}  successResponse
// @Router       /api/v1/subcategory [get]
func (h *SubcategoryHandler) List(c echo.Context) error {
	var q listQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	page, err := h.service.List(c.Request().Context(), ports.ListFilter{Query: q.Query, Page: q.Page, Limit: q.Limit})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successPage(echo.Map{"subcategories": page.Items}, page.Pagination))
}

// Update handles PATCH /api/v1/subcategory/:id (admin only).
//
// @Summary      Update a subcategory
// @Tags         subcategories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Subcategory ID"
// @Param        body  body      updateSubcategoryRequest  true  "Fields to change"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/subcategory/{id} [patch]
func (h *SubcategoryHandler) Update(c echo.Context) error {
	var req updateSubcategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == nil && req.Description == nil && req.IsActive == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one field must be provided for update")
	}

	sub, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateSubcategoryInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(echo.Map{"subcategory": sub}))
}

// Delete handles DELETE /api/v1/subcategory/:id (admin only). Refused
// while products still reference the subcategory.
//
// @Summary      Delete a subcategory
// @Tags         subcategories
// @Security     BearerAuth
// @Param        id  path  string  true  "Subcategory ID"
// @Success      204  "deleted"
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/subcategory/{id} [delete]
func (h *SubcategoryHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Products handles GET /api/v1/subcategory/:id/products (public).
//
// @Summary      List products in a subcategory
// @Tags         subcategories
// @Produce      json
// @Param        id     path   string   true   "Subcategory ID"
// @Param        page   query  integer  false  "Page (1-based)"
// @Param        limit  query  integer  false  "Page size (max 100)"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/subcategory/{id}/products [get]
func (h *SubcategoryHandler) Products(c echo.Context) error {
	var q listProductsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sub, page, err := h.service.Products(c.Request().Context(), c.Param("id"), ports.ListProductsFilter{
		Query:      q.Query,
		CategoryID: q.Category,
		InStock:    q.InStock,
		Featured:   q.Featured,
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
		Page:       q.Page,
		Limit:      q.Limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, successPage(echo.Map{
		"subcategory": sub,
		"products":    page.Items,
	}, page.Pagination))
}

// InstancesByName handles GET /api/v1/subcategory/name/:name (public).
//
// @Summary      Find subcategories by name across the catalog
// @Tags         subcategories
// @Produce      json
// @Param        name  path  string  true  "Subcategory name"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/subcategory/name/{name} [get]
func (h *SubcategoryHandler) InstancesByName(c echo.Context) error {
	name := c.Param("name")
	instances, err := h.service.InstancesByName(c.Request().Context(), name)
	if err != nil {
		return err
	}

	out := make([]subcategoryInstanceResponse, 0, len(instances))
	for _, inst := range instances {
		out = append(out, subcategoryInstanceResponse{
			Subcategory:    inst.Subcategory,
			ProductCount:   inst.ProductCount,
			SampleProducts: inst.SampleProducts,
		})
	}
	return c.JSON(http.StatusOK, success(echo.Map{
		"subcategory_name": name,
		"instances":        out,
	}))
}
