package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/egreat/storefront-api/internal/core/ports"
)

// CategoryHandler handles HTTP requests for category operations.
type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// createCategoryRequest is populated from multipart form fields; the cover
// image rides in the same request.
type createCategoryRequest struct {
	Name        string `validate:"required"`
	Description string `validate:"required"`
	IsActive    bool
}

type listQuery struct {
	Query string `query:"query"`
	Page  int    `query:"page"  validate:"omitempty,min=1"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// Create handles POST /api/v1/category (admin only, multipart).
//
// @Summary      Create a category
// @Tags         categories
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name         formData  string  true   "Category name"
// @Param        description  formData  string  true   "Description"
// @Param        cover_image  formData  file    false  "Cover image"
// @Success      201  {object}  successResponse
// @Failure      400  {object}  errorResponse
// @Router       /api/v1/category [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	req := createCategoryRequest{
		Name:        values.Get("name"),
		Description: values.Get("description"),
		IsActive:    true,
	}
	if raw := values.Get("is_active"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "is_active must be a boolean")
		}
		req.IsActive = b
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cover, release, err := formImage(c, "cover_image")
	if err != nil {
		return err
	}
	defer release()

	category, err := h.service.Create(c.Request().Context(), ports.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
		CoverImage:  cover,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, success(echo.Map{"category": category}))
}

// Get handles GET /api/v1/category/:id (public).
//
// @Summary      Get a category
// @Tags         categories
// @Produce      json
// @Param        id  path  string  true  "Category ID"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/category/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	category, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(echo.Map{"category": category}))
}

// List handles GET /api/v1/category (public, paginated).
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Param        query  query  string   false  "Name search"
// @Param        page   query  integer  false  "Page (1-based)"
// @Param        limit  query  integer  false  "Page size (max 100)"
// @Success      200  {object}  successResponse
// @Router       /api/v1/category [get]
func (h *CategoryHandler) List(c echo.Context) error {
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
	return c.JSON(http.StatusOK, successPage(echo.Map{"categories": page.Items}, page.Pagination))
}

// Update handles PATCH /api/v1/category/:id (admin only, multipart).
//
// @Summary      Update a category
// @Tags         categories
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id           path      string  true   "Category ID"
// @Param        cover_image  formData  file    false  "Replacement cover image"
// @Success      200  {object}  successResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/category/{id} [patch]
func (h *CategoryHandler) Update(c echo.Context) error {
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	in := ports.UpdateCategoryInput{
		Name:        optString(values, "name"),
		Description: optString(values, "description"),
	}
	if raw := optString(values, "is_active"); raw != nil {
		b, err := strconv.ParseBool(*raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "is_active must be a boolean")
		}
		in.IsActive = &b
	}

	cover, release, err := formImage(c, "cover_image")
	if err != nil {
		return err
	}
	defer release()
	in.CoverImage = cover

	category, err := h.service.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(echo.Map{"category": category}))
}

// Delete handles DELETE /api/v1/category/:id (admin only). Refused while
// products still reference the category.
//
// @Summary      Delete a category
// @Tags         categories
// @Security     BearerAuth
// @Param        id  path  string  true  "Category ID"
// @Success      204  "deleted"
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/category/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
