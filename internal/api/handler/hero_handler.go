package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/egreat/storefront-api/internal/core/ports"
)

// HeroHandler handles HTTP requests for landing-page hero banners.
type HeroHandler struct {
	service ports.HeroService
}

func NewHeroHandler(service ports.HeroService) *HeroHandler {
	return &HeroHandler{service: service}
}

type createHeroRequest struct {
	Position    int    `validate:"required,min=1"`
	Title       string `validate:"required"`
	Highlight   string
	Description string `validate:"required"`
}

// Create handles POST /api/v1/hero (admin only, multipart).
//
// @Summary      Create a hero banner
// @Tags         hero
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        position     formData  integer  true   "Display position (unique)"
// @Param        title        formData  string   true   "Title"
// @Param        highlight    formData  string   false  "Highlighted phrase"
// @Param        description  formData  string   true   "Description"
// @Param        image        formData  file     true   "Banner image"
// @Success      201  {object}  successResponse
// @Failure      400  {object}  errorResponse
// @Router       /api/v1/hero [post]
func (h *HeroHandler) Create(c echo.Context) error {
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	req := createHeroRequest{
		Title:       values.Get("title"),
		Highlight:   values.Get("highlight"),
		Description: values.Get("description"),
	}
	if raw := values.Get("position"); raw != "" {
		pos, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "position must be an integer")
		}
		req.Position = pos
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	image, release, err := formImage(c, "image")
	if err != nil {
		return err
	}
	defer release()
	if image == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image is required")
	}

	banner, err := h.service.Create(c.Request().Context(), ports.CreateHeroInput{
		Position:    req.Position,
		Title:       req.Title,
		Highlight:   req.Highlight,
		Description: req.Description,
		Image:       image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, success(echo.Map{"hero": banner}))
}

// List handles GET /api/v1/hero (public). Banners come back ordered by
// position.
//
// @Summary      List hero banners
// @Tags         hero
// @Produce      json
// @Success      200  {object}  successResponse
// @Router       /api/v1/hero [get]
func (h *HeroHandler) List(c echo.Context) error {
	banners, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(echo.Map{"heroes": banners}))
}

// Update handles PATCH /api/v1/hero/:id (admin only, multipart).
//
// @Summary      Update a hero banner
// @Tags         hero
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Banner ID"
// @Param        image  formData  file    false  "Replacement image"
// @Success      200  {object}  successResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/hero/{id} [patch]
func (h *HeroHandler) Update(c echo.Context) error {
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	in := ports.UpdateHeroInput{
		Title:       optString(values, "title"),
		Highlight:   optString(values, "highlight"),
		Description: optString(values, "description"),
	}
	if raw := optString(values, "position"); raw != nil {
		pos, err := strconv.Atoi(*raw)
		if err != nil || pos < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "position must be a positive integer")
		}
		in.Position = &pos
	}

	image, release, err := formImage(c, "image")
	if err != nil {
		return err
	}
	defer release()
	in.Image = image

	banner, err := h.service.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(echo.Map{"hero": banner}))
}

// Delete handles DELETE /api/v1/hero/:id (admin only). The banner image is
// removed from cloud storage in the background.
//
// @Summary      Delete a hero banner
// @Tags         hero
// @Security     BearerAuth
// @Param        id  path  string  true  "Banner ID"
// @Success      204  "deleted"
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/hero/{id} [delete]
func (h *HeroHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
