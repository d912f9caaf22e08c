package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/egreat/storefront-api/internal/core/domain"
	"github.com/egreat/storefront-api/internal/core/ports"
)

// SettingsHandler exposes the site settings singleton.
type SettingsHandler struct {
	service ports.SettingsService
}

func NewSettingsHandler(service ports.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

type socialLinksRequest struct {
	Facebook  *string `json:"facebook"  validate:"omitempty,url"`
	Instagram *string `json:"instagram" validate:"omitempty,url"`
	Twitter   *string `json:"twitter"   validate:"omitempty,url"`
	YouTube   *string `json:"youtube"   validate:"omitempty,url"`
	TikTok    *string `json:"tiktok"    validate:"omitempty,url"`
}

type updateSettingsRequest struct {
	SocialLinks *socialLinksRequest `json:"social_links"`
	WhatsApp    *string             `json:"whatsapp"`
	Email       *string             `json:"email" validate:"omitempty,email"`
	Address     *string             `json:"address"`
}

// Get handles GET /api/v1/settings (public).
//
// @Summary      Get site settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  successResponse
// @Router       /api/v1/settings [get]
func (h *SettingsHandler) Get(c echo.Context) error {
	settings, err := h.service.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(echo.Map{"settings": settings}))
}

// Update handles PATCH /api/v1/settings (admin only). Omitted fields are
// left untouched; a submitted social_links object replaces the whole block.
//
// @Summary      Update site settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateSettingsRequest  true  "Fields to change"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/v1/settings [patch]
func (h *SettingsHandler) Update(c echo.Context) error {
	var req updateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.UpdateSettingsInput{
		WhatsApp: req.WhatsApp,
		Email:    req.Email,
		Address:  req.Address,
	}
	if req.SocialLinks != nil {
		links := domain.SocialLinks{}
		if req.SocialLinks.Facebook != nil {
			links.Facebook = *req.SocialLinks.Facebook
		}
		if req.SocialLinks.Instagram != nil {
			links.Instagram = *req.SocialLinks.Instagram
		}
		if req.SocialLinks.Twitter != nil {
			links.Twitter = *req.SocialLinks.Twitter
		}
		if req.SocialLinks.YouTube != nil {
			links.YouTube = *req.SocialLinks.YouTube
		}
		if req.SocialLinks.TikTok != nil {
			links.TikTok = *req.SocialLinks.TikTok
		}
		in.SocialLinks = &links
	}

	settings, err := h.service.Update(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(echo.Map{"settings": settings}))
}
