package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/egreat/storefront-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for product operations. Writes
// arrive as multipart forms (fields plus image files); reads are plain
// JSON.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// createProductRequest is populated from multipart form fields, not bound
// from JSON: image files ride in the same request.
type createProductRequest struct {
	Name        string  `validate:"required"`
	Description string  `validate:"required,min=10,max=50000"`
	Price       float64 `validate:"required,gt=0"`
	Category    string  `validate:"required"`
	Subcategory string
	InStock     bool
	Featured    bool
}

type listProductsQuery struct {
	Query       string   `query:"query"`
	Category    string   `query:"category"`
	Subcategory string   `query:"subcategory"`
	InStock     *bool    `query:"in_stock"`
	Featured    *bool    `query:"featured"`
	MinPrice    *float64 `query:"min_price" validate:"omitempty,gte=0"`
	MaxPrice    *float64 `query:"max_price" validate:"omitempty,gte=0"`
	Page        int      `query:"page"      validate:"omitempty,min=1"`
	Limit       int      `query:"limit"     validate:"omitempty,min=1,max=100"`
}

type deleteImageRequest struct {
	Image string `json:"image" validate:"required,url"`
}

// Create handles POST /api/v1/product (admin only, multipart).
//
// @Summary      Create a product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name         formData  string  true   "Product name"
// @Param        description  formData  string  true   "Product description"
// @Param        price        formData  number  true   "Price"
// @Param        category     formData  string  true   "Category ID or name"
// @Param        subcategory  formData  string  false  "Subcategory ID"
// @Param        specs        formData  string  false  "Specs as a JSON object"
// @Param        images       formData  file    false  "Product images"
// @Success      201  {object}  successResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/product [post]
func (h *ProductHandler) Create(c echo.Context) error {
	req, specs, err := parseProductForm(c)
	if err != nil {
		return err
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	images, release, err := formImages(c, "images")
	if err != nil {
		return err
	}
	defer release()

	product, err := h.service.Create(c.Request().Context(), ports.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Specs:       specs,
		InStock:     req.InStock,
		Featured:    req.Featured,
		Images:      images,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, success(echo.Map{"product": product}))
}

// Get handles GET /api/v1/product/:id (public).
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id  path  string  true  "Product ID"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/product/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(echo.Map{"product": product}))
}

// List handles GET /api/v1/product (public, filtered, paginated).
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        query        query  string   false  "Name search"
// @Param        category     query  string   false  "Category ID"
// @Param        subcategory  query  string   false  "Subcategory ID"
// @Param        in_stock     query  boolean  false  "In-stock filter"
// @Param        featured     query  boolean  false  "Featured filter"
// @Param        min_price    query  number   false  "Minimum price"
// @Param        max_price    query  number   false  "Maximum price"
// @Param        page         query  integer  false  "Page (1-based)"
// @Param        limit        query  integer  false  "Page size (max 100)"
// @Success      200  {object}  successResponse
// @Failure      400  {object}  errorResponse
// @Router       /api/v1/product [get]
func (h *ProductHandler) List(c echo.Context) error {
	var q listProductsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	page, err := h.service.List(c.Request().Context(), ports.ListProductsFilter{
		Query:         q.Query,
		CategoryID:    q.Category,
		SubcategoryID: q.Subcategory,
		InStock:       q.InStock,
		Featured:      q.Featured,
		MinPrice:      q.MinPrice,
		MaxPrice:      q.MaxPrice,
		Page:          q.Page,
		Limit:         q.Limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, successPage(echo.Map{"products": page.Items}, page.Pagination))
}

// ListFeatured handles GET /api/v1/product/featured (public).
//
// @Summary      List featured products
// @Tags         products
// @Produce      json
// @Param        page   query  integer  false  "Page (1-based)"
// @Param        limit  query  integer  false  "Page size (max 100)"
// @Success      200  {object}  successResponse
// @Router       /api/v1/product/featured [get]
func (h *ProductHandler) ListFeatured(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListFeatured(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successPage(echo.Map{"products": result.Items}, result.Pagination))
}

// Update handles PATCH /api/v1/product/:id (admin only, multipart). New
// images are appended to the existing list.
//
// @Summary      Update a product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true   "Product ID"
// @Param        images  formData  file    false  "Additional images"
// @Success      200  {object}  successResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/product/{id} [patch]
func (h *ProductHandler) Update(c echo.Context) error {
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	in := ports.UpdateProductInput{
		Name:        optString(values, "name"),
		Description: optString(values, "description"),
		Category:    optString(values, "category"),
		Subcategory: optString(values, "subcategory"),
	}

	if raw := optString(values, "price"); raw != nil {
		price, err := strconv.ParseFloat(*raw, 64)
		if err != nil || price <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "price must be a positive number")
		}
		in.Price = &price
	}
	if raw := optString(values, "in_stock"); raw != nil {
		b, err := strconv.ParseBool(*raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "in_stock must be a boolean")
		}
		in.InStock = &b
	}
	if raw := optString(values, "featured"); raw != nil {
		b, err := strconv.ParseBool(*raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "featured must be a boolean")
		}
		in.Featured = &b
	}
	if raw := optString(values, "specs"); raw != nil {
		specs, err := parseSpecs(*raw)
		if err != nil {
			return err
		}
		in.Specs = specs
	}

	images, release, err := formImages(c, "images")
	if err != nil {
		return err
	}
	defer release()
	in.Images = images

	product, err := h.service.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(echo.Map{"product": product}))
}

// Delete handles DELETE /api/v1/product/:id (admin only). Associated cloud
// images are removed in the background.
//
// @Summary      Delete a product
// @Tags         products
// @Security     BearerAuth
// @Param        id  path  string  true  "Product ID"
// @Success      204  "deleted"
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/product/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteImage handles DELETE /api/v1/product/image/:id (admin only).
//
// @Summary      Detach one image from a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true  "Product ID"
// @Param        body  body  deleteImageRequest  true  "Image URL to detach"
// @Success      200  {object}  successResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/product/image/{id} [delete]
func (h *ProductHandler) DeleteImage(c echo.Context) error {
	var req deleteImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.DeleteImage(c.Request().Context(), c.Param("id"), req.Image)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(echo.Map{"product": product}))
}

// parseProductForm pulls the scalar product fields out of the multipart
// form. Specs arrive as a JSON object in a single form field.
func parseProductForm(c echo.Context) (*createProductRequest, map[string]any, error) {
	values, err := c.FormParams()
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	req := &createProductRequest{
		Name:        values.Get("name"),
		Description: values.Get("description"),
		Category:    values.Get("category"),
		Subcategory: values.Get("subcategory"),
		InStock:     true,
	}

	if raw := values.Get("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "price must be a number")
		}
		req.Price = price
	}
	if raw := values.Get("in_stock"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "in_stock must be a boolean")
		}
		req.InStock = b
	}
	if raw := values.Get("featured"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "featured must be a boolean")
		}
		req.Featured = b
	}

	var specs map[string]any
	if raw := values.Get("specs"); raw != "" {
		specs, err = parseSpecs(raw)
		if err != nil {
			return nil, nil, err
		}
	}
	return req, specs, nil
}

func parseSpecs(raw string) (map[string]any, error) {
	var specs map[string]any
	if err := json.Unmarshal([]byte(raw), &specs); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "specs must be a JSON object")
	}
	return specs, nil
}
