package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/egreat/storefront-api/internal/core/domain"
)

func render(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, resp
}

func TestErrorHandler_InvalidCredentials(t *testing.T) {
	code, resp := render(t, domain.ErrInvalidCredentials)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if resp.Status != "fail" {
		t.Fatalf("expected status fail, got %s", resp.Status)
	}
	if resp.Message != "Incorrect email or password" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestErrorHandler_DomainMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrProductNotFound, http.StatusNotFound},
		{domain.ErrCategoryNotFound, http.StatusNotFound},
		{domain.ErrHeroNotFound, http.StatusNotFound},
		{domain.ErrCategoryExists, http.StatusBadRequest},
		{domain.ErrCategoryInUse, http.StatusBadRequest},
		{domain.ErrEmailTaken, http.StatusBadRequest},
		{domain.ErrImageUpload, http.StatusBadRequest},
	}

	for _, tc := range cases {
		code, resp := render(t, tc.err)
		if code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, code)
		}
		if resp.Status != "fail" {
			t.Fatalf("%v: expected status fail, got %s", tc.err, resp.Status)
		}
	}
}

func TestErrorHandler_WrappedErrorStillMapped(t *testing.T) {
	wrapped := errors.Join(errors.New("delete category"), domain.ErrCategoryInUse)
	code, _ := render(t, wrapped)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for wrapped error, got %d", code)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, resp := render(t, echo.NewHTTPError(http.StatusUnauthorized, "token expired"))
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if resp.Message != "token expired" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	code, resp := render(t, errors.New("mongo: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if resp.Status != "error" {
		t.Fatalf("expected status error, got %s", resp.Status)
	}
	if resp.Message != "internal server error" {
		t.Fatalf("internal detail leaked: %q", resp.Message)
	}
}
