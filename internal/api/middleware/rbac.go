package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/egreat/storefront-api/internal/core/domain"
)

// RequireRole restricts a route to holders of the given role. It must run
// after Auth: a missing identity fails closed with 401 (an authentication
// problem), a role mismatch with 403. There is no role hierarchy.
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if user.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}
			return next(c)
		}
	}
}
