package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRoles enforces role-based access control. Unauthenticated callers
// get 401; authenticated callers lacking every allowed role get 403.
func RequireRoles(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, _ := c.Get(ContextUsername).(string)
			if username == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			granted, _ := c.Get(ContextRoles).([]string)
			for _, role := range granted {
				if _, ok := allowed[role]; ok {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
		}
	}
}
