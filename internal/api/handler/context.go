package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contactdesk/contact-management-api/internal/api/middleware"
)

// ctxUsername extracts the authenticated identity attached by the Auth
// middleware. Handlers sitting behind RequireRoles never see an empty
// value; the check guards direct use on authenticated-only routes.
func ctxUsername(c echo.Context) (string, error) {
	username, _ := c.Get(middleware.ContextUsername).(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return username, nil
}
