package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/contactdesk/contact-management-api/internal/api/metrics"
	"github.com/contactdesk/contact-management-api/internal/core/domain"
	"github.com/contactdesk/contact-management-api/internal/core/ports"
)

// Context keys under which the authenticated principal is stored.
const (
	ContextUsername = "username"
	ContextRoles    = "roles"
)

// Auth is the per-request authentication gate. Requests without a bearer
// credential pass through anonymously; role checks happen downstream. A
// present-but-invalid token short-circuits the request through the central
// error handler. A valid token loads the user record for its subject and
// attaches the identity and granted roles to the request context.
func Auth(tokens ports.TokenEngine, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				return next(c)
			}

			raw := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := tokens.Validate(raw)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues(failureReason(err)).Inc()
				return err
			}

			if c.Get(ContextUsername) == nil {
				user, err := users.FindByUsername(c.Request().Context(), claims.Subject)
				if err != nil {
					if errors.Is(err, domain.ErrUserNotFound) {
						metrics.AuthFailuresTotal.WithLabelValues("unknown_user").Inc()
						return domain.ErrInvalidCredentials
					}
					return err
				}

				if tokens.IsValid(raw, user.Username) {
					c.Set(ContextUsername, user.Username)
					c.Set(ContextRoles, user.Roles)
				}
			}

			return next(c)
		}
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenSignatureInvalid):
		return "invalid_signature"
	default:
		return "malformed"
	}
}
