package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contactdesk/contact-management-api/internal/api/metrics"
	"github.com/contactdesk/contact-management-api/internal/core/domain"
	"github.com/contactdesk/contact-management-api/internal/core/ports"
)

// AuthHandler handles signup and login for both roles.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignupUser registers an account with the USER role.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup credentials"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Router       /api/auth/signup/user [post]
func (h *AuthHandler) SignupUser(c echo.Context) error {
	return h.signup(c, domain.RoleUser)
}

// SignupAdmin registers an account with the ADMIN role.
//
// @Summary      Register a new administrator
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup credentials"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Router       /api/auth/signup/admin [post]
func (h *AuthHandler) SignupAdmin(c echo.Context) error {
	return h.signup(c, domain.RoleAdmin)
}

// LoginUser authenticates a USER-role account and returns a token.
//
// @Summary      Login as user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  jwtResponse
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/login/user [post]
func (h *AuthHandler) LoginUser(c echo.Context) error {
	return h.login(c, domain.RoleUser)
}

// LoginAdmin authenticates an ADMIN-role account and returns a token.
//
// @Summary      Login as administrator
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  jwtResponse
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/login/admin [post]
func (h *AuthHandler) LoginAdmin(c echo.Context) error {
	return h.login(c, domain.RoleAdmin)
}

func (h *AuthHandler) signup(c echo.Context, role string) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, role)
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.WithLabelValues(role).Inc()
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) login(c echo.Context, role string) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), req.Username, req.Password, role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, jwtResponse{Token: result.Token, ExpiresIn: result.ExpiresIn})
}
