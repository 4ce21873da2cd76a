package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contactdesk/contact-management-api/internal/core/ports"
)

// UserHandler handles user-management requests.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type userUpdateRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// Current handles GET /users/current — the caller's own profile.
//
// @Summary      Get the authenticated user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /users/current [get]
func (h *UserHandler) Current(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetByUsername(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// All handles GET /users/all.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.User
// @Router       /users/all [get]
func (h *UserHandler) All(c echo.Context) error {
	users, err := h.service.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Update handles PUT /users/:id.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      userUpdateRequest  true  "User fields"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req userUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UserUpdateInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /users/:id. Deletion is idempotent by ID.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  string  true  "User ID"
// @Success      204
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
