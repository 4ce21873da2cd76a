package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contactdesk/contact-management-api/internal/api/metrics"
	"github.com/contactdesk/contact-management-api/internal/core/ports"
)

// ContactHandler handles HTTP requests for the plain contact collection.
type ContactHandler struct {
	service ports.ContactService
	// collection labels the metrics emitted by this handler instance.
	collection string
}

func NewContactHandler(service ports.ContactService, collection string) *ContactHandler {
	return &ContactHandler{service: service, collection: collection}
}

// Create handles POST .../register.
//
// @Summary      Register a new contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      contactRequest  true  "Contact fields"
// @Success      201   {object}  domain.Contact
// @Failure      400   {object}  map[string][]string
// @Router       /api/contacts/register [post]
func (h *ContactHandler) Create(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	contact, err := h.service.Create(c.Request().Context(), toContactInput(req))
	if err != nil {
		return err
	}

	metrics.ContactsCreatedTotal.WithLabelValues(h.collection).Inc()
	return c.JSON(http.StatusCreated, contact)
}

// GetAll handles GET .../retrieve.
//
// @Summary      List all contacts
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Contact
// @Router       /api/contacts/retrieve [get]
func (h *ContactHandler) GetAll(c echo.Context) error {
	contacts, err := h.service.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contacts)
}

// GetByID handles GET .../retrieve/:id.
//
// @Summary      Get a contact by ID
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Contact ID"
// @Success      200  {object}  domain.Contact
// @Failure      404  {object}  map[string]string
// @Router       /api/contacts/retrieve/{id} [get]
func (h *ContactHandler) GetByID(c echo.Context) error {
	contact, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contact)
}

// Update handles PUT .../update/:id. All five mutable fields are
// overwritten unconditionally.
//
// @Summary      Update a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Contact ID"
// @Param        body  body      contactRequest  true  "Contact fields"
// @Success      200   {object}  domain.Contact
// @Failure      404   {object}  map[string]string
// @Router       /api/contacts/update/{id} [put]
func (h *ContactHandler) Update(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	contact, err := h.service.Update(c.Request().Context(), c.Param("id"), toContactInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contact)
}

// Delete handles DELETE .../delete/:id. Deletion is idempotent by ID.
//
// @Summary      Delete a contact
// @Tags         contacts
// @Security     BearerAuth
// @Param        id  path  string  true  "Contact ID"
// @Success      204
// @Router       /api/contacts/delete/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
