package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contactdesk/contact-management-api/internal/api/metrics"
	"github.com/contactdesk/contact-management-api/internal/core/domain"
	"github.com/contactdesk/contact-management-api/internal/core/ports"
)

// DuplicateContactHandler serves the duplicate-prone contact collection:
// the same CRUD surface as ContactHandler plus the batch merge endpoint.
type DuplicateContactHandler struct {
	*ContactHandler
	service ports.DuplicateContactService
}

func NewDuplicateContactHandler(service ports.DuplicateContactService, collection string) *DuplicateContactHandler {
	return &DuplicateContactHandler{
		ContactHandler: NewContactHandler(service, collection),
		service:        service,
	}
}

// MergeDuplicates handles POST /api/duplicateContacts/mergeDuplicates.
// The response body is the textual confirmation message.
//
// @Summary      Merge duplicate contacts
// @Tags         duplicateContacts
// @Produce      plain
// @Security     BearerAuth
// @Success      200  {string}  string
// @Failure      409  {object}  map[string]string
// @Router       /api/duplicateContacts/mergeDuplicates [post]
func (h *DuplicateContactHandler) MergeDuplicates(c echo.Context) error {
	message, err := h.service.MergeDuplicates(c.Request().Context())
	if err != nil {
		if errors.Is(err, domain.ErrMergeInProgress) {
			metrics.MergeRunsTotal.WithLabelValues("locked").Inc()
		} else {
			metrics.MergeRunsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.MergeRunsTotal.WithLabelValues("ok").Inc()
	return c.String(http.StatusOK, message)
}
