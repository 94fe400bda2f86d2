package dashboard

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/keystay/keystay/internal/profile"
)

// Handler exposes the dashboard HTTP endpoint.
type Handler struct {
	service *Service
}

// NewHandler builds a dashboard HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get returns the role-conditional dashboard for the authenticated user. A
// user without an assigned role gets a pointer to role selection instead of
// an error.
func (h *Handler) Get(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	view, err := h.service.Build(c.UserContext(), uid)
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrRoleNotAssigned):
			return c.Status(http.StatusOK).JSON(fiber.Map{
				"role_selected": false,
				"next":          "role_selection",
			})
		case errors.Is(err, profile.ErrNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.Status(http.StatusOK).JSON(view)
}
