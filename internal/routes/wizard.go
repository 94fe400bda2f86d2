package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/keystay/keystay/internal/wizard"
)

// RegisterWizardRoutes wires the wizard catalogue and session endpoints.
func RegisterWizardRoutes(r fiber.Router, h *wizard.Handler) {
	r.Get("/wizards", h.List)
	r.Post("/wizards/:kind", h.Start)

	sessions := r.Group("/wizards/sessions")
	sessions.Get("/:id", h.Get)
	sessions.Patch("/:id/fields", h.SetFields)
	sessions.Post("/:id/advance", h.Advance)
	sessions.Post("/:id/retreat", h.Retreat)
	sessions.Post("/:id/jump", h.Jump)
	sessions.Post("/:id/submit", h.Submit)
	sessions.Delete("/:id", h.Cancel)
}
