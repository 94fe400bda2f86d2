package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/keystay/keystay/internal/profile"
)

// RegisterProfileRoutes wires the role-profile endpoints.
func RegisterProfileRoutes(r fiber.Router, h *profile.Handler) {
	group := r.Group("/profile")
	group.Get("", h.Get)
	group.Post("/role", h.AssignRole)
	group.Patch("", h.SaveBase)
	group.Patch("/extension", h.SaveExtension)
}
