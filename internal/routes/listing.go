package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/keystay/keystay/internal/listing"
)

// RegisterListingRoutes wires the owner-facing listing endpoints. Public
// search and detail reads are registered separately on the open group.
func RegisterListingRoutes(r fiber.Router, h *listing.Handler) {
	group := r.Group("/my/listings")
	group.Post("", h.Create)
	group.Get("", h.Mine)
	group.Delete("/:listingId", h.Deactivate)
}
