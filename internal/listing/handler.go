package listing

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes listing HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a listing HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Title       string `json:"title"`
	Address     string `json:"address"`
	Area        string `json:"area"`
	City        string `json:"city"`
	MonthlyRent int64  `json:"monthly_rent"`
	Deposit     int64  `json:"deposit"`
}

// Create publishes a listing for the authenticated owner.
func (h *Handler) Create(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("user_id").(string)
	if ownerID == "" {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	l, err := h.service.Create(c.UserContext(), CreateInput{
		OwnerID:     ownerID,
		Title:       req.Title,
		Address:     req.Address,
		Area:        req.Area,
		City:        req.City,
		MonthlyRent: req.MonthlyRent,
		Deposit:     req.Deposit,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(l)
}

// Get returns one listing.
func (h *Handler) Get(c *fiber.Ctx) error {
	l, err := h.service.Get(c.UserContext(), c.Params("listingId"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusOK).JSON(l)
}

// Search returns available listings, optionally filtered by ?city=.
func (h *Handler) Search(c *fiber.Ctx) error {
	listings, err := h.service.Search(c.UserContext(), c.Query("city"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"listings": listings})
}

// Mine returns the authenticated owner's listings.
func (h *Handler) Mine(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("user_id").(string)
	if ownerID == "" {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	listings, err := h.service.ListByOwner(c.UserContext(), ownerID)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"listings": listings})
}

// Deactivate withdraws the authenticated owner's listing.
func (h *Handler) Deactivate(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("user_id").(string)
	if ownerID == "" {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	if err := h.service.Deactivate(c.UserContext(), c.Params("listingId"), ownerID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.SendStatus(http.StatusNoContent)
}
