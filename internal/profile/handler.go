package profile

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes profile endpoints for the authenticated user.
type Handler struct {
	service *Service
}

// NewHandler constructs a profile HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func currentUser(c *fiber.Ctx) (string, error) {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return "", fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	return uid, nil
}

// Get returns the merged role profile. A user without a role assignment gets
// a redirect payload to role selection, not an error.
func (h *Handler) Get(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}

	rp, err := h.service.Load(c.UserContext(), uid)
	if err != nil {
		switch {
		case errors.Is(err, ErrRoleNotAssigned):
			return c.Status(http.StatusOK).JSON(fiber.Map{
				"role_selected": false,
				"next":          "role_selection",
			})
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(http.StatusNotFound, "profile not found")
		default:
			return fiber.NewError(http.StatusInternalServerError, "failed to load profile")
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"role_selected": true,
		"profile":       rp,
		"display":       ListDisplay(rp.Ext),
	})
}

type assignRoleRequest struct {
	Role string `json:"role"`
}

// AssignRole records the selected role for a fresh account.
func (h *Handler) AssignRole(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}
	var req assignRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.service.AssignRole(c.UserContext(), uid, Role(req.Role)); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"role": req.Role})
}

type baseUpdateRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

// SaveBase applies a partial edit to the shared profile fields.
func (h *Handler) SaveBase(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}
	var req baseUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	update := BaseUpdate{FullName: req.FullName, Phone: req.Phone, Address: req.Address}
	if err := h.service.SaveBase(c.UserContext(), uid, update); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "profile not found")
		}
		return fiber.NewError(http.StatusInternalServerError, "failed to save profile")
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "saved"})
}

// SaveExtension applies a partial edit to the role-specific fields. The body
// shape is selected by the assigned role.
func (h *Handler) SaveExtension(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}

	role, err := h.service.ResolveRole(c.UserContext(), uid)
	if err != nil {
		if errors.Is(err, ErrRoleNotAssigned) {
			return c.Status(http.StatusOK).JSON(fiber.Map{
				"role_selected": false,
				"next":          "role_selection",
			})
		}
		return fiber.NewError(http.StatusInternalServerError, "failed to resolve role")
	}

	var update ExtensionUpdate
	switch role {
	case RoleTenant:
		var u TenantExtUpdate
		if err := c.BodyParser(&u); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		update = u
	case RoleOwner:
		var u OwnerExtUpdate
		if err := c.BodyParser(&u); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		update = u
	case RoleAgent:
		var u AgentExtUpdate
		if err := c.BodyParser(&u); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		update = u
	case RoleVendor:
		var u VendorExtUpdate
		if err := c.BodyParser(&u); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		update = u
	case RoleTechnician:
		var u TechnicianExtUpdate
		if err := c.BodyParser(&u); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		update = u
	default:
		return fiber.NewError(http.StatusBadRequest, "role has no extension fields")
	}

	if err := h.service.SaveExtension(c.UserContext(), uid, update); err != nil {
		return fiber.NewError(http.StatusInternalServerError, "failed to save extension")
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "saved"})
}

// ListDisplay renders the list-valued extension fields back to the
// comma-joined display text the client forms edit.
func ListDisplay(ext Extension) map[string]string {
	switch v := ext.(type) {
	case AgentExt:
		return map[string]string{"assigned_areas": JoinList(v.AssignedAreas)}
	case VendorExt:
		return map[string]string{
			"service_types": JoinList(v.ServiceTypes),
			"service_areas": JoinList(v.ServiceAreas),
		}
	case TechnicianExt:
		return map[string]string{
			"specializations": JoinList(v.Specializations),
			"service_areas":   JoinList(v.ServiceAreas),
		}
	default:
		return nil
	}
}
