package wizard

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the wizard session endpoints.
type Handler struct {
	service *Service
	seed    func(c *fiber.Ctx, userID string) Form
}

// NewHandler constructs a wizard HTTP handler. seed supplies initial form
// data from the caller's profile and may be nil.
func NewHandler(service *Service, seed func(c *fiber.Ctx, userID string) Form) *Handler {
	return &Handler{service: service, seed: seed}
}

func currentUser(c *fiber.Ctx) (string, error) {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return "", fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	return uid, nil
}

func (h *Handler) sessionView(def Definition, st State) fiber.Map {
	return fiber.Map{
		"session": st,
		"title":   def.Title,
		"steps":   h.service.Progress(def, st),
		"gate":    CanAdvance(def, st),
	}
}

// List describes the registered flows and their step tables.
func (h *Handler) List(c *fiber.Ctx) error {
	defs := h.service.Definitions()
	out := make([]fiber.Map, 0, len(defs))
	for _, def := range defs {
		steps := make([]fiber.Map, len(def.Steps))
		for i, s := range def.Steps {
			steps[i] = fiber.Map{"id": s.ID, "label": s.Label, "order": s.Order}
		}
		out = append(out, fiber.Map{"kind": def.Kind, "title": def.Title, "steps": steps})
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"wizards": out})
}

// Start opens a session for the requested flow.
func (h *Handler) Start(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}
	kind := c.Params("kind")

	var initial Form
	if h.seed != nil {
		initial = h.seed(c, uid)
	}

	st, err := h.service.Start(c.UserContext(), kind, uid, initial)
	if err != nil {
		if errors.Is(err, ErrUnknownKind) {
			return fiber.NewError(http.StatusNotFound, "unknown wizard")
		}
		return fiber.NewError(http.StatusInternalServerError, "failed to start wizard")
	}
	def, _ := h.service.Definition(kind)
	return c.Status(http.StatusCreated).JSON(h.sessionView(def, st))
}

// Get returns the live session with its step table and gate outcome.
func (h *Handler) Get(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}
	st, def, err := h.service.Get(c.UserContext(), c.Params("id"), uid)
	if err != nil {
		return sessionError(err)
	}
	return c.Status(http.StatusOK).JSON(h.sessionView(def, st))
}

type setFieldsRequest struct {
	Fields map[string]string `json:"fields"`
}

// SetFields merges submitted field values into the session form.
func (h *Handler) SetFields(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}
	var req setFieldsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	st, err := h.service.SetFields(c.UserContext(), c.Params("id"), uid, req.Fields)
	if err != nil {
		return sessionError(err)
	}
	def, _ := h.service.Definition(st.Kind)
	return c.Status(http.StatusOK).JSON(h.sessionView(def, st))
}

// Advance moves the session one step forward when its gate passes.
func (h *Handler) Advance(c *fiber.Ctx) error {
	return h.move(c, h.service.Advance)
}

// Retreat moves the session one step backward.
func (h *Handler) Retreat(c *fiber.Ctx) error {
	return h.move(c, h.service.Retreat)
}

func (h *Handler) move(c *fiber.Ctx, fn func(ctx context.Context, sessionID, ownerID string) (State, error)) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}
	st, err := fn(c.UserContext(), c.Params("id"), uid)
	if err != nil {
		return sessionError(err)
	}
	def, _ := h.service.Definition(st.Kind)
	return c.Status(http.StatusOK).JSON(h.sessionView(def, st))
}

type jumpRequest struct {
	StepID string `json:"step_id"`
}

// Jump moves back to a previously visited step.
func (h *Handler) Jump(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}
	var req jumpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	st, err := h.service.JumpTo(c.UserContext(), c.Params("id"), uid, req.StepID)
	if err != nil {
		return sessionError(err)
	}
	def, _ := h.service.Definition(st.Kind)
	return c.Status(http.StatusOK).JSON(h.sessionView(def, st))
}

// Submit runs the terminal action and reports the created record.
func (h *Handler) Submit(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}
	receipt, st, err := h.service.Submit(c.UserContext(), c.Params("id"), uid)
	if err != nil {
		switch {
		case errors.Is(err, ErrSubmitInFlight):
			return fiber.NewError(http.StatusConflict, "submission already in progress")
		case errors.Is(err, ErrNotReady):
			return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, ErrAlreadyComplete):
			return fiber.NewError(http.StatusConflict, "wizard already complete")
		case errors.Is(err, ErrSubmitFailed):
			return fiber.NewError(http.StatusBadGateway, ErrSubmitFailed.Error())
		default:
			return sessionError(err)
		}
	}
	def, _ := h.service.Definition(st.Kind)
	view := h.sessionView(def, st)
	view["receipt"] = receipt
	return c.Status(http.StatusCreated).JSON(view)
}

// Cancel discards the session with no side effects.
func (h *Handler) Cancel(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.service.Cancel(c.UserContext(), c.Params("id"), uid); err != nil {
		return sessionError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func sessionError(err error) error {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return fiber.NewError(http.StatusNotFound, "session not found")
	case errors.Is(err, ErrNotOwner):
		return fiber.NewError(http.StatusForbidden, "not your session")
	case errors.Is(err, ErrUnknownKind):
		return fiber.NewError(http.StatusNotFound, "unknown wizard")
	default:
		return fiber.NewError(http.StatusInternalServerError, "wizard store failure")
	}
}
