package routes

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/keystay/keystay/internal/identity"
	"github.com/keystay/keystay/internal/profile"
)

// RegisterIdentityRoutes wires registration and auto-provisions the base
// profile row for each new account.
func RegisterIdentityRoutes(r fiber.Router, ids *identity.Service, profiles *profile.Service, logger *slog.Logger) {
	r.Post("/identity/register", func(c *fiber.Ctx) error {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			Phone    string `json:"phone"`
			FullName string `json:"full_name"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		account, err := ids.Register(c.UserContext(), identity.Credentials{
			Email:    req.Email,
			Password: req.Password,
			Phone:    req.Phone,
			FullName: req.FullName,
		})
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		if profiles != nil {
			if err := profiles.ProvisionBase(c.UserContext(), account.ID, account.FullName, account.Email, account.Phone); err != nil && logger != nil {
				logger.Warn("provision base profile", "user_id", account.ID, "error", err)
			}
		}
		if logger != nil {
			logger.Info("identity.register completed",
				slog.String("user_id", account.ID),
				slog.String("email", account.Email),
				slog.Int("status", http.StatusCreated),
			)
		}
		return c.Status(http.StatusCreated).JSON(fiber.Map{
			"user_id":   account.ID,
			"email":     account.Email,
			"full_name": account.FullName,
			"phone":     account.Phone,
		})
	})
}

// RegisterMeRoute exposes the authenticated account's own record.
func RegisterMeRoute(r fiber.Router, repo identity.Repository) {
	r.Get("/me", func(c *fiber.Ctx) error {
		uid, _ := c.Locals("user_id").(string)
		if uid == "" {
			return c.SendStatus(http.StatusUnauthorized)
		}
		account, err := repo.FindByID(c.UserContext(), uid)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "user not found")
		}
		return c.JSON(fiber.Map{
			"user_id":       account.ID,
			"email":         account.Email,
			"full_name":     account.FullName,
			"phone":         account.Phone,
			"token_version": account.TokenVersion,
			"created_at":    account.CreatedAt,
			"last_login":    account.LastLogin,
		})
	})
}
