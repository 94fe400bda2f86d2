package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/keystay/keystay/internal/auth"
	"github.com/keystay/keystay/internal/booking"
	"github.com/keystay/keystay/internal/config"
	"github.com/keystay/keystay/internal/dashboard"
	"github.com/keystay/keystay/internal/flows"
	"github.com/keystay/keystay/internal/identity"
	"github.com/keystay/keystay/internal/lead"
	"github.com/keystay/keystay/internal/listing"
	"github.com/keystay/keystay/internal/middleware"
	"github.com/keystay/keystay/internal/notification"
	"github.com/keystay/keystay/internal/profile"
	"github.com/keystay/keystay/internal/ticket"
	"github.com/keystay/keystay/internal/visit"
	"github.com/keystay/keystay/internal/wizard"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.Env)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.Env)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Repositories fall back to in-memory implementations in dev.
	var (
		identityRepo identity.Repository
		profileRepo  profile.Repository
		bookingRepo  booking.Repository
		leadRepo     lead.Repository
		ticketRepo   ticket.Repository
		visitRepo    visit.Repository
		listingRepo  listing.Repository
	)
	if d.DB != nil {
		identityRepo = identity.NewPostgresRepository(d.DB)
		profileRepo = profile.NewPostgresRepository(d.DB)
		bookingRepo = booking.NewPostgresRepository(d.DB)
		leadRepo = lead.NewPostgresRepository(d.DB)
		ticketRepo = ticket.NewPostgresRepository(d.DB)
		visitRepo = visit.NewPostgresRepository(d.DB)
		listingRepo = listing.NewPostgresRepository(d.DB)
	} else {
		identityRepo = identity.NewMemoryRepository()
		profileRepo = profile.NewMemoryRepository()
		bookingRepo = booking.NewMemoryRepository()
		leadRepo = lead.NewMemoryRepository()
		ticketRepo = ticket.NewMemoryRepository()
		visitRepo = visit.NewMemoryRepository()
		listingRepo = listing.NewMemoryRepository()
	}

	var store wizard.Store
	if d.Cache != nil {
		store = wizard.NewRedisStore(d.Cache)
	} else {
		store = wizard.NewMemoryStore()
	}

	// Services and handlers
	identitySvc := identity.NewService(identityRepo)
	authSvc := auth.NewService(d.Cfg, identityRepo)
	authHandler := auth.NewHandler(identitySvc, authSvc)
	profileSvc := profile.NewService(profileRepo)
	profileHandler := profile.NewHandler(profileSvc)
	listingSvc := listing.NewService(listingRepo)
	listingHandler := listing.NewHandler(listingSvc)
	notifier := notification.NewLoggerNotifier(d.Logger)

	defs := flows.All(flows.Deps{
		Bookings: bookingRepo,
		Leads:    leadRepo,
		Tickets:  ticketRepo,
		Visits:   visitRepo,
		Profiles: profileSvc,
	})
	wizardSvc := wizard.NewService(defs, store, notifier, d.Logger, d.Cfg.WizardSessionTTL, d.Cfg.WizardSubmitTimeout)
	wizardHandler := wizard.NewHandler(wizardSvc, seedForm(identityRepo))

	dashboardSvc := dashboard.NewService(profileSvc, bookingRepo, leadRepo, ticketRepo, visitRepo, listingRepo)
	dashboardHandler := dashboard.NewHandler(dashboardSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	RegisterIdentityRoutes(api, identitySvc, profileSvc, d.Logger)
	rateLimiter := middleware.LoginRateLimit(d.Cache, d.Cfg.LoginPerMinute)
	RegisterAuthRoutes(api, authHandler, rateLimiter)
	api.Get("/listings", listingHandler.Search)
	api.Get("/listings/:listingId", listingHandler.Get)

	// Protected routes
	jwtmw := middleware.JWTAuth(d.Cfg, identityRepo)
	protected := api.Group("", jwtmw)
	protected.Post("/auth/logout", authHandler.Logout)
	RegisterMeRoute(protected, identityRepo)
	RegisterProfileRoutes(protected, profileHandler)
	RegisterWizardRoutes(protected, wizardHandler)
	RegisterListingRoutes(protected, listingHandler)
	protected.Get("/dashboard", dashboardHandler.Get)

	return nil
}

// seedForm prefills a new wizard session with the caller's identity so flows
// can gate on contact fields without retyping them.
func seedForm(repo identity.Repository) func(c *fiber.Ctx, userID string) wizard.Form {
	return func(c *fiber.Ctx, userID string) wizard.Form {
		form := wizard.Form{
			"tenant_id":  userID,
			"owner_id":   userID,
			"vendor_id":  userID,
			"visitor_id": userID,
		}
		account, err := repo.FindByID(c.UserContext(), userID)
		if err != nil {
			return form
		}
		form["full_name"] = account.FullName
		form["email"] = account.Email
		form["phone"] = account.Phone
		return form
	}
}
