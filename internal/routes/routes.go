package routes

import (
	"time"

	"github.com/MalenaSein/anime-tracker/internal/config"
	"github.com/MalenaSein/anime-tracker/internal/handlers"
	"github.com/MalenaSein/anime-tracker/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	animeHandler *handlers.AnimeHandler,
	scheduleHandler *handlers.ScheduleHandler,
	pushHandler *handlers.PushHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth routes are public but get a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/check-recovery", authHandler.CheckRecovery)
	auth.Post("/reset-password-pin", authHandler.ResetPasswordWithPin)
	auth.Post("/setup-pin", authHandler.SetupPin)

	// Account management (JWT required)
	api.Put("/auth/username", middleware.JWTProtected(cfg), authHandler.ChangeUsername)
	api.Put("/auth/change-pin", middleware.JWTProtected(cfg), authHandler.ChangePin)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Watch list (JWT required)
	animes := api.Group("/animes", middleware.JWTProtected(cfg))
	animes.Get("/", animeHandler.List)
	animes.Post("/", animeHandler.Create)
	animes.Put("/:id", animeHandler.Update)
	animes.Delete("/:id", animeHandler.Delete)

	// Weekly schedules (JWT required)
	schedules := api.Group("/schedules", middleware.JWTProtected(cfg))
	schedules.Get("/", scheduleHandler.List)
	schedules.Post("/", scheduleHandler.Create)
	schedules.Put("/:id", scheduleHandler.Update)
	schedules.Delete("/:id", scheduleHandler.Delete)

	// Web push registration; the public key endpoint stays open so the
	// frontend can register its service worker before logging in.
	api.Get("/push/vapid-public-key", pushHandler.VapidPublicKey)
	api.Post("/push/subscribe", middleware.JWTProtected(cfg), pushHandler.Subscribe)
	api.Delete("/push/unsubscribe", middleware.JWTProtected(cfg), pushHandler.Unsubscribe)
}
