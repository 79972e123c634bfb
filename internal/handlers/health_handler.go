package handlers

import (
	"time"

	"github.com/MalenaSein/anime-tracker/internal/database"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	overall := "ok"
	dbStatus := "ok"
	status := fiber.StatusOK
	if err := database.Ping(); err != nil {
		overall = "degraded"
		dbStatus = "down"
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status":    overall,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"db":        dbStatus,
	})
}
