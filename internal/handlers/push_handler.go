package handlers

import (
	"github.com/MalenaSein/anime-tracker/internal/config"
	"github.com/MalenaSein/anime-tracker/internal/dto"
	"github.com/MalenaSein/anime-tracker/internal/middleware"
	"github.com/MalenaSein/anime-tracker/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PushHandler struct {
	pushService *services.PushService
	cfg         *config.Config
}

func NewPushHandler(pushService *services.PushService, cfg *config.Config) *PushHandler {
	return &PushHandler{pushService: pushService, cfg: cfg}
}

// Subscribe handles POST /push/subscribe.
func (h *PushHandler) Subscribe(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "No autorizado"})
	}

	var req dto.SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Cuerpo de la petición inválido",
		})
	}

	if err := h.pushService.SaveSubscription(userID, req.Endpoint, req.Keys.P256dh, req.Keys.Auth); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.MessageResponse{Message: "Suscripción guardada exitosamente"})
}

// Unsubscribe handles DELETE /push/unsubscribe.
func (h *PushHandler) Unsubscribe(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "No autorizado"})
	}

	var req dto.UnsubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Cuerpo de la petición inválido",
		})
	}

	if err := h.pushService.DeleteSubscription(userID, req.Endpoint); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Error eliminando la suscripción",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Suscripción eliminada exitosamente"})
}

// VapidPublicKey handles GET /push/vapid-public-key - the frontend needs
// it to register its service-worker subscription.
func (h *PushHandler) VapidPublicKey(c *fiber.Ctx) error {
	return c.JSON(dto.VapidKeyResponse{PublicKey: h.cfg.VAPIDPublicKey})
}
