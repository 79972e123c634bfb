package handlers

import (
	"errors"

	"github.com/MalenaSein/anime-tracker/internal/dto"
	"github.com/MalenaSein/anime-tracker/internal/middleware"
	"github.com/MalenaSein/anime-tracker/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ScheduleHandler struct {
	scheduleService *services.ScheduleService
}

func NewScheduleHandler(scheduleService *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// List handles GET /schedules - joined with anime titles, ordered by slot.
func (h *ScheduleHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "No autorizado"})
	}

	schedules, err := h.scheduleService.List(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Error obteniendo horarios",
		})
	}

	return c.JSON(schedules)
}

// Create handles POST /schedules.
func (h *ScheduleHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "No autorizado"})
	}

	var req dto.CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Cuerpo de la petición inválido",
		})
	}

	schedule, err := h.scheduleService.Create(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrAnimeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		if errors.Is(err, services.ErrDuplicateSlot) || errors.Is(err, services.ErrInvalidSlot) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Error creando el horario",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(schedule)
}

// Update handles PUT /schedules/:id - toggles the notification flag.
func (h *ScheduleHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "No autorizado"})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "ID inválido"})
	}

	var req dto.UpdateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Cuerpo de la petición inválido",
		})
	}

	schedule, err := h.scheduleService.Update(uint(id), userID, req.NotificationEnabled)
	if err != nil {
		if errors.Is(err, services.ErrScheduleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Error actualizando el horario",
		})
	}

	return c.JSON(schedule)
}

// Delete handles DELETE /schedules/:id.
func (h *ScheduleHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "No autorizado"})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "ID inválido"})
	}

	if err := h.scheduleService.Delete(uint(id), userID); err != nil {
		if errors.Is(err, services.ErrScheduleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Error eliminando el horario",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Horario eliminado exitosamente"})
}
