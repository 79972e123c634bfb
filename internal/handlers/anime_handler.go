package handlers

import (
	"errors"

	"github.com/MalenaSein/anime-tracker/internal/dto"
	"github.com/MalenaSein/anime-tracker/internal/middleware"
	"github.com/MalenaSein/anime-tracker/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AnimeHandler struct {
	animeService *services.AnimeService
}

func NewAnimeHandler(animeService *services.AnimeService) *AnimeHandler {
	return &AnimeHandler{animeService: animeService}
}

// List handles GET /animes - the user's animes, most recently updated first.
func (h *AnimeHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "No autorizado"})
	}

	animes, err := h.animeService.List(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Error obteniendo animes",
		})
	}

	return c.JSON(animes)
}

// Create handles POST /animes.
func (h *AnimeHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "No autorizado"})
	}

	var req dto.CreateAnimeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Cuerpo de la petición inválido",
		})
	}

	anime, err := h.animeService.Create(c.Context(), userID, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(anime)
}

// Update handles PUT /animes/:id with partial-update semantics.
func (h *AnimeHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "No autorizado"})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "ID inválido"})
	}

	var req dto.UpdateAnimeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Cuerpo de la petición inválido",
		})
	}

	anime, err := h.animeService.Update(uint(id), userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrAnimeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(anime)
}

// Delete handles DELETE /animes/:id.
func (h *AnimeHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "No autorizado"})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "ID inválido"})
	}

	if err := h.animeService.Delete(uint(id), userID); err != nil {
		if errors.Is(err, services.ErrAnimeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Error eliminando el anime",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Anime eliminado exitosamente"})
}
