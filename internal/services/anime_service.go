package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/MalenaSein/anime-tracker/internal/dto"
	"github.com/MalenaSein/anime-tracker/internal/models"
	"gorm.io/gorm"
)

var (
	ErrAnimeNotFound       = errors.New("anime no encontrado")
	ErrInvalidEstado       = errors.New("estado inválido")
	ErrInvalidCapitulos    = errors.New("los capítulos vistos no pueden ser negativos")
	ErrInvalidCalificacion = errors.New("la calificación debe estar entre 1 y 5")
)

// CoverResolver looks up a cover image URL for a title. Lookups are
// best-effort: implementations return a placeholder rather than failing.
type CoverResolver interface {
	CoverFor(ctx context.Context, nombre string) string
}

type AnimeService struct {
	db     *gorm.DB
	covers CoverResolver
}

func NewAnimeService(db *gorm.DB, covers CoverResolver) *AnimeService {
	return &AnimeService{db: db, covers: covers}
}

// List returns the user's animes, most recently updated first.
func (s *AnimeService) List(userID uint) ([]models.Anime, error) {
	var animes []models.Anime
	err := s.db.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&animes).Error
	return animes, err
}

// Create adds an anime in "viendo" state, resolving a cover image for
// the title. Image lookup never blocks creation.
func (s *AnimeService) Create(ctx context.Context, userID uint, req *dto.CreateAnimeRequest) (*models.Anime, error) {
	if req.Nombre == "" {
		return nil, errors.New("el nombre es obligatorio")
	}
	if req.CapitulosVistos < 0 {
		return nil, ErrInvalidCapitulos
	}

	tipo := req.Tipo
	if tipo == "" {
		tipo = "Desconocido"
	}

	anime := models.Anime{
		UserID:          userID,
		Nombre:          req.Nombre,
		ImagenURL:       s.covers.CoverFor(ctx, req.Nombre),
		Tipo:            tipo,
		CapitulosVistos: req.CapitulosVistos,
		Estado:          "viendo",
	}

	if err := s.db.Create(&anime).Error; err != nil {
		return nil, fmt.Errorf("failed to create anime: %w", err)
	}

	return &anime, nil
}

// Update applies a partial update to an anime owned by userID. Fields
// left nil in the request keep their stored values.
func (s *AnimeService) Update(id, userID uint, req *dto.UpdateAnimeRequest) (*models.Anime, error) {
	var anime models.Anime
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&anime).Error; err != nil {
		return nil, ErrAnimeNotFound
	}

	if req.Nombre != nil {
		if *req.Nombre == "" {
			return nil, errors.New("el nombre es obligatorio")
		}
		anime.Nombre = *req.Nombre
	}
	if req.Tipo != nil {
		anime.Tipo = *req.Tipo
	}
	if req.CapitulosVistos != nil {
		if *req.CapitulosVistos < 0 {
			return nil, ErrInvalidCapitulos
		}
		anime.CapitulosVistos = *req.CapitulosVistos
	}
	if req.Estado != nil {
		if !models.ValidEstado(*req.Estado) {
			return nil, ErrInvalidEstado
		}
		anime.Estado = *req.Estado
	}
	if req.Calificacion != nil {
		if *req.Calificacion < 1 || *req.Calificacion > 5 {
			return nil, ErrInvalidCalificacion
		}
		anime.Calificacion = req.Calificacion
	}

	if err := s.db.Save(&anime).Error; err != nil {
		return nil, fmt.Errorf("failed to update anime: %w", err)
	}

	return &anime, nil
}

// Delete removes an anime owned by userID along with its schedules.
func (s *AnimeService) Delete(id, userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("anime_id = ? AND user_id = ?", id, userID).Delete(&models.Schedule{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Anime{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAnimeNotFound
		}
		return nil
	})
}
