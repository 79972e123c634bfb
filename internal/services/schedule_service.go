package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/MalenaSein/anime-tracker/internal/dto"
	"github.com/MalenaSein/anime-tracker/internal/models"
	"github.com/MalenaSein/anime-tracker/internal/notifier"
	"gorm.io/gorm"
)

var (
	ErrScheduleNotFound = errors.New("horario no encontrado")
	ErrDuplicateSlot    = errors.New("ya existe un horario para este anime en este momento")
	ErrInvalidSlot      = errors.New("horario inválido: día 0-6, hora 0-23, minuto 0, 15, 30 o 45")
)

// ScheduleRow is a schedule joined with its anime's title, the shape the
// calendar UI consumes.
type ScheduleRow struct {
	models.Schedule
	AnimeNombre string `json:"anime_nombre"`
}

type ScheduleService struct {
	db *gorm.DB
}

func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{db: db}
}

// List returns the user's schedules joined with anime titles, ordered by
// day, hour, minute.
func (s *ScheduleService) List(userID uint) ([]ScheduleRow, error) {
	rows := make([]ScheduleRow, 0)
	err := s.db.Model(&models.Schedule{}).
		Select("schedules.*, animes.nombre AS anime_nombre").
		Joins("JOIN animes ON animes.id = schedules.anime_id").
		Where("schedules.user_id = ?", userID).
		Order("schedules.day, schedules.hour, schedules.minute").
		Scan(&rows).Error
	return rows, err
}

// Create stores a new weekly slot. The anime must belong to userID and
// the (user, anime, day, hour, minute) tuple must be unused.
func (s *ScheduleService) Create(userID uint, req *dto.CreateScheduleRequest) (*ScheduleRow, error) {
	if req.Day == nil || req.Hour == nil {
		return nil, ErrInvalidSlot
	}
	if !validSlot(*req.Day, *req.Hour, req.Minute) {
		return nil, ErrInvalidSlot
	}

	var anime models.Anime
	if err := s.db.Where("id = ? AND user_id = ?", req.AnimeID, userID).First(&anime).Error; err != nil {
		return nil, ErrAnimeNotFound
	}

	var existing models.Schedule
	err := s.db.Where("user_id = ? AND anime_id = ? AND day = ? AND hour = ? AND minute = ?",
		userID, req.AnimeID, *req.Day, *req.Hour, req.Minute).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateSlot
	}

	enabled := true
	if req.NotificationEnabled != nil {
		enabled = *req.NotificationEnabled
	}

	schedule := models.Schedule{
		UserID:              userID,
		AnimeID:             req.AnimeID,
		Day:                 *req.Day,
		Hour:                *req.Hour,
		Minute:              req.Minute,
		NotificationEnabled: enabled,
	}

	if err := s.db.Create(&schedule).Error; err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}

	return &ScheduleRow{Schedule: schedule, AnimeNombre: anime.Nombre}, nil
}

// Update toggles the notification flag on a schedule owned by userID.
func (s *ScheduleService) Update(id, userID uint, enabled bool) (*ScheduleRow, error) {
	result := s.db.Model(&models.Schedule{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("notification_enabled", enabled)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrScheduleNotFound
	}

	var row ScheduleRow
	err := s.db.Model(&models.Schedule{}).
		Select("schedules.*, animes.nombre AS anime_nombre").
		Joins("JOIN animes ON animes.id = schedules.anime_id").
		Where("schedules.id = ?", id).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *ScheduleService) Delete(id, userID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Schedule{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete schedule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

// DueSchedules implements notifier.Source: every enabled schedule stored
// at exactly the given slot, joined with the anime title and owner email.
func (s *ScheduleService) DueSchedules(ctx context.Context, slot notifier.Slot) ([]notifier.Match, error) {
	var rows []struct {
		ID          uint
		UserID      uint
		Email       string
		AnimeNombre string
	}

	err := s.db.WithContext(ctx).Model(&models.Schedule{}).
		Select("schedules.id, schedules.user_id, users.email, animes.nombre AS anime_nombre").
		Joins("JOIN animes ON animes.id = schedules.anime_id").
		Joins("JOIN users ON users.id = schedules.user_id").
		Where("schedules.day = ? AND schedules.hour = ? AND schedules.minute = ? AND schedules.notification_enabled = ?",
			slot.Day, slot.Hour, slot.Minute, true).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	matches := make([]notifier.Match, len(rows))
	for i, row := range rows {
		matches[i] = notifier.Match{
			ScheduleID: row.ID,
			UserID:     row.UserID,
			Email:      row.Email,
			AnimeName:  row.AnimeNombre,
			Slot:       slot,
		}
	}
	return matches, nil
}

func validSlot(day, hour, minute int) bool {
	if day < 0 || day > 6 || hour < 0 || hour > 23 {
		return false
	}
	return minute == 0 || minute == 15 || minute == 30 || minute == 45
}
