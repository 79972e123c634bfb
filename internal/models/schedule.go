package models

import "time"

// Schedule is a weekly time slot for an anime: day 0-6 (Monday=0),
// hour 0-23, minute restricted to quarter hours. The slot tuple is
// unique per user and anime.
type Schedule struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	UserID              uint      `gorm:"not null;uniqueIndex:idx_schedules_slot" json:"user_id"`
	AnimeID             uint      `gorm:"not null;uniqueIndex:idx_schedules_slot" json:"anime_id"`
	Day                 int       `gorm:"not null;uniqueIndex:idx_schedules_slot" json:"day"`
	Hour                int       `gorm:"not null;uniqueIndex:idx_schedules_slot" json:"hour"`
	Minute              int       `gorm:"not null;default:0;uniqueIndex:idx_schedules_slot" json:"minute"`
	NotificationEnabled bool      `gorm:"default:true" json:"notification_enabled"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
	User                User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Anime               Anime     `gorm:"foreignKey:AnimeID;constraint:OnDelete:CASCADE" json:"-"`
}
