package models

import "time"

// Estados an anime entry can be in. Calificacion only carries meaning
// once the entry is "completado".
var AnimeEstados = []string{"viendo", "completado", "pausado", "abandonado", "planeado"}

type Anime struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	Nombre          string    `gorm:"size:255;not null" json:"nombre"`
	ImagenURL       string    `gorm:"size:500" json:"imagen_url"`
	Tipo            string    `gorm:"size:50;default:'Desconocido'" json:"tipo"`
	CapitulosVistos int       `gorm:"default:0" json:"capitulos_vistos"`
	Estado          string    `gorm:"size:20;default:'viendo'" json:"estado"`
	Calificacion    *int      `json:"calificacion"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	User            User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func ValidEstado(estado string) bool {
	for _, e := range AnimeEstados {
		if e == estado {
			return true
		}
	}
	return false
}
