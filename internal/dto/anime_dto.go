package dto

type CreateAnimeRequest struct {
	Nombre          string `json:"nombre"`
	Tipo            string `json:"tipo"`
	CapitulosVistos int    `json:"capitulos_vistos"`
}

// UpdateAnimeRequest carries a partial update: nil fields keep their
// stored values. Clearing calificacion is done by setting estado to a
// non-completed state, not by sending null.
type UpdateAnimeRequest struct {
	Nombre          *string `json:"nombre"`
	Tipo            *string `json:"tipo"`
	CapitulosVistos *int    `json:"capitulos_vistos"`
	Estado          *string `json:"estado"`
	Calificacion    *int    `json:"calificacion"`
}
