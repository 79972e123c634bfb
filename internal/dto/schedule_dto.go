package dto

type CreateScheduleRequest struct {
	AnimeID             uint  `json:"anime_id"`
	Day                 *int  `json:"day"`
	Hour                *int  `json:"hour"`
	Minute              int   `json:"minute"`
	NotificationEnabled *bool `json:"notification_enabled"`
}

type UpdateScheduleRequest struct {
	NotificationEnabled bool `json:"notification_enabled"`
}
