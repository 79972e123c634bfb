package notifier

import "fmt"

// Spanish day names, indexed Monday=0 through Sunday=6 like the stored
// schedule rows.
var dayNames = []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

// Slot identifies a recurring weekly point in time.
type Slot struct {
	Day    int // 0-6, Monday=0
	Hour   int // 0-23
	Minute int // 0-59
}

// Label renders the slot for notification bodies, e.g. "Lunes 13:30".
func (s Slot) Label() string {
	return fmt.Sprintf("%s %02d:%02d", dayNames[s.Day], s.Hour, s.Minute)
}

// Next returns the slot one minute after s, carrying across the
// minute, hour and day boundaries (week wraps Sunday into Monday).
func (s Slot) Next() Slot {
	next := Slot{Day: s.Day, Hour: s.Hour, Minute: s.Minute + 1}
	if next.Minute == 60 {
		next.Minute = 0
		next.Hour = (s.Hour + 1) % 24
		if next.Hour == 0 {
			next.Day = (s.Day + 1) % 7
		}
	}
	return next
}
