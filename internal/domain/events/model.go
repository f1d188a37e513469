package events

import (
	"time"

	"pets-api/internal/platform/dates"
)

// Event es una actividad agendada o pasada de una mascota. PetID es
// inmutable después de la creación.
type Event struct {
	ID    string
	PetID string

	Title string
	Date  time.Time // solo fecha
	Type  EventType

	Description string
	Location    string
	Contact     string

	CreatedAt time.Time
}

// IsUpcoming indica si el evento es hoy o futuro.
func (e Event) IsUpcoming(today time.Time) bool {
	return dates.SameOrAfter(e.Date, today)
}

// DaysUntilEvent devuelve los días hasta el evento; negativo si ya pasó.
func (e Event) DaysUntilEvent(today time.Time) int {
	return dates.DaysBetween(today, e.Date)
}
