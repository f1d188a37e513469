package vaccinations

import (
	"time"

	"pets-api/internal/platform/dates"
)

// DueSoonWindowDays es la ventana inclusiva [hoy, hoy+30] para marcar
// vacunas que necesitan atención inminente.
const DueSoonWindowDays = 30

// Vaccination es el registro de una dosis aplicada a una mascota.
type Vaccination struct {
	ID    string
	PetID string

	Name        string
	Date        time.Time // fecha de aplicación
	NextDueDate time.Time // próxima dosis

	Veterinarian string
	Clinic       string
	Notes        string

	CreatedAt time.Time
}

// DaysUntilDue devuelve los días hasta la próxima dosis; negativo si venció.
func (v Vaccination) DaysUntilDue(today time.Time) int {
	return dates.DaysBetween(today, v.NextDueDate)
}

// IsOverdue indica si la próxima dosis ya venció (nextDueDate < hoy).
func (v Vaccination) IsOverdue(today time.Time) bool {
	return v.DaysUntilDue(today) < 0
}

// IsDueSoon indica si la próxima dosis cae dentro de la ventana.
// Requiere días no negativos, así que nunca coincide con IsOverdue.
func (v Vaccination) IsDueSoon(today time.Time) bool {
	d := v.DaysUntilDue(today)
	return d >= 0 && d <= DueSoonWindowDays
}
