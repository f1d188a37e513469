// Package dates agrupa los cálculos de fechas derivadas del modelo.
// Todas las funciones son puras: reciben "today" como parámetro explícito
// para que los campos calculados sean deterministas en tests.
package dates

import "time"

// Normalize trunca el instante a medianoche UTC. Los campos de tipo
// fecha (birth_date, date, next_due_date) se comparan siempre así.
func Normalize(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// YearsBetween devuelve la diferencia de año calendario entre birth y today.
// No ajusta por si el cumpleaños ya ocurrió este año: reproduce el valor
// que el sistema siempre reportó como "age".
func YearsBetween(birth, today time.Time) int {
	return today.UTC().Year() - birth.UTC().Year()
}

// MonthsBetween devuelve los meses completos transcurridos entre birth y today.
func MonthsBetween(birth, today time.Time) int {
	b := Normalize(birth)
	d := Normalize(today)

	months := (d.Year()-b.Year())*12 + int(d.Month()) - int(b.Month())
	if d.Day() < b.Day() {
		months--
	}
	return months
}

// DaysBetween devuelve la diferencia en días entre from y to (negativa si
// to es anterior a from). Ambas fechas se normalizan primero.
func DaysBetween(from, to time.Time) int {
	f := Normalize(from)
	t := Normalize(to)
	return int(t.Sub(f).Hours() / 24)
}

// SameOrAfter indica si date >= ref, comparando solo la fecha.
func SameOrAfter(date, ref time.Time) bool {
	return !Normalize(date).Before(Normalize(ref))
}
