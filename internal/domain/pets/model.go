package pets

import (
	"time"

	"pets-api/internal/platform/dates"
)

// Species define las especies soportadas.
// @Enum dog, cat, bird, rabbit, fish, other
type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesBird   Species = "bird"
	SpeciesRabbit Species = "rabbit"
	SpeciesFish   Species = "fish"
	SpeciesOther  Species = "other"
)

// SpeciesInfo es metadata de presentación. Vive fuera del modelo: la
// lógica de dominio nunca la consulta.
type SpeciesInfo struct {
	Label string
	Icon  string
}

var SpeciesMeta = map[Species]SpeciesInfo{
	SpeciesDog:    {Label: "Perro", Icon: "dog"},
	SpeciesCat:    {Label: "Gato", Icon: "cat"},
	SpeciesBird:   {Label: "Ave", Icon: "bird"},
	SpeciesRabbit: {Label: "Conejo", Icon: "rabbit"},
	SpeciesFish:   {Label: "Pez", Icon: "fish"},
	SpeciesOther:  {Label: "Otro", Icon: "pawprint"},
}

func ValidSpecies(s Species) bool {
	_, ok := SpeciesMeta[s]
	return ok
}

// Pet es la raíz del agregado: events, vaccinations y posts no
// sobreviven a su mascota (borrado en cascada vía Repository.Delete).
type Pet struct {
	ID string

	Name    string
	Species Species
	Breed   string

	BirthDate time.Time // solo fecha
	WeightKg  float64
	Color     string

	MicrochipNumber string
	PhotoURL        string
	ImageData       []byte

	OwnerName  string
	OwnerPhone string
	OwnerEmail string

	CreatedAt time.Time
}

// Age devuelve la edad en años como diferencia de año calendario.
// Nunca se persiste: se recalcula en cada lectura.
func (p Pet) Age(today time.Time) int {
	if p.BirthDate.IsZero() {
		return 0
	}
	return dates.YearsBetween(p.BirthDate, today)
}

// AgeInMonths devuelve los meses completos desde el nacimiento.
func (p Pet) AgeInMonths(today time.Time) int {
	if p.BirthDate.IsZero() {
		return 0
	}
	return dates.MonthsBetween(p.BirthDate, today)
}
