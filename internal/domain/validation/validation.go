// Package validation define el error de validación con campo y los
// checks que antes vivían en anotaciones declarativas: ahora son código
// explícito que los services invocan antes de persistir.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Error identifica el campo que violó una restricción.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Errorf(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

var (
	// Mismo patrón que aceptaba el sistema original.
	phoneRe = regexp.MustCompile(`^\+?[0-9\s\-()]{7,20}$`)
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

func NonBlank(field, value string) *Error {
	if strings.TrimSpace(value) == "" {
		return Errorf(field, "es obligatorio")
	}
	return nil
}

func MaxLen(field, value string, max int) *Error {
	if utf8.RuneCountInString(value) > max {
		return Errorf(field, "no puede tener más de %d caracteres", max)
	}
	return nil
}

func Phone(field, value string) *Error {
	if !phoneRe.MatchString(strings.TrimSpace(value)) {
		return Errorf(field, "formato de teléfono inválido")
	}
	return nil
}

func Email(field, value string) *Error {
	if !emailRe.MatchString(strings.TrimSpace(value)) {
		return Errorf(field, "formato de email inválido")
	}
	return nil
}

func Range(field string, value, min, max float64) *Error {
	if value < min || value > max {
		return Errorf(field, "debe estar entre %g y %g", min, max)
	}
	return nil
}

func PastDate(field string, value, now time.Time) *Error {
	if value.IsZero() {
		return Errorf(field, "es obligatorio")
	}
	if !value.Before(now) {
		return Errorf(field, "debe ser en el pasado")
	}
	return nil
}

// First devuelve el primer error no-nil, para encadenar checks.
func First(errs ...*Error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}
