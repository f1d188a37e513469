package vaccinations

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, v Vaccination) error
	GetByID(ctx context.Context, id string) (Vaccination, error)
	Update(ctx context.Context, v Vaccination) error
	Delete(ctx context.Context, id string) error

	// Todos los listados ordenan por next_due_date ascendente.
	ListByPet(ctx context.Context, petID string) ([]Vaccination, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]Vaccination, error)
	ListOverdue(ctx context.Context, today time.Time) ([]Vaccination, error)
	ListOverdueByOwner(ctx context.Context, ownerEmail string, today time.Time) ([]Vaccination, error)
	ListOverdueByPet(ctx context.Context, petID string, today time.Time) ([]Vaccination, error)
	ListDueSoon(ctx context.Context, today time.Time) ([]Vaccination, error)
	ListDueSoonByOwner(ctx context.Context, ownerEmail string, today time.Time) ([]Vaccination, error)
	ListDueSoonByPet(ctx context.Context, petID string, today time.Time) ([]Vaccination, error)
}
