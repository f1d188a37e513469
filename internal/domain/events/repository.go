package events

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, e Event) error
	GetByID(ctx context.Context, id string) (Event, error)
	Update(ctx context.Context, e Event) error
	Delete(ctx context.Context, id string) error

	// Todos los listados ordenan por date ascendente.
	ListByPet(ctx context.Context, petID string) ([]Event, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]Event, error)
	ListUpcoming(ctx context.Context, today time.Time) ([]Event, error)
	ListUpcomingByOwner(ctx context.Context, ownerEmail string, today time.Time) ([]Event, error)
	ListUpcomingByPet(ctx context.Context, petID string, today time.Time) ([]Event, error)
	ListByTypeAndOwner(ctx context.Context, t EventType, ownerEmail string) ([]Event, error)
}
