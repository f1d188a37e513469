package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	Update(ctx context.Context, p Pet) error

	// Delete elimina la mascota y, en la misma unidad atómica, todos sus
	// events, vaccinations y posts (con sus likes).
	Delete(ctx context.Context, id string) error

	SetImage(ctx context.Context, id string, data []byte) error

	List(ctx context.Context) ([]Pet, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]Pet, error)
	ListBySpecies(ctx context.Context, species Species) ([]Pet, error)

	// Las búsquedas son por substring, case-sensitive en ambos adapters.
	SearchByBreed(ctx context.Context, breed string) ([]Pet, error)
	SearchByName(ctx context.Context, name string) ([]Pet, error)
}
