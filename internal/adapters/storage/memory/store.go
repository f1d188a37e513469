// Package memory implementa los repositorios sobre mapas en memoria.
// Pensado para desarrollo y tests; no persiste nada.
package memory

import (
	"sync"

	"pets-api/internal/domain/events"
	"pets-api/internal/domain/pets"
	"pets-api/internal/domain/posts"
	"pets-api/internal/domain/vaccinations"
)

// Store agrupa las cuatro colecciones bajo un único lock. Un lock
// compartido simplifica las operaciones que cruzan entidades: el
// borrado en cascada de una mascota y los listados por dueño, que
// necesitan resolver el email contra la colección de mascotas.
type Store struct {
	mu sync.RWMutex

	pets         map[string]pets.Pet
	events       map[string]events.Event
	vaccinations map[string]vaccinations.Vaccination
	posts        map[string]posts.Post
}

func NewStore() *Store {
	return &Store{
		pets:         make(map[string]pets.Pet),
		events:       make(map[string]events.Event),
		vaccinations: make(map[string]vaccinations.Vaccination),
		posts:        make(map[string]posts.Post),
	}
}

func (s *Store) Pets() pets.Repository {
	return &petRepo{s: s}
}

func (s *Store) Events() events.Repository {
	return &eventRepo{s: s}
}

func (s *Store) Vaccinations() vaccinations.Repository {
	return &vaccinationRepo{s: s}
}

func (s *Store) Posts() posts.Repository {
	return &postRepo{s: s}
}

// ownerPetIDs resuelve los ids de mascotas de un dueño. El caller debe
// tener el lock.
func (s *Store) ownerPetIDs(ownerEmail string) map[string]struct{} {
	ids := make(map[string]struct{})
	for id, p := range s.pets {
		if p.OwnerEmail == ownerEmail {
			ids[id] = struct{}{}
		}
	}
	return ids
}
