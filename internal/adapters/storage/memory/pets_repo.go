package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"pets-api/internal/domain/pets"
)

type petRepo struct {
	s *Store
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.s.pets[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.s.pets[p.ID] = p
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.pets[p.ID]; !exists {
		return pets.ErrNotFound
	}
	r.s.pets[p.ID] = p
	return nil
}

// Delete borra la mascota y sus events, vaccinations y posts dentro de
// la misma sección crítica, así ningún lector ve un estado intermedio.
// Los likes que la mascota dejó en posts ajenos no se tocan.
func (r *petRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.pets[id]; !exists {
		return pets.ErrNotFound
	}
	delete(r.s.pets, id)

	for eid, e := range r.s.events {
		if e.PetID == id {
			delete(r.s.events, eid)
		}
	}
	for vid, v := range r.s.vaccinations {
		if v.PetID == id {
			delete(r.s.vaccinations, vid)
		}
	}
	for pid, p := range r.s.posts {
		if p.PetID == id {
			delete(r.s.posts, pid)
		}
	}
	return nil
}

func (r *petRepo) SetImage(ctx context.Context, id string, data []byte) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.ErrNotFound
	}
	p.ImageData = data
	r.s.pets[id] = p
	return nil
}

func (r *petRepo) List(ctx context.Context) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.filter(func(pets.Pet) bool { return true }), nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.filter(func(p pets.Pet) bool { return p.OwnerEmail == ownerEmail }), nil
}

func (r *petRepo) ListBySpecies(ctx context.Context, species pets.Species) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.filter(func(p pets.Pet) bool { return p.Species == species }), nil
}

func (r *petRepo) SearchByBreed(ctx context.Context, breed string) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.filter(func(p pets.Pet) bool { return strings.Contains(p.Breed, breed) }), nil
}

func (r *petRepo) SearchByName(ctx context.Context, name string) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.filter(func(p pets.Pet) bool { return strings.Contains(p.Name, name) }), nil
}

// filter recorre y ordena por created_at asc. El caller debe tener el lock.
func (r *petRepo) filter(keep func(pets.Pet) bool) []pets.Pet {
	out := make([]pets.Pet, 0)
	for _, p := range r.s.pets {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
