package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"pets-api/internal/domain/vaccinations"
)

type vaccinationRepo struct {
	s *Store
}

func (r *vaccinationRepo) Create(ctx context.Context, v vaccinations.Vaccination) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(v.ID) == "" {
		return errors.New("vaccination id required")
	}
	if _, exists := r.s.vaccinations[v.ID]; exists {
		return errors.New("vaccination already exists")
	}
	r.s.vaccinations[v.ID] = v
	return nil
}

func (r *vaccinationRepo) GetByID(ctx context.Context, id string) (vaccinations.Vaccination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.vaccinations[id]
	if !ok {
		return vaccinations.Vaccination{}, vaccinations.ErrNotFound
	}
	return v, nil
}

func (r *vaccinationRepo) Update(ctx context.Context, v vaccinations.Vaccination) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.vaccinations[v.ID]; !exists {
		return vaccinations.ErrNotFound
	}
	r.s.vaccinations[v.ID] = v
	return nil
}

func (r *vaccinationRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.vaccinations[id]; !exists {
		return vaccinations.ErrNotFound
	}
	delete(r.s.vaccinations, id)
	return nil
}

func (r *vaccinationRepo) ListByPet(ctx context.Context, petID string) ([]vaccinations.Vaccination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.filter(func(v vaccinations.Vaccination) bool { return v.PetID == petID }), nil
}

func (r *vaccinationRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]vaccinations.Vaccination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	owned := r.s.ownerPetIDs(ownerEmail)
	return r.filter(func(v vaccinations.Vaccination) bool {
		_, ok := owned[v.PetID]
		return ok
	}), nil
}

func (r *vaccinationRepo) ListOverdue(ctx context.Context, today time.Time) ([]vaccinations.Vaccination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.filter(func(v vaccinations.Vaccination) bool { return v.IsOverdue(today) }), nil
}

func (r *vaccinationRepo) ListOverdueByOwner(ctx context.Context, ownerEmail string, today time.Time) ([]vaccinations.Vaccination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	owned := r.s.ownerPetIDs(ownerEmail)
	return r.filter(func(v vaccinations.Vaccination) bool {
		_, ok := owned[v.PetID]
		return ok && v.IsOverdue(today)
	}), nil
}

func (r *vaccinationRepo) ListOverdueByPet(ctx context.Context, petID string, today time.Time) ([]vaccinations.Vaccination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.filter(func(v vaccinations.Vaccination) bool {
		return v.PetID == petID && v.IsOverdue(today)
	}), nil
}

func (r *vaccinationRepo) ListDueSoon(ctx context.Context, today time.Time) ([]vaccinations.Vaccination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.filter(func(v vaccinations.Vaccination) bool { return v.IsDueSoon(today) }), nil
}

func (r *vaccinationRepo) ListDueSoonByOwner(ctx context.Context, ownerEmail string, today time.Time) ([]vaccinations.Vaccination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	owned := r.s.ownerPetIDs(ownerEmail)
	return r.filter(func(v vaccinations.Vaccination) bool {
		_, ok := owned[v.PetID]
		return ok && v.IsDueSoon(today)
	}), nil
}

func (r *vaccinationRepo) ListDueSoonByPet(ctx context.Context, petID string, today time.Time) ([]vaccinations.Vaccination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.filter(func(v vaccinations.Vaccination) bool {
		return v.PetID == petID && v.IsDueSoon(today)
	}), nil
}

// filter recorre y ordena por next_due_date asc. El caller debe tener el lock.
func (r *vaccinationRepo) filter(keep func(vaccinations.Vaccination) bool) []vaccinations.Vaccination {
	out := make([]vaccinations.Vaccination, 0)
	for _, v := range r.s.vaccinations {
		if keep(v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].NextDueDate.Before(out[j].NextDueDate)
	})
	return out
}
