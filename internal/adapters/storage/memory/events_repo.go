package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"pets-api/internal/domain/events"
)

type eventRepo struct {
	s *Store
}

func (r *eventRepo) Create(ctx context.Context, e events.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("event id required")
	}
	if _, exists := r.s.events[e.ID]; exists {
		return errors.New("event already exists")
	}
	r.s.events[e.ID] = e
	return nil
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (events.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.events[id]
	if !ok {
		return events.Event{}, events.ErrNotFound
	}
	return e, nil
}

func (r *eventRepo) Update(ctx context.Context, e events.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.events[e.ID]; !exists {
		return events.ErrNotFound
	}
	r.s.events[e.ID] = e
	return nil
}

func (r *eventRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.events[id]; !exists {
		return events.ErrNotFound
	}
	delete(r.s.events, id)
	return nil
}

func (r *eventRepo) ListByPet(ctx context.Context, petID string) ([]events.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.filter(func(e events.Event) bool { return e.PetID == petID }), nil
}

func (r *eventRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]events.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	owned := r.s.ownerPetIDs(ownerEmail)
	return r.filter(func(e events.Event) bool {
		_, ok := owned[e.PetID]
		return ok
	}), nil
}

func (r *eventRepo) ListUpcoming(ctx context.Context, today time.Time) ([]events.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.filter(func(e events.Event) bool { return e.IsUpcoming(today) }), nil
}

func (r *eventRepo) ListUpcomingByOwner(ctx context.Context, ownerEmail string, today time.Time) ([]events.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	owned := r.s.ownerPetIDs(ownerEmail)
	return r.filter(func(e events.Event) bool {
		_, ok := owned[e.PetID]
		return ok && e.IsUpcoming(today)
	}), nil
}

func (r *eventRepo) ListUpcomingByPet(ctx context.Context, petID string, today time.Time) ([]events.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.filter(func(e events.Event) bool {
		return e.PetID == petID && e.IsUpcoming(today)
	}), nil
}

func (r *eventRepo) ListByTypeAndOwner(ctx context.Context, t events.EventType, ownerEmail string) ([]events.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	owned := r.s.ownerPetIDs(ownerEmail)
	return r.filter(func(e events.Event) bool {
		_, ok := owned[e.PetID]
		return ok && e.Type == t
	}), nil
}

// filter recorre y ordena por date asc. El caller debe tener el lock.
func (r *eventRepo) filter(keep func(events.Event) bool) []events.Event {
	out := make([]events.Event, 0)
	for _, e := range r.s.events {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
