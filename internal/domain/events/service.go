package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"pets-api/internal/domain/validation"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("event not found")
	ErrPetNotFound  = errors.New("pet not found")
)

// PetChecker verifica que la mascota referenciada exista.
// Lo implementa pets.Service.
type PetChecker interface {
	Exists(ctx context.Context, petID string) (bool, error)
}

type Service struct {
	repo Repository
	pets PetChecker
	now  func() time.Time
}

func NewService(repo Repository, pets PetChecker) *Service {
	return &Service{
		repo: repo,
		pets: pets,
		now:  time.Now,
	}
}

type Input struct {
	Title       string
	Date        time.Time
	Type        string
	Description string
	Location    string
	Contact     string
}

func validate(in Input) error {
	if err := validation.First(
		validation.NonBlank("title", in.Title),
		validation.MaxLen("title", in.Title, 200),
		validation.MaxLen("description", in.Description, 500),
		validation.MaxLen("location", in.Location, 200),
		validation.MaxLen("contact", in.Contact, 100),
	); err != nil {
		return err
	}
	if in.Date.IsZero() {
		return validation.Errorf("date", "es obligatoria")
	}
	if !ValidEventType(EventType(strings.TrimSpace(in.Type))) {
		return validation.Errorf("event_type", "tipo desconocido: %q", in.Type)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, petID string, in Input) (Event, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Event{}, validation.Errorf("pet_id", "es obligatorio")
	}
	if err := validate(in); err != nil {
		return Event{}, err
	}

	ok, err := s.pets.Exists(ctx, petID)
	if err != nil {
		return Event{}, err
	}
	if !ok {
		return Event{}, ErrPetNotFound
	}

	e := Event{
		ID:          uuid.NewString(),
		PetID:       petID,
		Title:       strings.TrimSpace(in.Title),
		Date:        in.Date,
		Type:        EventType(strings.TrimSpace(in.Type)),
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
		Contact:     strings.TrimSpace(in.Contact),
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Event{}, err
	}
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Event{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Update sobreescribe los campos mutables; PetID, ID y CreatedAt no se tocan.
func (s *Service) Update(ctx context.Context, id string, in Input) (Event, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Event{}, err
	}
	if err := validate(in); err != nil {
		return Event{}, err
	}

	current.Title = strings.TrimSpace(in.Title)
	current.Date = in.Date
	current.Type = EventType(strings.TrimSpace(in.Type))
	current.Description = strings.TrimSpace(in.Description)
	current.Location = strings.TrimSpace(in.Location)
	current.Contact = strings.TrimSpace(in.Contact)

	if err := s.repo.Update(ctx, current); err != nil {
		return Event{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Event, error) {
	return s.repo.ListByPet(ctx, strings.TrimSpace(petID))
}

func (s *Service) ListByOwner(ctx context.Context, ownerEmail string) ([]Event, error) {
	return s.repo.ListByOwner(ctx, strings.TrimSpace(ownerEmail))
}

func (s *Service) ListUpcoming(ctx context.Context) ([]Event, error) {
	return s.repo.ListUpcoming(ctx, s.now())
}

func (s *Service) ListUpcomingByOwner(ctx context.Context, ownerEmail string) ([]Event, error) {
	return s.repo.ListUpcomingByOwner(ctx, strings.TrimSpace(ownerEmail), s.now())
}

func (s *Service) ListUpcomingByPet(ctx context.Context, petID string) ([]Event, error) {
	return s.repo.ListUpcomingByPet(ctx, strings.TrimSpace(petID), s.now())
}

func (s *Service) ListByTypeAndOwner(ctx context.Context, eventType, ownerEmail string) ([]Event, error) {
	t := EventType(strings.TrimSpace(eventType))
	if !ValidEventType(t) {
		return nil, validation.Errorf("event_type", "tipo desconocido: %q", eventType)
	}
	return s.repo.ListByTypeAndOwner(ctx, t, strings.TrimSpace(ownerEmail))
}

// Now expone el reloj del service para que los handlers calculen los
// derivados con la misma referencia de "hoy".
func (s *Service) Now() time.Time {
	return s.now()
}
