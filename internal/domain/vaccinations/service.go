package vaccinations

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
	ErrNotFound     = errors.New("vaccination not found")
	ErrPetNotFound  = errors.New("pet not found")
)

// PetChecker verifica que la mascota referenciada exista.
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
	Name         string
	Date         time.Time
	NextDueDate  time.Time
	Veterinarian string
	Clinic       string
	Notes        string
}

func validate(in Input) error {
	if err := validation.First(
		validation.NonBlank("name", in.Name),
		validation.MaxLen("name", in.Name, 100),
		validation.MaxLen("veterinarian", in.Veterinarian, 100),
		validation.MaxLen("clinic", in.Clinic, 200),
		validation.MaxLen("notes", in.Notes, 500),
	); err != nil {
		return err
	}
	if in.Date.IsZero() {
		return validation.Errorf("date", "es obligatoria")
	}
	if in.NextDueDate.IsZero() {
		return validation.Errorf("next_due_date", "es obligatoria")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, petID string, in Input) (Vaccination, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Vaccination{}, validation.Errorf("pet_id", "es obligatorio")
	}
	if err := validate(in); err != nil {
		return Vaccination{}, err
	}

	ok, err := s.pets.Exists(ctx, petID)
	if err != nil {
		return Vaccination{}, err
	}
	if !ok {
		return Vaccination{}, ErrPetNotFound
	}

	v := Vaccination{
		ID:           uuid.NewString(),
		PetID:        petID,
		Name:         strings.TrimSpace(in.Name),
		Date:         in.Date,
		NextDueDate:  in.NextDueDate,
		Veterinarian: strings.TrimSpace(in.Veterinarian),
		Clinic:       strings.TrimSpace(in.Clinic),
		Notes:        strings.TrimSpace(in.Notes),
		CreatedAt:    s.now(),
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return Vaccination{}, err
	}
	return v, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Vaccination, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Vaccination{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (Vaccination, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Vaccination{}, err
	}
	if err := validate(in); err != nil {
		return Vaccination{}, err
	}

	current.Name = strings.TrimSpace(in.Name)
	current.Date = in.Date
	current.NextDueDate = in.NextDueDate
	current.Veterinarian = strings.TrimSpace(in.Veterinarian)
	current.Clinic = strings.TrimSpace(in.Clinic)
	current.Notes = strings.TrimSpace(in.Notes)

	if err := s.repo.Update(ctx, current); err != nil {
		return Vaccination{}, err
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

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Vaccination, error) {
	return s.repo.ListByPet(ctx, strings.TrimSpace(petID))
}

func (s *Service) ListByOwner(ctx context.Context, ownerEmail string) ([]Vaccination, error) {
	return s.repo.ListByOwner(ctx, strings.TrimSpace(ownerEmail))
}

func (s *Service) ListOverdue(ctx context.Context) ([]Vaccination, error) {
	return s.repo.ListOverdue(ctx, s.now())
}

func (s *Service) ListOverdueByOwner(ctx context.Context, ownerEmail string) ([]Vaccination, error) {
	return s.repo.ListOverdueByOwner(ctx, strings.TrimSpace(ownerEmail), s.now())
}

func (s *Service) ListOverdueByPet(ctx context.Context, petID string) ([]Vaccination, error) {
	return s.repo.ListOverdueByPet(ctx, strings.TrimSpace(petID), s.now())
}

func (s *Service) ListDueSoon(ctx context.Context) ([]Vaccination, error) {
	return s.repo.ListDueSoon(ctx, s.now())
}

func (s *Service) ListDueSoonByOwner(ctx context.Context, ownerEmail string) ([]Vaccination, error) {
	return s.repo.ListDueSoonByOwner(ctx, strings.TrimSpace(ownerEmail), s.now())
}

func (s *Service) ListDueSoonByPet(ctx context.Context, petID string) ([]Vaccination, error) {
	return s.repo.ListDueSoonByPet(ctx, strings.TrimSpace(petID), s.now())
}

// Now expone el reloj del service para los derivados de los handlers.
func (s *Service) Now() time.Time {
	return s.now()
}
