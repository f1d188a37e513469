package pets

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
	ErrNotFound     = errors.New("pet not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type Input struct {
	Name            string
	Species         string
	Breed           string
	BirthDate       time.Time
	WeightKg        float64
	Color           string
	MicrochipNumber string
	PhotoURL        string
	OwnerName       string
	OwnerPhone      string
	OwnerEmail      string
}

// validate reproduce las restricciones declaradas del modelo original
// como checks explícitos campo a campo.
func (s *Service) validate(in Input) error {
	if err := validation.First(
		validation.NonBlank("name", in.Name),
		validation.MaxLen("name", in.Name, 100),
		validation.NonBlank("breed", in.Breed),
		validation.MaxLen("breed", in.Breed, 100),
		validation.NonBlank("color", in.Color),
		validation.MaxLen("color", in.Color, 50),
		validation.MaxLen("microchip_number", in.MicrochipNumber, 50),
		validation.Range("weight", in.WeightKg, 0.1, 500),
		validation.PastDate("birth_date", in.BirthDate, s.now()),
		validation.NonBlank("owner_name", in.OwnerName),
		validation.MaxLen("owner_name", in.OwnerName, 100),
		validation.NonBlank("owner_phone", in.OwnerPhone),
		validation.Phone("owner_phone", in.OwnerPhone),
		validation.NonBlank("owner_email", in.OwnerEmail),
		validation.MaxLen("owner_email", in.OwnerEmail, 100),
		validation.Email("owner_email", in.OwnerEmail),
	); err != nil {
		return err
	}

	if !ValidSpecies(Species(strings.TrimSpace(in.Species))) {
		return validation.Errorf("species", "especie desconocida: %q", in.Species)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in Input) (Pet, error) {
	if err := s.validate(in); err != nil {
		return Pet{}, err
	}

	p := Pet{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(in.Name),
		Species:         Species(strings.TrimSpace(in.Species)),
		Breed:           strings.TrimSpace(in.Breed),
		BirthDate:       in.BirthDate,
		WeightKg:        in.WeightKg,
		Color:           strings.TrimSpace(in.Color),
		MicrochipNumber: strings.TrimSpace(in.MicrochipNumber),
		PhotoURL:        strings.TrimSpace(in.PhotoURL),
		OwnerName:       strings.TrimSpace(in.OwnerName),
		OwnerPhone:      strings.TrimSpace(in.OwnerPhone),
		OwnerEmail:      strings.TrimSpace(in.OwnerEmail),
		CreatedAt:       s.now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Update sobreescribe los campos mutables. ID, CreatedAt, la imagen y
// las colecciones dependientes no se tocan.
func (s *Service) Update(ctx context.Context, id string, in Input) (Pet, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if err := s.validate(in); err != nil {
		return Pet{}, err
	}

	current.Name = strings.TrimSpace(in.Name)
	current.Species = Species(strings.TrimSpace(in.Species))
	current.Breed = strings.TrimSpace(in.Breed)
	current.BirthDate = in.BirthDate
	current.WeightKg = in.WeightKg
	current.Color = strings.TrimSpace(in.Color)
	current.MicrochipNumber = strings.TrimSpace(in.MicrochipNumber)
	current.PhotoURL = strings.TrimSpace(in.PhotoURL)
	current.OwnerName = strings.TrimSpace(in.OwnerName)
	current.OwnerPhone = strings.TrimSpace(in.OwnerPhone)
	current.OwnerEmail = strings.TrimSpace(in.OwnerEmail)

	if err := s.repo.Update(ctx, current); err != nil {
		return Pet{}, err
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

func (s *Service) SetImage(ctx context.Context, id string, data []byte) error {
	if len(data) == 0 {
		return validation.Errorf("image", "imagen vacía")
	}
	return s.repo.SetImage(ctx, strings.TrimSpace(id), data)
}

// GetImage devuelve los bytes crudos; ErrNotFound si la mascota no
// existe o no tiene imagen guardada.
func (s *Service) GetImage(ctx context.Context, id string) ([]byte, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(p.ImageData) == 0 {
		return nil, ErrNotFound
	}
	return p.ImageData, nil
}

// Exists lo usan los módulos dependientes (events, vaccinations, posts)
// para exigir que la mascota referenciada exista al crear.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByOwner(ctx context.Context, ownerEmail string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, strings.TrimSpace(ownerEmail))
}

func (s *Service) ListBySpecies(ctx context.Context, species string) ([]Pet, error) {
	sp := Species(strings.TrimSpace(species))
	if !ValidSpecies(sp) {
		return nil, validation.Errorf("species", "especie desconocida: %q", species)
	}
	return s.repo.ListBySpecies(ctx, sp)
}

func (s *Service) SearchByBreed(ctx context.Context, breed string) ([]Pet, error) {
	return s.repo.SearchByBreed(ctx, breed)
}

func (s *Service) SearchByName(ctx context.Context, name string) ([]Pet, error) {
	return s.repo.SearchByName(ctx, name)
}
