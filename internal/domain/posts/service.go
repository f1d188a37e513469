package posts

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
	ErrNotFound     = errors.New("post not found")
	ErrPetNotFound  = errors.New("pet not found")
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
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

// Create persiste un post nuevo con el like set vacío.
func (s *Service) Create(ctx context.Context, petID string, imageData []byte) (Post, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Post{}, validation.Errorf("pet_id", "es obligatorio")
	}
	if len(imageData) == 0 {
		return Post{}, validation.Errorf("image", "imagen vacía")
	}

	ok, err := s.pets.Exists(ctx, petID)
	if err != nil {
		return Post{}, err
	}
	if !ok {
		return Post{}, ErrPetNotFound
	}

	p := Post{
		ID:        uuid.NewString(),
		PetID:     petID,
		ImageData: imageData,
		Likes:     NewLikeSet(),
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Post{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Post, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Post{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// GetImage devuelve los bytes crudos; ErrNotFound si el post no existe
// o no tiene imagen.
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

// ToggleLike es la única operación que muta likes: agrega el id si no
// está, lo quita si está. Aplicada dos veces con los mismos argumentos
// deja el post exactamente como estaba.
func (s *Service) ToggleLike(ctx context.Context, postID, petID string) (liked bool, likeCount int, err error) {
	postID = strings.TrimSpace(postID)
	petID = strings.TrimSpace(petID)
	if postID == "" {
		return false, 0, ErrNotFound
	}
	if petID == "" {
		return false, 0, validation.Errorf("pet_id", "es obligatorio")
	}
	return s.repo.Toggle(ctx, postID, petID)
}

// ListPage devuelve la página pedida del listado global (base cero).
// size fuera de rango cae al default.
func (s *Service) ListPage(ctx context.Context, page, size int) (Page, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return s.repo.ListPage(ctx, page, size)
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Post, error) {
	return s.repo.ListByPet(ctx, strings.TrimSpace(petID))
}

func (s *Service) ListByOwner(ctx context.Context, ownerEmail string) ([]Post, error) {
	return s.repo.ListByOwner(ctx, strings.TrimSpace(ownerEmail))
}

func (s *Service) CountByPet(ctx context.Context, petID string) (int, error) {
	return s.repo.CountByPet(ctx, strings.TrimSpace(petID))
}
