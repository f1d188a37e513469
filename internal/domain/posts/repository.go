package posts

import "context"

// Page es una página del listado global, orden createdAt descendente.
type Page struct {
	Content    []Post
	Number     int // índice de página, base cero
	TotalItems int
	TotalPages int
}

type Repository interface {
	Create(ctx context.Context, p Post) error
	GetByID(ctx context.Context, id string) (Post, error)
	Delete(ctx context.Context, id string) error

	// Toggle invierte la presencia de petID en el like set del post y
	// devuelve el estado resultante. La mutación se serializa por post:
	// dos toggles concurrentes del mismo par (post, pet) no pueden
	// aterrizar ambos como like ni ambos como unlike.
	Toggle(ctx context.Context, postID, petID string) (liked bool, likeCount int, err error)

	ListPage(ctx context.Context, page, size int) (Page, error)
	ListByPet(ctx context.Context, petID string) ([]Post, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]Post, error)
	CountByPet(ctx context.Context, petID string) (int, error)
}
