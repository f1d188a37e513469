package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"pets-api/internal/domain/posts"
)

type postRepo struct {
	s *Store
}

func (r *postRepo) Create(ctx context.Context, p posts.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("post id required")
	}
	if _, exists := r.s.posts[p.ID]; exists {
		return errors.New("post already exists")
	}
	p.Likes = p.Likes.Clone()
	r.s.posts[p.ID] = p
	return nil
}

func (r *postRepo) GetByID(ctx context.Context, id string) (posts.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return posts.Post{}, posts.ErrNotFound
	}
	p.Likes = p.Likes.Clone()
	return p, nil
}

func (r *postRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.posts[id]; !exists {
		return posts.ErrNotFound
	}
	delete(r.s.posts, id)
	return nil
}

// Toggle muta el like set bajo el write lock del store, así dos toggles
// concurrentes del mismo par (post, pet) se serializan siempre.
func (r *postRepo) Toggle(ctx context.Context, postID, petID string) (bool, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[postID]
	if !ok {
		return false, 0, posts.ErrNotFound
	}
	if p.Likes.Contains(petID) {
		p.Likes.Remove(petID)
	} else {
		p.Likes.Add(petID)
	}
	r.s.posts[postID] = p
	return p.Likes.Contains(petID), p.LikeCount(), nil
}

func (r *postRepo) ListPage(ctx context.Context, page, size int) (posts.Page, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := r.filter(func(posts.Post) bool { return true })
	total := len(all)
	totalPages := (total + size - 1) / size

	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return posts.Page{
		Content:    all[start:end],
		Number:     page,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

func (r *postRepo) ListByPet(ctx context.Context, petID string) ([]posts.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.filter(func(p posts.Post) bool { return p.PetID == petID }), nil
}

func (r *postRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]posts.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	owned := r.s.ownerPetIDs(ownerEmail)
	return r.filter(func(p posts.Post) bool {
		_, ok := owned[p.PetID]
		return ok
	}), nil
}

func (r *postRepo) CountByPet(ctx context.Context, petID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, p := range r.s.posts {
		if p.PetID == petID {
			n++
		}
	}
	return n, nil
}

// filter recorre, clona los like sets y ordena por created_at desc.
// El caller debe tener el lock.
func (r *postRepo) filter(keep func(posts.Post) bool) []posts.Post {
	out := make([]posts.Post, 0)
	for _, p := range r.s.posts {
		if keep(p) {
			p.Likes = p.Likes.Clone()
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
