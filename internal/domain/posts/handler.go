package posts

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"pets-api/internal/domain/validation"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/posts", func(pr chi.Router) {
		pr.Get("/", listPostsPageHandler(svc))
		pr.Post("/", createPostHandler(svc))

		pr.Get("/pet/{petID}", listPostsByPetHandler(svc))
		pr.Get("/pet/{petID}/count", countPostsByPetHandler(svc))
		pr.Get("/owner/{email}", listPostsByOwnerHandler(svc))

		pr.Get("/{postID}", getPostHandler(svc))
		pr.Delete("/{postID}", deletePostHandler(svc))
		pr.Get("/{postID}/image", getPostImageHandler(svc))
		pr.Post("/{postID}/like", toggleLikeHandler(svc))
	})
}

type postResponse struct {
	ID        string    `json:"id"`
	PetID     string    `json:"pet_id"`
	CreatedAt time.Time `json:"created_at"`
	LikedBy   []string  `json:"liked_by"`
	LikeCount int       `json:"like_count"`
}

type postPageResponse struct {
	Posts       []postResponse `json:"posts"`
	CurrentPage int            `json:"current_page"`
	TotalItems  int            `json:"total_items"`
	TotalPages  int            `json:"total_pages"`
}

type toggleLikeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

func createPostHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := r.FormValue("petId")

		file, _, err := r.FormFile("image")
		if err != nil {
			http.Error(w, "image file required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		p, err := svc.Create(r.Context(), petID, data)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPostResponse(p))
	}
}

func getPostHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "postID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPostResponse(p))
	}
}

func deletePostHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "postID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func getPostImageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := svc.GetImage(r.Context(), chi.URLParam(r, "postID"))
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(data)
	}
}

func toggleLikeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		liked, count, err := svc.ToggleLike(r.Context(), chi.URLParam(r, "postID"), r.URL.Query().Get("petId"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toggleLikeResponse{Liked: liked, LikeCount: count})
	}
}

func listPostsPageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size, _ := strconv.Atoi(r.URL.Query().Get("size"))

		pg, err := svc.ListPage(r.Context(), page, size)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]postResponse, 0, len(pg.Content))
		for _, p := range pg.Content {
			out = append(out, toPostResponse(p))
		}

		writeJSON(w, http.StatusOK, postPageResponse{
			Posts:       out,
			CurrentPage: pg.Number,
			TotalItems:  pg.TotalItems,
			TotalPages:  pg.TotalPages,
		})
	}
}

func listPostsByPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByPet(r.Context(), chi.URLParam(r, "petID"))
		writePostList(w, items, err)
	}
}

func listPostsByOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByOwner(r.Context(), chi.URLParam(r, "email"))
		writePostList(w, items, err)
	}
}

func countPostsByPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := svc.CountByPet(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"count": count})
	}
}

func writePostList(w http.ResponseWriter, items []Post, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]postResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPostResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func toPostResponse(p Post) postResponse {
	return postResponse{
		ID:        p.ID,
		PetID:     p.PetID,
		CreatedAt: p.CreatedAt,
		LikedBy:   p.Likes.IDs(),
		LikeCount: p.LikeCount(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var ve *validation.Error
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"field": ve.Field,
			"error": ve.Message,
		})
	case errors.Is(err, ErrPetNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "post not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
