package pets

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"pets-api/internal/domain/validation"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc))
		pr.Post("/", createPetHandler(svc))

		pr.Get("/owner/{email}", listPetsByOwnerHandler(svc))
		pr.Get("/species/{species}", listPetsBySpeciesHandler(svc))
		pr.Get("/search/breed", searchPetsByBreedHandler(svc))
		pr.Get("/search/name", searchPetsByNameHandler(svc))

		pr.Get("/{petID}", getPetHandler(svc))
		pr.Put("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))

		pr.Get("/{petID}/image", getPetImageHandler(svc))
		pr.Post("/{petID}/image", uploadPetImageHandler(svc))
	})
}

type petRequest struct {
	Name            string  `json:"name"`
	Species         string  `json:"species"`
	Breed           string  `json:"breed"`
	BirthDate       string  `json:"birth_date"` // YYYY-MM-DD
	Weight          float64 `json:"weight"`
	Color           string  `json:"color"`
	MicrochipNumber string  `json:"microchip_number"`
	PhotoURL        string  `json:"photo_url"`
	OwnerName       string  `json:"owner_name"`
	OwnerPhone      string  `json:"owner_phone"`
	OwnerEmail      string  `json:"owner_email"`
}

type petResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Species         string    `json:"species"`
	SpeciesLabel    string    `json:"species_label"`
	Breed           string    `json:"breed"`
	BirthDate       string    `json:"birth_date"`
	Weight          float64   `json:"weight"`
	Color           string    `json:"color"`
	MicrochipNumber string    `json:"microchip_number,omitempty"`
	PhotoURL        string    `json:"photo_url,omitempty"`
	OwnerName       string    `json:"owner_name"`
	OwnerPhone      string    `json:"owner_phone"`
	OwnerEmail      string    `json:"owner_email"`
	CreatedAt       time.Time `json:"created_at"`

	// Derivados: se calculan al momento de responder, nunca se guardan.
	Age         int `json:"age"`
	AgeInMonths int `json:"age_in_months"`
}

func (req petRequest) toInput() (Input, error) {
	var bd time.Time
	if strings.TrimSpace(req.BirthDate) != "" {
		t, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return Input{}, validation.Errorf("birth_date", "debe ser YYYY-MM-DD")
		}
		bd = t
	}

	return Input{
		Name:            req.Name,
		Species:         req.Species,
		Breed:           req.Breed,
		BirthDate:       bd,
		WeightKg:        req.Weight,
		Color:           req.Color,
		MicrochipNumber: req.MicrochipNumber,
		PhotoURL:        req.PhotoURL,
		OwnerName:       req.OwnerName,
		OwnerPhone:      req.OwnerPhone,
		OwnerEmail:      req.OwnerEmail,
	}, nil
}

func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, err := req.toInput()
		if err != nil {
			writeError(w, err)
			return
		}

		p, err := svc.Create(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p, time.Now()))
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p, time.Now()))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, err := req.toInput()
		if err != nil {
			writeError(w, err)
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p, time.Now()))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func getPetImageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := svc.GetImage(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(data)
	}
}

func uploadPetImageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, _, err := r.FormFile("image")
		if err != nil {
			http.Error(w, "image file required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			// Fallo de I/O leyendo el multipart: falla interna, no del caller.
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if err := svc.SetImage(r.Context(), chi.URLParam(r, "petID"), data); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "imagen subida"})
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writePetList(w, items)
	}
}

func listPetsByOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByOwner(r.Context(), chi.URLParam(r, "email"))
		if err != nil {
			writeError(w, err)
			return
		}
		writePetList(w, items)
	}
}

func listPetsBySpeciesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListBySpecies(r.Context(), chi.URLParam(r, "species"))
		if err != nil {
			writeError(w, err)
			return
		}
		writePetList(w, items)
	}
}

func searchPetsByBreedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.SearchByBreed(r.Context(), r.URL.Query().Get("breed"))
		if err != nil {
			writeError(w, err)
			return
		}
		writePetList(w, items)
	}
}

func searchPetsByNameHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.SearchByName(r.Context(), r.URL.Query().Get("name"))
		if err != nil {
			writeError(w, err)
			return
		}
		writePetList(w, items)
	}
}

func writePetList(w http.ResponseWriter, items []Pet) {
	now := time.Now()
	out := make([]petResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPetResponse(p, now))
	}
	writeJSON(w, http.StatusOK, out)
}

func toPetResponse(p Pet, today time.Time) petResponse {
	return petResponse{
		ID:              p.ID,
		Name:            p.Name,
		Species:         string(p.Species),
		SpeciesLabel:    SpeciesMeta[p.Species].Label,
		Breed:           p.Breed,
		BirthDate:       p.BirthDate.Format("2006-01-02"),
		Weight:          p.WeightKg,
		Color:           p.Color,
		MicrochipNumber: p.MicrochipNumber,
		PhotoURL:        p.PhotoURL,
		OwnerName:       p.OwnerName,
		OwnerPhone:      p.OwnerPhone,
		OwnerEmail:      p.OwnerEmail,
		CreatedAt:       p.CreatedAt,
		Age:             p.Age(today),
		AgeInMonths:     p.AgeInMonths(today),
	}
}

// writeJSON y writeError se duplican en los handlers de cada módulo
// para no crear helpers compartidos antes de tiempo.
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
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
