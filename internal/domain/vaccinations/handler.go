package vaccinations

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pets-api/internal/domain/validation"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/vaccinations", func(vr chi.Router) {
		vr.Post("/", createVaccinationHandler(svc))

		vr.Get("/pet/{petID}", listByPetHandler(svc))
		vr.Get("/owner/{email}", listByOwnerHandler(svc))
		vr.Get("/overdue", listOverdueHandler(svc))
		vr.Get("/overdue/owner/{email}", listOverdueByOwnerHandler(svc))
		vr.Get("/overdue/pet/{petID}", listOverdueByPetHandler(svc))
		vr.Get("/due-soon", listDueSoonHandler(svc))
		vr.Get("/due-soon/owner/{email}", listDueSoonByOwnerHandler(svc))
		vr.Get("/due-soon/pet/{petID}", listDueSoonByPetHandler(svc))

		vr.Get("/{vaccinationID}", getVaccinationHandler(svc))
		vr.Put("/{vaccinationID}", updateVaccinationHandler(svc))
		vr.Delete("/{vaccinationID}", deleteVaccinationHandler(svc))
	})
}

type vaccinationRequest struct {
	PetID        string `json:"pet_id"`
	Name         string `json:"name"`
	Date         string `json:"date"`          // YYYY-MM-DD
	NextDueDate  string `json:"next_due_date"` // YYYY-MM-DD
	Veterinarian string `json:"veterinarian"`
	Clinic       string `json:"clinic"`
	Notes        string `json:"notes"`
}

type vaccinationResponse struct {
	ID           string    `json:"id"`
	PetID        string    `json:"pet_id"`
	Name         string    `json:"name"`
	Date         string    `json:"date"`
	NextDueDate  string    `json:"next_due_date"`
	Veterinarian string    `json:"veterinarian,omitempty"`
	Clinic       string    `json:"clinic,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	IsOverdue    bool `json:"is_overdue"`
	IsDueSoon    bool `json:"is_due_soon"`
	DaysUntilDue int  `json:"days_until_due"`
}

func parseDateField(field, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, validation.Errorf(field, "debe ser YYYY-MM-DD")
	}
	return t, nil
}

func (req vaccinationRequest) toInput() (Input, error) {
	d, err := parseDateField("date", req.Date)
	if err != nil {
		return Input{}, err
	}
	due, err := parseDateField("next_due_date", req.NextDueDate)
	if err != nil {
		return Input{}, err
	}

	return Input{
		Name:         req.Name,
		Date:         d,
		NextDueDate:  due,
		Veterinarian: req.Veterinarian,
		Clinic:       req.Clinic,
		Notes:        req.Notes,
	}, nil
}

func createVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req vaccinationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, err := req.toInput()
		if err != nil {
			writeError(w, err)
			return
		}

		v, err := svc.Create(r.Context(), req.PetID, in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toVaccinationResponse(v, svc.Now()))
	}
}

func getVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.GetByID(r.Context(), chi.URLParam(r, "vaccinationID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toVaccinationResponse(v, svc.Now()))
	}
}

func updateVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req vaccinationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, err := req.toInput()
		if err != nil {
			writeError(w, err)
			return
		}

		v, err := svc.Update(r.Context(), chi.URLParam(r, "vaccinationID"), in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toVaccinationResponse(v, svc.Now()))
	}
}

func deleteVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "vaccinationID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listByPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByPet(r.Context(), chi.URLParam(r, "petID"))
		writeVaccinationList(w, svc, items, err)
	}
}

func listByOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByOwner(r.Context(), chi.URLParam(r, "email"))
		writeVaccinationList(w, svc, items, err)
	}
}

func listOverdueHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListOverdue(r.Context())
		writeVaccinationList(w, svc, items, err)
	}
}

func listOverdueByOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListOverdueByOwner(r.Context(), chi.URLParam(r, "email"))
		writeVaccinationList(w, svc, items, err)
	}
}

func listOverdueByPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListOverdueByPet(r.Context(), chi.URLParam(r, "petID"))
		writeVaccinationList(w, svc, items, err)
	}
}

func listDueSoonHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListDueSoon(r.Context())
		writeVaccinationList(w, svc, items, err)
	}
}

func listDueSoonByOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListDueSoonByOwner(r.Context(), chi.URLParam(r, "email"))
		writeVaccinationList(w, svc, items, err)
	}
}

func listDueSoonByPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListDueSoonByPet(r.Context(), chi.URLParam(r, "petID"))
		writeVaccinationList(w, svc, items, err)
	}
}

func writeVaccinationList(w http.ResponseWriter, svc *Service, items []Vaccination, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	today := svc.Now()
	out := make([]vaccinationResponse, 0, len(items))
	for _, v := range items {
		out = append(out, toVaccinationResponse(v, today))
	}
	writeJSON(w, http.StatusOK, out)
}

func toVaccinationResponse(v Vaccination, today time.Time) vaccinationResponse {
	return vaccinationResponse{
		ID:           v.ID,
		PetID:        v.PetID,
		Name:         v.Name,
		Date:         v.Date.Format("2006-01-02"),
		NextDueDate:  v.NextDueDate.Format("2006-01-02"),
		Veterinarian: v.Veterinarian,
		Clinic:       v.Clinic,
		Notes:        v.Notes,
		CreatedAt:    v.CreatedAt,
		IsOverdue:    v.IsOverdue(today),
		IsDueSoon:    v.IsDueSoon(today),
		DaysUntilDue: v.DaysUntilDue(today),
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
		http.Error(w, "vaccination not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
