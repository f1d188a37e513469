package events

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
	r.Route("/events", func(er chi.Router) {
		er.Post("/", createEventHandler(svc))

		er.Get("/pet/{petID}", listEventsByPetHandler(svc))
		er.Get("/owner/{email}", listEventsByOwnerHandler(svc))
		er.Get("/upcoming", listUpcomingHandler(svc))
		er.Get("/upcoming/owner/{email}", listUpcomingByOwnerHandler(svc))
		er.Get("/upcoming/pet/{petID}", listUpcomingByPetHandler(svc))
		er.Get("/type/{type}/owner/{email}", listByTypeAndOwnerHandler(svc))

		er.Get("/{eventID}", getEventHandler(svc))
		er.Put("/{eventID}", updateEventHandler(svc))
		er.Delete("/{eventID}", deleteEventHandler(svc))
	})
}

type eventRequest struct {
	PetID       string `json:"pet_id"`
	Title       string `json:"title"`
	Date        string `json:"date"` // YYYY-MM-DD
	EventType   string `json:"event_type"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Contact     string `json:"contact"`
}

type eventResponse struct {
	ID          string    `json:"id"`
	PetID       string    `json:"pet_id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	EventType   string    `json:"event_type"`
	TypeLabel   string    `json:"type_label"`
	TypeIcon    string    `json:"type_icon"`
	TypeColor   string    `json:"type_color"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Contact     string    `json:"contact,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	IsUpcoming     bool `json:"is_upcoming"`
	DaysUntilEvent int  `json:"days_until_event"`
}

func (req eventRequest) toInput() (Input, error) {
	var d time.Time
	if strings.TrimSpace(req.Date) != "" {
		t, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return Input{}, validation.Errorf("date", "debe ser YYYY-MM-DD")
		}
		d = t
	}

	return Input{
		Title:       req.Title,
		Date:        d,
		Type:        req.EventType,
		Description: req.Description,
		Location:    req.Location,
		Contact:     req.Contact,
	}, nil
}

func createEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req eventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, err := req.toInput()
		if err != nil {
			writeError(w, err)
			return
		}

		e, err := svc.Create(r.Context(), req.PetID, in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toEventResponse(e, svc.Now()))
	}
}

func getEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.GetByID(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponse(e, svc.Now()))
	}
}

func updateEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req eventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, err := req.toInput()
		if err != nil {
			writeError(w, err)
			return
		}

		e, err := svc.Update(r.Context(), chi.URLParam(r, "eventID"), in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toEventResponse(e, svc.Now()))
	}
}

func deleteEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "eventID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listEventsByPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByPet(r.Context(), chi.URLParam(r, "petID"))
		writeEventList(w, svc, items, err)
	}
}

func listEventsByOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByOwner(r.Context(), chi.URLParam(r, "email"))
		writeEventList(w, svc, items, err)
	}
}

func listUpcomingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListUpcoming(r.Context())
		writeEventList(w, svc, items, err)
	}
}

func listUpcomingByOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListUpcomingByOwner(r.Context(), chi.URLParam(r, "email"))
		writeEventList(w, svc, items, err)
	}
}

func listUpcomingByPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListUpcomingByPet(r.Context(), chi.URLParam(r, "petID"))
		writeEventList(w, svc, items, err)
	}
}

func listByTypeAndOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByTypeAndOwner(r.Context(), chi.URLParam(r, "type"), chi.URLParam(r, "email"))
		writeEventList(w, svc, items, err)
	}
}

func writeEventList(w http.ResponseWriter, svc *Service, items []Event, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	today := svc.Now()
	out := make([]eventResponse, 0, len(items))
	for _, e := range items {
		out = append(out, toEventResponse(e, today))
	}
	writeJSON(w, http.StatusOK, out)
}

func toEventResponse(e Event, today time.Time) eventResponse {
	meta := EventTypeMeta[e.Type]
	return eventResponse{
		ID:             e.ID,
		PetID:          e.PetID,
		Title:          e.Title,
		Date:           e.Date.Format("2006-01-02"),
		EventType:      string(e.Type),
		TypeLabel:      meta.Label,
		TypeIcon:       meta.Icon,
		TypeColor:      meta.Color,
		Description:    e.Description,
		Location:       e.Location,
		Contact:        e.Contact,
		CreatedAt:      e.CreatedAt,
		IsUpcoming:     e.IsUpcoming(today),
		DaysUntilEvent: e.DaysUntilEvent(today),
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
		http.Error(w, "event not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
