package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewRouter(Options{Logger: zerolog.Nop()}))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		buf = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func createPet(t *testing.T, srv *httptest.Server, name, ownerEmail string, birth time.Time) string {
	t.Helper()

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/pets", map[string]any{
		"name":        name,
		"species":     "dog",
		"breed":       "Labrador",
		"birth_date":  birth.Format("2006-01-02"),
		"weight":      20.0,
		"owner_name":  "Ana",
		"owner_phone": "+51 999 888 777",
		"owner_email": ownerEmail,
	})
	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("create pet: status %d, body %s", resp.StatusCode, raw)
	}

	var pet struct {
		ID string `json:"id"`
	}
	decode(t, resp, &pet)
	return pet.ID
}

func createPost(t *testing.T, srv *httptest.Server, petID string) string {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("petId", petID); err != nil {
		t.Fatalf("write field: %v", err)
	}
	fw, err := mw.CreateFormFile("image", "photo.jpg")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte{0xFF, 0xD8, 0xFF, 0xE0}); err != nil {
		t.Fatalf("write image: %v", err)
	}
	mw.Close()

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/posts", &body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("create post: status %d, body %s", resp.StatusCode, raw)
	}

	var post struct {
		ID        string `json:"id"`
		LikeCount int    `json:"like_count"`
	}
	decode(t, resp, &post)
	if post.LikeCount != 0 {
		t.Fatalf("new post must start with zero likes, got %d", post.LikeCount)
	}
	return post.ID
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

// Recorrido completo: alta de mascota, vacuna próxima a vencer, post
// con doble toggle de like y borrado en cascada.
func TestRouter_FullFlow(t *testing.T) {
	srv := newTestServer(t)

	birth := time.Now().UTC().AddDate(-2, 0, 0)
	petID := createPet(t, srv, "Rex", "ana@example.com", birth)

	// Edad derivada: diferencia de año calendario.
	var pet struct {
		Name         string `json:"name"`
		SpeciesLabel string `json:"species_label"`
		Age          int    `json:"age"`
	}
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/pets/"+petID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get pet: status %d", resp.StatusCode)
	}
	decode(t, resp, &pet)
	if pet.Age != 2 {
		t.Fatalf("age = %d, want 2", pet.Age)
	}
	if pet.SpeciesLabel != "Perro" {
		t.Fatalf("species_label = %q, want Perro", pet.SpeciesLabel)
	}

	// Vacuna que vence en 10 días: due-soon, no overdue.
	due := time.Now().UTC().AddDate(0, 0, 10)
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/vaccinations", map[string]any{
		"pet_id":        petID,
		"name":          "Antirrábica",
		"date":          time.Now().UTC().AddDate(-1, 0, 0).Format("2006-01-02"),
		"next_due_date": due.Format("2006-01-02"),
	})
	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("create vaccination: status %d, body %s", resp.StatusCode, raw)
	}
	var vac struct {
		ID        string `json:"id"`
		IsOverdue bool   `json:"is_overdue"`
		IsDueSoon bool   `json:"is_due_soon"`
	}
	decode(t, resp, &vac)
	if vac.IsOverdue || !vac.IsDueSoon {
		t.Fatalf("vaccination: is_overdue=%v is_due_soon=%v, want false/true", vac.IsOverdue, vac.IsDueSoon)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/vaccinations/due-soon/pet/"+petID, nil)
	var dueSoon []json.RawMessage
	decode(t, resp, &dueSoon)
	if len(dueSoon) != 1 {
		t.Fatalf("due-soon list: len = %d, want 1", len(dueSoon))
	}

	// Evento de grooming en 3 días aparece como próximo.
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/events", map[string]any{
		"pet_id":     petID,
		"title":      "Baño y corte",
		"date":       time.Now().UTC().AddDate(0, 0, 3).Format("2006-01-02"),
		"event_type": "grooming",
	})
	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("create event: status %d, body %s", resp.StatusCode, raw)
	}
	var ev struct {
		ID         string `json:"id"`
		IsUpcoming bool   `json:"is_upcoming"`
	}
	decode(t, resp, &ev)
	if !ev.IsUpcoming {
		t.Fatalf("event must be upcoming")
	}

	// Post: doble toggle del mismo par deja el estado inicial.
	postID := createPost(t, srv, petID)

	var toggle struct {
		Liked     bool `json:"liked"`
		LikeCount int  `json:"like_count"`
	}
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/posts/"+postID+"/like?petId=42", nil)
	decode(t, resp, &toggle)
	if !toggle.Liked || toggle.LikeCount != 1 {
		t.Fatalf("first toggle: %+v, want liked/1", toggle)
	}
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/posts/"+postID+"/like?petId=42", nil)
	decode(t, resp, &toggle)
	if toggle.Liked || toggle.LikeCount != 0 {
		t.Fatalf("second toggle: %+v, want unliked/0", toggle)
	}

	// Borrar la mascota arrastra eventos, vacunas y posts.
	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/pets/"+petID, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete pet: status %d, want 204", resp.StatusCode)
	}

	for _, url := range []string{
		srv.URL + "/api/pets/" + petID,
		srv.URL + "/api/vaccinations/" + vac.ID,
		srv.URL + "/api/events/" + ev.ID,
		srv.URL + "/api/posts/" + postID,
	} {
		resp := doJSON(t, http.MethodGet, url, nil)
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("GET %s after cascade: status %d, want 404", url, resp.StatusCode)
		}
	}
}

func TestRouter_ValidationError(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/pets", map[string]any{
		"species": "dog",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var body struct {
		Field string `json:"field"`
	}
	decode(t, resp, &body)
	if body.Field != "name" {
		t.Fatalf("field = %q, want name", body.Field)
	}
}

func TestRouter_DependentNeedsExistingPet(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/events", map[string]any{
		"pet_id":     "no-such-pet",
		"title":      "Control",
		"date":       time.Now().UTC().Format("2006-01-02"),
		"event_type": "veterinary",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestRouter_PostsPagination(t *testing.T) {
	srv := newTestServer(t)

	birth := time.Now().UTC().AddDate(-1, 0, 0)
	petID := createPet(t, srv, "Luna", "luis@example.com", birth)

	for i := 0; i < 7; i++ {
		createPost(t, srv, petID)
	}

	var page struct {
		Posts       []json.RawMessage `json:"posts"`
		CurrentPage int               `json:"current_page"`
		TotalItems  int               `json:"total_items"`
		TotalPages  int               `json:"total_pages"`
	}
	resp := doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/posts?page=0&size=3", srv.URL), nil)
	decode(t, resp, &page)

	if page.TotalItems != 7 || page.TotalPages != 3 {
		t.Fatalf("totals = %d items / %d pages, want 7/3", page.TotalItems, page.TotalPages)
	}
	if len(page.Posts) != 3 || page.CurrentPage != 0 {
		t.Fatalf("page 0: len=%d current=%d", len(page.Posts), page.CurrentPage)
	}

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/posts?page=2&size=3", srv.URL), nil)
	decode(t, resp, &page)
	if len(page.Posts) != 1 || page.CurrentPage != 2 {
		t.Fatalf("page 2: len=%d current=%d", len(page.Posts), page.CurrentPage)
	}

	// Contador por mascota.
	var count struct {
		Count int `json:"count"`
	}
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/posts/pet/"+petID+"/count", nil)
	decode(t, resp, &count)
	if count.Count != 7 {
		t.Fatalf("count = %d, want 7", count.Count)
	}
}
