package posts

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Post
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Post{}}
}

func (r *testRepo) Create(ctx context.Context, p Post) error {
	if p.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Post, error) {
	p, ok := r.byID[id]
	if !ok {
		return Post{}, ErrNotFound
	}
	p.Likes = p.Likes.Clone()
	return p, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) Toggle(ctx context.Context, postID, petID string) (bool, int, error) {
	p, ok := r.byID[postID]
	if !ok {
		return false, 0, ErrNotFound
	}
	if p.Likes.Contains(petID) {
		p.Likes.Remove(petID)
	} else {
		p.Likes.Add(petID)
	}
	r.byID[postID] = p
	return p.Likes.Contains(petID), p.LikeCount(), nil
}

func (r *testRepo) sorted() []Post {
	out := make([]Post, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *testRepo) ListPage(ctx context.Context, page, size int) (Page, error) {
	all := r.sorted()
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

	return Page{
		Content:    all[start:end],
		Number:     page,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string) ([]Post, error) {
	out := make([]Post, 0)
	for _, p := range r.sorted() {
		if p.PetID == petID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]Post, error) {
	return r.sorted(), nil
}

func (r *testRepo) CountByPet(ctx context.Context, petID string) (int, error) {
	n := 0
	for _, p := range r.byID {
		if p.PetID == petID {
			n++
		}
	}
	return n, nil
}

type petsAlwaysExist struct{}

func (petsAlwaysExist) Exists(ctx context.Context, petID string) (bool, error) {
	return petID != "ghost", nil
}

// -------------------------
// Tests
// -------------------------

var testNow = time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, petsAlwaysExist{})
	svc.now = func() time.Time { return testNow }
	return svc, repo
}

var jpeg = []byte{0xFF, 0xD8, 0xFF}

func TestService_Create_EmptyLikeSet(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), "pet-1", jpeg)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if p.LikeCount() != 0 {
		t.Fatalf("new post must start with zero likes, got %d", p.LikeCount())
	}
	if p.CreatedAt != testNow {
		t.Fatalf("expected CreatedAt = now")
	}
}

func TestService_Create_PetMustExist(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), "ghost", jpeg)
	if !errors.Is(err, ErrPetNotFound) {
		t.Fatalf("expected ErrPetNotFound, got %v", err)
	}
}

func TestService_ToggleLike_Involution(t *testing.T) {
	svc, _ := newTestService()

	p, _ := svc.Create(context.Background(), "pet-1", jpeg)

	liked, count, err := svc.ToggleLike(context.Background(), p.ID, "42")
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !liked || count != 1 {
		t.Fatalf("first toggle: liked=%v count=%d, want true/1", liked, count)
	}

	liked, count, err = svc.ToggleLike(context.Background(), p.ID, "42")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if liked || count != 0 {
		t.Fatalf("second toggle: liked=%v count=%d, want false/0", liked, count)
	}

	// Estado idéntico al inicial.
	got, _ := svc.GetByID(context.Background(), p.ID)
	if got.LikeCount() != 0 || got.IsLikedBy("42") {
		t.Fatalf("post not back to original state: %#v", got.Likes)
	}
}

func TestService_ToggleLike_PostNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, _, err := svc.ToggleLike(context.Background(), "missing", "42")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_ToggleLike_CountMatchesSet(t *testing.T) {
	svc, _ := newTestService()

	p, _ := svc.Create(context.Background(), "pet-1", jpeg)

	for _, petID := range []string{"a", "b", "c"} {
		if _, _, err := svc.ToggleLike(context.Background(), p.ID, petID); err != nil {
			t.Fatalf("toggle %s: %v", petID, err)
		}
	}

	got, _ := svc.GetByID(context.Background(), p.ID)
	if got.LikeCount() != len(got.Likes) {
		t.Fatalf("LikeCount %d != cardinality %d", got.LikeCount(), len(got.Likes))
	}
	if got.LikeCount() != 3 {
		t.Fatalf("expected 3 likes, got %d", got.LikeCount())
	}
	for _, petID := range []string{"a", "b", "c"} {
		if !got.IsLikedBy(petID) {
			t.Fatalf("IsLikedBy(%s) = false, want true", petID)
		}
	}
	if got.IsLikedBy("d") {
		t.Fatalf("IsLikedBy(d) = true, want false")
	}
}

func TestService_ListPage_CeilAndDisjoint(t *testing.T) {
	svc, _ := newTestService()

	// 7 posts con createdAt decreciente controlado por el reloj inyectado.
	base := testNow
	for i := 0; i < 7; i++ {
		created := base.Add(time.Duration(i) * time.Minute)
		svc.now = func() time.Time { return created }
		if _, err := svc.Create(context.Background(), "pet-1", jpeg); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	const size = 3
	seen := map[string]bool{}
	var lastOfPrevPage time.Time

	for page := 0; page < 3; page++ {
		pg, err := svc.ListPage(context.Background(), page, size)
		if err != nil {
			t.Fatalf("ListPage(%d): %v", page, err)
		}
		if pg.TotalItems != 7 {
			t.Fatalf("TotalItems = %d, want 7", pg.TotalItems)
		}
		if pg.TotalPages != 3 { // ceil(7/3)
			t.Fatalf("TotalPages = %d, want 3", pg.TotalPages)
		}
		if pg.Number != page {
			t.Fatalf("Number = %d, want %d", pg.Number, page)
		}

		wantLen := size
		if page == 2 {
			wantLen = 1
		}
		if len(pg.Content) != wantLen {
			t.Fatalf("page %d: len = %d, want %d", page, len(pg.Content), wantLen)
		}

		for i, p := range pg.Content {
			if seen[p.ID] {
				t.Fatalf("post %s repeated across pages", p.ID)
			}
			seen[p.ID] = true

			// Orden createdAt descendente dentro y entre páginas.
			if i > 0 && p.CreatedAt.After(pg.Content[i-1].CreatedAt) {
				t.Fatalf("page %d not in descending order", page)
			}
			if page > 0 && i == 0 && p.CreatedAt.After(lastOfPrevPage) {
				t.Fatalf("page %d starts after end of previous page", page)
			}
		}
		lastOfPrevPage = pg.Content[len(pg.Content)-1].CreatedAt
	}
}

func TestService_ListPage_BeyondEnd(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Create(context.Background(), "pet-1", jpeg); err != nil {
		t.Fatalf("create: %v", err)
	}

	pg, err := svc.ListPage(context.Background(), 5, 10)
	if err != nil {
		t.Fatalf("ListPage returned error: %v", err)
	}
	if len(pg.Content) != 0 || pg.TotalItems != 1 {
		t.Fatalf("expected empty page with totals, got %#v", pg)
	}
}

func TestService_CountByPet(t *testing.T) {
	svc, _ := newTestService()

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(context.Background(), "pet-1", jpeg); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, err := svc.Create(context.Background(), "pet-2", jpeg); err != nil {
		t.Fatalf("create: %v", err)
	}

	n, err := svc.CountByPet(context.Background(), "pet-1")
	if err != nil {
		t.Fatalf("CountByPet returned error: %v", err)
	}
	if n != 3 {
		t.Fatalf("count = %d, want 3", n)
	}
}

func TestLikeSet_NoDuplicates(t *testing.T) {
	s := NewLikeSet()
	s.Add("42")
	s.Add("42")

	if s.Count() != 1 {
		t.Fatalf("duplicates must be impossible, count = %d", s.Count())
	}

	s.Remove("42")
	if s.Count() != 0 || s.Contains("42") {
		t.Fatalf("remove failed")
	}
}

func TestLikeSet_IDsSorted(t *testing.T) {
	s := NewLikeSet("c", "a", "b")
	want := []string{"a", "b", "c"}
	if got := s.IDs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("IDs() = %v, want %v", got, want)
	}
}

func TestLikeSet_CloneIsIndependent(t *testing.T) {
	s := NewLikeSet("a")
	c := s.Clone()
	c.Add("b")

	if s.Count() != 1 {
		t.Fatalf("clone mutated the original: %v", s.IDs())
	}
}

func TestService_ListByPet_Ordering(t *testing.T) {
	svc, _ := newTestService()

	for i := 0; i < 3; i++ {
		created := testNow.Add(time.Duration(i) * time.Hour)
		svc.now = func() time.Time { return created }
		if _, err := svc.Create(context.Background(), "pet-1", jpeg); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := svc.ListByPet(context.Background(), "pet-1")
	if err != nil {
		t.Fatalf("ListByPet returned error: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.After(got[i-1].CreatedAt) {
			t.Fatalf("not in createdAt descending order: %s", fmt.Sprint(got))
		}
	}
}
