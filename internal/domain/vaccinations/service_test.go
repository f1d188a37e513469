package vaccinations

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Vaccination
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Vaccination{}}
}

func (r *testRepo) Create(ctx context.Context, v Vaccination) error {
	if v.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[v.ID] = v
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Vaccination, error) {
	v, ok := r.byID[id]
	if !ok {
		return Vaccination{}, ErrNotFound
	}
	return v, nil
}

func (r *testRepo) Update(ctx context.Context, v Vaccination) error {
	if _, ok := r.byID[v.ID]; !ok {
		return ErrNotFound
	}
	r.byID[v.ID] = v
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) list(keep func(Vaccination) bool) []Vaccination {
	out := make([]Vaccination, 0)
	for _, v := range r.byID {
		if keep(v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NextDueDate.Before(out[j].NextDueDate) })
	return out
}

func (r *testRepo) ListByPet(ctx context.Context, petID string) ([]Vaccination, error) {
	return r.list(func(v Vaccination) bool { return v.PetID == petID }), nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]Vaccination, error) {
	return r.list(func(v Vaccination) bool { return true }), nil
}

func (r *testRepo) ListOverdue(ctx context.Context, today time.Time) ([]Vaccination, error) {
	return r.list(func(v Vaccination) bool { return v.IsOverdue(today) }), nil
}

func (r *testRepo) ListOverdueByOwner(ctx context.Context, ownerEmail string, today time.Time) ([]Vaccination, error) {
	return r.list(func(v Vaccination) bool { return v.IsOverdue(today) }), nil
}

func (r *testRepo) ListOverdueByPet(ctx context.Context, petID string, today time.Time) ([]Vaccination, error) {
	return r.list(func(v Vaccination) bool { return v.PetID == petID && v.IsOverdue(today) }), nil
}

func (r *testRepo) ListDueSoon(ctx context.Context, today time.Time) ([]Vaccination, error) {
	return r.list(func(v Vaccination) bool { return v.IsDueSoon(today) }), nil
}

func (r *testRepo) ListDueSoonByOwner(ctx context.Context, ownerEmail string, today time.Time) ([]Vaccination, error) {
	return r.list(func(v Vaccination) bool { return v.IsDueSoon(today) }), nil
}

func (r *testRepo) ListDueSoonByPet(ctx context.Context, petID string, today time.Time) ([]Vaccination, error) {
	return r.list(func(v Vaccination) bool { return v.PetID == petID && v.IsDueSoon(today) }), nil
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

func validInput(due time.Time) Input {
	return Input{
		Name:        "Antirrábica",
		Date:        testNow.AddDate(0, -11, 0),
		NextDueDate: due,
	}
}

func TestService_Create_PetMustExist(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), "ghost", validInput(testNow.AddDate(0, 0, 10)))
	if !errors.Is(err, ErrPetNotFound) {
		t.Fatalf("expected ErrPetNotFound, got %v", err)
	}
}

func TestService_Create_DueSoonScenario(t *testing.T) {
	svc, _ := newTestService()

	v, err := svc.Create(context.Background(), "pet-1", validInput(testNow.AddDate(0, 0, 10)))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if !v.IsDueSoon(testNow) {
		t.Fatalf("due in 10 days should be due soon")
	}
	if v.IsOverdue(testNow) {
		t.Fatalf("due in 10 days should not be overdue")
	}
	if got := v.DaysUntilDue(testNow); got != 10 {
		t.Fatalf("DaysUntilDue = %d, want 10", got)
	}
}

func TestVaccination_OverdueAndDueSoonAreMutuallyExclusive(t *testing.T) {
	// Barrido alrededor de la ventana completa: nunca pueden darse ambos.
	for days := -40; days <= 40; days++ {
		v := Vaccination{NextDueDate: testNow.AddDate(0, 0, days)}
		overdue := v.IsOverdue(testNow)
		dueSoon := v.IsDueSoon(testNow)

		if overdue && dueSoon {
			t.Fatalf("days=%d: overdue and due-soon both true", days)
		}
	}
}

func TestVaccination_DueSoonWindowBounds(t *testing.T) {
	tests := []struct {
		days int
		want bool
	}{
		{-1, false}, // ayer: vencida, no due-soon
		{0, true},   // hoy cuenta
		{30, true},  // borde superior inclusive
		{31, false},
	}

	for _, tt := range tests {
		v := Vaccination{NextDueDate: testNow.AddDate(0, 0, tt.days)}
		if got := v.IsDueSoon(testNow); got != tt.want {
			t.Fatalf("days=%d: IsDueSoon = %v, want %v", tt.days, got, tt.want)
		}
	}
}

func TestService_ListOverdue_FiltersByDueDate(t *testing.T) {
	svc, _ := newTestService()

	overdue := validInput(testNow.AddDate(0, 0, -5))
	current := validInput(testNow.AddDate(0, 0, 20))

	if _, err := svc.Create(context.Background(), "pet-1", overdue); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), "pet-1", current); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.ListOverdue(context.Background())
	if err != nil {
		t.Fatalf("ListOverdue returned error: %v", err)
	}
	if len(got) != 1 || !got[0].IsOverdue(testNow) {
		t.Fatalf("expected exactly the overdue record, got %#v", got)
	}
}

func TestService_Update_KeepsPetID(t *testing.T) {
	svc, _ := newTestService()

	v, _ := svc.Create(context.Background(), "pet-1", validInput(testNow.AddDate(0, 0, 10)))

	in := validInput(testNow.AddDate(1, 0, 0))
	in.Name = "Quíntuple"

	updated, err := svc.Update(context.Background(), v.ID, in)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.PetID != "pet-1" || updated.CreatedAt != v.CreatedAt {
		t.Fatalf("immutable fields changed: %#v", updated)
	}
	if updated.Name != "Quíntuple" {
		t.Fatalf("name not applied")
	}
}

func TestService_Delete_NotFound(t *testing.T) {
	svc, _ := newTestService()

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
