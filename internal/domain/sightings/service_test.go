package sightings

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"testing"
	"time"

	"wildlife-sightings/internal/domain/validation"

	"github.com/shopspring/decimal"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID    map[string]Sighting
	creates int
	deletes int
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Sighting{}}
}

func (r *testRepo) Create(_ context.Context, s Sighting) error {
	if _, ok := r.byID[s.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.creates++
	r.byID[s.ID] = s
	return nil
}

func (r *testRepo) Update(_ context.Context, s Sighting) error {
	if _, ok := r.byID[s.ID]; !ok {
		return ErrNotFound
	}
	r.byID[s.ID] = s
	return nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	r.deletes++
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Sighting, error) {
	s, ok := r.byID[id]
	if !ok {
		return Sighting{}, ErrNotFound
	}
	return s, nil
}

func (r *testRepo) List(_ context.Context, f ListFilter) ([]Sighting, error) {
	out := make([]Sighting, 0)
	for _, s := range r.byID {
		if f.Matches(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type testAnimals map[string]bool

func (a testAnimals) Exists(_ context.Context, id string) (bool, error) {
	return a[id], nil
}

func newTestService(repo *testRepo, animals ...string) *Service {
	known := testAnimals{}
	for _, id := range animals {
		known[id] = true
	}
	svc := NewService(repo, known)

	n := 0
	svc.newID = func() string {
		n++
		return "s-" + strconv.Itoa(n)
	}
	return svc
}

func weaselAttrs() Attributes {
	return Attributes{
		Date:      Set(time.Date(2022, 1, 12, 16, 57, 0, 0, time.UTC)),
		Latitude:  Set(decimal.RequireFromString("45.5152")),
		Longitude: Set(decimal.RequireFromString("122.6784")),
	}
}

func TestService_Create_PersistsOnce(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, "a-1")
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	sg, err := svc.Create(context.Background(), "a-1", weaselAttrs())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if sg.AnimalID != "a-1" || sg.ID != "s-1" {
		t.Fatalf("unexpected sighting: %#v", sg)
	}
	if !sg.CreatedAt.Equal(now) || !sg.UpdatedAt.Equal(now) {
		t.Fatalf("expected timestamps to be now")
	}
	if repo.creates != 1 {
		t.Fatalf("expected exactly one persist, got %d", repo.creates)
	}
}

func TestService_Create_UnknownAnimal(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, "a-1")

	for _, id := range []string{"nope", "", "  "} {
		_, err := svc.Create(context.Background(), id, weaselAttrs())
		if !errors.Is(err, ErrAnimalNotFound) {
			t.Fatalf("animal %q: expected ErrAnimalNotFound, got %v", id, err)
		}
	}
	if repo.creates != 0 {
		t.Fatalf("nothing should be persisted")
	}
}

func TestService_Create_InvalidReturnsErrorsAndDoesNotPersist(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, "a-1")

	attrs := weaselAttrs()
	attrs.Longitude = Field[decimal.Decimal]{}

	sg, err := svc.Create(context.Background(), "a-1", attrs)
	verrs, ok := validation.AsErrors(err)
	if !ok {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if len(verrs.On("longitude")) == 0 {
		t.Fatalf("expected longitude error, got %#v", verrs)
	}
	if sg.Latitude == nil || !sg.Latitude.Equal(decimal.RequireFromString("45.5152")) {
		t.Fatalf("expected built record to be returned with the errors")
	}
	if repo.creates != 0 {
		t.Fatalf("invalid sighting must not be persisted")
	}
}

func TestService_Get_ChecksOwnership(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, "a-1", "a-2")

	sg, err := svc.Create(context.Background(), "a-1", weaselAttrs())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.Get(context.Background(), "a-1", sg.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if _, err := svc.Get(context.Background(), "a-2", sg.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("other animal: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "ghost", sg.ID); !errors.Is(err, ErrAnimalNotFound) {
		t.Fatalf("unknown animal: expected ErrAnimalNotFound, got %v", err)
	}
	// sin animal (ruta plana) no se chequea pertenencia
	if _, err := svc.Get(context.Background(), "", sg.ID); err != nil {
		t.Fatalf("flat get: %v", err)
	}
	if _, err := svc.Get(context.Background(), "a-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Update_AppliesOnlyPresentFields(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, "a-1")
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	svc.now = func() time.Time { return t0 }
	sg, err := svc.Create(context.Background(), "a-1", weaselAttrs())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	svc.now = func() time.Time { return t1 }
	updated, err := svc.Update(context.Background(), "a-1", sg.ID, Attributes{Latitude: Set(decimal.RequireFromString("10.5"))})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Latitude.String() != "10.5" || updated.Longitude.String() != "122.6784" {
		t.Fatalf("unexpected coordinates: %v %v", *updated.Latitude, *updated.Longitude)
	}
	if !updated.UpdatedAt.Equal(t1) || !updated.CreatedAt.Equal(t0) {
		t.Fatalf("expected UpdatedAt bump only")
	}

	stored, _ := repo.GetByID(context.Background(), sg.ID)
	if stored.Latitude.String() != "10.5" {
		t.Fatalf("update not persisted")
	}
}

func TestService_Update_InvalidKeepsStoredRecord(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, "a-1")

	sg, _ := svc.Create(context.Background(), "a-1", weaselAttrs())

	_, err := svc.Update(context.Background(), "a-1", sg.ID, Attributes{Date: Field[time.Time]{Present: true}})
	verrs, ok := validation.AsErrors(err)
	if !ok || len(verrs.On("date")) == 0 {
		t.Fatalf("expected date error, got %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), sg.ID)
	if stored.Date == nil {
		t.Fatalf("invalid update must not be persisted")
	}
}

func TestService_Delete_OnceAndReturnsRecord(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, "a-1")

	sg, _ := svc.Create(context.Background(), "a-1", weaselAttrs())

	deleted, err := svc.Delete(context.Background(), "a-1", sg.ID)
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if deleted.ID != sg.ID {
		t.Fatalf("expected deleted record, got %#v", deleted)
	}
	if repo.deletes != 1 {
		t.Fatalf("expected a single delete, got %d", repo.deletes)
	}

	if _, err := svc.Delete(context.Background(), "a-1", sg.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestService_List_RangeAndScope(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, "a-1", "a-2")

	day := func(d int) Attributes {
		a := weaselAttrs()
		a.Date = Set(time.Date(2022, 1, d, 12, 0, 0, 0, time.UTC))
		return a
	}
	_, _ = svc.Create(context.Background(), "a-1", day(1))
	_, _ = svc.Create(context.Background(), "a-1", day(10))
	_, _ = svc.Create(context.Background(), "a-2", day(10))
	_, _ = svc.Create(context.Background(), "a-1", day(20))

	from := time.Date(2022, 1, 1, 12, 0, 0, 0, time.UTC)
	to := time.Date(2022, 1, 10, 12, 0, 0, 0, time.UTC)

	all, err := svc.List(context.Background(), ListFilter{From: &from, To: &to})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 sightings in inclusive range, got %d", len(all))
	}

	scoped, err := svc.List(context.Background(), ListFilter{AnimalID: "a-1", From: &from, To: &to})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(scoped) != 2 {
		t.Fatalf("expected 2 sightings for a-1, got %d", len(scoped))
	}

	if _, err := svc.List(context.Background(), ListFilter{AnimalID: "ghost"}); !errors.Is(err, ErrAnimalNotFound) {
		t.Fatalf("expected ErrAnimalNotFound, got %v", err)
	}
}
