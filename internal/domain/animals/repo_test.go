package animals

import (
	"context"
	"errors"
	"sort"

	"wildlife-sightings/internal/domain/sightings"
)

// testRepo guarda animales en memoria y cuenta escrituras.
// No aplica restricciones UNIQUE salvo que uniqueBackstop esté activo.
type testRepo struct {
	byID   map[string]Animal
	writes int

	uniqueBackstop bool
	findErr        error

	// changed guarda los ChangedSightings del último Update.
	changed []sightings.Sighting
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Animal{}}
}

func (r *testRepo) Create(_ context.Context, a Animal) error {
	if r.uniqueBackstop {
		if err := r.checkUnique(a); err != nil {
			return err
		}
	}
	r.writes++
	a.Sightings = nil
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Update(_ context.Context, a Animal) error {
	if _, ok := r.byID[a.ID]; !ok {
		return ErrNotFound
	}
	r.writes++
	r.changed = a.ChangedSightings
	a.Sightings, a.ChangedSightings = nil, nil
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	r.writes++
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Animal, error) {
	a, ok := r.byID[id]
	if !ok {
		return Animal{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) List(_ context.Context) ([]Animal, error) {
	out := make([]Animal, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *testRepo) FindByCommonName(_ context.Context, name string) (Animal, error) {
	return r.find(func(a Animal) bool { return a.CommonName == name })
}

func (r *testRepo) FindByLatinName(_ context.Context, name string) (Animal, error) {
	return r.find(func(a Animal) bool { return a.LatinName == name })
}

func (r *testRepo) find(match func(Animal) bool) (Animal, error) {
	if r.findErr != nil {
		return Animal{}, r.findErr
	}
	for _, a := range r.byID {
		if match(a) {
			return a, nil
		}
	}
	return Animal{}, ErrNotFound
}

func (r *testRepo) checkUnique(a Animal) error {
	for _, other := range r.byID {
		if other.ID == a.ID {
			continue
		}
		if other.CommonName == a.CommonName {
			return ErrCommonNameTaken
		}
		if other.LatinName == a.LatinName {
			return ErrLatinNameTaken
		}
	}
	return nil
}

var errRepoDown = errors.New("repo: down")

// sightingRepo mínimo para el escenario completo.
type sightingRepo struct {
	byID map[string]sightings.Sighting
}

func newSightingRepo() *sightingRepo {
	return &sightingRepo{byID: map[string]sightings.Sighting{}}
}

func (r *sightingRepo) Create(_ context.Context, s sightings.Sighting) error {
	r.byID[s.ID] = s
	return nil
}

func (r *sightingRepo) Update(_ context.Context, s sightings.Sighting) error {
	r.byID[s.ID] = s
	return nil
}

func (r *sightingRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *sightingRepo) GetByID(_ context.Context, id string) (sightings.Sighting, error) {
	s, ok := r.byID[id]
	if !ok {
		return sightings.Sighting{}, sightings.ErrNotFound
	}
	return s, nil
}

func (r *sightingRepo) List(_ context.Context, f sightings.ListFilter) ([]sightings.Sighting, error) {
	var out []sightings.Sighting
	for _, s := range r.byID {
		if f.Matches(s) {
			out = append(out, s)
		}
	}
	return out, nil
}
