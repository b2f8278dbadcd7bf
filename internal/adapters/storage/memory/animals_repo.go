package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"wildlife-sightings/internal/domain/animals"
	"wildlife-sightings/internal/domain/sightings"
)

type animalRepo struct {
	s *Store
}

func (r *animalRepo) Create(ctx context.Context, a animals.Animal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("animal id required")
	}
	if _, exists := r.s.animals[a.ID]; exists {
		return errors.New("animal already exists")
	}
	if err := r.checkUnique(a); err != nil {
		return err
	}
	if err := r.checkNewSightings(a.Sightings); err != nil {
		return err
	}

	r.s.animals[a.ID] = stripSightings(a)
	for _, sg := range a.Sightings {
		r.s.sightings[sg.ID] = sg
	}
	return nil
}

func (r *animalRepo) Update(ctx context.Context, a animals.Animal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, exists := r.s.animals[a.ID]
	if !exists {
		return animals.ErrNotFound
	}
	if err := r.checkUnique(a); err != nil {
		return err
	}
	if err := r.checkNewSightings(a.Sightings); err != nil {
		return err
	}
	if err := r.checkChangedSightings(a.ID, a.ChangedSightings); err != nil {
		return err
	}

	a.CreatedAt = current.CreatedAt
	r.s.animals[a.ID] = stripSightings(a)
	for _, sg := range a.ChangedSightings {
		sg.CreatedAt = r.s.sightings[sg.ID].CreatedAt
		r.s.sightings[sg.ID] = sg
	}
	for _, sg := range a.Sightings {
		r.s.sightings[sg.ID] = sg
	}
	return nil
}

// Delete borra en cascada los sightings del animal.
func (r *animalRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.animals[id]; !exists {
		return animals.ErrNotFound
	}
	delete(r.s.animals, id)
	for sid, sg := range r.s.sightings {
		if sg.AnimalID == id {
			delete(r.s.sightings, sid)
		}
	}
	return nil
}

func (r *animalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.animals[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, nil
}

func (r *animalRepo) List(ctx context.Context) ([]animals.Animal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]animals.Animal, 0, len(r.s.animals))
	for _, a := range r.s.animals {
		out = append(out, a)
	}

	// Orden estable por created_at asc (el map no tiene orden)
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *animalRepo) FindByCommonName(ctx context.Context, name string) (animals.Animal, error) {
	return r.findBy(func(a animals.Animal) bool { return a.CommonName == name })
}

func (r *animalRepo) FindByLatinName(ctx context.Context, name string) (animals.Animal, error) {
	return r.findBy(func(a animals.Animal) bool { return a.LatinName == name })
}

func (r *animalRepo) findBy(match func(animals.Animal) bool) (animals.Animal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, a := range r.s.animals {
		if match(a) {
			return a, nil
		}
	}
	return animals.Animal{}, animals.ErrNotFound
}

// checkUnique hace de restricción UNIQUE: se evalúa bajo el lock de escritura.
func (r *animalRepo) checkUnique(a animals.Animal) error {
	for id, other := range r.s.animals {
		if id == a.ID {
			continue
		}
		if other.CommonName == a.CommonName {
			return animals.ErrCommonNameTaken
		}
		if other.LatinName == a.LatinName {
			return animals.ErrLatinNameTaken
		}
	}
	return nil
}

func (r *animalRepo) checkNewSightings(list []sightings.Sighting) error {
	for _, sg := range list {
		if strings.TrimSpace(sg.ID) == "" {
			return errors.New("sighting id required")
		}
		if _, exists := r.s.sightings[sg.ID]; exists {
			return errors.New("sighting already exists")
		}
	}
	return nil
}

// checkChangedSightings: cada sighting modificado tiene que existir y ser del animal.
func (r *animalRepo) checkChangedSightings(animalID string, list []sightings.Sighting) error {
	for _, sg := range list {
		stored, exists := r.s.sightings[sg.ID]
		if !exists || stored.AnimalID != animalID || sg.AnimalID != animalID {
			return sightings.ErrNotFound
		}
	}
	return nil
}

func stripSightings(a animals.Animal) animals.Animal {
	a.Sightings = nil
	a.ChangedSightings = nil
	return a
}
