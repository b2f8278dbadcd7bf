package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"wildlife-sightings/internal/domain/sightings"
)

type sightingRepo struct {
	s *Store
}

func (r *sightingRepo) Create(ctx context.Context, sg sightings.Sighting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(sg.ID) == "" {
		return errors.New("sighting id required")
	}
	if _, exists := r.s.sightings[sg.ID]; exists {
		return errors.New("sighting already exists")
	}
	// FK: el animal tiene que existir
	if _, ok := r.s.animals[sg.AnimalID]; !ok {
		return sightings.ErrAnimalNotFound
	}

	r.s.sightings[sg.ID] = sg
	return nil
}

func (r *sightingRepo) Update(ctx context.Context, sg sightings.Sighting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, exists := r.s.sightings[sg.ID]
	if !exists {
		return sightings.ErrNotFound
	}
	if _, ok := r.s.animals[sg.AnimalID]; !ok {
		return sightings.ErrAnimalNotFound
	}

	sg.CreatedAt = current.CreatedAt
	r.s.sightings[sg.ID] = sg
	return nil
}

func (r *sightingRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.sightings[id]; !exists {
		return sightings.ErrNotFound
	}
	delete(r.s.sightings, id)
	return nil
}

func (r *sightingRepo) GetByID(ctx context.Context, id string) (sightings.Sighting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sg, ok := r.s.sightings[id]
	if !ok {
		return sightings.Sighting{}, sightings.ErrNotFound
	}
	return sg, nil
}

func (r *sightingRepo) List(ctx context.Context, filter sightings.ListFilter) ([]sightings.Sighting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]sightings.Sighting, 0)
	for _, sg := range r.s.sightings {
		if filter.Matches(sg) {
			out = append(out, sg)
		}
	}

	// Orden de inserción aproximado (created_at asc, id para desempatar)
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
