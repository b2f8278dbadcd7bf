package sightings

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, s Sighting) error
	Update(ctx context.Context, s Sighting) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Sighting, error)
	List(ctx context.Context, filter ListFilter) ([]Sighting, error)
}

// ListFilter: From/To inclusivos; nil = sin límite de ese lado.
type ListFilter struct {
	AnimalID string
	From     *time.Time
	To       *time.Time
}

// Matches aplica el filtro en memoria (usado por adapters sin SQL).
func (f ListFilter) Matches(s Sighting) bool {
	if f.AnimalID != "" && s.AnimalID != f.AnimalID {
		return false
	}
	if f.From == nil && f.To == nil {
		return true
	}
	if s.Date == nil {
		return false
	}
	if f.From != nil && s.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && s.Date.After(*f.To) {
		return false
	}
	return true
}
