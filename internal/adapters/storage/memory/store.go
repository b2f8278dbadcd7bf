package memory

import (
	"sync"

	"wildlife-sightings/internal/domain/animals"
	"wildlife-sightings/internal/domain/sightings"
)

// Store comparte un único lock entre animals y sightings para poder
// chequear FK, unicidad y borrado en cascada de forma atómica.
type Store struct {
	mu        sync.RWMutex
	animals   map[string]animals.Animal
	sightings map[string]sightings.Sighting
}

func NewStore() *Store {
	return &Store{
		animals:   make(map[string]animals.Animal),
		sightings: make(map[string]sightings.Sighting),
	}
}

func (s *Store) Animals() animals.Repository {
	return &animalRepo{s: s}
}

func (s *Store) Sightings() sightings.Repository {
	return &sightingRepo{s: s}
}
