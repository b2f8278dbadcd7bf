package sightings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("sighting not found")
	ErrAnimalNotFound = errors.New("animal not found")
)

// AnimalLookup resuelve el animal dueño sin importar el paquete animals
// (animals ya importa sightings para la validación en cascada).
type AnimalLookup interface {
	Exists(ctx context.Context, animalID string) (bool, error)
}

type Service struct {
	repo    Repository
	animals AnimalLookup
	now     func() time.Time
	newID   func() string
}

func NewService(repo Repository, animals AnimalLookup) *Service {
	return &Service{
		repo:    repo,
		animals: animals,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// List devuelve los sightings cuyo date cae en [From, To].
// Si viene AnimalID se restringe a ese animal (ruta anidada).
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Sighting, error) {
	if filter.AnimalID != "" {
		if err := s.requireAnimal(ctx, filter.AnimalID); err != nil {
			return nil, err
		}
	}
	return s.repo.List(ctx, filter)
}

// Get resuelve un sighting. Con animalID no vacío además exige pertenencia.
func (s *Service) Get(ctx context.Context, animalID, id string) (Sighting, error) {
	if animalID != "" {
		if err := s.requireAnimal(ctx, animalID); err != nil {
			return Sighting{}, err
		}
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return Sighting{}, ErrNotFound
	}

	sg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Sighting{}, err
	}
	if animalID != "" && sg.AnimalID != animalID {
		return Sighting{}, ErrNotFound
	}
	return sg, nil
}

// Create arma el sighting bajo el animal, valida y persiste una sola vez.
// Si la validación falla devuelve el sighting armado junto con validation.Errors.
func (s *Service) Create(ctx context.Context, animalID string, attrs Attributes) (Sighting, error) {
	if err := s.requireAnimal(ctx, animalID); err != nil {
		return Sighting{}, err
	}

	sg := New(s.newID(), animalID, attrs, s.now().UTC())
	if errs := Validate(ctx, sg); !errs.Empty() {
		return sg, errs
	}

	if err := s.repo.Create(ctx, sg); err != nil {
		return Sighting{}, fmt.Errorf("create sighting: %w", err)
	}
	return sg, nil
}

// Update aplica solo los campos presentes en attrs.
func (s *Service) Update(ctx context.Context, animalID, id string, attrs Attributes) (Sighting, error) {
	current, err := s.Get(ctx, animalID, id)
	if err != nil {
		return Sighting{}, err
	}

	attrs.Apply(&current)
	current.UpdatedAt = s.now().UTC()

	if errs := Validate(ctx, current); !errs.Empty() {
		return current, errs
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return Sighting{}, fmt.Errorf("update sighting: %w", err)
	}
	return current, nil
}

// Delete borra una vez y devuelve el registro borrado.
func (s *Service) Delete(ctx context.Context, animalID, id string) (Sighting, error) {
	current, err := s.Get(ctx, animalID, id)
	if err != nil {
		return Sighting{}, err
	}
	if err := s.repo.Delete(ctx, current.ID); err != nil {
		return Sighting{}, fmt.Errorf("delete sighting: %w", err)
	}
	return current, nil
}

func (s *Service) requireAnimal(ctx context.Context, animalID string) error {
	if strings.TrimSpace(animalID) == "" {
		return ErrAnimalNotFound
	}
	ok, err := s.animals.Exists(ctx, animalID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAnimalNotFound
	}
	return nil
}
