package animals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wildlife-sightings/internal/domain/sightings"
	"wildlife-sightings/internal/domain/validation"

	"github.com/google/uuid"
)

// SightingReader es lo que el servicio necesita del repo de sightings
// para modificar sightings anidados por id.
type SightingReader interface {
	GetByID(ctx context.Context, id string) (sightings.Sighting, error)
}

type Service struct {
	repo      Repository
	children  SightingReader
	validator *Validator
	now       func() time.Time
	newID     func() string
}

func NewService(repo Repository, children SightingReader) *Service {
	return &Service{
		repo:      repo,
		children:  children,
		validator: NewValidator(repo),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// NestedSighting es una entrada de sightings_attributes.
// Con ID modifica ese sighting del animal; sin ID crea uno nuevo.
type NestedSighting struct {
	ID    string
	Attrs sightings.Attributes
}

type CreateInput struct {
	CommonName string
	LatinName  string
	Kingdom    string

	// Sightings a crear junto con el animal (sightings_attributes).
	Sightings []NestedSighting
}

// UpdateInput: punteros para PATCH real, nil = no tocar.
type UpdateInput struct {
	CommonName *string
	LatinName  *string
	Kingdom    *string

	Sightings []NestedSighting
}

func (s *Service) List(ctx context.Context) ([]Animal, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Exists implementa sightings.AnimalLookup.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Validate expone el validador (sin persistir nada).
func (s *Service) Validate(ctx context.Context, a Animal) (validation.Errors, error) {
	return s.validator.Validate(ctx, a)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Animal, error) {
	now := s.now().UTC()
	a := Animal{
		ID:         s.newID(),
		CommonName: in.CommonName,
		LatinName:  in.LatinName,
		Kingdom:    in.Kingdom,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	// un animal nuevo no tiene sightings: cualquier id es desconocido
	created, _, err := s.nestedSightings(ctx, a.ID, in.Sightings, false, now)
	if err != nil {
		return a, err
	}
	a.Sightings = created

	if err := s.check(ctx, a); err != nil {
		return a, err
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return a, storageError("create animal", err)
	}
	return a, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Animal, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Animal{}, err
	}

	if in.CommonName != nil {
		current.CommonName = *in.CommonName
	}
	if in.LatinName != nil {
		current.LatinName = *in.LatinName
	}
	if in.Kingdom != nil {
		current.Kingdom = *in.Kingdom
	}

	now := s.now().UTC()
	current.UpdatedAt = now
	created, changed, err := s.nestedSightings(ctx, current.ID, in.Sightings, true, now)
	if err != nil {
		return current, err
	}
	current.Sightings = created
	current.ChangedSightings = changed

	if err := s.check(ctx, current); err != nil {
		return current, err
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return current, storageError("update animal", err)
	}
	return current, nil
}

// Delete borra el animal (y sus sightings) y devuelve el registro borrado.
func (s *Service) Delete(ctx context.Context, id string) (Animal, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Animal{}, err
	}
	if err := s.repo.Delete(ctx, current.ID); err != nil {
		return Animal{}, fmt.Errorf("delete animal: %w", err)
	}
	return current, nil
}

func (s *Service) check(ctx context.Context, a Animal) error {
	errs, err := s.validator.Validate(ctx, a)
	if err != nil {
		return fmt.Errorf("validate animal: %w", err)
	}
	if !errs.Empty() {
		return errs
	}
	return nil
}

// nestedSightings separa las entradas en sightings nuevos y modificados.
// Un id inexistente o de otro animal devuelve sightings.ErrNotFound.
// Si el mismo id se repite, los atributos se aplican en orden.
func (s *Service) nestedSightings(ctx context.Context, animalID string, entries []NestedSighting, persisted bool, now time.Time) (created, changed []sightings.Sighting, err error) {
	pos := map[string]int{}
	for _, e := range entries {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			created = append(created, sightings.New(s.newID(), animalID, e.Attrs, now))
			continue
		}
		if i, ok := pos[id]; ok {
			e.Attrs.Apply(&changed[i])
			continue
		}
		if !persisted {
			return nil, nil, fmt.Errorf("nested sighting %s: %w", id, sightings.ErrNotFound)
		}

		sg, err := s.children.GetByID(ctx, id)
		if err != nil {
			return nil, nil, fmt.Errorf("nested sighting %s: %w", id, err)
		}
		if sg.AnimalID != animalID {
			return nil, nil, fmt.Errorf("nested sighting %s: %w", id, sightings.ErrNotFound)
		}
		e.Attrs.Apply(&sg)
		sg.UpdatedAt = now

		pos[id] = len(changed)
		changed = append(changed, sg)
	}
	return created, changed, nil
}

// storageError traduce el rechazo de la restricción UNIQUE al mismo
// error de validación que da la regla de unicidad.
func storageError(op string, err error) error {
	switch {
	case errors.Is(err, ErrCommonNameTaken):
		return validation.Errors{"common_name": {validation.MsgTaken}}
	case errors.Is(err, ErrLatinNameTaken):
		return validation.Errors{"latin_name": {validation.MsgTaken}}
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
