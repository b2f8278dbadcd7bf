package animals

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("animal not found")

	// Los adapters devuelven estos errores cuando la restricción UNIQUE
	// del storage rechaza el insert/update (carrera entre dos requests).
	ErrCommonNameTaken = errors.New("common_name already taken")
	ErrLatinNameTaken  = errors.New("latin_name already taken")
)

type Repository interface {
	// Create inserta el animal y sus Sightings nuevos de forma atómica.
	Create(ctx context.Context, a Animal) error
	// Update persiste los campos del animal e inserta sus Sightings nuevos.
	Update(ctx context.Context, a Animal) error
	// Delete borra el animal y sus sightings.
	Delete(ctx context.Context, id string) error

	GetByID(ctx context.Context, id string) (Animal, error)
	List(ctx context.Context) ([]Animal, error)

	FindByCommonName(ctx context.Context, name string) (Animal, error)
	FindByLatinName(ctx context.Context, name string) (Animal, error)
}
