package animals

import (
	"time"

	"wildlife-sightings/internal/domain/sightings"
)

// Animal representa una entrada taxonómica (nombre común + nombre latino).
type Animal struct {
	ID string

	CommonName string
	LatinName  string
	Kingdom    string // opcional, sin reglas

	// Sightings nuevos que se crean junto con el animal (sightings_attributes).
	// No se cargan al leer desde el repo.
	Sightings []sightings.Sighting

	// ChangedSightings son sightings ya guardados del animal que el mismo
	// request modifica (entradas de sightings_attributes con id).
	ChangedSightings []sightings.Sighting

	CreatedAt time.Time
	UpdatedAt time.Time
}
