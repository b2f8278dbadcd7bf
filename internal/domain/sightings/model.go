package sightings

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sighting es una observación geolocalizada de un animal.
// Date/Latitude/Longitude son punteros: nil = no informado (falla presencia).
type Sighting struct {
	ID       string
	AnimalID string

	Date      *time.Time
	Latitude  *decimal.Decimal
	Longitude *decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Field lleva un valor opcional y si vino en el request (para PATCH).
type Field[T any] struct {
	Present bool
	Value   *T
}

// Set construye un Field presente con valor.
func Set[T any](v T) Field[T] {
	return Field[T]{Present: true, Value: &v}
}

// Attributes son los campos permitidos desde un request: date, latitude, longitude.
type Attributes struct {
	Date      Field[time.Time]
	Latitude  Field[decimal.Decimal]
	Longitude Field[decimal.Decimal]
}

// Apply copia sobre s solo los campos presentes.
func (a Attributes) Apply(s *Sighting) {
	if a.Date.Present {
		s.Date = a.Date.Value
	}
	if a.Latitude.Present {
		s.Latitude = a.Latitude.Value
	}
	if a.Longitude.Present {
		s.Longitude = a.Longitude.Value
	}
}

// New arma un Sighting nuevo bajo animalID. No valida ni persiste.
func New(id, animalID string, attrs Attributes, now time.Time) Sighting {
	s := Sighting{
		ID:        id,
		AnimalID:  animalID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	attrs.Apply(&s)
	return s
}
