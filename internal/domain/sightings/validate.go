package sightings

import (
	"context"

	"wildlife-sightings/internal/domain/validation"
)

// rules es la lista ordenada de reglas de un Sighting.
// No hay validación de rango para latitude/longitude.
var rules = []validation.Rule[Sighting]{
	validation.Presence("date", func(s Sighting) bool { return s.Date != nil && !s.Date.IsZero() }),
	validation.Presence("latitude", func(s Sighting) bool { return s.Latitude != nil }),
	validation.Presence("longitude", func(s Sighting) bool { return s.Longitude != nil }),
	ownerRule,
}

func ownerRule(_ context.Context, s Sighting) ([]validation.Failure, error) {
	if validation.Blank(s.AnimalID) {
		return []validation.Failure{{Field: "animal", Message: validation.MsgMustExist}}, nil
	}
	return nil, nil
}

// Validate evalúa todas las reglas. Sin efectos colaterales.
func Validate(ctx context.Context, s Sighting) validation.Errors {
	// las reglas de Sighting no tocan infraestructura, no hay error posible
	errs, _ := validation.Run(ctx, s, rules)
	return errs
}
