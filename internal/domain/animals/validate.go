package animals

import (
	"context"
	"errors"
	"sort"

	"wildlife-sightings/internal/domain/sightings"
	"wildlife-sightings/internal/domain/validation"
)

// Validator aplica las reglas de Animal. Necesita el repo para unicidad.
type Validator struct {
	rules []validation.Rule[Animal]
}

func NewValidator(repo Repository) *Validator {
	return &Validator{rules: []validation.Rule[Animal]{
		validation.Presence("common_name", func(a Animal) bool { return !validation.Blank(a.CommonName) }),
		validation.Presence("latin_name", func(a Animal) bool { return !validation.Blank(a.LatinName) }),
		latinDiffersFromCommon,
		unique("common_name", repo.FindByCommonName, func(a Animal) string { return a.CommonName }),
		unique("latin_name", repo.FindByLatinName, func(a Animal) string { return a.LatinName }),
		associatedSightings,
	}}
}

// Validate no tiene efectos colaterales: revalidar da el mismo resultado.
func (v *Validator) Validate(ctx context.Context, a Animal) (validation.Errors, error) {
	return validation.Run(ctx, a, v.rules)
}

// Igualdad exacta; corre aunque ambos estén en blanco.
func latinDiffersFromCommon(_ context.Context, a Animal) ([]validation.Failure, error) {
	if a.LatinName == a.CommonName {
		return []validation.Failure{{Field: "latin_name", Message: validation.MsgSameAsCommon}}, nil
	}
	return nil, nil
}

type finder func(ctx context.Context, name string) (Animal, error)

// unique excluye al propio registro (update).
func unique(field string, find finder, value func(Animal) string) validation.Rule[Animal] {
	return func(ctx context.Context, a Animal) ([]validation.Failure, error) {
		name := value(a)
		if validation.Blank(name) {
			// presencia ya lo reporta; ningún registro persistido tiene nombre en blanco
			return nil, nil
		}

		other, err := find(ctx, name)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		if other.ID != a.ID {
			return []validation.Failure{{Field: field, Message: validation.MsgTaken}}, nil
		}
		return nil, nil
	}
}

// associatedSightings valida en cascada los sightings nuevos y los modificados.
// Los guardados que el request no toca ya pasaron esta validación al escribirse.
// Reporta "sightings is invalid" y el detalle bajo sightings.<campo>.
func associatedSightings(ctx context.Context, a Animal) ([]validation.Failure, error) {
	nested := validation.Errors{}
	for _, list := range [][]sightings.Sighting{a.Sightings, a.ChangedSightings} {
		for _, sg := range list {
			if errs := sightings.Validate(ctx, sg); !errs.Empty() {
				nested.Merge("sightings", errs)
			}
		}
	}
	if nested.Empty() {
		return nil, nil
	}

	keys := make([]string, 0, len(nested))
	for k := range nested {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := []validation.Failure{{Field: "sightings", Message: validation.MsgInvalid}}
	for _, k := range keys {
		for _, msg := range nested[k] {
			out = append(out, validation.Failure{Field: k, Message: msg})
		}
	}
	return out, nil
}
