package validation

import (
	"context"
	"errors"
	"sort"
	"strings"
)

// Mensajes compartidos por los validadores de animals y sightings.
const (
	MsgBlank        = "can't be blank"
	MsgTaken        = "has already been taken"
	MsgInvalid      = "is invalid"
	MsgMustExist    = "must exist"
	MsgSameAsCommon = "cannot be the same as common name"
)

// ErrInvalid permite chequear con errors.Is sin conocer los campos.
var ErrInvalid = errors.New("validation failed")

// Failure es un par (campo, mensaje) producido por una regla.
type Failure struct {
	Field   string
	Message string
}

// Rule evalúa una entidad y devuelve cero o más fallas.
// El error se reserva para problemas de infraestructura (ej: repo caído).
type Rule[T any] func(ctx context.Context, v T) ([]Failure, error)

// Errors mapea campo -> mensajes en el orden en que se agregaron.
// Se serializa tal cual a JSON: {"common_name": ["can't be blank"]}.
type Errors map[string][]string

func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Merge agrega los errores de other bajo prefix.campo (prefix vacío = mismo campo).
func (e Errors) Merge(prefix string, other Errors) {
	for field, msgs := range other {
		key := field
		if prefix != "" {
			key = prefix + "." + field
		}
		for _, m := range msgs {
			if !contains(e[key], m) {
				e.Add(key, m)
			}
		}
	}
}

func (e Errors) Empty() bool { return len(e) == 0 }

func (e Errors) On(field string) []string { return e[field] }

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		for _, m := range e[f] {
			parts = append(parts, f+" "+m)
		}
	}
	return ErrInvalid.Error() + ": " + strings.Join(parts, "; ")
}

func (e Errors) Unwrap() error { return ErrInvalid }

// Run ejecuta las reglas en orden y junta todas las fallas.
// Las reglas son independientes: una falla no corta la evaluación de las siguientes.
func Run[T any](ctx context.Context, v T, rules []Rule[T]) (Errors, error) {
	errs := Errors{}
	for _, rule := range rules {
		failures, err := rule(ctx, v)
		if err != nil {
			return nil, err
		}
		for _, f := range failures {
			errs.Add(f.Field, f.Message)
		}
	}
	return errs, nil
}

// Presence falla con MsgBlank cuando present(v) es false.
func Presence[T any](field string, present func(T) bool) Rule[T] {
	return func(_ context.Context, v T) ([]Failure, error) {
		if present(v) {
			return nil, nil
		}
		return []Failure{{Field: field, Message: MsgBlank}}, nil
	}
}

// Blank replica la noción de "en blanco": vacío o solo espacios.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// AsErrors extrae el mapa de errores si err es (o envuelve) un Errors.
func AsErrors(err error) (Errors, bool) {
	var verrs Errors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
