package postgres

import (
	"errors"

	"wildlife-sightings/internal/domain/animals"
	"wildlife-sightings/internal/domain/sightings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"

	constraintCommonName = "animals_common_name_key"
	constraintLatinName  = "animals_latin_name_key"
)

// translate mapea violaciones de constraints a los errores de dominio.
// Cualquier otro error se devuelve tal cual.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		switch pgErr.ConstraintName {
		case constraintCommonName:
			return animals.ErrCommonNameTaken
		case constraintLatinName:
			return animals.ErrLatinNameTaken
		}
	case codeForeignKeyViolation:
		return sightings.ErrAnimalNotFound
	}
	return err
}
