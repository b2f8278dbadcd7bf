package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"wildlife-sightings/internal/domain/animals"
	"wildlife-sightings/internal/domain/sightings"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

const animalColumns = `id, common_name, latin_name, kingdom, created_at, updated_at`

// Create inserta el animal y sus sightings nuevos en una transacción.
func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO animals (`+animalColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6)
		`,
			a.ID,
			a.CommonName,
			a.LatinName,
			toNullString(a.Kingdom),
			a.CreatedAt,
			a.UpdatedAt,
		)
		if err != nil {
			return translate(err)
		}
		return insertSightings(ctx, tx, a.Sightings)
	})
}

// Update guarda el animal, los sightings modificados y los nuevos en una transacción.
func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE animals
			SET
				common_name = $2,
				latin_name = $3,
				kingdom = $4,
				updated_at = $5
			WHERE id = $1
		`,
			a.ID,
			a.CommonName,
			a.LatinName,
			toNullString(a.Kingdom),
			a.UpdatedAt,
		)
		if err != nil {
			return translate(err)
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			return animals.ErrNotFound
		}
		for _, sg := range a.ChangedSightings {
			if err := updateSighting(ctx, tx, sg); err != nil {
				return err
			}
		}
		return insertSightings(ctx, tx, a.Sightings)
	})
}

// Delete: los sightings se van por ON DELETE CASCADE.
func (r *AnimalsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, animals.ErrNotFound
	}
	return r.getOne(ctx, `SELECT `+animalColumns+` FROM animals WHERE id = $1`, id)
}

func (r *AnimalsRepo) FindByCommonName(ctx context.Context, name string) (animals.Animal, error) {
	return r.getOne(ctx, `SELECT `+animalColumns+` FROM animals WHERE common_name = $1`, name)
}

func (r *AnimalsRepo) FindByLatinName(ctx context.Context, name string) (animals.Animal, error) {
	return r.getOne(ctx, `SELECT `+animalColumns+` FROM animals WHERE latin_name = $1`, name)
}

func (r *AnimalsRepo) List(ctx context.Context) ([]animals.Animal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AnimalsRepo) getOne(ctx context.Context, query string, arg any) (animals.Animal, error) {
	a, err := scanAnimal(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	return a, nil
}

func (r *AnimalsRepo) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnimal(s scanner) (animals.Animal, error) {
	var a animals.Animal
	var kingdom sql.NullString
	if err := s.Scan(
		&a.ID,
		&a.CommonName,
		&a.LatinName,
		&kingdom,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return animals.Animal{}, err
	}
	a.Kingdom = kingdom.String
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}

func insertSightings(ctx context.Context, tx *sql.Tx, list []sightings.Sighting) error {
	for _, sg := range list {
		if err := insertSighting(ctx, tx, sg); err != nil {
			return err
		}
	}
	return nil
}

// kingdom es opcional: vacío se guarda como NULL
func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
