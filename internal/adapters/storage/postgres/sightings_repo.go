package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"wildlife-sightings/internal/domain/sightings"

	"github.com/shopspring/decimal"
)

type SightingsRepo struct {
	db *sql.DB
}

func NewSightingsRepo(db *sql.DB) *SightingsRepo {
	return &SightingsRepo{db: db}
}

// latitude/longitude son NUMERIC y se escanean a decimal sin pasar por float.
const sightingColumns = `id, animal_id, date, latitude, longitude, created_at, updated_at`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *SightingsRepo) Create(ctx context.Context, sg sightings.Sighting) error {
	return insertSighting(ctx, r.db, sg)
}

func insertSighting(ctx context.Context, db execer, sg sightings.Sighting) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO sightings (
			id, animal_id,
			date, latitude, longitude,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		sg.ID,
		sg.AnimalID,
		sg.Date,
		sg.Latitude,
		sg.Longitude,
		sg.CreatedAt,
		sg.UpdatedAt,
	)
	return translate(err)
}

func (r *SightingsRepo) Update(ctx context.Context, sg sightings.Sighting) error {
	return updateSighting(ctx, r.db, sg)
}

// updateSighting no cambia el dueño: si el sighting no es de sg.AnimalID
// se trata como inexistente.
func updateSighting(ctx context.Context, db execer, sg sightings.Sighting) error {
	res, err := db.ExecContext(ctx, `
		UPDATE sightings
		SET
			date = $3,
			latitude = $4,
			longitude = $5,
			updated_at = $6
		WHERE id = $1 AND animal_id = $2
	`,
		sg.ID,
		sg.AnimalID,
		sg.Date,
		sg.Latitude,
		sg.Longitude,
		sg.UpdatedAt,
	)
	if err != nil {
		return translate(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sightings.ErrNotFound
	}
	return nil
}

func (r *SightingsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sightings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sightings.ErrNotFound
	}
	return nil
}

func (r *SightingsRepo) GetByID(ctx context.Context, id string) (sightings.Sighting, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return sightings.Sighting{}, sightings.ErrNotFound
	}

	sg, err := scanSighting(r.db.QueryRowContext(ctx, `
		SELECT `+sightingColumns+`
		FROM sightings
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sightings.Sighting{}, sightings.ErrNotFound
		}
		return sightings.Sighting{}, err
	}
	return sg, nil
}

func (r *SightingsRepo) List(ctx context.Context, filter sightings.ListFilter) ([]sightings.Sighting, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + sightingColumns + ` FROM sightings WHERE TRUE`)

	args := []any{}
	argN := 1

	if filter.AnimalID != "" {
		sb.WriteString(fmt.Sprintf(" AND animal_id = $%d", argN))
		args = append(args, filter.AnimalID)
		argN++
	}
	// rango inclusivo en ambos extremos
	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND date >= $%d", argN))
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND date <= $%d", argN))
		args = append(args, *filter.To)
	}
	sb.WriteString(" ORDER BY created_at ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]sightings.Sighting, 0)
	for rows.Next() {
		sg, err := scanSighting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sg)
	}
	return out, rows.Err()
}

func scanSighting(s scanner) (sightings.Sighting, error) {
	var sg sightings.Sighting
	var date sql.NullTime
	var lat, lng decimal.NullDecimal
	if err := s.Scan(
		&sg.ID,
		&sg.AnimalID,
		&date,
		&lat,
		&lng,
		&sg.CreatedAt,
		&sg.UpdatedAt,
	); err != nil {
		return sightings.Sighting{}, err
	}

	sg.CreatedAt = sg.CreatedAt.UTC()
	sg.UpdatedAt = sg.UpdatedAt.UTC()
	if date.Valid {
		t := date.Time.UTC()
		sg.Date = &t
	}
	if lat.Valid {
		v := lat.Decimal
		sg.Latitude = &v
	}
	if lng.Valid {
		v := lng.Decimal
		sg.Longitude = &v
	}
	return sg, nil
}
