package sqlite

import (
	"context"
	"errors"

	"wildlife-sightings/internal/domain/sightings"

	"gorm.io/gorm"
)

type sightingRepo struct {
	db *gorm.DB
}

func (r *sightingRepo) Create(ctx context.Context, sg sightings.Sighting) error {
	rec := toSightingRecord(sg)
	return translate(r.db.WithContext(ctx).Create(&rec).Error)
}

func (r *sightingRepo) Update(ctx context.Context, sg sightings.Sighting) error {
	return updateSighting(r.db.WithContext(ctx), sg)
}

// updateSighting no mueve el sighting de animal: id y dueño tienen que coincidir.
func updateSighting(db *gorm.DB, sg sightings.Sighting) error {
	rec := toSightingRecord(sg)
	res := db.Model(&sightingRecord{}).Where("id = ? AND animal_id = ?", sg.ID, sg.AnimalID).Updates(map[string]any{
		"date":       rec.Date,
		"latitude":   rec.Latitude,
		"longitude":  rec.Longitude,
		"updated_at": rec.UpdatedAt,
	})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return sightings.ErrNotFound
	}
	return nil
}

func (r *sightingRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&sightingRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return sightings.ErrNotFound
	}
	return nil
}

func (r *sightingRepo) GetByID(ctx context.Context, id string) (sightings.Sighting, error) {
	var rec sightingRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return sightings.Sighting{}, sightings.ErrNotFound
		}
		return sightings.Sighting{}, err
	}
	return fromSightingRecord(rec), nil
}

func (r *sightingRepo) List(ctx context.Context, filter sightings.ListFilter) ([]sightings.Sighting, error) {
	q := r.db.WithContext(ctx).Model(&sightingRecord{})
	if filter.AnimalID != "" {
		q = q.Where("animal_id = ?", filter.AnimalID)
	}
	if filter.From != nil {
		q = q.Where("date >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		q = q.Where("date <= ?", filter.To.UTC())
	}

	var recs []sightingRecord
	if err := q.Order("created_at ASC, id ASC").Find(&recs).Error; err != nil {
		return nil, err
	}

	out := make([]sightings.Sighting, 0, len(recs))
	for _, rec := range recs {
		out = append(out, fromSightingRecord(rec))
	}
	return out, nil
}

// Las columnas son NOT NULL: el service no persiste un sighting inválido.
func toSightingRecord(sg sightings.Sighting) sightingRecord {
	rec := sightingRecord{
		ID:        sg.ID,
		AnimalID:  sg.AnimalID,
		CreatedAt: sg.CreatedAt,
		UpdatedAt: sg.UpdatedAt,
	}
	if sg.Date != nil {
		rec.Date = sg.Date.UTC()
	}
	if sg.Latitude != nil {
		rec.Latitude = *sg.Latitude
	}
	if sg.Longitude != nil {
		rec.Longitude = *sg.Longitude
	}
	return rec
}

func fromSightingRecord(rec sightingRecord) sightings.Sighting {
	date := rec.Date.UTC()
	lat := rec.Latitude
	lng := rec.Longitude
	return sightings.Sighting{
		ID:        rec.ID,
		AnimalID:  rec.AnimalID,
		Date:      &date,
		Latitude:  &lat,
		Longitude: &lng,
		CreatedAt: rec.CreatedAt.UTC(),
		UpdatedAt: rec.UpdatedAt.UTC(),
	}
}
