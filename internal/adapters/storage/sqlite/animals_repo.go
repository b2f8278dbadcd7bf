package sqlite

import (
	"context"
	"errors"

	"wildlife-sightings/internal/domain/animals"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type animalRepo struct {
	db *gorm.DB
}

func (r *animalRepo) Create(ctx context.Context, a animals.Animal) error {
	rec := toAnimalRecord(a)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&rec).Error; err != nil {
			return translate(err)
		}
		return createSightings(tx, a)
	})
}

func (r *animalRepo) Update(ctx context.Context, a animals.Animal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&animalRecord{}).Where("id = ?", a.ID).Updates(map[string]any{
			"common_name": a.CommonName,
			"latin_name":  a.LatinName,
			"kingdom":     nullable(a.Kingdom),
			"updated_at":  a.UpdatedAt,
		})
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return animals.ErrNotFound
		}
		for _, sg := range a.ChangedSightings {
			if err := updateSighting(tx, sg); err != nil {
				return err
			}
		}
		return createSightings(tx, a)
	})
}

// Delete borra los sightings explícitamente además de la FK en cascada.
func (r *animalRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("animal_id = ?", id).Delete(&sightingRecord{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&animalRecord{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return animals.ErrNotFound
		}
		return nil
	})
}

func (r *animalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	return r.take(ctx, "id = ?", id)
}

func (r *animalRepo) FindByCommonName(ctx context.Context, name string) (animals.Animal, error) {
	return r.take(ctx, "common_name = ?", name)
}

func (r *animalRepo) FindByLatinName(ctx context.Context, name string) (animals.Animal, error) {
	return r.take(ctx, "latin_name = ?", name)
}

func (r *animalRepo) List(ctx context.Context) ([]animals.Animal, error) {
	var recs []animalRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]animals.Animal, 0, len(recs))
	for _, rec := range recs {
		out = append(out, fromAnimalRecord(rec))
	}
	return out, nil
}

func (r *animalRepo) take(ctx context.Context, cond string, arg any) (animals.Animal, error) {
	var rec animalRecord
	if err := r.db.WithContext(ctx).Where(cond, arg).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	return fromAnimalRecord(rec), nil
}

func createSightings(tx *gorm.DB, a animals.Animal) error {
	if len(a.Sightings) == 0 {
		return nil
	}
	recs := make([]sightingRecord, 0, len(a.Sightings))
	for _, sg := range a.Sightings {
		recs = append(recs, toSightingRecord(sg))
	}
	return translate(tx.Create(&recs).Error)
}

func toAnimalRecord(a animals.Animal) animalRecord {
	return animalRecord{
		ID:         a.ID,
		CommonName: a.CommonName,
		LatinName:  a.LatinName,
		Kingdom:    nullable(a.Kingdom),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func fromAnimalRecord(rec animalRecord) animals.Animal {
	a := animals.Animal{
		ID:         rec.ID,
		CommonName: rec.CommonName,
		LatinName:  rec.LatinName,
		CreatedAt:  rec.CreatedAt.UTC(),
		UpdatedAt:  rec.UpdatedAt.UTC(),
	}
	if rec.Kingdom != nil {
		a.Kingdom = *rec.Kingdom
	}
	return a
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
