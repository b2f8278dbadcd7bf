// Package storagetest tiene la batería común que corre contra cada adapter.
package storagetest

import (
	"context"
	"sync"
	"time"

	"wildlife-sightings/internal/domain/animals"
	"wildlife-sightings/internal/domain/sightings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// Factory devuelve repos vacíos que comparten backend.
type Factory func() (animals.Repository, sightings.Repository)

// RepositorySuite verifica el contrato de animals.Repository y sightings.Repository.
// Cada adapter la embebe y define Factory en SetupTest.
type RepositorySuite struct {
	suite.Suite

	Factory Factory

	ctx       context.Context
	animals   animals.Repository
	sightings sightings.Repository
	base      time.Time
}

func (s *RepositorySuite) SetupTest() {
	s.Require().NotNil(s.Factory, "Factory must be set")
	s.ctx = context.Background()
	s.animals, s.sightings = s.Factory()
	s.base = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (s *RepositorySuite) newAnimal(common, latin string) animals.Animal {
	return animals.Animal{
		ID:         uuid.NewString(),
		CommonName: common,
		LatinName:  latin,
		CreatedAt:  s.base,
		UpdatedAt:  s.base,
	}
}

func (s *RepositorySuite) newSighting(animalID string, date time.Time) sightings.Sighting {
	lat, lng := decimal.RequireFromString("45.5152"), decimal.RequireFromString("122.6784")
	d := date.UTC()
	return sightings.Sighting{
		ID:        uuid.NewString(),
		AnimalID:  animalID,
		Date:      &d,
		Latitude:  &lat,
		Longitude: &lng,
		CreatedAt: s.base,
		UpdatedAt: s.base,
	}
}

func (s *RepositorySuite) TestAnimalCreateAndGet() {
	a := s.newAnimal("Weasel", "Mustela nivalis")
	a.Kingdom = "mammal"
	s.Require().NoError(s.animals.Create(s.ctx, a))

	got, err := s.animals.GetByID(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal("Weasel", got.CommonName)
	s.Equal("Mustela nivalis", got.LatinName)
	s.Equal("mammal", got.Kingdom)
	s.True(got.CreatedAt.Equal(s.base))

	byCommon, err := s.animals.FindByCommonName(s.ctx, "Weasel")
	s.Require().NoError(err)
	s.Equal(a.ID, byCommon.ID)

	byLatin, err := s.animals.FindByLatinName(s.ctx, "Mustela nivalis")
	s.Require().NoError(err)
	s.Equal(a.ID, byLatin.ID)
}

func (s *RepositorySuite) TestAnimalNotFound() {
	_, err := s.animals.GetByID(s.ctx, uuid.NewString())
	s.ErrorIs(err, animals.ErrNotFound)

	_, err = s.animals.FindByCommonName(s.ctx, "Nobody")
	s.ErrorIs(err, animals.ErrNotFound)

	s.ErrorIs(s.animals.Delete(s.ctx, uuid.NewString()), animals.ErrNotFound)
	s.ErrorIs(s.animals.Update(s.ctx, s.newAnimal("Ghost", "Ghostus")), animals.ErrNotFound)
}

func (s *RepositorySuite) TestAnimalUniqueBackstop() {
	s.Require().NoError(s.animals.Create(s.ctx, s.newAnimal("Weasel", "Mustela nivalis")))

	err := s.animals.Create(s.ctx, s.newAnimal("Weasel", "Mustela erminea"))
	s.ErrorIs(err, animals.ErrCommonNameTaken)

	err = s.animals.Create(s.ctx, s.newAnimal("Least weasel", "Mustela nivalis"))
	s.ErrorIs(err, animals.ErrLatinNameTaken)

	other := s.newAnimal("Stoat", "Mustela erminea")
	s.Require().NoError(s.animals.Create(s.ctx, other))
	other.CommonName = "Weasel"
	s.ErrorIs(s.animals.Update(s.ctx, other), animals.ErrCommonNameTaken)
}

// Solo uno de los creates concurrentes con el mismo nombre puede ganar.
func (s *RepositorySuite) TestAnimalUniqueUnderConcurrency() {
	const workers = 8

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a := s.newAnimal("Weasel", "Mustela nivalis "+uuid.NewString())
			if err := s.animals.Create(s.ctx, a); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(1, created)
}

func (s *RepositorySuite) TestAnimalCreateWithNestedSightings() {
	a := s.newAnimal("Weasel", "Mustela nivalis")
	a.Sightings = []sightings.Sighting{
		s.newSighting(a.ID, s.base.AddDate(0, 0, -1)),
		s.newSighting(a.ID, s.base.AddDate(0, 0, -2)),
	}
	s.Require().NoError(s.animals.Create(s.ctx, a))

	list, err := s.sightings.List(s.ctx, sightings.ListFilter{AnimalID: a.ID})
	s.Require().NoError(err)
	s.Len(list, 2)
}

func (s *RepositorySuite) TestAnimalUpdateAddsNestedSightings() {
	a := s.newAnimal("Weasel", "Mustela nivalis")
	s.Require().NoError(s.animals.Create(s.ctx, a))

	a.Kingdom = "Animalia"
	a.UpdatedAt = s.base.Add(time.Hour)
	a.Sightings = []sightings.Sighting{s.newSighting(a.ID, s.base)}
	s.Require().NoError(s.animals.Update(s.ctx, a))

	got, err := s.animals.GetByID(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal("Animalia", got.Kingdom)
	s.True(got.UpdatedAt.Equal(a.UpdatedAt))

	list, err := s.sightings.List(s.ctx, sightings.ListFilter{AnimalID: a.ID})
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *RepositorySuite) TestAnimalUpdateChangesNestedSightings() {
	a := s.newAnimal("Weasel", "Mustela nivalis")
	stored := s.newSighting(a.ID, s.base)
	a.Sightings = []sightings.Sighting{stored}
	s.Require().NoError(s.animals.Create(s.ctx, a))

	lat := decimal.RequireFromString("50")
	changed := stored
	changed.Latitude = &lat
	changed.UpdatedAt = s.base.Add(time.Hour)

	a.Kingdom = "Animalia"
	a.Sightings = []sightings.Sighting{s.newSighting(a.ID, s.base)}
	a.ChangedSightings = []sightings.Sighting{changed}
	s.Require().NoError(s.animals.Update(s.ctx, a))

	got, err := s.sightings.GetByID(s.ctx, stored.ID)
	s.Require().NoError(err)
	s.True(got.Latitude.Equal(lat), got.Latitude.String())
	s.True(got.Longitude.Equal(*stored.Longitude))
	s.True(got.UpdatedAt.Equal(changed.UpdatedAt))
	s.True(got.CreatedAt.Equal(stored.CreatedAt))

	list, err := s.sightings.List(s.ctx, sightings.ListFilter{AnimalID: a.ID})
	s.Require().NoError(err)
	s.Len(list, 2)
}

func (s *RepositorySuite) TestAnimalUpdateRejectsForeignChangedSighting() {
	a := s.newAnimal("Weasel", "Mustela nivalis")
	other := s.newAnimal("Stoat", "Mustela erminea")
	s.Require().NoError(s.animals.Create(s.ctx, a))
	s.Require().NoError(s.animals.Create(s.ctx, other))

	foreign := s.newSighting(other.ID, s.base)
	s.Require().NoError(s.sightings.Create(s.ctx, foreign))

	// el sighting se presenta como del animal a, pero es de other
	moved := foreign
	moved.AnimalID = a.ID
	a.Kingdom = "Animalia"
	a.ChangedSightings = []sightings.Sighting{moved}
	s.ErrorIs(s.animals.Update(s.ctx, a), sightings.ErrNotFound)

	got, err := s.animals.GetByID(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Empty(got.Kingdom, "la transacción no debe dejar cambios parciales")

	sg, err := s.sightings.GetByID(s.ctx, foreign.ID)
	s.Require().NoError(err)
	s.Equal(other.ID, sg.AnimalID)
}

func (s *RepositorySuite) TestSightingKeepsDecimalPrecision() {
	a := s.newAnimal("Weasel", "Mustela nivalis")
	s.Require().NoError(s.animals.Create(s.ctx, a))

	sg := s.newSighting(a.ID, s.base)
	lat := decimal.RequireFromString("45.123456789012345678")
	lng := decimal.RequireFromString("-122.123456789012345678")
	sg.Latitude, sg.Longitude = &lat, &lng
	s.Require().NoError(s.sightings.Create(s.ctx, sg))

	got, err := s.sightings.GetByID(s.ctx, sg.ID)
	s.Require().NoError(err)
	s.Equal("45.123456789012345678", got.Latitude.String())
	s.Equal("-122.123456789012345678", got.Longitude.String())
}

func (s *RepositorySuite) TestAnimalDeleteCascades() {
	a := s.newAnimal("Weasel", "Mustela nivalis")
	keep := s.newAnimal("Stoat", "Mustela erminea")
	s.Require().NoError(s.animals.Create(s.ctx, a))
	s.Require().NoError(s.animals.Create(s.ctx, keep))

	gone := s.newSighting(a.ID, s.base)
	kept := s.newSighting(keep.ID, s.base)
	s.Require().NoError(s.sightings.Create(s.ctx, gone))
	s.Require().NoError(s.sightings.Create(s.ctx, kept))

	s.Require().NoError(s.animals.Delete(s.ctx, a.ID))

	_, err := s.sightings.GetByID(s.ctx, gone.ID)
	s.ErrorIs(err, sightings.ErrNotFound)

	_, err = s.sightings.GetByID(s.ctx, kept.ID)
	s.NoError(err)
}

func (s *RepositorySuite) TestAnimalListOrderedByCreation() {
	first := s.newAnimal("Weasel", "Mustela nivalis")
	second := s.newAnimal("Stoat", "Mustela erminea")
	second.CreatedAt = s.base.Add(time.Minute)
	s.Require().NoError(s.animals.Create(s.ctx, second))
	s.Require().NoError(s.animals.Create(s.ctx, first))

	list, err := s.animals.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(first.ID, list[0].ID)
	s.Equal(second.ID, list[1].ID)
}

func (s *RepositorySuite) TestSightingRequiresAnimal() {
	err := s.sightings.Create(s.ctx, s.newSighting(uuid.NewString(), s.base))
	s.ErrorIs(err, sightings.ErrAnimalNotFound)
}

func (s *RepositorySuite) TestSightingCRUD() {
	a := s.newAnimal("Weasel", "Mustela nivalis")
	s.Require().NoError(s.animals.Create(s.ctx, a))

	sg := s.newSighting(a.ID, time.Date(2022, 1, 12, 16, 57, 0, 0, time.UTC))
	s.Require().NoError(s.sightings.Create(s.ctx, sg))

	got, err := s.sightings.GetByID(s.ctx, sg.ID)
	s.Require().NoError(err)
	s.Equal(a.ID, got.AnimalID)
	s.True(got.Date.Equal(*sg.Date))
	s.True(got.Latitude.Equal(decimal.RequireFromString("45.5152")), got.Latitude.String())
	s.True(got.Longitude.Equal(decimal.RequireFromString("122.6784")), got.Longitude.String())

	lat := decimal.RequireFromString("-12.25")
	sg.Latitude = &lat
	sg.UpdatedAt = s.base.Add(time.Hour)
	s.Require().NoError(s.sightings.Update(s.ctx, sg))

	got, err = s.sightings.GetByID(s.ctx, sg.ID)
	s.Require().NoError(err)
	s.True(got.Latitude.Equal(lat), got.Latitude.String())
	s.True(got.UpdatedAt.Equal(sg.UpdatedAt))

	s.Require().NoError(s.sightings.Delete(s.ctx, sg.ID))
	s.ErrorIs(s.sightings.Delete(s.ctx, sg.ID), sightings.ErrNotFound)
	s.ErrorIs(s.sightings.Update(s.ctx, sg), sightings.ErrNotFound)

	_, err = s.sightings.GetByID(s.ctx, sg.ID)
	s.ErrorIs(err, sightings.ErrNotFound)
}

func (s *RepositorySuite) TestSightingListRange() {
	a := s.newAnimal("Weasel", "Mustela nivalis")
	b := s.newAnimal("Stoat", "Mustela erminea")
	s.Require().NoError(s.animals.Create(s.ctx, a))
	s.Require().NoError(s.animals.Create(s.ctx, b))

	day := func(d int) time.Time { return time.Date(2022, 1, d, 0, 0, 0, 0, time.UTC) }
	for _, sg := range []sightings.Sighting{
		s.newSighting(a.ID, day(1)),
		s.newSighting(a.ID, day(10)),
		s.newSighting(b.ID, day(10)),
		s.newSighting(a.ID, day(20)),
	} {
		s.Require().NoError(s.sightings.Create(s.ctx, sg))
	}

	from, to := day(1), day(10)

	list, err := s.sightings.List(s.ctx, sightings.ListFilter{From: &from, To: &to})
	s.Require().NoError(err)
	s.Len(list, 3, "bounds are inclusive")

	list, err = s.sightings.List(s.ctx, sightings.ListFilter{AnimalID: a.ID, From: &from, To: &to})
	s.Require().NoError(err)
	s.Len(list, 2)

	list, err = s.sightings.List(s.ctx, sightings.ListFilter{From: &to})
	s.Require().NoError(err)
	s.Len(list, 3, "missing end bound is open")

	list, err = s.sightings.List(s.ctx, sightings.ListFilter{})
	s.Require().NoError(err)
	s.Len(list, 4)
}
