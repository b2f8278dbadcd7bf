package sqlite

import (
	"testing"

	"wildlife-sightings/internal/adapters/storage/storagetest"
	"wildlife-sightings/internal/domain/animals"
	"wildlife-sightings/internal/domain/sightings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func openMemory(t *testing.T) *Store {
	t.Helper()

	st, err := Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.Migrate())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestStore_Repositories(t *testing.T) {
	s := &storagetest.RepositorySuite{}
	s.Factory = func() (animals.Repository, sightings.Repository) {
		st := openMemory(s.T())
		return st.Animals(), st.Sightings()
	}
	suite.Run(t, s)
}

func TestStore_MigrateIsIdempotent(t *testing.T) {
	st := openMemory(t)
	assert.NoError(t, st.Migrate())
}

func TestStore_KingdomEmptyIsNull(t *testing.T) {
	st := openMemory(t)

	require.NoError(t, st.Animals().Create(t.Context(), animals.Animal{
		ID: "a-1", CommonName: "Weasel", LatinName: "Mustela nivalis",
	}))

	var count int64
	require.NoError(t, st.db.Model(&animalRecord{}).Where("kingdom IS NULL").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestTranslate(t *testing.T) {
	assert.Nil(t, translate(nil))
	assert.ErrorIs(t, translate(errString("UNIQUE constraint failed: animals.common_name")), animals.ErrCommonNameTaken)
	assert.ErrorIs(t, translate(errString("UNIQUE constraint failed: animals.latin_name")), animals.ErrLatinNameTaken)
	assert.ErrorIs(t, translate(errString("FOREIGN KEY constraint failed")), sightings.ErrAnimalNotFound)

	other := errString("disk I/O error")
	assert.Equal(t, other, translate(other))
}

type errString string

func (e errString) Error() string { return string(e) }
