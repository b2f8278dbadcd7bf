package sqlite

import (
	"fmt"
	"strings"
	"time"

	"wildlife-sightings/internal/domain/animals"
	"wildlife-sightings/internal/domain/sightings"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type animalRecord struct {
	ID         string  `gorm:"primaryKey"`
	CommonName string  `gorm:"not null;uniqueIndex:idx_animals_common_name"`
	LatinName  string  `gorm:"not null;uniqueIndex:idx_animals_latin_name"`
	Kingdom    *string

	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`

	Sightings []sightingRecord `gorm:"foreignKey:AnimalID;constraint:OnDelete:CASCADE"`
}

func (animalRecord) TableName() string { return "animals" }

type sightingRecord struct {
	ID        string    `gorm:"primaryKey"`
	AnimalID  string    `gorm:"index;not null"`
	Date      time.Time `gorm:"index;not null"`

	// TEXT y no NUMERIC: con afinidad NUMERIC SQLite lo pasa a REAL y recorta dígitos.
	Latitude  decimal.Decimal `gorm:"type:text;not null"`
	Longitude decimal.Decimal `gorm:"type:text;not null"`

	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (sightingRecord) TableName() string { return "sightings" }

// Store implementa los repos de animals y sightings sobre SQLite (gorm).
type Store struct {
	db *gorm.DB
}

// Open abre (o crea) la base. dsn puede ser una ruta o ":memory:".
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// una sola conexión: el PRAGMA aplica por conexión y ":memory:" es por conexión
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return &Store{db: db}, nil
}

// Migrate crea/actualiza tablas, índices únicos y FK.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&animalRecord{}, &sightingRecord{})
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) Animals() animals.Repository {
	return &animalRepo{db: s.db}
}

func (s *Store) Sightings() sightings.Repository {
	return &sightingRepo{db: s.db}
}

// translate: el driver no expone el nombre del índice, solo el mensaje
// "UNIQUE constraint failed: animals.common_name".
func translate(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed: animals.common_name"):
		return animals.ErrCommonNameTaken
	case strings.Contains(msg, "UNIQUE constraint failed: animals.latin_name"):
		return animals.ErrLatinNameTaken
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return sightings.ErrAnimalNotFound
	}
	return err
}
