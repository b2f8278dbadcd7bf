// Package config carga la configuración del servicio: defaults, archivo YAML
// opcional y variables de entorno WILDLIFE_* (en ese orden de precedencia).
package config

import "time"

type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Log     LogConfig     `koanf:"log"`
	Storage StorageConfig `koanf:"storage"`
	API     APIConfig     `koanf:"api"`
}

type ServerConfig struct {
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	App    string `koanf:"app"`
}

// StorageConfig elige el adapter: memory (default), postgres o sqlite.
type StorageConfig struct {
	Driver  string `koanf:"driver"`
	DSN     string `koanf:"dsn"`
	Migrate bool   `koanf:"migrate"`
}

type APIConfig struct {
	// LegacyUpdateStatus: 200 en vez de 422 cuando falla la validación de un update de sighting.
	LegacyUpdateStatus bool `koanf:"legacy_update_status"`
	// Docs expone /swagger/*.
	Docs bool `koanf:"docs"`
}

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Default devuelve los valores base; el YAML y el entorno los pisan.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			App:    "wildlife-sightings",
		},
		Storage: StorageConfig{
			Driver:  DriverMemory,
			Migrate: true,
		},
		API: APIConfig{
			Docs: true,
		},
	}
}
