package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate junta todos los errores de configuración.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Storage.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error
	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}
	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}
	switch strings.ToLower(l.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: text, json; got %q", l.Format))
	}
	return errors.Join(errs...)
}

func (s *StorageConfig) validate() error {
	switch s.Driver {
	case DriverMemory:
		return nil
	case DriverPostgres, DriverSQLite:
		if strings.TrimSpace(s.DSN) == "" {
			return fmt.Errorf("storage.dsn is required for driver %q", s.Driver)
		}
		return nil
	default:
		return fmt.Errorf("storage.driver must be one of: memory, postgres, sqlite; got %q", s.Driver)
	}
}
