package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "WILDLIFE_"

// Load lee la configuración:
//  1. Default()
//  2. path (YAML), si se indica. Si path está vacío y no existe configs/config.yaml se omite.
//  3. PORT y DB_DSN (DB_DSN implica driver postgres)
//  4. Variables WILDLIFE_* (WILDLIFE_STORAGE_DSN -> storage.dsn)
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = "configs/config.yaml"
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	}

	// Compatibilidad con el despliegue anterior; WILDLIFE_* sigue teniendo prioridad.
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if _, err := strconv.Atoi(v); err == nil {
			_ = k.Set("server.port", v)
		}
	}
	if v := strings.TrimSpace(os.Getenv("DB_DSN")); v != "" {
		_ = k.Set("storage.dsn", v)
		_ = k.Set("storage.driver", DriverPostgres)
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return envKey(key), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// Secciones conocidas; lo que sigue al primer "_" después de la sección es el campo.
// WILDLIFE_SERVER_READ_TIMEOUT -> server.read_timeout
var sections = []string{"server", "log", "storage", "api"}

func envKey(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	for _, s := range sections {
		if strings.HasPrefix(key, s+"_") {
			return s + "." + strings.TrimPrefix(key, s+"_")
		}
	}
	return strings.ReplaceAll(key, "_", ".")
}
