// Package config resolves a load configuration from the environment,
// optional .env files and an optional YAML file.
//
// Precedence (highest first): process environment, --env-file files in
// reverse order, ./.env, YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/catalogdb/pkg/catalogdb"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// DefaultEnvFile is read when present in the working directory.
const DefaultEnvFile = ".env"

type SourcesConfig struct {
	Items   string `yaml:"items"`
	Reviews string `yaml:"reviews"`
	Users   string `yaml:"users,omitempty"`
}

type DatabaseConfig struct {
	Path        string `yaml:"path"`
	Driver      string `yaml:"driver,omitempty"`
	BusyRetries int    `yaml:"busy_retries,omitempty"`
}

type FileConfig struct {
	Sources  SourcesConfig  `yaml:"sources"`
	Database DatabaseConfig `yaml:"database"`
}

// Load reads a YAML config file.
func Load(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrConfigNotFound)
		}
		return nil, err
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Layered returns a LookupFunc consulting lookups in order; the first
// non-empty value wins.
func Layered(lookups ...LookupFunc) LookupFunc {
	return func(key string) (string, bool) {
		for _, lookup := range lookups {
			if v, ok := lookup(key); ok && v != "" {
				return v, true
			}
		}
		return "", false
	}
}

// MapLookup adapts a map to a LookupFunc.
func MapLookup(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// ReadEnvFiles parses .env files without touching the process environment.
// Later files override earlier ones. The default ./.env is read first when
// it exists; explicitly named files must exist.
func ReadEnvFiles(files []string) (map[string]string, error) {
	merged := make(map[string]string)

	if _, err := os.Stat(DefaultEnvFile); err == nil {
		values, err := godotenv.Read(DefaultEnvFile)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w: %w", DefaultEnvFile, catalogdb.ErrConfiguration, err)
		}
		for k, v := range values {
			merged[k] = v
		}
	}

	for _, file := range files {
		values, err := godotenv.Read(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file '%s': %w: %w", file, catalogdb.ErrConfiguration, err)
		}
		for k, v := range values {
			merged[k] = v
		}
	}

	return merged, nil
}

// Resolve builds a LoadConfig from lookup, falling back to file values.
// It only fails on values that cannot be parsed; LoadConfig.Validate
// reports unset required values.
func Resolve(lookup LookupFunc, file *FileConfig) (catalogdb.LoadConfig, error) {
	if file == nil {
		file = &FileConfig{}
	}

	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return fallback
	}

	retries := file.Database.BusyRetries
	if v, ok := lookup(catalogdb.EnvBusyRetries); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return catalogdb.LoadConfig{}, fmt.Errorf("%s must be an integer, got %q: %w", catalogdb.EnvBusyRetries, v, catalogdb.ErrConfiguration)
		}
		retries = n
	}

	return catalogdb.LoadConfig{
		ItemsPath:   get(catalogdb.EnvItemCSVPath, file.Sources.Items),
		ReviewsPath: get(catalogdb.EnvReviewCSVPath, file.Sources.Reviews),
		UsersPath:   get(catalogdb.EnvUserCSVPath, file.Sources.Users),
		DBPath:      get(catalogdb.EnvDBPath, file.Database.Path),
		Driver:      get(catalogdb.EnvSQLiteDriver, file.Database.Driver),
		BusyRetries: retries,
	}, nil
}
