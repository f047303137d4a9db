// Package config handles loading and parsing application configuration.
// The config file path comes from (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// A .env file in the working directory, if present, is loaded into the
// environment first, so its values can override the YAML file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/aanand-mishra/student-roster/internal/types"
)

// Storage drivers understood by main.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file and can be overridden by the
// corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity: "dev", "staging" or "prod".
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	// DisableSeed skips loading the sample roster at startup.
	DisableSeed bool `yaml:"disable_seed" env:"DISABLE_SEED"`

	Storage    Storage    `yaml:"storage"`
	Roster     Roster     `yaml:"roster"`
	HTTPServer HTTPServer `yaml:"http_server"`
}

// Storage selects the roster backend.
type Storage struct {
	// Driver is "memory" or "sqlite".
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`

	// Path is the SQLite data source. ":memory:" keeps the roster in
	// process memory. Ignored by the memory driver.
	Path string `yaml:"path" env:"STORAGE_PATH" env-default:":memory:"`
}

// Roster holds form settings.
type Roster struct {
	// MinYear and MaxYear bound the year field. Leave both at 0 to use the
	// ten-year window around the current year.
	MinYear int `yaml:"min_year" env:"ROSTER_MIN_YEAR"`
	MaxYear int `yaml:"max_year" env:"ROSTER_MAX_YEAR"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`
}

// YearRange returns the configured year window, or the window around now
// when none is configured.
func (c *Config) YearRange(now time.Time) types.YearRange {
	if c.Roster.MinYear == 0 && c.Roster.MaxYear == 0 {
		return types.YearWindow(now)
	}
	return types.YearRange{Min: c.Roster.MinYear, Max: c.Roster.MaxYear}
}

// Load reads the YAML file at path, applies environment overrides and
// checks the result.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if (c.Roster.MinYear == 0) != (c.Roster.MaxYear == 0) {
		return errors.New("roster.min_year and roster.max_year must be set together")
	}
	if c.Roster.MinYear > c.Roster.MaxYear {
		return fmt.Errorf("roster.min_year %d is after roster.max_year %d",
			c.Roster.MinYear, c.Roster.MaxYear)
	}

	return nil
}

// MustLoad reads, validates, and returns the application config.
// It exits the process if the config cannot be loaded.
func MustLoad() *Config {
	// A missing .env is fine; a broken one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("cannot load .env: %s", err.Error())
	}

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	return cfg
}
