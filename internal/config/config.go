// Package config handles loading and parsing application configuration.
// Values come from three places, later ones winning:
//  1. A .env file in the working directory, if present (loaded into the
//     process environment)
//  2. An optional YAML file: CONFIG_PATH=/path/to/config.yaml or
//     --config=/path/to/config.yaml
//  3. Environment variables (env:"..." tags below)
//
// The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Storage drivers accepted in storage.driver / STORAGE_DRIVER.
const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	Storage Storage `yaml:"storage"`

	// HTTPServer is embedded so cfg.Addr() reads naturally.
	HTTPServer `yaml:"http_server"`
}

// Storage selects and configures the menu item backend.
type Storage struct {
	// Driver is one of "mongo", "sqlite" or "memory".
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"mongo"`

	// MongoURI is the connection string, e.g. mongodb://localhost:27017/menu.
	// Required when Driver is "mongo".
	MongoURI string `yaml:"mongo_uri" env:"MONGO_URI"`

	// Database overrides the database named in MongoURI.
	Database string `yaml:"database" env:"MONGO_DATABASE"`

	Collection string `yaml:"collection" env:"MONGO_COLLECTION" env-default:"menuitems"`

	// Path is the SQLite file used when Driver is "sqlite".
	Path string `yaml:"path" env:"STORAGE_PATH" env-default:"storage/menu.db"`

	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"STORAGE_CONNECT_TIMEOUT" env-default:"10s"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	// Host is empty to listen on every interface.
	Host string `yaml:"host" env:"HOST"`
	Port string `yaml:"port" env:"PORT" env-default:"5000"`
}

// Addr is the listen address for http.Server.
func (s HTTPServer) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// Load reads the configuration. path may be empty, in which case only
// the environment (and .env) is consulted.
func Load(path string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		// ReadConfig parses the file, then applies env overrides and defaults.
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverMongo:
		if c.Storage.MongoURI == "" {
			return errors.New("MONGO_URI is required when the storage driver is mongo")
		}
	case DriverSQLite:
		if c.Storage.Path == "" {
			return errors.New("STORAGE_PATH is required when the storage driver is sqlite")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Storage.ConnectTimeout <= 0 {
		return errors.New("storage connect timeout must be positive")
	}

	return nil
}

// MustLoad reads, validates, and returns the application config.
//
// The name "MustLoad" follows a Go convention: functions prefixed with
// "Must" are allowed to panic/fatal on failure. If this function
// returns, the config is valid.
func MustLoad() *Config {
	// ── Source 1: environment variable ───────────────────────────────
	configPath := os.Getenv("CONFIG_PATH")

	// ── Source 2: command-line flag ───────────────────────────────────
	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	return cfg
}
