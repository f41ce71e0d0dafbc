// Package config loads the towergen YAML configuration: generator
// parameters, the tower archive and the logging config path.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"codeberg.org/anaseto/gruid"
	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/towergen/internal/database"
	"github.com/lawnchairsociety/towergen/internal/tower"
)

// Config is the top-level towergen configuration.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Archive   ArchiveConfig   `yaml:"archive"`

	// Logging is the path of the file holding the logging section. Empty
	// means this same file.
	Logging string `yaml:"logging_config"`
}

// GeneratorConfig holds map generation settings.
type GeneratorConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// BoxSize is the nominal room size. 0 derives it from the map size.
	BoxSize int `yaml:"box_size"`

	// Stories is the number of tower floors. 0 generates a single level.
	Stories int `yaml:"stories"`

	Edge             float64 `yaml:"edge"`
	LairCore         int     `yaml:"lair_core"`
	MaxLairAttempts  int     `yaml:"max_lair_attempts"`
	MaxFloorAttempts int     `yaml:"max_floor_attempts"`
}

// ArchiveConfig holds tower archive settings.
type ArchiveConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Driver     string `yaml:"driver"`
	SQLitePath string `yaml:"sqlite_path"`

	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// DefaultConfig returns a Config with the generator defaults and a
// disabled SQLite archive.
func DefaultConfig() *Config {
	pg := database.DefaultPostgresConfig()
	return &Config{
		Generator: GeneratorConfig{
			Width:            80,
			Height:           50,
			Edge:             tower.DefaultEdge,
			LairCore:         tower.DefaultLairCore,
			MaxLairAttempts:  tower.DefaultMaxLairAttempts,
			MaxFloorAttempts: tower.DefaultMaxFloorAttempts,
		},
		Archive: ArchiveConfig{
			Driver:     "sqlite",
			SQLitePath: "data/towers.db",
			Host:       pg.Host,
			Port:       pg.Port,
			User:       pg.User,
			Database:   pg.Database,
			SSLMode:    pg.SSLMode,
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults
// and applies environment variable overrides. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return config, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, config); err != nil {
			return DefaultConfig(), fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	config.applyEnv()
	return config, nil
}

func (c *Config) applyEnv() {
	if driver := os.Getenv("TOWERGEN_DB_DRIVER"); driver != "" {
		c.Archive.Driver = driver
	}
	if path := os.Getenv("TOWERGEN_DB_PATH"); path != "" {
		c.Archive.SQLitePath = path
	}
	if password := os.Getenv("TOWERGEN_DB_PASSWORD"); password != "" {
		c.Archive.Password = password
	}
}

// Validate checks the configuration. Generator limits are checked again
// by the generator itself once the box size is resolved.
func (c *Config) Validate() error {
	var errs []error
	g := c.Generator
	if g.Width <= 0 || g.Height <= 0 {
		errs = append(errs, fmt.Errorf("generator: size %dx%d must be positive", g.Width, g.Height))
	}
	if g.BoxSize < 0 {
		errs = append(errs, fmt.Errorf("generator: box_size %d is negative", g.BoxSize))
	}
	if g.Stories < 0 {
		errs = append(errs, fmt.Errorf("generator: stories %d is negative", g.Stories))
	}
	if c.Archive.Enabled {
		if err := c.Database().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("archive: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Shape returns the map size.
func (g GeneratorConfig) Shape() gruid.Point {
	return gruid.Point{X: g.Width, Y: g.Height}
}

// Tower converts the generator settings to a tower.Config, deriving the box
// size when it is unset.
func (g GeneratorConfig) Tower() tower.Config {
	cfg := tower.DefaultConfig(g.Shape())
	if g.BoxSize > 0 {
		cfg.BoxSize = g.BoxSize
	}
	cfg.Edge = g.Edge
	cfg.LairCore = g.LairCore
	cfg.MaxLairAttempts = g.MaxLairAttempts
	cfg.MaxFloorAttempts = g.MaxFloorAttempts
	return cfg
}

// Database converts the archive settings to a database.Config.
func (c *Config) Database() database.Config {
	a := c.Archive
	cfg := database.DefaultConfig(a.SQLitePath)
	cfg.Driver = strings.ToLower(a.Driver)
	cfg.Postgres.Host = a.Host
	cfg.Postgres.Port = a.Port
	cfg.Postgres.User = a.User
	cfg.Postgres.Password = a.Password
	cfg.Postgres.Database = a.Database
	cfg.Postgres.SSLMode = a.SSLMode
	return cfg
}

// LoggingPath returns the file to read the logging section from.
func (c *Config) LoggingPath(configPath string) string {
	if c.Logging != "" {
		return c.Logging
	}
	return configPath
}
