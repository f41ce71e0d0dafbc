package database

import (
	"fmt"
	"time"
)

// Config holds database connection configuration.
type Config struct {
	// Driver specifies which database to use: "sqlite" or "postgres"
	Driver string

	// SQLite configuration
	SQLitePath string

	// PostgreSQL configuration
	Postgres PostgresConfig
}

// PostgresConfig holds PostgreSQL-specific configuration.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns a Config with sensible defaults for SQLite.
func DefaultConfig(sqlitePath string) Config {
	return Config{
		Driver:     string(DialectSQLite),
		SQLitePath: sqlitePath,
		Postgres:   DefaultPostgresConfig(),
	}
}

// DefaultPostgresConfig returns PostgresConfig with recommended pool settings.
func DefaultPostgresConfig() PostgresConfig {
	return PostgresConfig{
		Host:            "localhost",
		Port:            5432,
		User:            "towergen",
		Database:        "towergen",
		SSLMode:         "disable",
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// Validate checks that the selected driver has what it needs to connect.
func (c Config) Validate() error {
	switch DialectType(c.Driver) {
	case DialectSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite archive needs a path")
		}
	case DialectPostgres:
		if c.Postgres.Host == "" || c.Postgres.Database == "" {
			return fmt.Errorf("postgres archive needs a host and database")
		}
	default:
		return fmt.Errorf("unknown archive driver %q (want sqlite or postgres)", c.Driver)
	}
	return nil
}

// DSN returns the lib/pq connection string.
func (c PostgresConfig) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s", c.Host, c.Port, c.Database, c.SSLMode)
	if c.User != "" {
		dsn += " user=" + c.User
	}
	if c.Password != "" {
		dsn += " password=" + quoteDSNValue(c.Password)
	}
	return dsn
}

// quoteDSNValue quotes a connection string value that may hold spaces or quotes.
func quoteDSNValue(v string) string {
	quoted := make([]byte, 0, len(v)+2)
	quoted = append(quoted, '\'')
	for i := 0; i < len(v); i++ {
		if v[i] == '\'' || v[i] == '\\' {
			quoted = append(quoted, '\\')
		}
		quoted = append(quoted, v[i])
	}
	return string(append(quoted, '\''))
}
