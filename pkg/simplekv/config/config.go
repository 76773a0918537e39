package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-kv/pkg/simplekv"
	"github.com/tendant/simple-kv/pkg/simplekv/repo/memory"
	repopg "github.com/tendant/simple-kv/pkg/simplekv/repo/postgres"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of
// library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	cfg.DatabaseType = databaseTypeFor(cfg.DatabaseURL)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:        "3003",
		Environment: "development",
	}
}

// ServerConfig represents server configuration for the simple-kv service
type ServerConfig struct {
	Port        string `env:"PORT" env-default:"3003"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`

	// Database configuration. An empty or "memory" DATABASE_URL selects the
	// in-memory repository; a postgres URL selects the pgx repository.
	DatabaseURL string `env:"DATABASE_URL" env-default:""`
	DBSchema    string `env:"KV_DB_SCHEMA" env-default:""`

	// Derived from DatabaseURL by Load: "memory" or "postgres".
	DatabaseType string
}

// searchPathSQL builds the session statement for a schema, quoting the
// identifier so schemas needing quoting survive.
func searchPathSQL(schema string) string {
	return "SET search_path TO " + pgx.Identifier{schema}.Sanitize()
}

func databaseTypeFor(databaseURL string) string {
	switch {
	case databaseURL == "" || databaseURL == "memory":
		return "memory"
	case strings.HasPrefix(databaseURL, "postgres://"),
		strings.HasPrefix(databaseURL, "postgresql://"):
		return "postgres"
	default:
		return ""
	}
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return fmt.Errorf("unsupported DATABASE_URL %q: expected empty, \"memory\", or a postgres:// URL", c.DatabaseURL)
	}

	return nil
}

// BuildService creates a Service instance from the server configuration.
// The returned cleanup function releases the database pool, if any.
func (c *ServerConfig) BuildService(ctx context.Context) (simplekv.Service, func(), error) {
	repo, cleanup, err := c.buildRepository(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build repository: %w", err)
	}

	svc, err := simplekv.New(simplekv.WithRepository(repo))
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return svc, cleanup, nil
}

// buildRepository creates a Repository based on the configuration
func (c *ServerConfig) buildRepository(ctx context.Context) (simplekv.Repository, func(), error) {
	switch c.DatabaseType {
	case "memory":
		return memory.New(), func() {}, nil
	case "postgres":
		cfg, err := pgxpool.ParseConfig(c.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
		}
		// Optionally set search_path for each connection
		schema := c.DBSchema
		cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			if schema == "" {
				return nil
			}
			_, err := conn.Exec(ctx, searchPathSQL(schema))
			return err
		}
		pool, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("database ping failed: %w", err)
		}
		if err := repopg.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repopg.NewWithPool(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}
