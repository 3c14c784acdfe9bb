package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

// Database backends
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	SessionTTL   time.Duration
}

// DriverName maps the configured database type to its database/sql driver.
func (c Config) DriverName() string {
	if c.DatabaseType == DatabasePostgres {
		return "postgres"
	}
	return "sqlite"
}

// ParseFlags validates flags and applies environment fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var ttlMinutes int

	fs := flag.NewFlagSet("labcollect", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (sqlite path or postgres URL)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.IntVar(&ttlMinutes, "session-ttl", 0, "Idle session lifetime in minutes")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 4117 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == DatabasePostgres {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "experiments.db"
	}

	if ttlMinutes == 0 {
		if ttlStr := os.Getenv("SESSION_TTL_MINUTES"); ttlStr != "" {
			m, err := strconv.Atoi(ttlStr)
			if err != nil || m <= 0 {
				return Config{}, errors.New("invalid SESSION_TTL_MINUTES env variable")
			}
			ttlMinutes = m
		} else {
			ttlMinutes = 720 // 12 hours
		}
	}
	cfg.SessionTTL = time.Duration(ttlMinutes) * time.Minute

	return cfg, nil
}
