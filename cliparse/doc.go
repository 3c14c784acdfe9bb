/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 4117)
  - DatabaseURL: sqlite file path or postgres connection string
    (default: experiments.db)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - SessionTTL: idle session lifetime (default: 12 hours)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-session-ttl  Idle session lifetime in minutes

# Environment Variables

Flags fall back to environment variables:

	PORT                → -p
	DATABASE_URL        → -d
	DATABASE_TYPE       → -t
	SESSION_TTL_MINUTES → -session-ttl

CLI flags take precedence over environment variables. main loads a .env
file via godotenv before parsing, so a local .env behaves like exported
environment variables.

# Validation

ParseFlags returns an error if:

  - DATABASE_TYPE is neither sqlite nor postgres
  - DATABASE_TYPE is postgres and no DATABASE_URL is given

With sqlite, a missing DATABASE_URL defaults to the experiments.db file
in the working directory.

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open(cfg.DriverName(), cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(db, cfg)
*/
package cliparse
