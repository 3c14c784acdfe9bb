/*
Package main provides the entry point for the Lab Collect API server.

Lab Collect is a laboratory data-entry service: users log in with an email
address, fill a multi-section experiment form row by row, save named
experiments, and download the accumulated rows as an xlsx spreadsheet.

# Starting the Server

The server runs against a local sqlite file out of the box:

	go run main.go

Or against PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run main.go

A .env file in the working directory is loaded before flag parsing.

# Configuration

Optional settings:

  - PORT (-p): Server port (default: 4117)
  - DATABASE_URL (-d): sqlite file path or postgres connection string
    (default: experiments.db)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default: sqlite)
  - SESSION_TTL_MINUTES (-session-ttl): idle session lifetime
    (default: 720)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (auth, experiments, export)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types, error taxonomy
  - fields: Static form field schema shared by form and export
  - session: Bearer-token session store (current user, page, draft)
  - store: Experiment persistence over database/sql
  - export: Table flattening and xlsx serialization
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
