/*
Package handlers contains HTTP request handlers for the Lab Collect API.

# Handler Types

Each handler is a struct with its store dependencies:

  - AuthHandler: Email login, logout, session info, page navigation
  - FieldsHandler: Static form field schema
  - ExperimentHandler: Experiment list and draft lifecycle
  - ExportHandler: Workbook export and multi-file merge

Handlers are created via constructor functions that accept the
experiment store and the session registry:

	authHandler := handlers.NewAuthHandler(st, sessions)

# Session Flow

Login registers the email (idempotently) and opens a server-side
session; every later call carries the bearer token:

	POST /auth/login  → Login (returns token)
	GET  /auth/me     → Me
	POST /auth/logout → Logout

Authenticated operations require the X-Session-Token header.

# Draft Lifecycle

A draft experiment lives in the session: nil while idle, bound while
editing. Submitting a row keeps the form open; saving clears the draft
and returns to the list page:

	POST /experiments                 → Start (bind fresh draft)
	POST /experiments/{id}/open       → Open (load saved experiment)
	POST /experiments/draft/rows      → SubmitRow (coerce and append)
	POST /experiments/draft/save      → SaveDraft (persist, clear)

# Value Coercion

SubmitRow never rejects input; it shapes it per field kind. Dates are
normalized to YYYY-MM-DD, select values are resolved against the
declared choices (falling back to the first choice), and text/number
fields pass through verbatim. Labels not in the schema are dropped.

# Export

Export handlers flatten records into a header-plus-rows table and
stream a one-sheet workbook as an attachment. The merge endpoint
accepts a multipart batch, skips unreadable files with a per-file
report, and concatenates the rest under a running "Row Index" column.
*/
package handlers
