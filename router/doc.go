/*
Package router defines HTTP routes for the Lab Collect API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Authentication and session state (bearer token via X-Session-Token):

	POST /auth/login       - Log in with an email address
	POST /auth/logout      - End the session
	GET  /auth/me          - Current user, page, editing state
	POST /session/navigate - Switch page (login, list, form)

Form schema:

	GET /fields - Sections and fields the form renders from

Experiments:

	GET  /experiments                - List the user's experiments
	POST /experiments                - Start a new draft
	POST /experiments/{id}/open      - Load a saved experiment for editing
	GET  /experiments/draft          - Current draft and rows
	PUT  /experiments/draft          - Rename the draft
	POST /experiments/draft/rows     - Append a coerced record
	POST /experiments/draft/save     - Persist and clear the draft

Export:

	GET  /experiments/draft/export - Download the draft as a workbook
	GET  /experiments/{id}/export  - Download a saved experiment
	POST /export/merge             - Merge uploaded files into one workbook

# Handler Initialization

The router builds the experiment store and session registry once and
injects them into the handlers:

	st := store.New(db)
	sessions := session.NewStore(cfg.SessionTTL)
	authHandler := handlers.NewAuthHandler(st, sessions)

Route patterns use Go 1.22 method matching; the literal /experiments/draft
routes win over the /experiments/{id} wildcards.
*/
package router
