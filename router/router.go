package router

import (
	"database/sql"
	"net/http"

	"labcollect/cliparse"
	"labcollect/handlers"
	"labcollect/middleware"
	"labcollect/session"
	"labcollect/store"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize shared state and handlers
	st := store.New(db)
	sessions := session.NewStore(cfg.SessionTTL)

	authHandler := handlers.NewAuthHandler(st, sessions)
	fieldsHandler := handlers.NewFieldsHandler()
	experimentHandler := handlers.NewExperimentHandler(st, sessions)
	exportHandler := handlers.NewExportHandler(st, sessions)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Authentication and session state
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("POST /auth/logout", middleware.WithLogging(authHandler.Logout))
	mux.HandleFunc("GET /auth/me", middleware.WithLogging(authHandler.Me))
	mux.HandleFunc("POST /session/navigate", middleware.WithLogging(authHandler.Navigate))

	// Form schema
	mux.HandleFunc("GET /fields", middleware.WithLogging(fieldsHandler.GetFields))

	// Experiment list and draft lifecycle
	mux.HandleFunc("GET /experiments", middleware.WithLogging(experimentHandler.List))
	mux.HandleFunc("POST /experiments", middleware.WithLogging(experimentHandler.Start))
	mux.HandleFunc("POST /experiments/{id}/open", middleware.WithLogging(experimentHandler.Open))
	mux.HandleFunc("GET /experiments/draft", middleware.WithLogging(experimentHandler.GetDraft))
	mux.HandleFunc("PUT /experiments/draft", middleware.WithLogging(experimentHandler.RenameDraft))
	mux.HandleFunc("POST /experiments/draft/rows", middleware.WithLogging(experimentHandler.SubmitRow))
	mux.HandleFunc("POST /experiments/draft/save", middleware.WithLogging(experimentHandler.SaveDraft))

	// Workbook export and merge
	mux.HandleFunc("GET /experiments/draft/export", middleware.WithLogging(exportHandler.ExportDraft))
	mux.HandleFunc("GET /experiments/{id}/export", middleware.WithLogging(exportHandler.ExportByID))
	mux.HandleFunc("POST /export/merge", middleware.WithLogging(exportHandler.Merge))

	// Root endpoint. The {$} anchor keeps this from swallowing every
	// unrouted GET, so method mismatches on POST-only routes still 405.
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("labcollect API v1"))
	})

	return mux
}
