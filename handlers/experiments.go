package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"labcollect/fields"
	"labcollect/middleware"
	"labcollect/models"
	"labcollect/session"
	"labcollect/store"
)

type ExperimentHandler struct {
	store    *store.ExperimentStore
	sessions *session.Store
}

func NewExperimentHandler(st *store.ExperimentStore, sessions *session.Store) *ExperimentHandler {
	return &ExperimentHandler{store: st, sessions: sessions}
}

// List handles GET /experiments
func (h *ExperimentHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	summaries, err := h.store.ListExperiments(r.Context(), sess.Email())
	if err != nil {
		slog.Error("failed to list experiments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, summaries)
}

// Start handles POST /experiments
// Binds a fresh draft to the session and moves to the form page. Type
// and name are taken verbatim; a blank name just makes an unnamed
// experiment.
func (h *ExperimentHandler) Start(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	var req models.StartExperimentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	draft := &models.Experiment{
		Email:     sess.Email(),
		Type:      req.ExperimentType,
		Name:      req.ExperimentName,
		CreatedAt: time.Now(),
		Rows:      []models.Record{},
	}
	sess.Bind(draft)

	slog.Info("experiment started", "email", sess.Email(), "name", req.ExperimentName)

	middleware.JSONResponse(w, http.StatusCreated, draft)
}

// Open handles POST /experiments/{id}/open
// Loads a persisted experiment into the session draft for editing.
// Experiments belonging to someone else 404 rather than leak.
func (h *ExperimentHandler) Open(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid experiment id")
		return
	}

	exp, err := h.store.Load(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Experiment not found")
		return
	}
	if errors.Is(err, store.ErrDeserialize) {
		slog.Error("failed to decode experiment rows", "id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Stored rows are unreadable")
		return
	}
	if err != nil {
		slog.Error("failed to load experiment", "id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if exp.Email != sess.Email() {
		middleware.ErrorResponse(w, http.StatusNotFound, "Experiment not found")
		return
	}

	sess.Bind(exp)

	slog.Info("experiment opened", "email", sess.Email(), "id", id)

	middleware.JSONResponse(w, http.StatusOK, sess.Draft())
}

// GetDraft handles GET /experiments/draft
func (h *ExperimentHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	draft := sess.Draft()
	if draft == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "no experiment in progress")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, draft)
}

// RenameDraft handles PUT /experiments/draft
func (h *ExperimentHandler) RenameDraft(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	var req models.RenameDraftRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := sess.Rename(req.ExperimentName); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, sess.Draft())
}

// SubmitRow handles POST /experiments/draft/rows
// Coerces the submitted values per field kind and appends the record to
// the draft. Values are never rejected, only shaped.
func (h *ExperimentHandler) SubmitRow(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	var req models.SubmitRowRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	rec := coerceRow(req.Values)
	count, err := sess.AppendRow(rec)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitRowResponse{
		Record:   rec,
		RowCount: count,
	})
}

// SaveDraft handles POST /experiments/draft/save
// Persists the draft (insert on first save, wholesale overwrite on
// resave), then clears it and returns the session to the list page. On
// storage failure the draft stays bound so no rows are lost.
func (h *ExperimentHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	draft := sess.Draft()
	if draft == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "no experiment in progress")
		return
	}

	id, err := h.store.Save(r.Context(), draft)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Experiment not found")
		return
	}
	if err != nil {
		slog.Error("failed to save experiment", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save experiment")
		return
	}

	sess.ClearDraft()

	slog.Info("experiment saved", "email", sess.Email(), "id", id, "rows", len(draft.Rows))

	middleware.JSONResponse(w, http.StatusOK, models.SaveExperimentResponse{
		ExperimentID: id,
		Message:      "experiment saved",
	})
}

// coerceRow shapes raw form values into a record keyed by every schema
// field. Unknown labels are dropped; missing ones get the field's
// default (empty, today's date, or the first select choice).
func coerceRow(values map[string]string) models.Record {
	all := fields.All()
	rec := make(models.Record, len(all))
	for _, f := range all {
		rec[f.Label] = coerceValue(f, values[f.Label])
	}
	return rec
}

func coerceValue(f fields.Field, raw string) string {
	switch f.Kind {
	case fields.KindDate:
		return coerceDate(raw)
	case fields.KindSelect:
		for _, c := range f.Choices {
			if raw == c {
				return c
			}
		}
		// Unrecognized or blank: fall back to the first choice, which
		// is what the rendered form preselects.
		if len(f.Choices) > 0 {
			return f.Choices[0]
		}
		return raw
	default:
		return raw
	}
}

// Accepted date inputs, most common first. ISO date is what the form
// sends; the rest cover pasted values.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
	"02.01.2006",
}

func coerceDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now().Format("2006-01-02")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	// Not a recognizable date; keep the text rather than losing it
	return raw
}
