package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"labcollect/middleware"
	"labcollect/models"
	"labcollect/session"
	"labcollect/store"
)

// SessionTokenHeader carries the bearer token on every authenticated
// request.
const SessionTokenHeader = "X-Session-Token"

type AuthHandler struct {
	store    *store.ExperimentStore
	sessions *session.Store
}

func NewAuthHandler(st *store.ExperimentStore, sessions *session.Store) *AuthHandler {
	return &AuthHandler{store: st, sessions: sessions}
}

// requireSession resolves the bearer token on the request. On failure it
// writes the 401 response itself and returns false.
func requireSession(w http.ResponseWriter, r *http.Request, sessions *session.Store) (*session.Session, bool) {
	token := r.Header.Get(SessionTokenHeader)
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "session token is required")
		return nil, false
	}
	sess, ok := sessions.Get(token)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "invalid or expired session")
		return nil, false
	}
	return sess, true
}

// Login handles POST /auth/login
// The email is an identifier, not a credential: any non-blank email gets
// a session. Logging in twice with the same address registers one user.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}

	if err := h.store.RegisterUser(r.Context(), email); err != nil {
		slog.Error("failed to register user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	sess, err := h.sessions.Start(email)
	if err != nil {
		slog.Error("failed to start session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("user logged in", "email", email)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token: sess.Token(),
		Email: sess.Email(),
		Page:  sess.Page(),
	})
}

// Logout handles POST /auth/logout
// Idempotent; an unknown or already-expired token still gets 204. Any
// unsaved draft goes with the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(SessionTokenHeader)
	if token != "" {
		h.sessions.End(token)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MeResponse{
		Email:   sess.Email(),
		Page:    sess.Page(),
		Editing: sess.Editing(),
	})
}

// Navigate handles POST /session/navigate
// Any known page is reachable from any state; only unknown page names
// are rejected.
func (h *AuthHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	var req models.NavigateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := sess.Navigate(req.Page); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MeResponse{
		Email:   sess.Email(),
		Page:    sess.Page(),
		Editing: sess.Editing(),
	})
}
