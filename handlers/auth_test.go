package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"labcollect/models"
	"labcollect/session"
	"labcollect/store"
	"labcollect/testutil"
)

func newSessions() *session.Store {
	return session.NewStore(time.Hour)
}

// login runs the login handler and returns the issued token
func login(t *testing.T, h *AuthHandler, email string) string {
	t.Helper()

	req := testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{Email: email}, nil)
	w := httptest.NewRecorder()
	h.Login(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.LoginResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Token == "" {
		t.Fatal("Expected a session token")
	}
	return resp.Token
}

func authHeader(token string) map[string]string {
	return map[string]string{SessionTokenHeader: token}
}

func TestLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	sessions := newSessions()
	handler := NewAuthHandler(store.New(db), sessions)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{
			name:           "valid email",
			body:           models.LoginRequest{Email: "ada@lab.example"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "blank email",
			body:           models.LoginRequest{Email: ""},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "whitespace email",
			body:           models.LoginRequest{Email: "   "},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			body:           nil,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/auth/login", tt.body, nil)
			w := httptest.NewRecorder()

			handler.Login(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusOK {
				var resp models.LoginResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Token == "" {
					t.Error("Expected a session token")
				}
				if resp.Page != models.PageList {
					t.Errorf("Expected page 'list' after login, got '%s'", resp.Page)
				}
			}
		})
	}
}

func TestLoginIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	sessions := newSessions()
	handler := NewAuthHandler(store.New(db), sessions)

	// Logging in twice with the same email registers exactly one user
	token1 := login(t, handler, "ada@lab.example")
	token2 := login(t, handler, "ada@lab.example")

	if token1 == token2 {
		t.Error("Expected distinct session tokens per login")
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE email = $1`, "ada@lab.example").Scan(&count); err != nil {
		t.Fatalf("Failed to count users: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected exactly 1 user row, got %d", count)
	}
}

func TestMe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	sessions := newSessions()
	handler := NewAuthHandler(store.New(db), sessions)

	token := login(t, handler, "ada@lab.example")

	t.Run("with valid token", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/auth/me", nil, authHeader(token))
		w := httptest.NewRecorder()

		handler.Me(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.MeResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Email != "ada@lab.example" {
			t.Errorf("Expected email 'ada@lab.example', got '%s'", resp.Email)
		}
		if resp.Page != models.PageList {
			t.Errorf("Expected page 'list', got '%s'", resp.Page)
		}
		if resp.Editing {
			t.Error("Expected no draft right after login")
		}
	})

	t.Run("without token", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/auth/me", nil, nil)
		w := httptest.NewRecorder()

		handler.Me(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("with unknown token", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/auth/me", nil, authHeader("not-a-token"))
		w := httptest.NewRecorder()

		handler.Me(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

func TestNavigate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	sessions := newSessions()
	handler := NewAuthHandler(store.New(db), sessions)

	token := login(t, handler, "ada@lab.example")

	tests := []struct {
		name           string
		page           string
		expectedStatus int
	}{
		{"to form", models.PageForm, http.StatusOK},
		{"to list", models.PageList, http.StatusOK},
		{"back to login", models.PageLogin, http.StatusOK},
		{"to form again from login", models.PageForm, http.StatusOK},
		{"unknown page", "dashboard", http.StatusBadRequest},
		{"blank page", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/session/navigate", models.NavigateRequest{Page: tt.page}, authHeader(token))
			w := httptest.NewRecorder()

			handler.Navigate(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusOK {
				var resp models.MeResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Page != tt.page {
					t.Errorf("Expected page '%s', got '%s'", tt.page, resp.Page)
				}
			}
		})
	}
}

func TestLogout(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	sessions := newSessions()
	handler := NewAuthHandler(store.New(db), sessions)

	token := login(t, handler, "ada@lab.example")

	// First logout ends the session
	req := testutil.MakeRequest("POST", "/auth/logout", nil, authHeader(token))
	w := httptest.NewRecorder()
	handler.Logout(w, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)

	// Token no longer resolves
	req = testutil.MakeRequest("GET", "/auth/me", nil, authHeader(token))
	w = httptest.NewRecorder()
	handler.Me(w, req)
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	// Logout is idempotent
	req = testutil.MakeRequest("POST", "/auth/logout", nil, authHeader(token))
	w = httptest.NewRecorder()
	handler.Logout(w, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)
}
