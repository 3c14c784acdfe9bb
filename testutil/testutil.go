package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"labcollect/cliparse"
	"labcollect/db"
	"labcollect/models"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full
// schema. Each call returns an isolated database; the single-connection
// limit keeps every statement on the same memory instance.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn, cliparse.DatabaseSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         4117,
		DatabaseURL:  ":memory:",
		DatabaseType: cliparse.DatabaseSQLite,
		SessionTTL:   time.Hour,
	}
}

// CreateTestUser inserts a user row
func CreateTestUser(t *testing.T, conn *sql.DB, email string) {
	t.Helper()

	_, err := conn.Exec(`INSERT INTO users (email) VALUES ($1) ON CONFLICT (email) DO NOTHING`, email)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
}

// CreateTestExperiment inserts a persisted experiment with the given
// rows and returns its generated id.
func CreateTestExperiment(t *testing.T, conn *sql.DB, email, expType, name string, rows []models.Record) int64 {
	t.Helper()

	CreateTestUser(t, conn, email)

	if rows == nil {
		rows = []models.Record{}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		t.Fatalf("Failed to marshal test rows: %v", err)
	}

	var id int64
	err = conn.QueryRow(`
		INSERT INTO experiments (email, experiment_type, experiment_name, date, data)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, email, expType, name, time.Now().UTC().Format(time.RFC3339), data).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test experiment: %v", err)
	}

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
