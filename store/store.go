package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"labcollect/models"
)

var (
	// ErrPersistence wraps storage-layer I/O failures on save/load.
	ErrPersistence = errors.New("persistence error")
	// ErrNotFound is returned when no experiment has the requested id.
	ErrNotFound = errors.New("experiment not found")
	// ErrDeserialize is returned when a persisted row payload cannot be
	// decoded back into records.
	ErrDeserialize = errors.New("row payload deserialization error")
)

// ExperimentStore persists users and experiments over database/sql.
// Row payloads are stored as a JSON array in the data column and decoded
// into typed records; malformed payloads fail with ErrDeserialize rather
// than passing garbage through.
type ExperimentStore struct {
	db *sql.DB
}

func New(db *sql.DB) *ExperimentStore {
	return &ExperimentStore{db: db}
}

// RegisterUser records an email address. Idempotent: logging in twice
// with the same email leaves exactly one user row.
func (s *ExperimentStore) RegisterUser(ctx context.Context, email string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (email) VALUES ($1)
		ON CONFLICT (email) DO NOTHING
	`, email)
	if err != nil {
		return fmt.Errorf("%w: register user: %v", ErrPersistence, err)
	}
	return nil
}

// ListExperiments returns the owner's experiments, newest first
// (created_at descending; equal dates keep insertion order, which a
// stable sort would preserve). Row
// payloads that fail to decode list with a zero row count; the
// metadata is still shown and Load reports the real error.
func (s *ExperimentStore) ListExperiments(ctx context.Context, owner string) ([]models.ExperimentSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, experiment_type, experiment_name, date, data
		FROM experiments
		WHERE email = $1
		ORDER BY date DESC, id ASC
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: list experiments: %v", ErrPersistence, err)
	}
	defer rows.Close()

	summaries := []models.ExperimentSummary{}
	for rows.Next() {
		var sum models.ExperimentSummary
		var date string
		var data []byte
		if err := rows.Scan(&sum.ID, &sum.ExperimentType, &sum.ExperimentName, &date, &data); err != nil {
			return nil, fmt.Errorf("%w: scan experiment: %v", ErrPersistence, err)
		}
		sum.CreatedAt = parseStoredDate(sum.ID, date)
		if recs, err := decodeRows(data); err == nil {
			sum.RowCount = len(recs)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list experiments: %v", ErrPersistence, err)
	}

	return summaries, nil
}

// Save persists an experiment. Without an id it inserts and returns the
// generated id; with an id it overwrites the stored name and rows
// wholesale - there is no per-row update. The caller's experiment is
// not mutated.
func (s *ExperimentStore) Save(ctx context.Context, exp *models.Experiment) (int64, error) {
	data, err := encodeRows(exp.Rows)
	if err != nil {
		return 0, fmt.Errorf("%w: encode rows: %v", ErrPersistence, err)
	}

	// Stored timestamps are always UTC: the date column orders the list
	// lexicographically, so a mixed-offset RFC 3339 value would sort by
	// wall clock instead of by instant.
	if exp.ID == 0 {
		var id int64
		err := s.db.QueryRowContext(ctx, `
			INSERT INTO experiments (email, experiment_type, experiment_name, date, data)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, exp.Email, exp.Type, exp.Name, exp.CreatedAt.UTC().Format(time.RFC3339), data).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("%w: insert experiment: %v", ErrPersistence, err)
		}
		return id, nil
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE experiments
		SET experiment_name = $1, data = $2
		WHERE id = $3
	`, exp.Name, data, exp.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: update experiment: %v", ErrPersistence, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return 0, fmt.Errorf("%w: id %d", ErrNotFound, exp.ID)
	}
	return exp.ID, nil
}

// Load fetches a persisted experiment with its rows.
func (s *ExperimentStore) Load(ctx context.Context, id int64) (*models.Experiment, error) {
	var exp models.Experiment
	var date string
	var data []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, experiment_type, experiment_name, date, data
		FROM experiments
		WHERE id = $1
	`, id).Scan(&exp.ID, &exp.Email, &exp.Type, &exp.Name, &date, &data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load experiment: %v", ErrPersistence, err)
	}

	exp.CreatedAt = parseStoredDate(exp.ID, date)
	exp.Rows, err = decodeRows(data)
	if err != nil {
		return nil, err
	}

	return &exp, nil
}

// parseStoredDate reads the RFC 3339 date column. A value that fails to
// parse is logged and yields the zero time; the row itself stays usable.
func parseStoredDate(id int64, date string) time.Time {
	ts, err := time.Parse(time.RFC3339, date)
	if err != nil {
		slog.Warn("unparseable stored experiment date", "id", id, "date", date)
	}
	return ts
}

func encodeRows(rows []models.Record) ([]byte, error) {
	if rows == nil {
		rows = []models.Record{}
	}
	return json.Marshal(rows)
}

// decodeRows parses the stored payload into typed records. The target
// type rejects anything but an array of string-to-string objects, so a
// tampered or truncated payload fails here instead of leaking through.
func decodeRows(data []byte) ([]models.Record, error) {
	if len(data) == 0 {
		return []models.Record{}, nil
	}
	var rows []models.Record
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialize, err)
	}
	if rows == nil {
		rows = []models.Record{}
	}
	return rows, nil
}
