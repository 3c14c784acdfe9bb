package models

import (
	"errors"
	"time"
)

// Navigation pages
const (
	PageLogin = "login"
	PageList  = "list"
	PageForm  = "form"
)

// ErrValidation marks user-input failures (blank email, unknown page).
// Handlers surface it as HTTP 400; everything else about the input is
// accepted as-is per the type-coercion-only contract.
var ErrValidation = errors.New("validation error")

// Record is one submitted form row: field label → string value. Dates are
// pre-formatted as YYYY-MM-DD; numeric fields stay free text.
type Record map[string]string

type User struct {
	Email string `json:"email"`
}

// Experiment is a named, owned collection of records persisted as one
// unit. ID is zero until the experiment is saved.
type Experiment struct {
	ID        int64     `json:"id,omitempty"`
	Email     string    `json:"email"`
	Type      string    `json:"experiment_type"`
	Name      string    `json:"experiment_name"`
	CreatedAt time.Time `json:"created_at"`
	Rows      []Record  `json:"rows"`
}

// Request types

type LoginRequest struct {
	Email string `json:"email"`
}

type NavigateRequest struct {
	Page string `json:"page"`
}

type StartExperimentRequest struct {
	ExperimentType string `json:"experiment_type"`
	ExperimentName string `json:"experiment_name"`
}

type RenameDraftRequest struct {
	ExperimentName string `json:"experiment_name"`
}

// Values maps field labels to raw input values; unknown labels are
// ignored, missing labels default to empty (or the first select choice).
type SubmitRowRequest struct {
	Values map[string]string `json:"values"`
}

// Response types

type LoginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Page  string `json:"page"`
}

type MeResponse struct {
	Email   string `json:"email"`
	Page    string `json:"page"`
	Editing bool   `json:"editing"`
}

type SubmitRowResponse struct {
	Record   Record `json:"record"`
	RowCount int    `json:"row_count"`
}

type SaveExperimentResponse struct {
	ExperimentID int64  `json:"experiment_id"`
	Message      string `json:"message"`
}

// ExperimentSummary is the list view: metadata without the row payload.
type ExperimentSummary struct {
	ID             int64     `json:"id"`
	ExperimentType string    `json:"experiment_type"`
	ExperimentName string    `json:"experiment_name"`
	CreatedAt      time.Time `json:"created_at"`
	RowCount       int       `json:"row_count"`
}

// MergeFileResult reports the outcome for one uploaded file. Unreadable
// files carry an Error and contribute zero rows without failing the batch.
type MergeFileResult struct {
	FileName string `json:"file_name"`
	RowCount int    `json:"row_count"`
	Error    string `json:"error,omitempty"`
}

type MergeResponse struct {
	BatchID   string            `json:"batch_id"`
	TotalRows int               `json:"total_rows"`
	Files     []MergeFileResult `json:"files"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
