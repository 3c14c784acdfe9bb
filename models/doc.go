/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - LoginRequest: email
  - NavigateRequest: page
  - StartExperimentRequest: experiment_type, experiment_name
  - RenameDraftRequest: experiment_name
  - SubmitRowRequest: values (map[string]string)

# Response Types

Types for JSON responses:

  - LoginResponse: token, email, page
  - MeResponse: email, page, editing
  - SubmitRowResponse: record, row_count
  - SaveExperimentResponse: experiment_id, message
  - ExperimentSummary: list-view metadata with row_count
  - MergeResponse: batch_id, total_rows, per-file results
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - User: bare email identity
  - Experiment: named, owned record collection; ID zero until saved
  - Record: one submitted form row (field label → string value)

# Constants

Navigation pages:

	PageLogin = "login"
	PageList  = "list"
	PageForm  = "form"

# Errors

ErrValidation marks user-input failures surfaced as HTTP 400. The
storage-side taxonomy (ErrPersistence, ErrNotFound, ErrDeserialize)
lives in the store package; ErrExport lives in the export package.
*/
package models
