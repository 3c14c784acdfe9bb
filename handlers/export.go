package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"labcollect/export"
	"labcollect/fields"
	"labcollect/middleware"
	"labcollect/models"
	"labcollect/session"
	"labcollect/store"
)

// Memory ceiling for parsing merge uploads; larger parts spill to disk.
const maxUploadMemory = 32 << 20

type ExportHandler struct {
	store    *store.ExperimentStore
	sessions *session.Store
}

func NewExportHandler(st *store.ExperimentStore, sessions *session.Store) *ExportHandler {
	return &ExportHandler{store: st, sessions: sessions}
}

// ExportDraft handles GET /experiments/draft/export
// Streams the in-progress experiment as a one-sheet workbook without
// touching the draft or the database.
func (h *ExportHandler) ExportDraft(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	draft := sess.Draft()
	if draft == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "no experiment in progress")
		return
	}

	h.writeWorkbook(w, draft)
}

// ExportByID handles GET /experiments/{id}/export
func (h *ExportHandler) ExportByID(w http.ResponseWriter, r *http.Request) {
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

	h.writeWorkbook(w, exp)
}

func (h *ExportHandler) writeWorkbook(w http.ResponseWriter, exp *models.Experiment) {
	table := export.Flatten(exp.Rows, fields.Columns())
	data, err := export.WriteXLSX(table, exp.Name)
	if errors.Is(err, export.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "experiment has no rows to export")
		return
	}
	if err != nil {
		slog.Error("failed to build workbook", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to build workbook")
		return
	}

	sendAttachment(w, export.Filename(exp.Name), data)
}

// Merge handles POST /export/merge
// Accepts a multipart batch of spreadsheet/delimited files under the
// "files" key, concatenates every readable one, and streams back one
// combined workbook. Unreadable files are reported, not fatal. With
// ?format=json the response is the per-file metadata instead of the
// workbook.
func (h *ExportHandler) Merge(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireSession(w, r, h.sessions); !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart upload")
		return
	}

	uploads := r.MultipartForm.File["files"]
	if len(uploads) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at least one file is required")
		return
	}

	batchID := uuid.NewString()

	var tables []export.Table
	results := make([]models.MergeFileResult, 0, len(uploads))
	for _, fh := range uploads {
		result := models.MergeFileResult{FileName: fh.Filename}

		f, err := fh.Open()
		if err != nil {
			result.Error = fmt.Sprintf("opening file: %v", err)
			results = append(results, result)
			continue
		}

		table, err := export.ParseUpload(fh.Filename, f)
		f.Close()
		if err != nil {
			slog.Warn("skipping unreadable upload", "batch_id", batchID, "file", fh.Filename, "error", err)
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		result.RowCount = len(table.Rows)
		results = append(results, result)
		tables = append(tables, table)
	}

	merged := export.Concat(tables)

	slog.Info("merge completed",
		"batch_id", batchID,
		"files", len(uploads),
		"readable", len(tables),
		"rows", len(merged.Rows),
	)

	if r.URL.Query().Get("format") == "json" {
		middleware.JSONResponse(w, http.StatusOK, models.MergeResponse{
			BatchID:   batchID,
			TotalRows: len(merged.Rows),
			Files:     results,
		})
		return
	}

	data, err := export.WriteXLSX(merged, "Combined")
	if errors.Is(err, export.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "no readable rows in the uploaded files")
		return
	}
	if err != nil {
		slog.Error("failed to build merged workbook", "batch_id", batchID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to build workbook")
		return
	}

	w.Header().Set("X-Batch-Id", batchID)
	sendAttachment(w, export.MergedFilename, data)
}

func sendAttachment(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", export.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write workbook response", "error", err)
	}
}
