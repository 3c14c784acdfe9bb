package handlers

import (
	"net/http"

	"labcollect/fields"
	"labcollect/middleware"
)

// FieldsHandler serves the static field schema so the frontend renders
// the form from the same table the exporter orders columns by.
type FieldsHandler struct{}

func NewFieldsHandler() *FieldsHandler {
	return &FieldsHandler{}
}

// GetFields handles GET /fields
func (h *FieldsHandler) GetFields(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, fields.Sections())
}
