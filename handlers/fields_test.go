package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"labcollect/fields"
	"labcollect/testutil"
)

func TestGetFields(t *testing.T) {
	handler := NewFieldsHandler()

	req := testutil.MakeRequest("GET", "/fields", nil, nil)
	w := httptest.NewRecorder()

	handler.GetFields(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var sections []fields.Section
	testutil.AssertJSON(t, w, &sections)

	if len(sections) != len(fields.Sections()) {
		t.Fatalf("Expected %d sections, got %d", len(fields.Sections()), len(sections))
	}
	if sections[0].Name != "Procedure - Settings" {
		t.Errorf("Expected first section 'Procedure - Settings', got '%s'", sections[0].Name)
	}

	// Select fields ship their choices so the form can render them
	for _, sec := range sections {
		for _, f := range sec.Fields {
			if f.Kind == fields.KindSelect && len(f.Choices) == 0 {
				t.Errorf("Select field '%s' has no choices", f.Label)
			}
		}
	}
}
