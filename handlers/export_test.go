package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"labcollect/models"
	"labcollect/store"
	"labcollect/testutil"
)

// uploadFile is one part of a multipart merge request
type uploadFile struct {
	name    string
	content []byte
}

func makeMergeRequest(t *testing.T, path string, files []uploadFile, token string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for _, f := range files {
		part, err := mw.CreateFormFile("files", f.name)
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		if _, err := part.Write(f.content); err != nil {
			t.Fatalf("Failed to write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", path, body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(SessionTokenHeader, token)
	return req
}

func readSheet(t *testing.T, data []byte) [][]string {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetList()[0])
	if err != nil {
		t.Fatalf("Failed to read sheet: %v", err)
	}
	return rows
}

func TestExportDraft(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	sessions := newSessions()
	st := store.New(db)
	authHandler := NewAuthHandler(st, sessions)
	expHandler := NewExperimentHandler(st, sessions)
	handler := NewExportHandler(st, sessions)

	token := login(t, authHandler, "ada@lab.example")

	t.Run("without draft", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/experiments/draft/export", nil, authHeader(token))
		w := httptest.NewRecorder()
		handler.ExportDraft(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	req := testutil.MakeRequest("POST", "/experiments", models.StartExperimentRequest{
		ExperimentType: "Gelation",
		ExperimentName: "Whey run 3",
	}, authHeader(token))
	w := httptest.NewRecorder()
	expHandler.Start(w, req)

	t.Run("empty draft", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/experiments/draft/export", nil, authHeader(token))
		w := httptest.NewRecorder()
		handler.ExportDraft(w, req)
		testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	})

	const n = 4
	for i := 1; i <= n; i++ {
		req = testutil.MakeRequest("POST", "/experiments/draft/rows", models.SubmitRowRequest{
			Values: map[string]string{"#Num": fmt.Sprintf("%d", i)},
		}, authHeader(token))
		w = httptest.NewRecorder()
		expHandler.SubmitRow(w, req)
		testutil.AssertStatus(t, w, http.StatusCreated)
	}

	t.Run("draft with rows", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/experiments/draft/export", nil, authHeader(token))
		w := httptest.NewRecorder()
		handler.ExportDraft(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		if got := w.Header().Get("Content-Type"); !strings.Contains(got, "spreadsheetml") {
			t.Errorf("Unexpected content type '%s'", got)
		}
		if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, "Whey_run_3_data.xlsx") {
			t.Errorf("Unexpected content disposition '%s'", got)
		}

		// Exactly one header row plus one row per submitted record
		rows := readSheet(t, w.Body.Bytes())
		if len(rows) != n+1 {
			t.Fatalf("Expected %d sheet rows, got %d", n+1, len(rows))
		}
		if rows[0][0] != "#Num" {
			t.Errorf("Expected '#Num' as first column, got '%s'", rows[0][0])
		}
	})

	t.Run("export leaves draft bound", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/experiments/draft", nil, authHeader(token))
		w := httptest.NewRecorder()
		expHandler.GetDraft(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var draft models.Experiment
		testutil.AssertJSON(t, w, &draft)
		if len(draft.Rows) != n {
			t.Errorf("Expected %d rows after export, got %d", n, len(draft.Rows))
		}
	})
}

func TestExportByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	sessions := newSessions()
	st := store.New(db)
	authHandler := NewAuthHandler(st, sessions)
	handler := NewExportHandler(st, sessions)

	id := testutil.CreateTestExperiment(t, db, "ada@lab.example", "Gelation", "Saved run", []models.Record{
		{"#Num": "1", "pH": "6.8"},
		{"#Num": "2", "pH": "7.1"},
	})
	emptyID := testutil.CreateTestExperiment(t, db, "ada@lab.example", "Gelation", "Empty run", nil)

	token := login(t, authHandler, "ada@lab.example")

	t.Run("owner exports", func(t *testing.T) {
		req := testutil.MakeRequest("GET", fmt.Sprintf("/experiments/%d/export", id), nil, authHeader(token))
		req.SetPathValue("id", fmt.Sprintf("%d", id))
		w := httptest.NewRecorder()

		handler.ExportByID(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, "Saved_run_data.xlsx") {
			t.Errorf("Unexpected content disposition '%s'", got)
		}

		rows := readSheet(t, w.Body.Bytes())
		if len(rows) != 3 {
			t.Errorf("Expected header + 2 data rows, got %d", len(rows))
		}
	})

	t.Run("zero rows", func(t *testing.T) {
		req := testutil.MakeRequest("GET", fmt.Sprintf("/experiments/%d/export", emptyID), nil, authHeader(token))
		req.SetPathValue("id", fmt.Sprintf("%d", emptyID))
		w := httptest.NewRecorder()

		handler.ExportByID(w, req)

		testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	})

	t.Run("unknown id", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/experiments/99999/export", nil, authHeader(token))
		req.SetPathValue("id", "99999")
		w := httptest.NewRecorder()

		handler.ExportByID(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("someone else's experiment", func(t *testing.T) {
		otherToken := login(t, authHandler, "grace@lab.example")

		req := testutil.MakeRequest("GET", fmt.Sprintf("/experiments/%d/export", id), nil, authHeader(otherToken))
		req.SetPathValue("id", fmt.Sprintf("%d", id))
		w := httptest.NewRecorder()

		handler.ExportByID(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestMerge(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	sessions := newSessions()
	st := store.New(db)
	authHandler := NewAuthHandler(st, sessions)
	handler := NewExportHandler(st, sessions)

	token := login(t, authHandler, "ada@lab.example")

	three := []byte("#Num,pH\n1,6.8\n2,7.1\n3,7.0\n")
	five := []byte("#Num,Hardness\n1,12\n2,14\n3,11\n4,13\n5,15\n")
	broken := []byte("definitely not a workbook")

	files := []uploadFile{
		{"first.csv", three},
		{"second.csv", five},
		{"broken.xlsx", broken},
	}

	t.Run("json metadata", func(t *testing.T) {
		req := makeMergeRequest(t, "/export/merge?format=json", files, token)
		w := httptest.NewRecorder()

		handler.Merge(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.MergeResponse
		testutil.AssertJSON(t, w, &resp)

		if resp.BatchID == "" {
			t.Error("Expected a batch id")
		}
		// 3 + 5 rows survive; the unreadable file contributes zero
		if resp.TotalRows != 8 {
			t.Errorf("Expected 8 total rows, got %d", resp.TotalRows)
		}
		if len(resp.Files) != 3 {
			t.Fatalf("Expected 3 file results, got %d", len(resp.Files))
		}
		if resp.Files[0].RowCount != 3 || resp.Files[0].Error != "" {
			t.Errorf("Unexpected first file result: %+v", resp.Files[0])
		}
		if resp.Files[1].RowCount != 5 || resp.Files[1].Error != "" {
			t.Errorf("Unexpected second file result: %+v", resp.Files[1])
		}
		if resp.Files[2].Error == "" {
			t.Error("Expected a per-file error for the unreadable upload")
		}
	})

	t.Run("workbook download", func(t *testing.T) {
		req := makeMergeRequest(t, "/export/merge", files, token)
		w := httptest.NewRecorder()

		handler.Merge(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, "combined_lab_data.xlsx") {
			t.Errorf("Unexpected content disposition '%s'", got)
		}
		if w.Header().Get("X-Batch-Id") == "" {
			t.Error("Expected a batch id header")
		}

		rows := readSheet(t, w.Body.Bytes())
		if len(rows) != 9 {
			t.Fatalf("Expected header + 8 data rows, got %d", len(rows))
		}
		if rows[0][0] != "Row Index" {
			t.Errorf("Expected 'Row Index' first column, got '%s'", rows[0][0])
		}
		// Running zero-based index across both readable files
		if rows[1][0] != "0" || rows[8][0] != "7" {
			t.Errorf("Unexpected row indices: first '%s', last '%s'", rows[1][0], rows[8][0])
		}
	})

	t.Run("no files", func(t *testing.T) {
		req := makeMergeRequest(t, "/export/merge", nil, token)
		w := httptest.NewRecorder()

		handler.Merge(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("all unreadable", func(t *testing.T) {
		req := makeMergeRequest(t, "/export/merge", []uploadFile{{"broken.xlsx", broken}}, token)
		w := httptest.NewRecorder()

		handler.Merge(w, req)

		testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	})

	t.Run("without session", func(t *testing.T) {
		req := makeMergeRequest(t, "/export/merge", files, "")
		req.Header.Del(SessionTokenHeader)
		w := httptest.NewRecorder()

		handler.Merge(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}
