package main

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"reconweb/internal/config"
	"reconweb/internal/manifest"
	"reconweb/internal/store"
)

func testServer() *server {
	cfg := &config.Config{
		ListenAddr:     ":0",
		MaxUploadBytes: 10 << 20,
		MaxRows:        10000,
		FooterRows:     15,
		JobTTL:         time.Hour,
	}
	return newServer(cfg, zerolog.Nop(), store.New(cfg.JobTTL))
}

func uploadRequest(t *testing.T, pobCSV, portalCSV string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for field, content := range map[string]string{"pob": pobCSV, "portal": portalCSV} {
		fw, err := mw.CreateFormFile(field, field+".csv")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func formRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func runIDFromLocation(t *testing.T, location string) string {
	t.Helper()
	u, err := url.Parse(location)
	require.NoError(t, err)
	id := u.Query().Get("run")
	require.NotEmpty(t, id)
	return id
}

func inputValues(runID string) url.Values {
	values := url.Values{"run": {runID}}
	for _, f := range manifest.RequiredFields {
		values.Set(f, "v-"+f)
	}
	return values
}

const (
	pobCSV    = "NED,Name\nP001,Alice\nP002,Bob\n"
	portalCSV = "Smart Card,Employee\nP002,Bob\nP003,Carla\n"
)

func TestWizardFullFlow(t *testing.T) {
	srv := testServer()
	mux := srv.routes()

	// Step 1: upload.
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, uploadRequest(t, pobCSV, portalCSV))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	runID := runIDFromLocation(t, rec.Header().Get("Location"))

	// Step 2: column selection; no duplicates, so straight to inputs.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, formRequest("/columns", url.Values{
		"run":         {runID},
		"pob_ned":     {"NED"},
		"pob_name":    {"Name"},
		"portal_ned":  {"Smart Card"},
		"portal_name": {"Employee"},
	}))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/inputs?run="+runID, rec.Header().Get("Location"))

	// Step 4: metadata.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, formRequest("/inputs", inputValues(runID)))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/generate?run="+runID, rec.Header().Get("Location"))

	// Step 5: generate shows both counts.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/generate?run="+runID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing from Portal): 1")
	assert.Contains(t, rec.Body.String(), "missing from POB): 1")

	// Step 6: download and verify the workbook.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download?run="+runID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"RFM", "Manifest", "Return Manifest"}, f.GetSheetList())

	rows, err := f.GetRows("RFM")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "P001", rows[1][1])

	retRows, err := f.GetRows("Return Manifest")
	require.NoError(t, err)
	require.Len(t, retRows, 2)
	assert.Equal(t, "P003", retRows[1][1])
}

func TestWizardDuplicateGate(t *testing.T) {
	srv := testServer()
	mux := srv.routes()

	dupPOB := "NED,Name\nP010,Alice\nP010,Ann\nP011,Bob\n"

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, uploadRequest(t, dupPOB, portalCSV))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	runID := runIDFromLocation(t, rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, formRequest("/columns", url.Values{
		"run":         {runID},
		"pob_ned":     {"NED"},
		"pob_name":    {"Name"},
		"portal_ned":  {"Smart Card"},
		"portal_name": {"Employee"},
	}))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/duplicates?run="+runID, rec.Header().Get("Location"))

	// Warning page reports both flagged occurrences.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/duplicates?run="+runID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2 flagged rows in the POB roster")

	// The highlight workbook is available as a side channel.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/duplicates.xlsx?run="+runID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"POB", "PORTAL"}, f.GetSheetList())

	// Proceeding anyway unblocks the wizard.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, formRequest("/duplicates", url.Values{"run": {runID}, "decision": {"proceed"}}))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/inputs?run="+runID, rec.Header().Get("Location"))

	job, err := srv.jobs.Get(runID)
	require.NoError(t, err)
	assert.True(t, job.DuplicatesAccepted)
}

func TestWizardDuplicateReupload(t *testing.T) {
	srv := testServer()
	mux := srv.routes()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, uploadRequest(t, pobCSV, portalCSV))
	runID := runIDFromLocation(t, rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, formRequest("/duplicates", url.Values{"run": {runID}, "decision": {"reupload"}}))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	_, err := srv.jobs.Get(runID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestColumnsMissingColumnReRenders(t *testing.T) {
	srv := testServer()
	mux := srv.routes()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, uploadRequest(t, pobCSV, portalCSV))
	runID := runIDFromLocation(t, rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, formRequest("/columns", url.Values{
		"run":         {runID},
		"pob_ned":     {"No Such Column"},
		"pob_name":    {"Name"},
		"portal_ned":  {"Smart Card"},
		"portal_name": {"Employee"},
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No Such Column")
}

func TestInputsMissingFieldReRenders(t *testing.T) {
	srv := testServer()
	mux := srv.routes()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, uploadRequest(t, pobCSV, portalCSV))
	runID := runIDFromLocation(t, rec.Header().Get("Location"))

	values := inputValues(runID)
	values.Del(manifest.FieldSupplier)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, formRequest("/inputs", values))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "supplier")
}

func TestUnknownRunRestartsWizard(t *testing.T) {
	srv := testServer()
	mux := srv.routes()

	for _, path := range []string{"/columns", "/inputs", "/generate", "/download", "/duplicates"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path+"?run=bogus", nil))
		assert.Equal(t, http.StatusSeeOther, rec.Code, "path %s", path)
		assert.Equal(t, "/", rec.Header().Get("Location"), "path %s", path)
	}
}

func TestUploadFormRenders(t *testing.T) {
	srv := testServer()
	mux := srv.routes()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Upload Rosters")
	assert.Contains(t, rec.Body.String(), "10.0 MB")
}

func TestGenerateWithoutInputsRedirects(t *testing.T) {
	srv := testServer()
	mux := srv.routes()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, uploadRequest(t, pobCSV, portalCSV))
	runID := runIDFromLocation(t, rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/generate?run="+runID, nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/inputs?run="+runID, rec.Header().Get("Location"))
}
