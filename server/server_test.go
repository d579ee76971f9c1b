package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/orayew2002/rast-attendance/attendance"
	"github.com/orayew2002/rast-attendance/config"
	"github.com/orayew2002/rast-attendance/processor"
	"github.com/orayew2002/rast-attendance/report"
	"github.com/orayew2002/rast-attendance/sample"
	"github.com/orayew2002/rast-attendance/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const basePath = "/api/v1/attendance"

func testConfig(burst int) *config.Config {
	return &config.Config{
		App:    config.AppConfig{Port: 8080, Env: "test", CORSOrigins: []string{"http://localhost:3000"}},
		Upload: config.UploadConfig{MaxBytes: 5 << 20, RatePerMinute: 60, Burst: burst},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config, store storage.Store) *chi.Mux {
	t.Helper()
	logger := NewLogger(io.Discard, cfg.App)
	h := NewHandler(processor.New(attendance.New(), logger), store, cfg.Upload.MaxBytes, logger)
	return NewRouter(h, cfg, logger)
}

func uploadRequest(t *testing.T, field, filename string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, basePath+"/process", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	detail, ok := body["error"].(map[string]any)
	require.True(t, ok, "error detail in %s", rec.Body.String())
	return detail["code"].(string)
}

func sampleExport(t *testing.T) []byte {
	t.Helper()
	data, err := sample.GenerateBytes(sample.Options{Employees: 7, Days: 10})
	require.NoError(t, err)
	return data
}

func TestHeartbeat(t *testing.T) {
	router := newTestRouter(t, testConfig(5), nil)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNoRunYet(t *testing.T) {
	router := newTestRouter(t, testConfig(5), nil)

	for _, path := range []string{"/run", "/employees/101", "/reports/detailed", "/reports/summary", "/reports/ledger.csv"} {
		rec := serve(router, httptest.NewRequest(http.MethodGet, basePath+path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, "NOT_FOUND", errorCode(t, rec), path)
	}
}

func TestProcessAndDownload(t *testing.T) {
	router := newTestRouter(t, testConfig(5), nil)

	rec := serve(router, uploadRequest(t, "file", "march.xlsx", sampleExport(t)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decode(t, rec)
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["run_id"])
	assert.Equal(t, "march.xlsx", data["file_name"])
	stats := data["stats"].(map[string]any)
	assert.Equal(t, 7.0, stats["total_employees"])
	assert.Equal(t, 70.0, stats["total_records"])
	assert.Len(t, data["employees"], 7)
	assert.Nil(t, data["archive"])

	rec = serve(router, httptest.NewRequest(http.MethodGet, basePath+"/run", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, data["run_id"], decode(t, rec)["data"].(map[string]any)["run_id"])

	rec = serve(router, httptest.NewRequest(http.MethodGet, basePath+"/employees/101", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	employee := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, "101", employee["code"])
	assert.Len(t, employee["records"], 10)

	rec = serve(router, httptest.NewRequest(http.MethodGet, basePath+"/employees/999", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(router, httptest.NewRequest(http.MethodGet, basePath+"/reports/detailed", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), report.DetailedFileName)

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, []string{report.DetailedSheetName}, f.GetSheetList())
	require.NoError(t, f.Close())

	rec = serve(router, httptest.NewRequest(http.MethodGet, basePath+"/reports/summary", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), report.SummaryFileName)

	rec = serve(router, httptest.NewRequest(http.MethodGet, basePath+"/reports/ledger.csv", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "emp_code,"))
}

func TestProcessArchivesReports(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	router := newTestRouter(t, testConfig(5), store)

	rec := serve(router, uploadRequest(t, "file", "march.xlsx", sampleExport(t)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	archive := decode(t, rec)["data"].(map[string]any)["archive"].([]any)
	require.Len(t, archive, 2)
	assert.Equal(t, report.DetailedFileName, archive[0].(map[string]any)["file_name"])
	assert.Equal(t, report.SummaryFileName, archive[1].(map[string]any)["file_name"])
}

func TestProcessErrors(t *testing.T) {
	router := newTestRouter(t, testConfig(10), nil)

	rec := serve(router, uploadRequest(t, "upload", "march.xlsx", sampleExport(t)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(router, uploadRequest(t, "file", "broken.xlsx", []byte("not a workbook")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", errorCode(t, rec))

	empty := excelize.NewFile()
	buf, err := empty.WriteToBuffer()
	require.NoError(t, err)

	rec = serve(router, uploadRequest(t, "file", "empty.xlsx", buf.Bytes()))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "NO_RECORDS", errorCode(t, rec))
}

func TestFailedRunDiscardsPrevious(t *testing.T) {
	router := newTestRouter(t, testConfig(10), nil)

	rec := serve(router, uploadRequest(t, "file", "march.xlsx", sampleExport(t)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = serve(router, uploadRequest(t, "file", "noise.csv", []byte("Date,Status\n2024-03-15,P\n")))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = serve(router, httptest.NewRequest(http.MethodGet, basePath+"/run", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProcessRateLimited(t *testing.T) {
	router := newTestRouter(t, testConfig(1), nil)
	data := sampleExport(t)

	rec := serve(router, uploadRequest(t, "file", "march.xlsx", data))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = serve(router, uploadRequest(t, "file", "march.xlsx", data))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "RATE_LIMITED", errorCode(t, rec))

	req := uploadRequest(t, "file", "march.xlsx", data)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	rec = serve(router, req)
	assert.Equal(t, http.StatusCreated, rec.Code, "limits are per client")
}
