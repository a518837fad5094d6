package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/sells-group/provenance-cli/internal/config"
	"github.com/sells-group/provenance-cli/internal/model"
)

func uploadRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func zipPackage(t *testing.T, entries map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestHandleAnalyze(t *testing.T) {
	withConfig(t, &config.Config{Server: config.ServerConfig{MaxUploadMB: 25}})

	pkg := zipPackage(t, map[string]string{
		"docProps/app.xml":  `<Properties><Application>LibreOffice/7.4</Application></Properties>`,
		"word/document.xml": `<w:document xmlns:w="ns"><w:formProt/></w:document>`,
	})

	rec := httptest.NewRecorder()
	handleAnalyze(rec, uploadRequest(t, "file", "evidence.docx", pkg))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var report model.ProvenanceReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "evidence.docx", report.File)
	assert.Equal(t, "Definitely LibreOffice export", report.Verdict)
	assert.GreaterOrEqual(t, report.Scores[model.OriginLibreOffice], 7.0)
}

func TestHandleAnalyzeRejectsNonPackage(t *testing.T) {
	withConfig(t, &config.Config{Server: config.ServerConfig{MaxUploadMB: 25}})

	rec := httptest.NewRecorder()
	handleAnalyze(rec, uploadRequest(t, "file", "junk.docx", []byte("not a zip archive")))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not a valid OOXML package", body["error"])
}

func TestHandleAnalyzeRequiresFileField(t *testing.T) {
	withConfig(t, &config.Config{Server: config.ServerConfig{MaxUploadMB: 25}})

	rec := httptest.NewRecorder()
	handleAnalyze(rec, uploadRequest(t, "wrong", "x.docx", zipPackage(t, nil)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	handler := rateLimiter(rate.Limit(0.001), 2)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusTeapot, map[string]string{"status": "short"})

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"short"}`, rec.Body.String())
}
