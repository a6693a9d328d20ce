package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/gridsense"
	"github.com/poiesic/gridsense/ai/mock"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	engine, err := gridsense.NewEngine(context.Background(), gridsense.WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return New(engine)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestSearchWithoutData(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPost, "/search", map[string]any{"query": "revenue"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No spreadsheet data loaded")
}

func TestSearchInvalidRequest(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPost, "/search", map[string]any{"max_results": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoadTestDataThenSearch(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/load_test_data", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sample financial data loaded")

	w = doJSON(t, s, http.MethodPost, "/search", map[string]any{"query": "total revenue", "max_results": 5})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Query        string `json:"query"`
		TotalResults int    `json:"total_results"`
		Results      []struct {
			Location       string  `json:"location"`
			RelevanceScore float64 `json:"relevance_score"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "total revenue", resp.Query)
	assert.Equal(t, len(resp.Results), resp.TotalResults)
	assert.LessOrEqual(t, resp.TotalResults, 5)
	require.NotEmpty(t, resp.Results)
	for i := 1; i < len(resp.Results); i++ {
		assert.GreaterOrEqual(t, resp.Results[i-1].RelevanceScore, resp.Results[i].RelevanceScore)
	}
}

func TestConcepts(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/concepts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		TotalConcepts int                 `json:"total_concepts"`
		Categories    map[string][]string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 28, resp.TotalConcepts)
	assert.Contains(t, resp.Categories, "profitability")
}

func multipartUpload(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestLoadFileCSV(t *testing.T) {
	s := newTestServer(t)

	body, contentType := multipartUpload(t, "file", "model.csv",
		[]byte("Metric,Q1 2024\nTotal Revenue,150000\nGross Profit,75000\n"))
	req := httptest.NewRequest(http.MethodPost, "/load_file", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message string `json:"message"`
		Summary struct {
			Filename    string    `json:"filename"`
			TotalSheets int       `json:"total_sheets"`
			SheetNames  []string  `json:"sheet_names"`
			TotalCells  int       `json:"total_cells"`
			LoadedAt    time.Time `json:"loaded_at"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "model.csv")
	assert.Equal(t, 1, resp.Summary.TotalSheets)
	assert.Equal(t, []string{"Sheet1"}, resp.Summary.SheetNames)
	assert.Equal(t, 6, resp.Summary.TotalCells)
	assert.False(t, resp.Summary.LoadedAt.IsZero())
}

func TestLoadFileUnsupportedType(t *testing.T) {
	s := newTestServer(t)

	body, contentType := multipartUpload(t, "file", "notes.txt", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/load_file", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unsupported file type")
}

func TestLoadFileMissing(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/load_file", bytes.NewReader(nil))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
