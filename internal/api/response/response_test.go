package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmadata/jma-data-mcp/internal/api/middleware"
	"github.com/jmadata/jma-data-mcp/internal/api/models"
	"github.com/jmadata/jma-data-mcp/internal/api/response"
)

// withRequestID runs fn inside the RequestID middleware.
func withRequestID(t *testing.T, method, path string, fn func(w http.ResponseWriter, r *http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	middleware.RequestID(http.HandlerFunc(fn)).ServeHTTP(rec, httptest.NewRequest(method, path, http.NoBody))
	return rec
}

func TestJSON(t *testing.T) {
	rec := withRequestID(t, http.MethodGet, "/v1/ops/health", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, r, http.StatusOK, map[string]string{"name": "東京 <Tokyo>"})
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	assert.JSONEq(t, `{"name":"東京 <Tokyo>"}`, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "東京 <Tokyo>")
}

func TestJSON_NilBody(t *testing.T) {
	rec := httptest.NewRecorder()
	response.JSON(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody), http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Empty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestProblems(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w http.ResponseWriter, r *http.Request)
		status int
		typ    string
	}{
		{"not found", response.NotFound, http.StatusNotFound, models.ProblemTypeNotFound},
		{"method not allowed", response.MethodNotAllowed, http.StatusMethodNotAllowed, models.ProblemTypeMethodNotAllowed},
		{
			"unavailable",
			func(w http.ResponseWriter, r *http.Request) { response.ServiceUnavailable(w, r, "upstream down") },
			http.StatusServiceUnavailable,
			models.ProblemTypeUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := withRequestID(t, http.MethodDelete, "/v1/nothing", tt.write)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

			var p models.Problem
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
			assert.Equal(t, tt.typ, p.Type)
			assert.Equal(t, tt.status, p.Status)
			assert.Equal(t, "/v1/nothing", p.Instance)
			assert.Equal(t, rec.Header().Get(middleware.RequestIDHeader), p.TraceID)
			assert.NotEmpty(t, p.Detail)
		})
	}
}
