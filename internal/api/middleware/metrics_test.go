package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/api/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := middleware.NewMetricsWithRegistry(reg, reg)

	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Get("/task/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/task", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})

	for _, path := range []string{"/task/one", "/task/two", "/task"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)

	assert.Contains(t, text, `http_requests_total{method="GET",route="/task/{id}",status="404"} 2`)
	assert.Contains(t, text, `http_requests_total{method="GET",route="/task",status="200"} 1`)
	assert.Contains(t, text, `http_request_duration_seconds_count{method="GET",route="/task/{id}"} 2`)
	assert.Contains(t, text, "http_in_flight_requests 0")
	assert.NotContains(t, text, "/task/one")
}
