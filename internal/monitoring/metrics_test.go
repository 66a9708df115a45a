package monitoring

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducminhle1904/stock-indicators/internal/errors"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeOK, Outcome(nil))
	assert.Equal(t, "insufficient_history", Outcome(errors.NewInsufficientHistory("SMA", 10, 5)))
	assert.Equal(t, "division_by_zero", Outcome(fmt.Errorf("wrapped: %w", errors.NewDivisionByZero("BB", "difference", "zero close"))))
	assert.Equal(t, "error", Outcome(fmt.Errorf("plain")))
}

func TestRecordComputation(t *testing.T) {
	before := testutil.ToFloat64(computationsTotal.WithLabelValues("TEST_SMA", OutcomeOK))

	RecordComputation("TEST_SMA", nil, time.Millisecond)
	RecordComputation("TEST_SMA", nil, time.Millisecond)
	RecordComputation("TEST_SMA", errors.NewInsufficientHistory("SMA", 10, 5), time.Millisecond)

	assert.Equal(t, before+2, testutil.ToFloat64(computationsTotal.WithLabelValues("TEST_SMA", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(computationsTotal.WithLabelValues("TEST_SMA", "insufficient_history")))
}

func TestSeriesAndFetchMetrics(t *testing.T) {
	UpdateSeriesBars("TESTSYM", 250)
	assert.Equal(t, 250.0, testutil.ToFloat64(seriesBars.WithLabelValues("TESTSYM")))

	RecordFetchError("test-source")
	assert.Equal(t, 1.0, testutil.ToFloat64(fetchErrorsTotal.WithLabelValues("test-source")))
}

func TestMetricsHandler(t *testing.T) {
	RecordComputation("TEST_HANDLER", nil, time.Microsecond)

	rec := httptest.NewRecorder()
	NewMetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `indicators_computations_total{indicator="TEST_HANDLER",outcome="ok"}`))
}

func TestHealthChecker(t *testing.T) {
	h := NewHealthChecker()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	h.RecordSeries("CCL", 2400, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, 2400, status.Series["CCL"].Bars)

	h.RecordError(fmt.Errorf("fetch failed"))
	assert.Equal(t, "unhealthy", h.Status().Status)
}
