package monitoring

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// HealthChecker reports which series the process has loaded
type HealthChecker struct {
	mu     sync.RWMutex
	series map[string]SeriesStatus
	errors []string
}

// SeriesStatus describes one loaded series
type SeriesStatus struct {
	Bars    int       `json:"bars"`
	LastBar time.Time `json:"last_bar"`
}

type HealthStatus struct {
	Status    string                  `json:"status"`
	Timestamp time.Time               `json:"timestamp"`
	Uptime    string                  `json:"uptime"`
	Series    map[string]SeriesStatus `json:"series"`
	Errors    []string                `json:"errors,omitempty"`
}

func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		series: make(map[string]SeriesStatus),
		errors: make([]string, 0),
	}
}

// RecordSeries marks a symbol as loaded
func (h *HealthChecker) RecordSeries(symbol string, bars int, lastBar time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.series[symbol] = SeriesStatus{Bars: bars, LastBar: lastBar}
}

// RecordError keeps a fetch or computation failure for the status report
func (h *HealthChecker) RecordError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors = append(h.errors, err.Error())
}

// Status returns the current health snapshot
func (h *HealthChecker) Status() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := "healthy"
	if len(h.series) == 0 {
		status = "degraded"
	}
	if len(h.errors) > 0 {
		status = "unhealthy"
	}

	series := make(map[string]SeriesStatus, len(h.series))
	for k, v := range h.series {
		series[k] = v
	}

	return HealthStatus{
		Status:    status,
		Timestamp: time.Now(),
		Uptime:    time.Since(startTime).String(),
		Series:    series,
		Errors:    append([]string(nil), h.errors...),
	}
}

func (h *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	health := h.Status()

	w.Header().Set("Content-Type", "application/json")
	switch health.Status {
	case "degraded":
		w.WriteHeader(http.StatusServiceUnavailable)
	case "unhealthy":
		w.WriteHeader(http.StatusInternalServerError)
	}
	json.NewEncoder(w).Encode(health)
}
