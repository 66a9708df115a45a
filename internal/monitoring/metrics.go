package monitoring

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ducminhle1904/stock-indicators/internal/errors"
)

// OutcomeOK labels a computation that published a result
const OutcomeOK = "ok"

var startTime = time.Now()

var (
	// Computation metrics
	computationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "indicators_computations_total",
			Help: "Total number of indicator computations by outcome",
		},
		[]string{"indicator", "outcome"},
	)

	computationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "indicators_computation_seconds",
			Help:    "Time spent computing one indicator request",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		[]string{"indicator"},
	)

	// Series metrics
	seriesBars = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "indicators_series_bars",
			Help: "Number of daily bars held for a symbol",
		},
		[]string{"symbol"},
	)

	// Error metrics
	fetchErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "indicators_fetch_errors_total",
			Help: "Total number of failed series fetches",
		},
		[]string{"source"},
	)
)

func init() {
	prometheus.MustRegister(computationsTotal)
	prometheus.MustRegister(computationSeconds)
	prometheus.MustRegister(seriesBars)
	prometheus.MustRegister(fetchErrorsTotal)
}

// MetricsHandler handles Prometheus metrics endpoint
type MetricsHandler struct {
	handler http.Handler
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{handler: promhttp.Handler()}
}

// ServeHTTP serves the Prometheus metrics endpoint
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// Outcome maps a computation error onto a low-cardinality label value
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	if kind, ok := errors.KindOf(err); ok {
		return strings.ToLower(string(kind))
	}
	return "error"
}

// RecordComputation records one indicator request and its duration
func RecordComputation(indicator string, err error, duration time.Duration) {
	computationsTotal.WithLabelValues(indicator, Outcome(err)).Inc()
	computationSeconds.WithLabelValues(indicator).Observe(duration.Seconds())
}

// UpdateSeriesBars records the length of a loaded series
func UpdateSeriesBars(symbol string, bars int) {
	seriesBars.WithLabelValues(symbol).Set(float64(bars))
}

// RecordFetchError records a failed fetch for a source
func RecordFetchError(source string) {
	fetchErrorsTotal.WithLabelValues(source).Inc()
}
