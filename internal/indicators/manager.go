package indicators

import (
	"fmt"
	"sync"
	"time"

	"github.com/ducminhle1904/stock-indicators/internal/series"
)

// IndicatorResult holds the published line of a single indicator
type IndicatorResult struct {
	Name      string
	Values    []float64
	Latest    float64
	Required  int
	Timestamp time.Time
	Error     error
}

// evaluationKey identifies one snapshot and window. A PriceSeries never
// changes after construction, so its address names the snapshot.
type evaluationKey struct {
	series *series.PriceSeries
	period int
}

// IndicatorManager evaluates several indicators over the same series and caches the last evaluation
type IndicatorManager struct {
	indicators []SeriesIndicator
	cache      map[string]*IndicatorResult
	cacheKey   evaluationKey
	mutex      sync.RWMutex
}

// NewIndicatorManager creates a new indicator manager
func NewIndicatorManager(indicators ...SeriesIndicator) *IndicatorManager {
	return &IndicatorManager{
		indicators: indicators,
		cache:      make(map[string]*IndicatorResult),
	}
}

// AddIndicator adds an indicator to the manager
func (m *IndicatorManager) AddIndicator(indicator SeriesIndicator) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.indicators = append(m.indicators, indicator)
	m.cache = make(map[string]*IndicatorResult)
	m.cacheKey = evaluationKey{}
}

// Evaluate runs every indicator for period values. A failing indicator
// records its error in its own result and does not stop the others.
// Results are keyed by indicator name; a repeated name gets a "#n" suffix
// in registration order, so SMA 10 then SMA 50 yield "SMA" and "SMA#2".
func (m *IndicatorManager) Evaluate(ps *series.PriceSeries, period int) map[string]*IndicatorResult {
	last := ps.Last()
	key := evaluationKey{series: ps, period: period}

	m.mutex.RLock()
	if key == m.cacheKey && len(m.cache) > 0 {
		cacheCopy := copyResults(m.cache)
		m.mutex.RUnlock()
		return cacheCopy
	}
	indicators := append([]SeriesIndicator(nil), m.indicators...)
	m.mutex.RUnlock()

	results := make(map[string]*IndicatorResult, len(indicators))
	seen := make(map[string]int, len(indicators))
	for _, indicator := range indicators {
		name := indicator.GetName()
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s#%d", name, n)
		}
		result := &IndicatorResult{
			Name:      name,
			Required:  indicator.GetRequiredPeriods(period),
			Timestamp: last.Timestamp,
		}

		values, err := indicator.Calculate(ps, period)
		if err != nil {
			result.Error = err
			results[name] = result
			continue
		}
		result.Values = values
		result.Latest = values[len(values)-1]
		results[name] = result
	}

	m.mutex.Lock()
	m.cache = results
	m.cacheKey = key
	m.mutex.Unlock()

	return copyResults(results)
}

// MaxRequiredPeriods returns the longest history any managed indicator needs for period values
func (m *IndicatorManager) MaxRequiredPeriods(period int) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	required := 0
	for _, indicator := range m.indicators {
		required = max(required, indicator.GetRequiredPeriods(period))
	}
	return required
}

// CountFailures counts results that carry an error
func CountFailures(results map[string]*IndicatorResult) int {
	failures := 0
	for _, result := range results {
		if result.Error != nil {
			failures++
		}
	}
	return failures
}

func copyResults(results map[string]*IndicatorResult) map[string]*IndicatorResult {
	out := make(map[string]*IndicatorResult, len(results))
	for k, v := range results {
		r := *v
		r.Values = append([]float64(nil), v.Values...)
		out[k] = &r
	}
	return out
}
