package series

import (
	"math"

	"github.com/shopspring/decimal"
)

// PublicationPlaces is the number of decimals every published value carries.
const PublicationPlaces = 2

// Round rounds half away from zero on the shortest decimal representation of v,
// so 1.005 becomes 1.01 and -0.001 becomes 0 rather than -0.
func Round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(PublicationPlaces).InexactFloat64()
}

// RoundAll returns a rounded copy of values
func RoundAll(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = Round(v)
	}
	return out
}
