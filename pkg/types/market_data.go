package types

import "time"

// OHLCV is one trading day of an instrument: open, high, low, close and volume.
type OHLCV struct {
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	Timestamp time.Time
}
