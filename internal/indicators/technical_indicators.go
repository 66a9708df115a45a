package indicators

import (
	"fmt"
	"strings"
)

// IndicatorType represents the type of technical indicator
type IndicatorType string

const (
	IndicatorTypeSMA            IndicatorType = "SMA"
	IndicatorTypeEMA            IndicatorType = "EMA"
	IndicatorTypeRSI            IndicatorType = "RSI"
	IndicatorTypeStochastic     IndicatorType = "STOCHASTIC"
	IndicatorTypeMACD           IndicatorType = "MACD"
	IndicatorTypeBollingerBands IndicatorType = "BOLLINGER_BANDS"
	IndicatorTypeHeikenAshi     IndicatorType = "HEIKEN_ASHI"
)

// IndicatorFactory creates technical indicators based on type and parameters
type IndicatorFactory struct {
	emaWarmup  int
	rsiWarmup  int
	macdWarmup int
}

// NewIndicatorFactoryWithWarmup creates a factory whose recursive indicators use the given buffers
func NewIndicatorFactoryWithWarmup(emaWarmup, rsiWarmup, macdWarmup int) *IndicatorFactory {
	return &IndicatorFactory{
		emaWarmup:  emaWarmup,
		rsiWarmup:  rsiWarmup,
		macdWarmup: macdWarmup,
	}
}

// CreateIndicator creates a technical indicator of the specified type.
// Missing parameters fall back to the indicator's defaults.
func (f *IndicatorFactory) CreateIndicator(indicatorType IndicatorType, params map[string]interface{}) (SeriesIndicator, error) {
	switch indicatorType {
	case IndicatorTypeSMA:
		length, err := intParam(params, "length", DefaultSMALength)
		if err != nil {
			return nil, err
		}
		return NewSMA(length), nil

	case IndicatorTypeEMA:
		length, err := intParam(params, "length", DefaultEMALength)
		if err != nil {
			return nil, err
		}
		return NewEMAWithWarmup(length, f.emaWarmup), nil

	case IndicatorTypeRSI:
		length, err := intParam(params, "length", DefaultRSILength)
		if err != nil {
			return nil, err
		}
		return NewRSIWithWarmup(length, f.rsiWarmup), nil

	case IndicatorTypeStochastic:
		fastLength, err := intParam(params, "fast_length", DefaultStochasticFastLength)
		if err != nil {
			return nil, err
		}
		slowLength, err := intParam(params, "slow_length", DefaultStochasticSlowLength)
		if err != nil {
			return nil, err
		}
		return NewStochastic(fastLength, slowLength), nil

	case IndicatorTypeMACD:
		fastLength, err := intParam(params, "fast_length", DefaultMACDFastLength)
		if err != nil {
			return nil, err
		}
		slowLength, err := intParam(params, "slow_length", DefaultMACDSlowLength)
		if err != nil {
			return nil, err
		}
		signalLength, err := intParam(params, "signal_length", DefaultMACDSignalLength)
		if err != nil {
			return nil, err
		}
		return NewMACDWithWarmup(fastLength, slowLength, signalLength, f.macdWarmup, f.emaWarmup), nil

	case IndicatorTypeBollingerBands:
		length, err := intParam(params, "length", DefaultBollingerLength)
		if err != nil {
			return nil, err
		}
		stdDev := DefaultBollingerWidth
		if v, ok := params["std_dev"]; ok {
			sd, ok := v.(float64)
			if !ok {
				return nil, fmt.Errorf("bollinger bands parameter 'std_dev' must be a float, got %T", v)
			}
			stdDev = sd
		}
		return NewBollingerBands(length, stdDev), nil

	case IndicatorTypeHeikenAshi:
		return NewHeikenAshi(), nil

	default:
		return nil, fmt.Errorf("unknown indicator type: %s", indicatorType)
	}
}

func intParam(params map[string]interface{}, name string, fallback int) (int, error) {
	v, ok := params[name]
	if !ok {
		return fallback, nil
	}
	n, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("parameter '%s' must be an int, got %T", name, v)
	}
	return n, nil
}

// GetAvailableIndicators returns a list of available indicator types
func (f *IndicatorFactory) GetAvailableIndicators() []IndicatorType {
	return []IndicatorType{
		IndicatorTypeSMA,
		IndicatorTypeEMA,
		IndicatorTypeRSI,
		IndicatorTypeStochastic,
		IndicatorTypeMACD,
		IndicatorTypeBollingerBands,
		IndicatorTypeHeikenAshi,
	}
}

// ParseIndicatorType parses a string into an IndicatorType
func ParseIndicatorType(s string) (IndicatorType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SMA":
		return IndicatorTypeSMA, nil
	case "EMA":
		return IndicatorTypeEMA, nil
	case "RSI":
		return IndicatorTypeRSI, nil
	case "STOCHASTIC", "STOCH":
		return IndicatorTypeStochastic, nil
	case "MACD":
		return IndicatorTypeMACD, nil
	case "BOLLINGER_BANDS", "BB":
		return IndicatorTypeBollingerBands, nil
	case "HEIKEN_ASHI", "HA":
		return IndicatorTypeHeikenAshi, nil
	default:
		return "", fmt.Errorf("unknown indicator type: %s", s)
	}
}

// IndicatorConfig represents configuration for an indicator
type IndicatorConfig struct {
	Type       IndicatorType          `json:"type"`
	Parameters map[string]interface{} `json:"parameters"`
}

// DefaultConfigs returns one config per available type with default parameters
func (f *IndicatorFactory) DefaultConfigs() []IndicatorConfig {
	types := f.GetAvailableIndicators()
	configs := make([]IndicatorConfig, len(types))
	for i, t := range types {
		configs[i] = IndicatorConfig{Type: t}
	}
	return configs
}

// NewIndicatorManagerFromConfig builds a manager from a list of indicator configs
func (f *IndicatorFactory) NewIndicatorManagerFromConfig(configs []IndicatorConfig) (*IndicatorManager, error) {
	manager := NewIndicatorManager()
	for _, cfg := range configs {
		indicator, err := f.CreateIndicator(cfg.Type, cfg.Parameters)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", cfg.Type, err)
		}
		manager.AddIndicator(indicator)
	}
	return manager, nil
}
