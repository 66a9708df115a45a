package bybit

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	bybit_api "github.com/bybit-exchange/bybit.go.api"
)

// KlineInterval represents the time interval for kline data
type KlineInterval string

const (
	Interval1d KlineInterval = "D"
	Interval1w KlineInterval = "W"
	Interval1M KlineInterval = "M"

	// MaxKlineLimit is the largest page the kline endpoint returns
	MaxKlineLimit = 1000
)

// Kline represents a single kline/candlestick data point
type Kline struct {
	StartTime  time.Time
	OpenPrice  float64
	HighPrice  float64
	LowPrice   float64
	ClosePrice float64
	Volume     float64
	Turnover   float64
}

// KlineParams holds parameters for fetching kline data
type KlineParams struct {
	Category string        // "spot", "linear", "inverse"
	Symbol   string        // Trading pair symbol (e.g., "BTCUSDT")
	Interval KlineInterval // Time interval
	Start    *time.Time    // Start time (optional)
	End      *time.Time    // End time (optional)
	Limit    int           // Number of records to return (max 1000, default 200)
}

// GetKlines fetches one page of kline data. Bybit returns the newest kline first.
func (c *Client) GetKlines(ctx context.Context, params KlineParams) ([]Kline, error) {
	if params.Category == "" {
		params.Category = "spot"
	}
	if params.Interval == "" {
		params.Interval = Interval1d
	}
	if params.Limit == 0 {
		params.Limit = 200
	}
	if params.Limit > MaxKlineLimit {
		params.Limit = MaxKlineLimit
	}

	reqParams := map[string]interface{}{
		"category": params.Category,
		"symbol":   params.Symbol,
		"interval": string(params.Interval),
		"limit":    params.Limit,
	}
	if params.Start != nil {
		reqParams["start"] = params.Start.UnixMilli()
	}
	if params.End != nil {
		reqParams["end"] = params.End.UnixMilli()
	}

	result, err := c.httpClient.NewUtaBybitServiceWithParams(reqParams).GetMarketKline(ctx)
	if err != nil {
		return nil, WrapAPIError("get klines", err)
	}

	serverResp, ok := interface{}(result).(*bybit_api.ServerResponse)
	if !ok || serverResp == nil {
		return nil, fmt.Errorf("invalid kline response type %T", result)
	}
	if err := ParseAPIError(serverResp.RetCode, serverResp.RetMsg); err != nil {
		return nil, err
	}

	klines, err := ParseKlineResult(serverResp.Result)
	if err != nil {
		return nil, fmt.Errorf("failed to parse kline response: %w", err)
	}
	return klines, nil
}

// ParseKlineResult decodes the result object of a kline response.
// Each entry is [startTime, open, high, low, close, volume, turnover];
// a malformed entry fails the whole page.
func ParseKlineResult(result interface{}) ([]Kline, error) {
	resultBytes, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	var klineResult struct {
		Symbol   string     `json:"symbol"`
		Category string     `json:"category"`
		List     [][]string `json:"list"`
	}
	if err := json.Unmarshal(resultBytes, &klineResult); err != nil {
		return nil, fmt.Errorf("failed to unmarshal kline result: %w", err)
	}

	klines := make([]Kline, 0, len(klineResult.List))
	for i, item := range klineResult.List {
		kline, err := parseKline(item)
		if err != nil {
			return nil, fmt.Errorf("kline %d: %w", i, err)
		}
		klines = append(klines, kline)
	}
	return klines, nil
}

func parseKline(item []string) (Kline, error) {
	if len(item) < 7 {
		return Kline{}, fmt.Errorf("expected 7 fields, got %d", len(item))
	}
	startMs, err := strconv.ParseInt(item[0], 10, 64)
	if err != nil {
		return Kline{}, fmt.Errorf("invalid start time '%s'", item[0])
	}

	values := make([]float64, 6)
	for j := range values {
		v, err := strconv.ParseFloat(item[j+1], 64)
		if err != nil {
			return Kline{}, fmt.Errorf("invalid number '%s'", item[j+1])
		}
		values[j] = v
	}

	return Kline{
		StartTime:  time.UnixMilli(startMs).UTC(),
		OpenPrice:  values[0],
		HighPrice:  values[1],
		LowPrice:   values[2],
		ClosePrice: values[3],
		Volume:     values[4],
		Turnover:   values[5],
	}, nil
}
