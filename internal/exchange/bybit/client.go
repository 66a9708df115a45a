package bybit

import (
	bybit_api "github.com/bybit-exchange/bybit.go.api"
)

// Client wraps the Bybit API client for public market data
type Client struct {
	httpClient *bybit_api.Client
	testnet    bool
}

// Config holds the configuration for the Bybit client.
// Market data endpoints are public, so the key pair may be empty.
type Config struct {
	APIKey    string
	APISecret string
	Testnet   bool
	BaseURL   string // overrides the environment endpoint when set
}

// NewClient creates a new Bybit client
func NewClient(config Config) *Client {
	baseURL := config.BaseURL
	if baseURL == "" {
		if config.Testnet {
			baseURL = bybit_api.TESTNET
		} else {
			baseURL = bybit_api.MAINNET
		}
	}

	httpClient := bybit_api.NewBybitHttpClient(
		config.APIKey,
		config.APISecret,
		bybit_api.WithBaseURL(baseURL),
	)

	return &Client{
		httpClient: httpClient,
		testnet:    config.Testnet,
	}
}

// GetEnvironment returns a string describing the current environment
func (c *Client) GetEnvironment() string {
	if c.testnet {
		return "testnet"
	}
	return "mainnet"
}
