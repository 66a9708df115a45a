package bybit

import (
	"errors"
	"fmt"
)

// BybitError represents a Bybit API error with additional context
type BybitError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *BybitError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("Bybit API error %d: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("Bybit API error %d: %s", e.Code, e.Message)
}

// Error codes the market data endpoints report
const (
	ErrCodeInvalidParameter  = 10001
	ErrCodeRateLimitExceeded = 10006
	ErrCodeSymbolNotFound    = 110009
)

// IsSymbolNotFound reports whether the exchange does not know the symbol
func IsSymbolNotFound(err error) bool {
	var bybitErr *BybitError
	if errors.As(err, &bybitErr) {
		return bybitErr.Code == ErrCodeSymbolNotFound || bybitErr.Code == ErrCodeInvalidParameter
	}
	return false
}

// IsRateLimitError checks if the error is due to rate limiting
func IsRateLimitError(err error) bool {
	var bybitErr *BybitError
	return errors.As(err, &bybitErr) && bybitErr.Code == ErrCodeRateLimitExceeded
}

// NewBybitError creates a new BybitError
func NewBybitError(code int, message string, details ...string) *BybitError {
	err := &BybitError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

// WrapAPIError wraps a generic error with additional context
func WrapAPIError(operation string, err error) error {
	if err == nil {
		return nil
	}

	var bybitErr *BybitError
	if errors.As(err, &bybitErr) {
		bybitErr.Details = fmt.Sprintf("Operation: %s", operation)
		return bybitErr
	}

	return fmt.Errorf("%s failed: %w", operation, err)
}

// ParseAPIError extracts error information from the API response
func ParseAPIError(retCode int, retMsg string) error {
	if retCode == 0 {
		return nil
	}

	return NewBybitError(retCode, retMsg, GetErrorDescription(retCode))
}

// ErrorCodes maps common error codes to human-readable messages
var ErrorCodes = map[int]string{
	ErrCodeInvalidParameter:  "Invalid parameter",
	ErrCodeRateLimitExceeded: "Rate limit exceeded",
	ErrCodeSymbolNotFound:    "Symbol not found",
}

// GetErrorDescription returns a human-readable description for an error code
func GetErrorDescription(code int) string {
	if desc, exists := ErrorCodes[code]; exists {
		return desc
	}
	return fmt.Sprintf("Unknown error code: %d", code)
}
