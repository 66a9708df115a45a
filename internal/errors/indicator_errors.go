package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorKind represents the distinguishable failure classes of the indicator engine
type ErrorKind string

const (
	// Request-level failures
	KindInsufficientHistory ErrorKind = "INSUFFICIENT_HISTORY"
	KindInvalidParameter    ErrorKind = "INVALID_PARAMETER"

	// Arithmetic failures that have no documented neutral value
	KindDivisionByZero ErrorKind = "DIVISION_BY_ZERO"

	// Input failures
	KindInvalidSeries   ErrorKind = "INVALID_SERIES"
	KindDataUnavailable ErrorKind = "DATA_UNAVAILABLE"
)

// Sentinels for errors.Is matching against an *IndicatorError of the same kind
var (
	ErrInsufficientHistory = stderrors.New("insufficient history")
	ErrInvalidParameter    = stderrors.New("invalid parameter")
	ErrDivisionByZero      = stderrors.New("division by zero")
	ErrInvalidSeries       = stderrors.New("invalid price series")
	ErrDataUnavailable     = stderrors.New("data unavailable")
)

var sentinels = map[ErrorKind]error{
	KindInsufficientHistory: ErrInsufficientHistory,
	KindInvalidParameter:    ErrInvalidParameter,
	KindDivisionByZero:      ErrDivisionByZero,
	KindInvalidSeries:       ErrInvalidSeries,
	KindDataUnavailable:     ErrDataUnavailable,
}

// IndicatorError represents a categorized error with context
type IndicatorError struct {
	Kind       ErrorKind
	Component  string
	Operation  string
	Message    string
	Required   int
	Available  int
	Underlying error
	Context    map[string]interface{}
}

// Error implements the error interface
func (e *IndicatorError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s:%s] %s", e.Kind, e.Component, e.Operation)
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Kind == KindInsufficientHistory {
		fmt.Fprintf(&b, " (need %d bars, have %d)", e.Required, e.Available)
	}
	if e.Underlying != nil {
		fmt.Fprintf(&b, ": %v", e.Underlying)
	}
	return b.String()
}

// Unwrap returns the underlying error for error unwrapping
func (e *IndicatorError) Unwrap() error {
	return e.Underlying
}

// Is reports whether target is the sentinel of this error's kind
func (e *IndicatorError) Is(target error) bool {
	sentinel, ok := sentinels[e.Kind]
	return ok && target == sentinel
}

// WithContext adds context information to the error
func (e *IndicatorError) WithContext(key string, value interface{}) *IndicatorError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewIndicatorError creates a new categorized error
func NewIndicatorError(kind ErrorKind, component, operation, message string) *IndicatorError {
	return &IndicatorError{
		Kind:      kind,
		Component: component,
		Operation: operation,
		Message:   message,
		Context:   make(map[string]interface{}),
	}
}

// WrapError wraps an existing error with a kind and component
func WrapError(err error, kind ErrorKind, component, operation string) *IndicatorError {
	if err == nil {
		return nil
	}
	e := NewIndicatorError(kind, component, operation, "")
	e.Underlying = err
	return e
}

// NewInsufficientHistory reports that a request needs more bars than the series holds
func NewInsufficientHistory(component string, required, available int) *IndicatorError {
	e := NewIndicatorError(KindInsufficientHistory, component, "window", "requested window exceeds series length")
	e.Required = required
	e.Available = available
	return e
}

// NewInvalidParameter reports a non-positive period or window length
func NewInvalidParameter(component, name string, value int) *IndicatorError {
	return NewIndicatorError(KindInvalidParameter, component, "validate",
		fmt.Sprintf("%s must be >= 1, got %d", name, value)).WithContext(name, value)
}

func NewDivisionByZero(component, operation, message string) *IndicatorError {
	return NewIndicatorError(KindDivisionByZero, component, operation, message)
}

func NewInvalidSeries(component, message string) *IndicatorError {
	return NewIndicatorError(KindInvalidSeries, component, "validate", message)
}

// NewDataUnavailable wraps a fetch failure; the engine never retries these
func NewDataUnavailable(component, symbol string, err error) *IndicatorError {
	e := WrapError(err, KindDataUnavailable, component, "fetch")
	if e == nil {
		e = NewIndicatorError(KindDataUnavailable, component, "fetch", "no data returned")
	}
	e.Message = fmt.Sprintf("symbol %s", symbol)
	return e.WithContext("symbol", symbol)
}

// KindOf extracts the kind of the first *IndicatorError in err's chain
func KindOf(err error) (ErrorKind, bool) {
	var ie *IndicatorError
	if stderrors.As(err, &ie) {
		return ie.Kind, true
	}
	return "", false
}

// IsInsufficientHistory checks if the error is an insufficient-history failure
func IsInsufficientHistory(err error) bool {
	return stderrors.Is(err, ErrInsufficientHistory)
}

// IsDataUnavailable checks if the error comes from a failed fetch
func IsDataUnavailable(err error) bool {
	return stderrors.Is(err, ErrDataUnavailable)
}

// IsDivisionByZero checks if the error is an undefined arithmetic result
func IsDivisionByZero(err error) bool {
	return stderrors.Is(err, ErrDivisionByZero)
}
