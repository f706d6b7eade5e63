// Package errors provides custom error types for the papertrade API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Portfolio ledger errors.
var (
	ErrInsufficientFunds   = &AppError{Code: "INSUFFICIENT_FUNDS", Message: "Insufficient funds for this purchase", StatusCode: http.StatusBadRequest}
	ErrPositionNotFound    = &AppError{Code: "POSITION_NOT_FOUND", Message: "Position not found", StatusCode: http.StatusNotFound}
	ErrInvalidSellQuantity = &AppError{Code: "INVALID_SELL_QUANTITY", Message: "Sell quantity exceeds position quantity", StatusCode: http.StatusBadRequest}
)

// Risk policy errors.
var (
	ErrTradeBlocked = &AppError{Code: "TRADE_BLOCKED", Message: "Trade blocked by risk controls", StatusCode: http.StatusUnprocessableEntity}
)

// Market data errors.
var (
	ErrQuotesUnavailable     = &AppError{Code: "QUOTES_UNAVAILABLE", Message: "Market data is currently unavailable", StatusCode: http.StatusBadGateway}
	ErrProviderNotConfigured = &AppError{Code: "PROVIDER_NOT_CONFIGURED", Message: "Market data provider is not configured", StatusCode: http.StatusInternalServerError}
)
