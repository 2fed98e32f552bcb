package handlers

import (
	"log/slog"
	"net/http"

	"sol-wallet/internal/errors"

	"github.com/labstack/echo/v4"
)

// All handlers report failures through SendError or SendSystemError so every error body
// carries the same {error, code, details, trace_id} shape:
//
//   - SendError for failures that map to a known error code (4xx and expected 5xx)
//   - SendSystemError for unexpected failures whose cause must not reach the caller

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSystemError wraps a system error with generic message and logs the internal error
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, internalErr := errors.WrapSystemError(err, traceID)
	slog.ErrorContext(c.Request().Context(), "internal error",
		"trace_id", traceID,
		"error", internalErr,
	)
	return c.JSON(http.StatusInternalServerError, errorResponse)
}
