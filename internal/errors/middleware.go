package errors

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPErrorsTotal tracks HTTP errors by type
	HTTPErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total HTTP errors by error type",
		},
		[]string{"type"},
	)
)

// Middleware returns an Echo middleware that handles structured errors.
// It catches errors returned by handlers and converts them to appropriate HTTP responses.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			// Echo HTTPErrors (from binding or built-in middleware) pass
			// through unchanged to preserve their status code.
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				HTTPErrorsTotal.WithLabelValues(string(TypeInternal)).Inc()
				return err
			}

			structuredErr := AsStructuredError(err)

			HTTPErrorsTotal.WithLabelValues(string(structuredErr.Type)).Inc()

			logError(c, structuredErr)

			if err := c.JSON(structuredErr.HTTPStatus(), structuredErr.ToResponse()); err != nil {
				return fmt.Errorf("failed to write error response: %w", err)
			}
			return nil
		}
	}
}

// logError logs an error with request context.
func logError(c echo.Context, err *Error) {
	attrs := []any{
		"error_type", err.Type,
		"message", err.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"status", err.HTTPStatus(),
	}

	for k, v := range err.Context {
		attrs = append(attrs, k, v)
	}

	if adminUser := c.Get("adminUser"); adminUser != nil {
		attrs = append(attrs, "admin_user", adminUser)
	}

	switch err.Type {
	case TypeValidation, TypeNotFound:
		slog.Info("Request rejected", attrs...)
	case TypeUnauthorized, TypeRateLimited:
		slog.Warn("Request rejected", attrs...)
	case TypeConflict:
		slog.Warn("Conflict", attrs...)
	default:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.Error("Internal error", attrs...)
	}
}
