package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"twofactor-vault/internal/errors"

	"github.com/labstack/echo/v4"
)

// PanicRecovery turns handler panics into a SYSTEM_001 response so a
// single broken request cannot take the vault API down
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				traceID := GetTraceID(c)
				if traceID == "" {
					traceID = "unknown"
				}

				slog.Error("Recovered from panic in request handler",
					"trace_id", traceID,
					"panic", fmt.Sprintf("%v", r),
					"path", c.Request().URL.Path,
					"method", c.Request().Method,
					"remote_ip", c.RealIP(),
					"stack", string(debug.Stack()),
				)

				errorResponse := errors.NewErrorResponse(errors.SystemInternalError, traceID)
				if err := c.JSON(http.StatusInternalServerError, errorResponse); err != nil {
					slog.Error("Failed to send panic recovery response",
						"trace_id", traceID,
						"error", err.Error(),
					)
				}
			}()

			return next(c)
		}
	}
}
