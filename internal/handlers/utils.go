package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"twofactor-vault/internal/i18n"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ErrUnauthorized is returned when user context is invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// Helper function to extract user ID from context
// Returns ErrUnauthorized if user ID is missing or invalid
func getUserIDFromContext(c echo.Context) (uuid.UUID, error) {
	userIDValue := c.Get("user_id")
	if userIDValue == nil {
		return uuid.UUID{}, ErrUnauthorized
	}

	userID, ok := userIDValue.(uuid.UUID)
	if !ok {
		return uuid.UUID{}, ErrUnauthorized
	}

	return userID, nil
}

// getGroupIDParam parses the :id path parameter as a group id.
// Group ids are positive integers; 0 is reserved for the synthetic
// "all" group which is never addressable by id.
func getGroupIDParam(c echo.Context) (uint, error) {
	param := c.Param("id")
	id, err := strconv.ParseUint(param, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid group id: %q", param)
	}
	return uint(id), nil
}

// getLocale negotiates the response locale from the Accept-Language header
func getLocale(c echo.Context) string {
	return i18n.Match(c.Request().Header.Get("Accept-Language"))
}

func getClientIP(c echo.Context) string {
	xff := c.Request().Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	xri := c.Request().Header.Get("X-Real-IP")
	if xri != "" {
		return xri
	}

	return c.Request().RemoteAddr
}
