package errors

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrorResponse(t *testing.T) {
	response := NewErrorResponse(GroupNotFound, "trace-123")

	assert.Equal(t, "GROUP_001", response.Error.Code)
	assert.Equal(t, "Group not found", response.Error.Message)
	assert.Equal(t, "trace-123", response.Error.TraceID)
	assert.Empty(t, response.Error.Details)
}

func TestNewErrorResponse_WithOptions(t *testing.T) {
	response := NewErrorResponse(
		ValidationInvalidFormat,
		"trace-123",
		WithMessage("custom message"),
		WithDetails("name: is required"),
	)

	assert.Equal(t, "VALIDATION_003", response.Error.Code)
	assert.Equal(t, "custom message", response.Error.Message)
	assert.Equal(t, []string{"name: is required"}, response.Error.Details)
}

func TestNewValidationError(t *testing.T) {
	response := NewValidationError(map[string]string{
		"Name": "is required",
	}, "trace-123")

	assert.Equal(t, string(ValidationGeneral), response.Error.Code)
	require.Len(t, response.Error.Details, 1)
	assert.Equal(t, "Name: is required", response.Error.Details[0])
}

func TestWrapSystemError(t *testing.T) {
	internalErr := assert.AnError
	response, err := WrapSystemError(internalErr, "trace-123")

	assert.Equal(t, internalErr, err)
	assert.Equal(t, string(SystemInternalError), response.Error.Code)

	// The internal error text must never leak into the response
	payload, marshalErr := response.ToJSON()
	require.NoError(t, marshalErr)
	assert.NotContains(t, string(payload), internalErr.Error())
}

func TestGetHTTPStatus(t *testing.T) {
	testCases := []struct {
		code ErrorCode
		want int
	}{
		{AuthInvalidCredentials, http.StatusUnauthorized},
		{AuthMissingToken, http.StatusUnauthorized},
		{AuthExpiredToken, http.StatusUnauthorized},
		{AuthInsufficientPermission, http.StatusForbidden},
		{ValidationGeneral, http.StatusBadRequest},
		{ValidationInvalidFormat, http.StatusUnprocessableEntity},
		{GroupNotFound, http.StatusNotFound},
		{GroupNameTaken, http.StatusUnprocessableEntity},
		{GroupInvalidID, http.StatusBadRequest},
		{GroupNameInvalid, http.StatusUnprocessableEntity},
		{GroupImmutable, http.StatusForbidden},
		{OtpAccountNotFound, http.StatusNotFound},
		{SystemInternalError, http.StatusInternalServerError},
		{SystemServiceUnavailable, http.StatusServiceUnavailable},
		{SystemRateLimitExceeded, http.StatusTooManyRequests},
		{ErrorCode("UNKNOWN_999"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, GetHTTPStatus(tc.code), "code %s", tc.code)
	}
}

func TestErrorResponse_ClientVsServerError(t *testing.T) {
	client := NewErrorResponse(GroupNotFound, "trace-123")
	assert.True(t, client.IsClientError())
	assert.False(t, client.IsServerError())

	server := NewErrorResponse(SystemInternalError, "trace-123")
	assert.False(t, server.IsClientError())
	assert.True(t, server.IsServerError())
}

func TestErrorResponse_JSONShape(t *testing.T) {
	response := NewErrorResponse(GroupNameTaken, "trace-123")

	payload, err := response.ToJSON()
	require.NoError(t, err)

	var decoded map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))

	detail, ok := decoded["error"]
	require.True(t, ok)
	assert.Equal(t, "GROUP_002", detail["code"])
	assert.Equal(t, "trace-123", detail["trace_id"])
}

func TestGetErrorMessage_UnknownCode(t *testing.T) {
	assert.Equal(t, "An error occurred", GetErrorMessage(ErrorCode("NOPE")))
	assert.False(t, IsValidErrorCode(ErrorCode("NOPE")))
	assert.True(t, IsValidErrorCode(GroupNotFound))
}
