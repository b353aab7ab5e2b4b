package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAPIError_DetailBody(t *testing.T) {
	err := ParseAPIError(409, []byte(`{"detail":"order o1 status changed to SHIPPED"}`))
	require.Error(t, err)
	assert.Equal(t, "order o1 status changed to SHIPPED", FormatUserError(err))
}

func TestParseAPIError_ErrorCodes(t *testing.T) {
	err := ParseAPIError(401, []byte(`{"error":"INVALID_API_KEY"}`))
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)

	err = ParseAPIError(429, []byte(`{"code":"RATE_LIMIT_EXCEEDED","details":{"retryAfter":"30s"}}`))
	var rlErr *RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "30s", rlErr.RetryAfter)

	err = ParseAPIError(409, []byte(`{"code":"STATUS_CONFLICT","detail":"already shipped","details":{"recordId":"o3"}}`))
	var staleErr *StaleStateError
	require.ErrorAs(t, err, &staleErr)
	assert.Equal(t, "o3", staleErr.RecordID)
	assert.Equal(t, "already shipped", staleErr.Detail)
}

func TestParseAPIError_StatusFallbacks(t *testing.T) {
	err := ParseAPIError(422, []byte(`{"detail":"weight must be positive"}`))
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "weight must be positive", valErr.Message)

	err = ParseAPIError(503, []byte(``))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 503, apiErr.StatusCode)

	err = ParseAPIError(500, []byte(`not json at all`))
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "not json at all")
}

func TestFormatUserError(t *testing.T) {
	assert.Equal(t, "", FormatUserError(nil))

	msg := FormatUserError(&ValidationError{Field: "selection", Message: "select at least one record"})
	assert.Contains(t, msg, "selection")

	msg = FormatUserError(&APIError{StatusCode: 500, Message: "backend exploded"})
	assert.Equal(t, "backend exploded", msg)

	msg = FormatUserError(&APIError{StatusCode: 409, Message: "generic", Detail: "exact reason"})
	assert.Equal(t, "exact reason", msg)
}
