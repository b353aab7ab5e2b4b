// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// StatusMessages maps backend error codes to actionable user messages.
var StatusMessages = map[string]string{
	"INVALID_API_KEY":      "Invalid API key. Generate a new one from your workspace settings",
	"RATE_LIMIT_EXCEEDED":  "Rate limit exceeded. Please wait before retrying",
	"SERVER_ERROR":         "The Shipdeck servers are experiencing issues. Please try again later",
	"UNAUTHORIZED":         "You don't have permission to access this resource",
	"FORBIDDEN":            "Access to this resource is forbidden",
	"TIMEOUT":              "Request timed out. The operation may still be processing",
	"NETWORK_ERROR":        "Network connectivity issue. Please check your connection",
	"VALIDATION_ERROR":     "Invalid input provided. Please check your request",
	"ORDER_NOT_FOUND":      "Order not found. It may have been cancelled or archived",
	"CONNECTION_NOT_FOUND": "Marketplace connection not found. Check the connection id",
	"STATUS_CONFLICT":      "The record's status changed on the server. Refresh the list and retry",
}

// APIErrorResponse is the backend's error body. Most endpoints put the
// human-readable reason in "detail"; older ones use "message" or "error".
type APIErrorResponse struct {
	Detail  string                 `json:"detail"`
	Error   string                 `json:"error"`
	Message string                 `json:"message"`
	Status  string                 `json:"status"`
	Code    string                 `json:"code"`
	Details map[string]interface{} `json:"details"`
}

func ParseAPIError(statusCode int, body []byte) error {
	var apiErr APIErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil {
		return createErrorFromAPIResponse(statusCode, apiErr)
	}

	// Fallback to raw body as error message
	message := strings.TrimSpace(string(body))
	if message == "" {
		message = fmt.Sprintf("API request failed with status %d", statusCode)
	}

	return createErrorFromStatusCode(statusCode, message, "")
}

func createErrorFromAPIResponse(statusCode int, apiErr APIErrorResponse) error {
	// Error code may arrive in either "code" or "error"
	errorCode := strings.ToUpper(apiErr.Code)
	if errorCode == "" {
		errorCode = strings.ToUpper(apiErr.Error)
	}

	switch errorCode {
	case "INVALID_API_KEY", "UNAUTHORIZED":
		return &AuthError{
			Message: StatusMessages["INVALID_API_KEY"],
			Reason:  strings.ToLower(errorCode),
		}

	case "RATE_LIMIT_EXCEEDED":
		retryAfter := ""
		if apiErr.Details != nil {
			if ra, ok := apiErr.Details["retryAfter"].(string); ok {
				retryAfter = ra
			}
		}
		return &RateLimitError{RetryAfter: retryAfter}

	case "STATUS_CONFLICT":
		recordID := ""
		if apiErr.Details != nil {
			if id, ok := apiErr.Details["recordId"].(string); ok {
				recordID = id
			}
		}
		return &StaleStateError{RecordID: recordID, Detail: apiErr.Detail}
	}

	message := apiErr.Message
	if message == "" {
		message = apiErr.Error
	}

	return createErrorFromStatusCode(statusCode, message, apiErr.Detail)
}

func createErrorFromStatusCode(statusCode int, message, detail string) error {
	var errorType ErrorType

	switch statusCode {
	case 400:
		errorType = ErrorTypeValidation
		if message == "" {
			message = StatusMessages["VALIDATION_ERROR"]
		}

	case 401:
		return &AuthError{
			Message: StatusMessages["UNAUTHORIZED"],
			Reason:  "unauthorized",
		}

	case 403:
		return &AuthError{
			Message: StatusMessages["FORBIDDEN"],
			Reason:  "forbidden",
		}

	case 404:
		errorType = ErrorTypeNotFound
		if message == "" {
			message = "Resource not found"
		}

	case 408:
		errorType = ErrorTypeTimeout
		if message == "" {
			message = StatusMessages["TIMEOUT"]
		}

	case 409:
		errorType = ErrorTypeConflict
		if message == "" {
			message = StatusMessages["STATUS_CONFLICT"]
		}

	case 422:
		if message == "" {
			message = StatusMessages["VALIDATION_ERROR"]
		}
		if detail != "" {
			message = detail
		}
		return &ValidationError{
			Message: message,
		}

	case 429:
		return &RateLimitError{}

	case 500, 502, 503, 504:
		errorType = ErrorTypeAPI
		if message == "" {
			message = StatusMessages["SERVER_ERROR"]
		}

	default:
		errorType = ErrorTypeUnknown
		if message == "" {
			message = fmt.Sprintf("Unexpected error (status %d)", statusCode)
		}
	}

	return &APIError{
		StatusCode: statusCode,
		Status:     getHTTPStatusText(statusCode),
		Message:    message,
		Detail:     detail,
		ErrorType:  errorType,
	}
}

func getHTTPStatusText(code int) string {
	switch code {
	case 400:
		return "Bad Request"
	case 401:
		return "Unauthorized"
	case 403:
		return "Forbidden"
	case 404:
		return "Not Found"
	case 408:
		return "Request Timeout"
	case 409:
		return "Conflict"
	case 422:
		return "Unprocessable Entity"
	case 429:
		return "Too Many Requests"
	case 500:
		return "Internal Server Error"
	case 502:
		return "Bad Gateway"
	case 503:
		return "Service Unavailable"
	case 504:
		return "Gateway Timeout"
	default:
		return fmt.Sprintf("HTTP %d", code)
	}
}

func FormatUserError(err error) string {
	if err == nil {
		return ""
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Error()
	}

	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) {
		return rateLimitErr.Error()
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}

	var staleErr *StaleStateError
	if errors.As(err, &staleErr) {
		return staleErr.Error()
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return fmt.Sprintf("Network error: %v. Please check your connection and try again.", netErr.Err)
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return apiErr.Error()
	}

	return err.Error()
}
