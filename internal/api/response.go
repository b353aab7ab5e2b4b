package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/shipdeck/shipdeck-cli/internal/errors"
)

// ValidateResponse validates HTTP response status codes and returns an error if not valid
func ValidateResponse(resp *http.Response, allowedCodes ...int) error {
	if len(allowedCodes) == 0 {
		allowedCodes = []int{http.StatusOK}
	}

	for _, code := range allowedCodes {
		if resp.StatusCode == code {
			return nil
		}
	}

	body, _ := io.ReadAll(resp.Body)
	return errors.ParseAPIError(resp.StatusCode, body)
}

// ValidateResponseOK validates that the response status is 200 OK
func ValidateResponseOK(resp *http.Response) error {
	return ValidateResponse(resp, http.StatusOK)
}

// ValidateResponseOKOrCreated validates that the response status is either 200 OK or 201 Created
func ValidateResponseOKOrCreated(resp *http.Response) error {
	return ValidateResponse(resp, http.StatusOK, http.StatusCreated)
}

// DecodeList normalizes the backend's inconsistent list envelopes into one
// canonical slice. Different endpoints return a bare array,
// {"data":{"items":[...]}}, {"data":[...]} or {"items":[...]}; this is the
// single seam that tolerates all four.
func DecodeList[T any](body []byte) ([]T, error) {
	var bare []T
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}

	var nested struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &nested); err == nil && len(nested.Data) > 0 {
		var inner []T
		if err := json.Unmarshal(nested.Data, &inner); err == nil {
			return inner, nil
		}
		var wrapped struct {
			Items []T `json:"items"`
		}
		if err := json.Unmarshal(nested.Data, &wrapped); err == nil && wrapped.Items != nil {
			return wrapped.Items, nil
		}
	}

	var flat struct {
		Items []T `json:"items"`
	}
	if err := json.Unmarshal(body, &flat); err == nil && flat.Items != nil {
		return flat.Items, nil
	}

	return nil, fmt.Errorf("unrecognized list response shape")
}

// DecodeObject decodes a single object, tolerating an optional {"data":...}
// wrapper the same way DecodeList tolerates list envelopes.
func DecodeObject[T any](body []byte) (*T, error) {
	var wrapped struct {
		Data *T `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Data != nil {
		return wrapped.Data, nil
	}

	var direct T
	if err := json.Unmarshal(body, &direct); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &direct, nil
}
