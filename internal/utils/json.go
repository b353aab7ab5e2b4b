package utils

import (
	"encoding/json"
	"fmt"
)

// MarshalJSONIndent marshals v to pretty-printed JSON with standardized
// error wrapping.
func MarshalJSONIndent(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return data, nil
}

// UnmarshalJSON unmarshals data into v with standardized error wrapping.
func UnmarshalJSON(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return nil
}
