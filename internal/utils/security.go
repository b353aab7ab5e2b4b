// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package utils

import "strings"

// MaskAPIKey hides all but the first and last few characters of a key.
func MaskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}

// RedactAuthHeader masks the credential portion of an Authorization header
// so debug logs never leak a usable key.
func RedactAuthHeader(headerValue string) string {
	if headerValue == "" {
		return ""
	}

	if strings.HasPrefix(headerValue, "Bearer ") {
		token := headerValue[7:]
		return "Bearer " + MaskAPIKey(token)
	}

	parts := strings.SplitN(headerValue, " ", 2)
	if len(parts) == 2 {
		return parts[0] + " " + MaskAPIKey(parts[1])
	}

	return MaskAPIKey(headerValue)
}
