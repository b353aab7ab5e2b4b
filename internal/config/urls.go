// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"strings"
)

// URLs provides centralized URL management for the Shipdeck web console
type URLs struct {
	BaseURL     string
	OrdersURL   string
	ReturnsURL  string
	SettingsURL string
	APIKeysURL  string
}

// GetURLs returns the appropriate URLs based on the current API configuration
func GetURLs() *URLs {
	baseURL := getBaseURL()

	return &URLs{
		BaseURL:     baseURL,
		OrdersURL:   baseURL + "/orders",
		ReturnsURL:  baseURL + "/returns",
		SettingsURL: baseURL + "/settings",
		APIKeysURL:  baseURL + "/settings/api-keys",
	}
}

// getBaseURL determines the console base URL from the API URL
func getBaseURL() string {
	if os.Getenv("SHIPDECK_ENV") == "dev" {
		return "http://localhost:3000"
	}

	apiURL := os.Getenv(EnvAPIURL)
	if apiURL == "" {
		apiURL = "https://api.shipdeck.io"
	}

	// Local development keeps the frontend on :3000
	if strings.Contains(apiURL, "localhost") || strings.Contains(apiURL, "127.0.0.1") {
		if strings.Contains(apiURL, ":8080") {
			return "http://localhost:3000"
		}
		return apiURL
	}

	if strings.Contains(apiURL, "ngrok") {
		return apiURL
	}

	// Production API lives on an api. subdomain of the console host
	return strings.Replace(apiURL, "api.", "app.", 1)
}
