// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

// Environment variable constants
const (
	// EnvAPIKey is the environment variable for the Shipdeck API key
	EnvAPIKey = "SHIPDECK_API_KEY"

	// EnvAPIURL is the environment variable for the Shipdeck API URL
	EnvAPIURL = "SHIPDECK_API_URL"

	// EnvDebug is the environment variable for debug mode
	EnvDebug = "SHIPDECK_DEBUG"
)
