// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "Shipdeck-CLI"
	keyringAccount = "api-key"
)

// Security Strategy:
// 1. Environment variable (SHIPDECK_API_KEY) - Best for CI/CD, containers
// 2. System keyring - Only on macOS/Windows or Linux with desktop environment
// 3. Encrypted file (AES-256-GCM) - Universal fallback, works everywhere
//
// On Linux servers/containers, we default to encrypted file storage
// which is more reliable than trying to use desktop keyrings that
// may not be available or properly configured.

// SecureStorage handles secure storage of sensitive data
type SecureStorage struct {
	useKeyring bool
	configDir  string
}

// NewSecureStorage creates a new secure storage instance
func NewSecureStorage() *SecureStorage {
	homeDir, _ := os.UserHomeDir()
	configDir := filepath.Join(homeDir, ".shipdeck")

	return &SecureStorage{
		useKeyring: isKeyringAvailable(),
		configDir:  configDir,
	}
}

// SaveAPIKey securely stores the API key
func (s *SecureStorage) SaveAPIKey(apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	if s.useKeyring {
		err := keyring.Set(keyringService, keyringAccount, apiKey)
		if err == nil {
			// Stored in keyring, scrub any plain-text copy
			s.removeAPIKeyFromConfig()
			return nil
		}
		// Fall back to encrypted file if keyring fails
	}

	return s.saveEncryptedAPIKey(apiKey)
}

// GetAPIKey retrieves the API key from secure storage
func (s *SecureStorage) GetAPIKey() (string, error) {
	// Environment variable has highest priority
	if envKey := os.Getenv(EnvAPIKey); envKey != "" {
		return envKey, nil
	}

	if s.useKeyring {
		apiKey, err := keyring.Get(keyringService, keyringAccount)
		if err == nil && apiKey != "" {
			return apiKey, nil
		}
	}

	apiKey, err := s.getEncryptedAPIKey()
	if err == nil && apiKey != "" {
		return apiKey, nil
	}

	// Plain text config as last resort (backward compatibility)
	apiKey = s.getPlainTextAPIKey()
	if apiKey != "" {
		if err := s.SaveAPIKey(apiKey); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to migrate API key to secure storage: %v\n", err)
		}
		return apiKey, nil
	}

	return "", fmt.Errorf("API key not found. Please run 'shipdeck login'")
}

// DeleteAPIKey removes the API key from all storage locations
func (s *SecureStorage) DeleteAPIKey() error {
	var errors []string
	var removedAny bool

	if s.useKeyring {
		if err := keyring.Delete(keyringService, keyringAccount); err != nil {
			if err != keyring.ErrNotFound && !isKeyringServiceError(err) {
				errors = append(errors, fmt.Sprintf("keyring: %v", err))
			}
		} else {
			removedAny = true
		}
	}

	encryptedFile := filepath.Join(s.configDir, ".api_key.enc")
	if err := os.Remove(encryptedFile); err != nil {
		if !os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("encrypted file: %v", err))
		}
	} else {
		removedAny = true
	}

	s.removeAPIKeyFromConfig()

	configFile := filepath.Join(s.configDir, "config.yaml")
	if _, err := os.Stat(configFile); err == nil {
		removedAny = true
	}

	if len(errors) > 0 && !removedAny {
		return fmt.Errorf("failed to remove API key: %s", errors[0])
	}

	return nil
}

// isKeyringServiceError checks if the error is due to keyring service not being available
func isKeyringServiceError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return errStr == "The name is not activatable" ||
		errStr == "Cannot autolaunch D-Bus without X11 $DISPLAY" ||
		errStr == "The name org.freedesktop.secrets was not provided by any .service files"
}

// saveEncryptedAPIKey saves the API key in an encrypted file
func (s *SecureStorage) saveEncryptedAPIKey(apiKey string) error {
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	key := s.getEncryptionKey()

	encrypted, err := encrypt([]byte(apiKey), key)
	if err != nil {
		return fmt.Errorf("failed to encrypt API key: %w", err)
	}

	encryptedFile := filepath.Join(s.configDir, ".api_key.enc")
	if err := os.WriteFile(encryptedFile, []byte(encrypted), 0600); err != nil {
		return fmt.Errorf("failed to save encrypted API key: %w", err)
	}

	s.removeAPIKeyFromConfig()

	return nil
}

// getEncryptedAPIKey retrieves the API key from encrypted file
func (s *SecureStorage) getEncryptedAPIKey() (string, error) {
	encryptedFile := filepath.Join(s.configDir, ".api_key.enc")

	data, err := os.ReadFile(encryptedFile)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read encrypted API key: %w", err)
	}

	key := s.getEncryptionKey()

	decrypted, err := decrypt(string(data), key)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt API key: %w", err)
	}

	return string(decrypted), nil
}

// getEncryptionKey generates a machine-specific encryption key
func (s *SecureStorage) getEncryptionKey() []byte {
	var parts []string

	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		parts = append(parts, hostname)
	}

	if username := os.Getenv("USER"); username != "" {
		parts = append(parts, username)
	} else if username := os.Getenv("USERNAME"); username != "" {
		parts = append(parts, username)
	}

	if home, err := os.UserHomeDir(); err == nil {
		parts = append(parts, home)
	}

	if runtime.GOOS == "linux" {
		if machineID, err := os.ReadFile("/etc/machine-id"); err == nil {
			parts = append(parts, string(machineID))
		} else if machineID, err := os.ReadFile("/var/lib/dbus/machine-id"); err == nil {
			parts = append(parts, string(machineID))
		}
	}

	parts = append(parts, "Shipdeck-CLI-2025-Secure")

	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hash[:]
}

// getPlainTextAPIKey reads API key from plain text config (backward compatibility)
func (s *SecureStorage) getPlainTextAPIKey() string {
	configFile := filepath.Join(s.configDir, "config.yaml")
	data, err := os.ReadFile(configFile)
	if err != nil {
		return ""
	}

	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "api_key: ") {
			return strings.TrimSpace(line[len("api_key: "):])
		}
	}
	return ""
}

// removeAPIKeyFromConfig removes API key from plain text config
func (s *SecureStorage) removeAPIKeyFromConfig() {
	configFile := filepath.Join(s.configDir, "config.yaml")
	data, err := os.ReadFile(configFile)
	if err != nil {
		return
	}

	var newLines []string
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(line, "api_key: ") {
			newLines = append(newLines, line)
		}
	}

	if err := os.WriteFile(configFile, []byte(strings.Join(newLines, "\n")), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to update config file %s: %v\n", configFile, err)
	}
}

// isKeyringAvailable checks if system keyring is available
func isKeyringAvailable() bool {
	switch runtime.GOOS {
	case "darwin", "windows":
		return true
	case "linux":
		// Avoid desktop keyrings on headless servers, containers, WSL
		if os.Getenv("SSH_CONNECTION") != "" || os.Getenv("CONTAINER") != "" {
			return false
		}
		if _, err := os.Stat("/.dockerenv"); err == nil {
			return false
		}
		if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
			return false
		}

		hasDesktop := os.Getenv("DESKTOP_SESSION") != "" ||
			os.Getenv("GNOME_DESKTOP_SESSION_ID") != "" ||
			os.Getenv("KDE_FULL_SESSION") != "" ||
			os.Getenv("XDG_CURRENT_DESKTOP") != ""

		hasDisplay := os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""

		return hasDesktop && hasDisplay
	default:
		return false
	}
}

// encrypt encrypts data using AES-GCM
func encrypt(data []byte, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, data, nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts data using AES-GCM
func decrypt(encrypted string, key []byte) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

// SecureConfig wraps Config with secure API key handling
type SecureConfig struct {
	*Config
	storage *SecureStorage
}

// LoadSecureConfig loads config with secure API key handling
func LoadSecureConfig() (*SecureConfig, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	storage := NewSecureStorage()

	if secureKey, err := storage.GetAPIKey(); err == nil && secureKey != "" {
		config.APIKey = secureKey
	}

	return &SecureConfig{
		Config:  config,
		storage: storage,
	}, nil
}

// SaveAPIKey saves the API key securely
func (sc *SecureConfig) SaveAPIKey(apiKey string) error {
	return sc.storage.SaveAPIKey(apiKey)
}

// DeleteAPIKey removes the stored API key everywhere
func (sc *SecureConfig) DeleteAPIKey() error {
	return sc.storage.DeleteAPIKey()
}

// GetStorageInfo returns information about where the API key is stored
func (sc *SecureConfig) GetStorageInfo() map[string]interface{} {
	info := make(map[string]interface{})

	if os.Getenv(EnvAPIKey) != "" {
		info["source"] = "environment"
		info["secure"] = true
		return info
	}

	if sc.storage.useKeyring {
		if _, err := keyring.Get(keyringService, keyringAccount); err == nil {
			info["source"] = "system_keyring"
			info["secure"] = true
			info["keyring_type"] = getKeyringType()
			return info
		}
	}

	encryptedFile := filepath.Join(sc.storage.configDir, ".api_key.enc")
	if _, err := os.Stat(encryptedFile); err == nil {
		info["source"] = "encrypted_file"
		info["secure"] = true
		info["location"] = encryptedFile
		return info
	}

	if sc.storage.getPlainTextAPIKey() != "" {
		configFile := filepath.Join(sc.storage.configDir, "config.yaml")
		info["source"] = "plain_text_config"
		info["secure"] = false
		info["location"] = configFile
		info["warning"] = "API key stored in plain text. Run 'shipdeck login' to migrate to secure storage."
		return info
	}

	info["source"] = "not_found"
	info["secure"] = false
	return info
}

func getKeyringType() string {
	switch runtime.GOOS {
	case "darwin":
		return "macOS Keychain"
	case "windows":
		return "Windows Credential Manager"
	case "linux":
		if os.Getenv("GNOME_DESKTOP_SESSION_ID") != "" {
			return "GNOME Keyring"
		}
		if os.Getenv("KDE_FULL_SESSION") != "" {
			return "KWallet"
		}
		return "Linux Secret Service"
	default:
		return "Unknown"
	}
}
