// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package keymap

// NavigationKey represents a navigation key that can be enabled/disabled per view
type NavigationKey string

const (
	// NavigationKeyBack represents the 'b' key for back navigation
	NavigationKeyBack NavigationKey = "b"
	// NavigationKeyImport represents the 'i' key for the mapping import view
	NavigationKeyImport NavigationKey = "i"
	// NavigationKeyRefresh represents the 'r' key for refreshing
	NavigationKeyRefresh NavigationKey = "r"
	// NavigationKeyHelp represents the '?' key for help
	NavigationKeyHelp NavigationKey = "?"
	// NavigationKeyQuit represents the 'q' key for quitting
	NavigationKeyQuit NavigationKey = "q"
)

// ViewKeymap defines which navigation keys are available for a view
type ViewKeymap interface {
	IsNavigationKeyEnabled(key NavigationKey) bool
}

// DefaultKeymap provides default key mappings that most views can use
type DefaultKeymap struct {
	enabledKeys map[NavigationKey]bool
}

// NewDefaultKeymap creates a keymap with all navigation keys enabled by default
func NewDefaultKeymap() *DefaultKeymap {
	return &DefaultKeymap{
		enabledKeys: map[NavigationKey]bool{
			NavigationKeyBack:    true,
			NavigationKeyImport:  true,
			NavigationKeyRefresh: true,
			NavigationKeyHelp:    true,
			NavigationKeyQuit:    true,
		},
	}
}

// NewKeymapWithDisabled creates a keymap with specified keys disabled
func NewKeymapWithDisabled(disabledKeys ...NavigationKey) *DefaultKeymap {
	keymap := NewDefaultKeymap()
	for _, key := range disabledKeys {
		keymap.enabledKeys[key] = false
	}
	return keymap
}

// IsNavigationKeyEnabled implements ViewKeymap interface
func (k *DefaultKeymap) IsNavigationKeyEnabled(key NavigationKey) bool {
	enabled, exists := k.enabledKeys[key]
	return exists && enabled
}
