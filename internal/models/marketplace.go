package models

import "time"

// Connection is a configured marketplace integration (a named Amazon,
// Flipkart or Shopify account).
type Connection struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Channel    string    `json:"channel"`
	Status     string    `json:"status,omitempty"`
	LastSyncAt time.Time `json:"lastSyncAt,omitempty"`
}

// SyncResult is the backend's summary after triggering an order sync.
type SyncResult struct {
	ConnectionID string `json:"connectionId"`
	OrdersPulled int    `json:"ordersPulled"`
	OrdersFailed int    `json:"ordersFailed,omitempty"`
	Message      string `json:"message,omitempty"`
}

// UserInfo describes the authenticated tenant account.
type UserInfo struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Tenant string `json:"tenant,omitempty"`
	Plan   string `json:"plan,omitempty"`
}
