package models

import "time"

// SKUMapping links an internal SKU to a marketplace listing on one connection.
type SKUMapping struct {
	ID             string    `json:"id,omitempty"`
	ConnectionID   string    `json:"connectionId"`
	SKUCode        string    `json:"skuCode"`
	MarketplaceSKU string    `json:"marketplaceSku"`
	Price          float64   `json:"price,omitempty"`
	SyncStatus     string    `json:"syncStatus,omitempty"`
	LastSyncedAt   time.Time `json:"lastSyncedAt,omitempty"`
}
