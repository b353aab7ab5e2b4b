package dto

import "time"

// BulkMappingRequest uploads a parsed batch of SKU mappings to one
// marketplace connection in a single call.
type BulkMappingRequest struct {
	ConnectionID string        `json:"connectionId"`
	Mappings     []MappingItem `json:"mappings"`
	DryRun       bool          `json:"dryRun,omitempty"`
}

// MappingItem is a single row of a mapping upload.
type MappingItem struct {
	SKUCode        string  `json:"skuCode"`
	MarketplaceSKU string  `json:"marketplaceSku"`
	Price          float64 `json:"price,omitempty"`
	SourceRow      int     `json:"sourceRow,omitempty"`
}

// BulkMappingResponse is the backend's per-row outcome for a batch upload.
type BulkMappingResponse struct {
	TotalRows    int        `json:"totalRows"`
	SuccessCount int        `json:"successCount"`
	ErrorCount   int        `json:"errorCount"`
	Errors       []RowError `json:"errors,omitempty"`
	CreatedAt    time.Time  `json:"createdAt,omitempty"`
}

// RowError pins a failure to the 1-based source line of the uploaded file.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}
