package api

import "fmt"

// API endpoint constants
const (
	// EndpointOrders is the base endpoint for order operations
	EndpointOrders = "/api/v1/orders"

	// EndpointReturns is the base endpoint for return operations
	EndpointReturns = "/api/v1/returns"

	// EndpointConnections lists configured marketplace connections
	EndpointConnections = "/api/v1/marketplaces"

	// EndpointMappings is the base endpoint for SKU mappings
	EndpointMappings = "/api/v1/sku-mappings"

	// EndpointMappingsBulk accepts a batch mapping upload in one call
	EndpointMappingsBulk = "/api/v1/sku-mappings/bulk"

	// EndpointAuthVerify is the endpoint for verifying authentication
	EndpointAuthVerify = "/api/v1/auth/verify"
)

// OrdersListURL builds the URL for listing orders with pagination
func OrdersListURL(limit, offset int) string {
	return fmt.Sprintf("%s?limit=%d&offset=%d", EndpointOrders, limit, offset)
}

// OrderDetailsURL builds the URL for one order
func OrderDetailsURL(id string) string {
	return fmt.Sprintf("%s/%s", EndpointOrders, id)
}

// OrderRatesURL builds the URL for fetching carrier rate quotes
func OrderRatesURL(id string) string {
	return fmt.Sprintf("%s/%s/rates", EndpointOrders, id)
}

// OrderShipURL builds the URL for booking a shipment
func OrderShipURL(id string) string {
	return fmt.Sprintf("%s/%s/ship", EndpointOrders, id)
}

// OrderActionURL builds the URL for a per-order action (cancel,
// mark-ready, reattempt, mark-rto)
func OrderActionURL(id, action string) string {
	return fmt.Sprintf("%s/%s/%s", EndpointOrders, id, action)
}

// ReturnsListURL builds the URL for listing returns with pagination
func ReturnsListURL(limit, offset int) string {
	return fmt.Sprintf("%s?limit=%d&offset=%d", EndpointReturns, limit, offset)
}

// ReturnActionURL builds the URL for a per-return action (receive, qc,
// process-refund, complete)
func ReturnActionURL(id, action string) string {
	return fmt.Sprintf("%s/%s/%s", EndpointReturns, id, action)
}

// ConnectionSyncURL builds the URL for triggering an order sync
func ConnectionSyncURL(id string) string {
	return fmt.Sprintf("%s/%s/sync-orders", EndpointConnections, id)
}
