package api

import (
	"context"
	"fmt"

	"github.com/shipdeck/shipdeck-cli/internal/models"
)

// ListConnections fetches the configured marketplace connections.
func (c *Client) ListConnections(ctx context.Context) ([]models.Connection, error) {
	return getList[models.Connection](ctx, c, EndpointConnections)
}

// SyncOrders triggers an order pull for one marketplace connection and
// returns the backend's summary. The sync itself runs server-side; this
// call only kicks it off.
func (c *Client) SyncOrders(ctx context.Context, connectionID string) (*models.SyncResult, error) {
	if connectionID == "" {
		return nil, fmt.Errorf("connection ID cannot be empty")
	}
	return postAction[models.SyncResult](ctx, c, ConnectionSyncURL(connectionID), nil)
}
