package api

import (
	"context"
	"fmt"

	"github.com/shipdeck/shipdeck-cli/internal/api/dto"
	"github.com/shipdeck/shipdeck-cli/internal/models"
)

// ListMappings fetches the SKU mappings for one connection.
func (c *Client) ListMappings(ctx context.Context, connectionID string) ([]models.SKUMapping, error) {
	if connectionID == "" {
		return nil, fmt.Errorf("connection ID cannot be empty")
	}
	return getList[models.SKUMapping](ctx, c, fmt.Sprintf("%s?connectionId=%s", EndpointMappings, connectionID))
}

// BulkUploadMappings submits a parsed mapping batch in a single call. The
// backend reports per-row outcomes, which map straight into the same bulk
// result shape the per-item dispatcher produces.
func (c *Client) BulkUploadMappings(ctx context.Context, req *dto.BulkMappingRequest) (*dto.BulkMappingResponse, error) {
	if req == nil || len(req.Mappings) == 0 {
		return nil, fmt.Errorf("mapping batch cannot be empty")
	}
	if req.ConnectionID == "" {
		return nil, fmt.Errorf("connection ID cannot be empty")
	}
	return postAction[dto.BulkMappingResponse](ctx, c, EndpointMappingsBulk, req)
}
