package views

import (
	"context"

	"github.com/shipdeck/shipdeck-cli/internal/api/dto"
	"github.com/shipdeck/shipdeck-cli/internal/models"
)

// APIClient is the slice of the REST client the views need. Tests
// substitute a fake; the app passes the real client through.
type APIClient interface {
	ListOrders(ctx context.Context, limit, offset int) ([]models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	GetRates(ctx context.Context, orderID string) ([]models.RateQuote, error)
	ShipOrder(ctx context.Context, orderID string, req *models.ShipRequest) (*models.ShipResult, error)
	OrderAction(ctx context.Context, orderID, action string) error
	ListReturns(ctx context.Context, limit, offset int) ([]models.ReturnOrder, error)
	ReturnAction(ctx context.Context, returnID, action string) error
	ListConnections(ctx context.Context) ([]models.Connection, error)
	BulkUploadMappings(ctx context.Context, req *dto.BulkMappingRequest) (*dto.BulkMappingResponse, error)
	VerifyAuth(ctx context.Context) (*models.UserInfo, error)
}
