package api

import (
	"context"
	"fmt"
	"io"

	"github.com/shipdeck/shipdeck-cli/internal/models"
)

// ListOrders fetches a page of orders.
func (c *Client) ListOrders(ctx context.Context, limit, offset int) ([]models.Order, error) {
	return getList[models.Order](ctx, c, OrdersListURL(limit, offset))
}

// GetOrder fetches one order by id.
func (c *Client) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	if id == "" {
		return nil, fmt.Errorf("order ID cannot be empty")
	}

	resp, err := c.doRequestWithRetry(ctx, "GET", OrderDetailsURL(id), nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := ValidateResponseOK(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return DecodeObject[models.Order](body)
}

// GetRates fetches carrier rate quotes for shipping one order. The call is
// a POST on the backend (it runs the rate calculator) but carries no
// mutation, so it is safe to issue once per wizard open.
func (c *Client) GetRates(ctx context.Context, orderID string) ([]models.RateQuote, error) {
	if orderID == "" {
		return nil, fmt.Errorf("order ID cannot be empty")
	}

	resp, err := c.doRequest(ctx, "POST", OrderRatesURL(orderID), nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := ValidateResponseOK(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return DecodeList[models.RateQuote](body)
}

// ShipOrder books a shipment for an order with the chosen carrier quote.
func (c *Client) ShipOrder(ctx context.Context, orderID string, req *models.ShipRequest) (*models.ShipResult, error) {
	if orderID == "" {
		return nil, fmt.Errorf("order ID cannot be empty")
	}
	return postAction[models.ShipResult](ctx, c, OrderShipURL(orderID), req)
}

// OrderAction issues one per-order bulk action (cancel, mark-ready,
// reattempt, mark-rto). The backend's rejection, if any, comes back as a
// typed error for the dispatcher to record.
func (c *Client) OrderAction(ctx context.Context, orderID, action string) error {
	if orderID == "" {
		return fmt.Errorf("order ID cannot be empty")
	}

	resp, err := c.doRequest(ctx, "POST", OrderActionURL(orderID, action), nil)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	return ValidateResponseOKOrCreated(resp)
}
