package api

import (
	"context"
	"fmt"

	"github.com/shipdeck/shipdeck-cli/internal/models"
)

// ListReturns fetches a page of marketplace returns.
func (c *Client) ListReturns(ctx context.Context, limit, offset int) ([]models.ReturnOrder, error) {
	return getList[models.ReturnOrder](ctx, c, ReturnsListURL(limit, offset))
}

// ReturnAction advances one return through its workflow (receive, qc,
// process-refund, complete). The action key must come from the workflow
// resolver; the backend re-validates the transition regardless.
func (c *Client) ReturnAction(ctx context.Context, returnID, action string) error {
	if returnID == "" {
		return fmt.Errorf("return ID cannot be empty")
	}

	resp, err := c.doRequest(ctx, "POST", ReturnActionURL(returnID, action), nil)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	return ValidateResponseOKOrCreated(resp)
}
