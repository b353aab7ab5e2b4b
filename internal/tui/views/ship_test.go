package views

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipdeck/shipdeck-cli/internal/models"
	"github.com/shipdeck/shipdeck-cli/internal/tui/cache"
)

func testQuotes() []models.RateQuote {
	return []models.RateQuote{
		{CarrierID: "dl", CarrierName: "Delhivery", Amount: 82},
		{CarrierID: "bd", CarrierName: "BlueDart", Amount: 64, Recommended: true},
	}
}

func newShipViewForTest(t *testing.T, client APIClient) *ShipView {
	t.Helper()
	c := cache.NewSessionCache()
	t.Cleanup(c.Stop)
	v := NewShipView(client, c, "ord-1")
	v.Update(ratesLoadedMsg{quotes: testQuotes()})
	return v
}

func TestShipView_RecommendedQuotePreselected(t *testing.T) {
	v := newShipViewForTest(t, &fakeClient{})
	assert.Equal(t, 1, v.quoteIdx, "cursor starts on the recommended quote")
}

func TestShipView_ForwardRequiresQuote(t *testing.T) {
	c := cache.NewSessionCache()
	t.Cleanup(c.Stop)
	v := NewShipView(&fakeClient{}, c, "ord-1")

	// No rates loaded yet: enter must not advance
	v.loading = false
	v.Update(key("enter"))
	assert.Equal(t, 1, v.controller.Step())
}

func TestShipView_FullFlow(t *testing.T) {
	var gotReq *models.ShipRequest
	client := &fakeClient{
		shipOrder: func(ctx context.Context, orderID string, req *models.ShipRequest) (*models.ShipResult, error) {
			gotReq = req
			return &models.ShipResult{OrderID: orderID, AWB: "AWB123", Carrier: "BlueDart"}, nil
		},
	}
	v := newShipViewForTest(t, client)

	// Step 1: choose the recommended quote
	v.Update(key("enter"))
	require.Equal(t, 2, v.controller.Step())

	// Step 2: confirm triggers the booking call
	_, cmd := v.Update(key("enter"))
	require.NotNil(t, cmd)
	require.True(t, v.controller.Busy())

	msg := collectMsg(t, cmd, func(m tea.Msg) bool {
		_, ok := m.(shipDoneMsg)
		return ok
	})
	done := msg.(shipDoneMsg)
	require.NoError(t, done.err)
	assert.Equal(t, "bd", gotReq.CarrierID)

	v.Update(done)
	assert.True(t, v.controller.IsTerminal())
	assert.False(t, v.controller.Busy())

	result, ok := v.controller.Data(3).(*models.ShipResult)
	require.True(t, ok)
	assert.Equal(t, "AWB123", result.AWB)
}

func TestShipView_SubmitFailureStaysOnConfirm(t *testing.T) {
	client := &fakeClient{
		shipOrder: func(ctx context.Context, orderID string, req *models.ShipRequest) (*models.ShipResult, error) {
			return nil, fmt.Errorf("courier serviceability check failed")
		},
	}
	v := newShipViewForTest(t, client)

	v.Update(key("enter"))
	_, cmd := v.Update(key("enter"))
	require.NotNil(t, cmd)

	msg := collectMsg(t, cmd, func(m tea.Msg) bool {
		_, ok := m.(shipDoneMsg)
		return ok
	})
	v.Update(msg)

	assert.Equal(t, 2, v.controller.Step(), "failure keeps the confirm step")
	assert.Contains(t, v.controller.Err(), "serviceability")

	// The chosen quote survives for retry
	quote, ok := v.controller.Data(1).(models.RateQuote)
	require.True(t, ok)
	assert.Equal(t, "bd", quote.CarrierID)
}

func TestShipView_KeysIgnoredWhileBusy(t *testing.T) {
	v := newShipViewForTest(t, &fakeClient{
		shipOrder: func(ctx context.Context, orderID string, req *models.ShipRequest) (*models.ShipResult, error) {
			return &models.ShipResult{AWB: "A"}, nil
		},
	})

	v.Update(key("enter"))
	v.Update(key("enter"))
	require.True(t, v.controller.Busy())

	// Back is refused while the booking call is out
	v.Update(key("b"))
	assert.Equal(t, 2, v.controller.Step())
}
