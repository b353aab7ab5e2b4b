package views

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipdeck/shipdeck-cli/internal/api/dto"
	"github.com/shipdeck/shipdeck-cli/internal/models"
	"github.com/shipdeck/shipdeck-cli/internal/tui/cache"
	"github.com/shipdeck/shipdeck-cli/internal/tui/messages"
)

// fakeClient implements APIClient with function fields so each test only
// wires what it exercises.
type fakeClient struct {
	listOrders  func(ctx context.Context, limit, offset int) ([]models.Order, error)
	orderAction func(ctx context.Context, orderID, action string) error
	getRates    func(ctx context.Context, orderID string) ([]models.RateQuote, error)
	shipOrder   func(ctx context.Context, orderID string, req *models.ShipRequest) (*models.ShipResult, error)
	listConns   func(ctx context.Context) ([]models.Connection, error)
	bulkUpload  func(ctx context.Context, req *dto.BulkMappingRequest) (*dto.BulkMappingResponse, error)
}

func (f *fakeClient) ListOrders(ctx context.Context, limit, offset int) ([]models.Order, error) {
	if f.listOrders != nil {
		return f.listOrders(ctx, limit, offset)
	}
	return nil, nil
}

func (f *fakeClient) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return nil, fmt.Errorf("not wired")
}

func (f *fakeClient) GetRates(ctx context.Context, orderID string) ([]models.RateQuote, error) {
	if f.getRates != nil {
		return f.getRates(ctx, orderID)
	}
	return nil, nil
}

func (f *fakeClient) ShipOrder(ctx context.Context, orderID string, req *models.ShipRequest) (*models.ShipResult, error) {
	if f.shipOrder != nil {
		return f.shipOrder(ctx, orderID, req)
	}
	return nil, fmt.Errorf("not wired")
}

func (f *fakeClient) OrderAction(ctx context.Context, orderID, action string) error {
	if f.orderAction != nil {
		return f.orderAction(ctx, orderID, action)
	}
	return nil
}

func (f *fakeClient) ListReturns(ctx context.Context, limit, offset int) ([]models.ReturnOrder, error) {
	return nil, nil
}

func (f *fakeClient) ReturnAction(ctx context.Context, returnID, action string) error {
	return nil
}

func (f *fakeClient) ListConnections(ctx context.Context) ([]models.Connection, error) {
	if f.listConns != nil {
		return f.listConns(ctx)
	}
	return nil, nil
}

func (f *fakeClient) BulkUploadMappings(ctx context.Context, req *dto.BulkMappingRequest) (*dto.BulkMappingResponse, error) {
	if f.bulkUpload != nil {
		return f.bulkUpload(ctx, req)
	}
	return nil, fmt.Errorf("not wired")
}

func (f *fakeClient) VerifyAuth(ctx context.Context) (*models.UserInfo, error) {
	return &models.UserInfo{Email: "ops@example.com"}, nil
}

func testOrders() []models.Order {
	return []models.Order{
		{ID: "ord-1", OrderNumber: "SO-1001", Status: models.OrderPending},
		{ID: "ord-2", OrderNumber: "SO-1002", Status: models.OrderConfirmed},
		{ID: "ord-3", OrderNumber: "SO-1003", Status: models.OrderNDR},
	}
}

func loadedOrdersView(t *testing.T, orders []models.Order) (*OrdersView, *cache.SessionCache) {
	t.Helper()
	c := cache.NewSessionCache()
	t.Cleanup(c.Stop)

	v := NewOrdersView(&fakeClient{}, c)
	model, _ := v.Update(ordersLoadedMsg{orders: orders})
	view, ok := model.(*OrdersView)
	require.True(t, ok)
	return view, c
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestOrdersView_ToggleSelection(t *testing.T) {
	v, _ := loadedOrdersView(t, testOrders())

	v.Update(key(" "))
	assert.Equal(t, 1, v.selection.Count())
	assert.True(t, v.selection.IsSelected("ord-1"))

	// Toggling the same row again deselects it
	v.Update(key(" "))
	assert.Equal(t, 0, v.selection.Count())
}

func TestOrdersView_ToggleAll(t *testing.T) {
	v, _ := loadedOrdersView(t, testOrders())

	v.Update(key("a"))
	assert.Equal(t, 3, v.selection.Count())

	// Full selection toggles back to empty
	v.Update(key("a"))
	assert.Equal(t, 0, v.selection.Count())

	// Partial selection snaps to all, not empty
	v.Update(key(" "))
	v.Update(key("a"))
	assert.Equal(t, 3, v.selection.Count())
}

func TestOrdersView_ActionMenuGatedByStatus(t *testing.T) {
	v, _ := loadedOrdersView(t, testOrders())

	// ord-1 PENDING: cancel only
	v.Update(key(" "))
	actions := v.allowedActions()
	require.Len(t, actions, 1)
	assert.Equal(t, "cancel", actions[0].Key)

	// Adding ord-3 (NDR) leaves no action common to both
	v.cursor = 2
	v.Update(key(" "))
	assert.Empty(t, v.allowedActions())
}

func TestOrdersView_MenuRequiresSelection(t *testing.T) {
	v, _ := loadedOrdersView(t, testOrders())

	v.Update(key("x"))
	assert.False(t, v.menuOpen)
	assert.Contains(t, v.errMsg, "select orders first")
}

func TestOrdersView_RefreshPrunesSelection(t *testing.T) {
	v, _ := loadedOrdersView(t, testOrders())

	v.Update(key("a"))
	require.Equal(t, 3, v.selection.Count())

	// ord-3 disappears between refreshes
	v.Update(ordersLoadedMsg{orders: testOrders()[:2]})
	assert.Equal(t, 2, v.selection.Count())
	assert.False(t, v.selection.IsSelected("ord-3"))
}

func TestOrdersView_BulkDoneNavigatesToResults(t *testing.T) {
	orders := testOrders()
	calls := make(chan string, 10)
	client := &fakeClient{
		orderAction: func(ctx context.Context, orderID, action string) error {
			calls <- orderID
			if orderID == "ord-2" {
				return fmt.Errorf("order already cancelled")
			}
			return nil
		},
	}

	c := cache.NewSessionCache()
	t.Cleanup(c.Stop)
	v := NewOrdersView(client, c)
	v.Update(ordersLoadedMsg{orders: orders})

	// Select ord-1 and ord-2, open menu, pick cancel (needs arming)
	v.Update(key(" "))
	v.cursor = 1
	v.Update(key(" "))
	model, _ := v.Update(key("x"))
	view := model.(*OrdersView)
	require.True(t, view.menuOpen)

	_, cmd := view.Update(key("enter")) // arm confirmation
	require.Nil(t, cmd)
	_, cmd = view.Update(key("enter")) // dispatch
	require.NotNil(t, cmd)

	// Drain the batched command to find the dispatch outcome
	msg := collectMsg(t, cmd, func(m tea.Msg) bool {
		_, ok := m.(bulkDoneMsg)
		return ok
	})
	done := msg.(bulkDoneMsg)
	require.NoError(t, done.err)
	assert.Equal(t, 2, done.result.TotalAttempted)
	assert.Equal(t, 1, done.result.Succeeded)
	assert.Equal(t, 1, done.result.Failed)
	require.Len(t, done.result.Failures, 1)
	assert.Equal(t, "ord-2", done.result.Failures[0].RecordID)
	assert.Equal(t, "order already cancelled", done.result.Failures[0].Reason)

	// Feeding the outcome back navigates to the results view
	_, cmd = view.Update(done)
	require.NotNil(t, cmd)
	nav := collectMsg(t, cmd, func(m tea.Msg) bool {
		_, ok := m.(messages.NavigateToResultsMsg)
		return ok
	})
	results := nav.(messages.NavigateToResultsMsg)
	assert.Equal(t, done.result, results.Result)
}

// collectMsg runs a command tree and returns the first message matching want
func collectMsg(t *testing.T, cmd tea.Cmd, want func(tea.Msg) bool) tea.Msg {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				queue = append(queue, c)
			}
			continue
		}
		if want(msg) {
			return msg
		}
	}
	t.Fatal("expected message not produced")
	return nil
}
