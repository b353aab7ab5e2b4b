// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shipdeck/shipdeck-cli/internal/dispatch"
	"github.com/shipdeck/shipdeck-cli/internal/models"
	"github.com/shipdeck/shipdeck-cli/internal/selection"
	"github.com/shipdeck/shipdeck-cli/internal/tui/cache"
	"github.com/shipdeck/shipdeck-cli/internal/tui/keymap"
	"github.com/shipdeck/shipdeck-cli/internal/tui/messages"
	"github.com/shipdeck/shipdeck-cli/internal/tui/styles"
	"github.com/shipdeck/shipdeck-cli/internal/workflow"
)

type ordersLoadedMsg struct {
	orders []models.Order
	err    error
}

type bulkDoneMsg struct {
	action string
	result *dispatch.BulkResult
	err    error
}

// OrdersView is the home view: a multi-select order list whose bulk
// action menu is gated by the statuses of the selected rows.
type OrdersView struct {
	client    APIClient
	cache     *cache.SessionCache
	selection *selection.Set
	inflight  *workflow.InFlight
	keys      keymap.ViewKeymap

	orders      []models.Order
	cursor      int
	loading     bool
	dispatching bool
	spinner     spinner.Model
	errMsg      string

	menuOpen     bool
	menuCursor   int
	menuActions  []workflow.ActionDescriptor
	confirmArmed bool
	pendingIDs   []string

	width  int
	height int
}

func NewOrdersView(client APIClient, sessionCache *cache.SessionCache) *OrdersView {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.ProcessingStyle

	return &OrdersView{
		client:    client,
		cache:     sessionCache,
		selection: selection.NewSet(),
		inflight:  workflow.NewInFlight(),
		// Home view: there is nothing to go back to
		keys:    keymap.NewKeymapWithDisabled(keymap.NavigationKeyBack),
		spinner: s,
		loading: true,
	}
}

func (v *OrdersView) Init() tea.Cmd {
	if orders, ok := v.cache.GetOrders(); ok {
		v.orders = orders
		v.loading = false
		return nil
	}
	return tea.Batch(v.spinner.Tick, v.fetchOrders())
}

func (v *OrdersView) fetchOrders() tea.Cmd {
	return func() tea.Msg {
		orders, err := v.client.ListOrders(context.Background(), 0, 0)
		return ordersLoadedMsg{orders: orders, err: err}
	}
}

func (v *OrdersView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case spinner.TickMsg:
		if v.loading || v.dispatching {
			var cmd tea.Cmd
			v.spinner, cmd = v.spinner.Update(msg)
			return v, cmd
		}
		return v, nil

	case ordersLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		v.errMsg = ""
		v.orders = msg.orders
		v.cache.SetOrders(msg.orders)
		// Rows that disappeared between refreshes leave the selection
		v.selection.Prune(v.orderIDs())
		if v.cursor >= len(v.orders) && len(v.orders) > 0 {
			v.cursor = len(v.orders) - 1
		}
		return v, nil

	case bulkDoneMsg:
		v.dispatching = false
		for _, id := range v.pendingIDs {
			v.inflight.End(id)
		}
		v.pendingIDs = nil
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		// Any mutation, even a partial one, leaves the cached lists stale
		v.cache.InvalidateOrders()
		v.selection.Clear()
		action, _ := workflow.OrderActionByKey(msg.action)
		result := msg.result
		return v, tea.Batch(
			func() tea.Msg {
				return messages.NavigateToResultsMsg{Title: action.Label, Result: result}
			},
			v.fetchOrders(),
		)

	case tea.KeyMsg:
		if v.menuOpen {
			return v.updateMenu(msg)
		}
		return v.updateList(msg)
	}

	return v, nil
}

func (v *OrdersView) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return v, tea.Quit

	case string(keymap.NavigationKeyQuit):
		if v.keys.IsNavigationKeyEnabled(keymap.NavigationKeyQuit) {
			return v, tea.Quit
		}

	case "j", "down":
		if v.cursor < len(v.orders)-1 {
			v.cursor++
		}

	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}

	case " ":
		if v.cursor < len(v.orders) {
			v.selection.Toggle(v.orders[v.cursor].ID)
		}

	case "a":
		v.selection.ToggleAll(v.orderIDs())

	case string(keymap.NavigationKeyRefresh):
		if v.keys.IsNavigationKeyEnabled(keymap.NavigationKeyRefresh) && !v.loading && !v.dispatching {
			v.loading = true
			v.cache.InvalidateOrders()
			return v, tea.Batch(v.spinner.Tick, v.fetchOrders())
		}

	case string(keymap.NavigationKeyImport):
		if v.keys.IsNavigationKeyEnabled(keymap.NavigationKeyImport) && !v.dispatching {
			return v, func() tea.Msg { return messages.NavigateToImportMsg{} }
		}

	case "enter":
		// Ship wizard operates on a single order
		if v.cursor < len(v.orders) {
			order := v.orders[v.cursor]
			if order.Status == models.OrderReadyToShip || order.Status == models.OrderPacked {
				id := order.ID
				return v, func() tea.Msg { return messages.NavigateToShipMsg{OrderID: id} }
			}
			v.errMsg = fmt.Sprintf("order %s is %s, not ready to ship", order.OrderNumber, order.Status)
		}

	case "x":
		if v.dispatching {
			return v, nil
		}
		actions := v.allowedActions()
		if len(actions) == 0 {
			if v.selection.Count() == 0 {
				v.errMsg = "select orders first (space to select, a for all)"
			} else {
				v.errMsg = "no common action for the selected statuses"
			}
			return v, nil
		}
		v.errMsg = ""
		v.menuOpen = true
		v.menuCursor = 0
		v.menuActions = actions
	}

	return v, nil
}

func (v *OrdersView) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "x", "q":
		v.menuOpen = false
		v.confirmArmed = false

	case "j", "down":
		if v.menuCursor < len(v.menuActions)-1 {
			v.menuCursor++
			v.confirmArmed = false
		}

	case "k", "up":
		if v.menuCursor > 0 {
			v.menuCursor--
			v.confirmArmed = false
		}

	case "enter":
		action := v.menuActions[v.menuCursor]
		if action.RequiresConfirmation && !v.confirmArmed {
			v.confirmArmed = true
			return v, nil
		}
		v.menuOpen = false
		v.confirmArmed = false
		return v, v.dispatchAction(action)
	}

	return v, nil
}

// allowedActions returns the actions every selected order's status permits
func (v *OrdersView) allowedActions() []workflow.ActionDescriptor {
	if v.selection.Count() == 0 {
		return nil
	}

	statuses := make(map[string]models.OrderStatus, len(v.orders))
	for _, o := range v.orders {
		statuses[o.ID] = o.Status
	}

	var out []workflow.ActionDescriptor
	for _, action := range workflow.OrderActions {
		ok := true
		for _, id := range v.selection.IDs() {
			if !action.Allows(statuses[id]) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, action)
		}
	}
	return out
}

func (v *OrdersView) dispatchAction(action workflow.ActionDescriptor) tea.Cmd {
	ids := v.selection.IDs()

	// Records already awaiting a response are not sent again
	var fresh []string
	for _, id := range ids {
		if v.inflight.Begin(id) {
			fresh = append(fresh, id)
		}
	}
	if len(fresh) == 0 {
		return nil
	}

	v.pendingIDs = fresh
	v.dispatching = true
	client := v.client
	key := action.Key

	return tea.Batch(v.spinner.Tick, func() tea.Msg {
		result, err := dispatch.Dispatch(context.Background(), fresh, dispatch.DefaultParallel,
			func(ctx context.Context, id string) error {
				return client.OrderAction(ctx, id, key)
			})
		return bulkDoneMsg{action: key, result: result, err: err}
	})
}

func (v *OrdersView) orderIDs() []string {
	ids := make([]string, len(v.orders))
	for i, o := range v.orders {
		ids[i] = o.ID
	}
	return ids
}

func (v *OrdersView) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Shipdeck - Orders"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(fmt.Sprintf("%s Loading orders...\n", v.spinner.View()))
	case v.dispatching:
		b.WriteString(fmt.Sprintf("%s Dispatching %d orders...\n", v.spinner.View(), v.selection.Count()))
	case len(v.orders) == 0:
		b.WriteString("No orders found. Press r to refresh.\n")
	default:
		b.WriteString(v.renderTable())
	}

	if v.menuOpen {
		b.WriteString("\n")
		b.WriteString(v.renderMenu())
	}

	if v.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(v.errMsg))
	}

	b.WriteString("\n\n")
	help := "space select · a all · x actions · enter ship · i import · r refresh · q quit"
	b.WriteString(styles.HelpStyle.Render(fmt.Sprintf("%d selected · %s", v.selection.Count(), help)))

	return b.String()
}

func (v *OrdersView) renderTable() string {
	var b strings.Builder

	header := fmt.Sprintf("    %-12s %-14s %-10s %-14s %-16s %8s", "ID", "ORDER", "CHANNEL", "STATUS", "CUSTOMER", "AMOUNT")
	b.WriteString(styles.TableHeaderStyle.Render(header))
	b.WriteString("\n")

	for i, o := range v.orders {
		check := "[ ]"
		if v.selection.IsSelected(o.ID) {
			check = styles.CheckedStyle.Render("[x]")
		}
		if v.inflight.IsBusy(o.ID) {
			check = styles.DisabledStyle.Render("[~]")
		}

		row := fmt.Sprintf("%s %-12s %-14s %-10s %-14s %-16s %8.2f",
			check, o.ID, o.OrderNumber, o.Channel,
			styles.GetStatusStyle(string(o.Status)).Render(string(o.Status)),
			o.CustomerName, o.Amount)

		if i == v.cursor {
			b.WriteString(styles.TableSelectedRowStyle.Render(row))
		} else {
			b.WriteString(styles.TableRowStyle.Render(row))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (v *OrdersView) renderMenu() string {
	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("Actions for %d selected:", v.selection.Count())))

	for i, action := range v.menuActions {
		label := action.Label
		if action.RequiresConfirmation && v.confirmArmed && i == v.menuCursor {
			label += " - press enter again to confirm"
		}
		if i == v.menuCursor {
			lines = append(lines, styles.SelectedStyle.Render("> "+label))
		} else {
			lines = append(lines, "  "+label)
		}
	}

	return styles.BorderStyle.Render(strings.Join(lines, "\n"))
}
