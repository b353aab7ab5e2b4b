// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shipdeck/shipdeck-cli/internal/tui/cache"
	"github.com/shipdeck/shipdeck-cli/internal/tui/messages"
	"github.com/shipdeck/shipdeck-cli/internal/tui/views"
)

// App is the root bubbletea model. It owns the view stack and routes
// navigation messages; everything else is delegated to the current view.
type App struct {
	client    APIClient
	cache     *cache.SessionCache
	viewStack []tea.Model
	current   tea.Model
	width     int
	height    int
}

func NewApp(client APIClient) *App {
	sessionCache := cache.NewSessionCache()
	if err := sessionCache.LoadFromDisk(); err != nil {
		// A corrupt snapshot is not fatal; start cold
		sessionCache.InvalidateAll()
	}

	return &App{
		client: client,
		cache:  sessionCache,
	}
}

// Run starts the TUI event loop
func (a *App) Run() error {
	defer func() {
		_ = a.cache.SaveToDisk()
		a.cache.Stop()
	}()

	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	a.current = views.NewOrdersView(a.client, a.cache)
	return a.current.Init()
}

// Update implements tea.Model - handles navigation and delegates to the current view
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if navMsg, ok := msg.(messages.NavigationMsg); ok {
		return a.handleNavigation(navMsg)
	}

	if wsMsg, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = wsMsg.Width
		a.height = wsMsg.Height
	}

	newModel, cmd := a.current.Update(msg)
	if newModel != a.current {
		a.current = newModel
	}
	return a, cmd
}

// View implements tea.Model
func (a *App) View() string {
	if a.current == nil {
		return "Loading..."
	}
	return a.current.View()
}

// handleNavigation processes navigation messages and manages view transitions
func (a *App) handleNavigation(msg messages.NavigationMsg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.NavigateToOrdersMsg:
		// Orders is home; clear the stack
		a.viewStack = nil
		a.current = views.NewOrdersView(a.client, a.cache)
		return a, a.pushInit()

	case messages.NavigateToShipMsg:
		a.viewStack = append(a.viewStack, a.current)
		a.current = views.NewShipView(a.client, a.cache, msg.OrderID)
		return a, a.pushInit()

	case messages.NavigateToImportMsg:
		a.viewStack = append(a.viewStack, a.current)
		a.current = views.NewImportView(a.client, msg.FilePath)
		return a, a.pushInit()

	case messages.NavigateToResultsMsg:
		a.viewStack = append(a.viewStack, a.current)
		a.current = views.NewResultsView(msg.Title, msg.Result)
		return a, a.pushInit()

	case messages.NavigateToErrorMsg:
		a.viewStack = append(a.viewStack, a.current)
		a.current = views.NewErrorView(msg.Error, msg.Message, msg.Recoverable)
		return a, a.pushInit()

	case messages.NavigateBackMsg:
		if len(a.viewStack) > 0 {
			a.current = a.viewStack[len(a.viewStack)-1]
			a.viewStack = a.viewStack[:len(a.viewStack)-1]
			return a, a.pushInit()
		}
		// No history - go home
		return a.handleNavigation(messages.NavigateToOrdersMsg{})
	}

	return a, nil
}

// pushInit initializes the current view and replays the window size so the
// new view can lay itself out immediately.
func (a *App) pushInit() tea.Cmd {
	cmds := []tea.Cmd{a.current.Init()}
	if a.width > 0 && a.height > 0 {
		width, height := a.width, a.height
		cmds = append(cmds, func() tea.Msg {
			return tea.WindowSizeMsg{Width: width, Height: height}
		})
	}
	return tea.Batch(cmds...)
}
