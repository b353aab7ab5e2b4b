package messages

import "github.com/shipdeck/shipdeck-cli/internal/dispatch"

// NavigationMsg is the base interface for all navigation messages
type NavigationMsg interface {
	IsNavigation() bool
}

// NavigateToOrdersMsg requests navigation to the order list view
type NavigateToOrdersMsg struct {
	SelectedIndex int // Optional: restore cursor position
}

// NavigateToShipMsg requests navigation to the ship wizard for one order
type NavigateToShipMsg struct {
	OrderID string
}

// NavigateToImportMsg requests navigation to the mapping import view
type NavigateToImportMsg struct {
	FilePath string // Optional: pre-selected file
}

// NavigateToResultsMsg requests navigation to the bulk results view
type NavigateToResultsMsg struct {
	Title  string
	Result *dispatch.BulkResult
}

// NavigateBackMsg requests navigation to the previous view in the stack
type NavigateBackMsg struct{}

// NavigateToErrorMsg requests navigation to an error view
type NavigateToErrorMsg struct {
	Error       error
	Message     string
	Recoverable bool // Can user go back?
}

// Implement NavigationMsg interface for all messages
func (NavigateToOrdersMsg) IsNavigation() bool  { return true }
func (NavigateToShipMsg) IsNavigation() bool    { return true }
func (NavigateToImportMsg) IsNavigation() bool  { return true }
func (NavigateToResultsMsg) IsNavigation() bool { return true }
func (NavigateBackMsg) IsNavigation() bool      { return true }
func (NavigateToErrorMsg) IsNavigation() bool   { return true }
