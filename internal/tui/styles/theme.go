package styles

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	BaseStyle = lipgloss.NewStyle()

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("63")).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Background(lipgloss.Color("235"))

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("63"))

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")).
			Bold(true)

	ProcessingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	TableRowStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TableSelectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("63")).
				Padding(0, 1)

	CheckedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	DisabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// GetStatusStyle maps a record status to its display style
func GetStatusStyle(status string) lipgloss.Style {
	switch status {
	case "DELIVERED", "QC_PASSED", "COMPLETED", "REFUND_PROCESSED":
		return SuccessStyle
	case "NDR", "RTO", "QC_FAILED", "CANCELLED", "REJECTED":
		return ErrorStyle
	case "PENDING", "QC_PENDING", "INITIATED":
		return WarningStyle
	case "SHIPPED", "IN_TRANSIT", "READY_TO_SHIP":
		return ProcessingStyle
	default:
		return BaseStyle
	}
}
