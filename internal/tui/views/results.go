package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shipdeck/shipdeck-cli/internal/dispatch"
	"github.com/shipdeck/shipdeck-cli/internal/tui/messages"
	"github.com/shipdeck/shipdeck-cli/internal/tui/styles"
)

// ResultsView shows a finished batch: the summary line plus the failed
// records with the backend's reasons verbatim.
type ResultsView struct {
	title  string
	result *dispatch.BulkResult

	showFailures bool
	cursor       int
	width        int
	height       int
}

func NewResultsView(title string, result *dispatch.BulkResult) *ResultsView {
	return &ResultsView{
		title:        title,
		result:       result,
		showFailures: result != nil && result.Failed > 0,
	}
}

func (v *ResultsView) Init() tea.Cmd {
	return nil
}

func (v *ResultsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return v, tea.Quit
		case "q", "esc", "enter":
			return v, func() tea.Msg { return messages.NavigateBackMsg{} }
		case "tab":
			v.showFailures = !v.showFailures
			v.cursor = 0
		case "j", "down":
			if v.showFailures && v.cursor < len(v.result.Failures)-1 {
				v.cursor++
			}
		case "k", "up":
			if v.cursor > 0 {
				v.cursor--
			}
		}
	}
	return v, nil
}

func (v *ResultsView) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(v.title))
	b.WriteString("\n\n")

	if v.result == nil {
		b.WriteString("No result.\n")
		return b.String()
	}

	r := v.result
	switch {
	case r.Failed == 0:
		b.WriteString(styles.SuccessStyle.Render(
			fmt.Sprintf("✓ All %d records processed", r.Succeeded)))
	case r.Succeeded == 0:
		b.WriteString(styles.ErrorStyle.Render(
			fmt.Sprintf("✗ All %d records failed", r.Failed)))
	default:
		b.WriteString(styles.WarningStyle.Render(
			fmt.Sprintf("⚠ Partial success: %d succeeded, %d failed", r.Succeeded, r.Failed)))
	}
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render(fmt.Sprintf("Batch %s", r.BatchID)))
	b.WriteString("\n\n")

	if v.showFailures && len(r.Failures) > 0 {
		b.WriteString(styles.TableHeaderStyle.Render("Failed records"))
		b.WriteString("\n")
		for i, f := range r.Failures {
			line := fmt.Sprintf("✗ %s: %s", f.RecordID, f.Reason)
			if i == v.cursor {
				b.WriteString(styles.TableSelectedRowStyle.Render(line))
			} else {
				b.WriteString(styles.TableRowStyle.Render(styles.ErrorStyle.Render(line)))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("tab failures · enter/esc back"))
	return b.String()
}
