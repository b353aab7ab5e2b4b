package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shipdeck/shipdeck-cli/internal/tui/keymap"
	"github.com/shipdeck/shipdeck-cli/internal/tui/messages"
	"github.com/shipdeck/shipdeck-cli/internal/tui/styles"
)

// ErrorView is a terminal error screen for failures no view can recover from.
type ErrorView struct {
	err         error
	message     string
	recoverable bool
	keys        keymap.ViewKeymap
}

func NewErrorView(err error, message string, recoverable bool) *ErrorView {
	keys := keymap.ViewKeymap(keymap.NewDefaultKeymap())
	if !recoverable {
		keys = keymap.NewKeymapWithDisabled(keymap.NavigationKeyBack)
	}
	return &ErrorView{err: err, message: message, recoverable: recoverable, keys: keys}
}

func (v *ErrorView) Init() tea.Cmd {
	return nil
}

func (v *ErrorView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "q", "ctrl+c":
			return v, tea.Quit
		case "esc", "enter", string(keymap.NavigationKeyBack):
			if v.keys.IsNavigationKeyEnabled(keymap.NavigationKeyBack) {
				return v, func() tea.Msg { return messages.NavigateBackMsg{} }
			}
			return v, tea.Quit
		}
	}
	return v, nil
}

func (v *ErrorView) View() string {
	var b strings.Builder

	b.WriteString(styles.ErrorStyle.Render("Error"))
	b.WriteString("\n\n")
	if v.message != "" {
		b.WriteString(v.message)
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString(v.err.Error())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.recoverable {
		b.WriteString(styles.HelpStyle.Render("enter go back · q quit"))
	} else {
		b.WriteString(styles.HelpStyle.Render("q quit"))
	}
	return b.String()
}
