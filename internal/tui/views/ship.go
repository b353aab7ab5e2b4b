package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shipdeck/shipdeck-cli/internal/models"
	"github.com/shipdeck/shipdeck-cli/internal/tui/cache"
	"github.com/shipdeck/shipdeck-cli/internal/tui/messages"
	"github.com/shipdeck/shipdeck-cli/internal/tui/styles"
	"github.com/shipdeck/shipdeck-cli/internal/wizard"
)

type ratesLoadedMsg struct {
	quotes []models.RateQuote
	err    error
}

type shipDoneMsg struct {
	result *models.ShipResult
	err    error
}

// ShipView walks one order through rate selection, confirmation and
// booking. The wizard controller guards the transitions; this view only
// renders and translates keys.
type ShipView struct {
	client  APIClient
	cache   *cache.SessionCache
	orderID string

	controller *wizard.Controller
	quotes     []models.RateQuote
	quoteIdx   int
	loading    bool
	spinner    spinner.Model
	errMsg     string

	width  int
	height int
}

func NewShipView(client APIClient, sessionCache *cache.SessionCache, orderID string) *ShipView {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.ProcessingStyle

	controller, _ := wizard.New([]wizard.StepDefinition{
		{Name: "Courier", Validate: func(data any) error {
			if _, ok := data.(models.RateQuote); !ok {
				return fmt.Errorf("pick a courier quote first")
			}
			return nil
		}},
		{Name: "Confirm"},
		{Name: "Done"},
	})

	return &ShipView{
		client:     client,
		cache:      sessionCache,
		orderID:    orderID,
		controller: controller,
		spinner:    s,
		loading:    true,
	}
}

func (v *ShipView) Init() tea.Cmd {
	return tea.Batch(v.spinner.Tick, v.fetchRates())
}

func (v *ShipView) fetchRates() tea.Cmd {
	return func() tea.Msg {
		quotes, err := v.client.GetRates(context.Background(), v.orderID)
		return ratesLoadedMsg{quotes: quotes, err: err}
	}
}

func (v *ShipView) submit() tea.Cmd {
	quote, _ := v.controller.Data(1).(models.RateQuote)
	client := v.client
	orderID := v.orderID

	return tea.Batch(v.spinner.Tick, func() tea.Msg {
		result, err := client.ShipOrder(context.Background(), orderID, &models.ShipRequest{
			CarrierID:   quote.CarrierID,
			ServiceType: quote.ServiceType,
		})
		return shipDoneMsg{result: result, err: err}
	})
}

func (v *ShipView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case spinner.TickMsg:
		if v.loading || v.controller.Busy() {
			var cmd tea.Cmd
			v.spinner, cmd = v.spinner.Update(msg)
			return v, cmd
		}
		return v, nil

	case ratesLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		if len(msg.quotes) == 0 {
			v.errMsg = "no courier rates available for this order"
			return v, nil
		}
		v.quotes = msg.quotes
		v.quoteIdx = 0
		for i, q := range msg.quotes {
			if q.Recommended {
				v.quoteIdx = i
				break
			}
		}
		return v, nil

	case shipDoneMsg:
		v.controller.FinishSubmit(msg.result, msg.err)
		if msg.err == nil {
			v.cache.InvalidateOrders()
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *ShipView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.controller.Busy() {
		// Only quit is honored while the booking call is out
		if msg.String() == "ctrl+c" {
			return v, tea.Quit
		}
		return v, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return v, tea.Quit

	case "q", "esc":
		if v.controller.IsTerminal() {
			return v, func() tea.Msg { return messages.NavigateToOrdersMsg{} }
		}
		return v, func() tea.Msg { return messages.NavigateBackMsg{} }

	case "j", "down":
		if v.controller.Step() == 1 && v.quoteIdx < len(v.quotes)-1 {
			v.quoteIdx++
		}

	case "k", "up":
		if v.controller.Step() == 1 && v.quoteIdx > 0 {
			v.quoteIdx--
		}

	case "b", "left":
		if err := v.controller.Back(); err == nil {
			v.errMsg = ""
		}

	case "enter":
		switch {
		case v.controller.Step() == 1:
			if len(v.quotes) == 0 {
				return v, nil
			}
			v.controller.SetData(v.quotes[v.quoteIdx])
			if err := v.controller.Next(); err != nil {
				v.errMsg = err.Error()
			} else {
				v.errMsg = ""
			}

		case v.controller.Step() == 2:
			if err := v.controller.BeginSubmit(); err != nil {
				v.errMsg = err.Error()
				return v, nil
			}
			v.errMsg = ""
			return v, v.submit()

		case v.controller.IsTerminal():
			return v, func() tea.Msg { return messages.NavigateToOrdersMsg{} }
		}
	}

	return v, nil
}

func (v *ShipView) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("Ship Order %s", v.orderID)))
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render(fmt.Sprintf("Step %d/3: %s", v.controller.Step(), v.controller.StepName())))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(fmt.Sprintf("%s Fetching courier rates...\n", v.spinner.View()))
	case v.controller.Busy():
		b.WriteString(fmt.Sprintf("%s Booking shipment...\n", v.spinner.View()))
	case v.controller.Step() == 1:
		b.WriteString(v.renderQuotes())
	case v.controller.Step() == 2:
		b.WriteString(v.renderConfirm())
	case v.controller.IsTerminal():
		b.WriteString(v.renderResult())
	}

	if v.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(v.errMsg))
	}
	if submitErr := v.controller.Err(); submitErr != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(submitErr))
	}

	b.WriteString("\n\n")
	switch {
	case v.controller.IsTerminal():
		b.WriteString(styles.HelpStyle.Render("enter/q back to orders"))
	case v.controller.Step() == 2:
		b.WriteString(styles.HelpStyle.Render("enter book · b back · esc cancel"))
	default:
		b.WriteString(styles.HelpStyle.Render("j/k choose · enter next · esc cancel"))
	}

	return b.String()
}

func (v *ShipView) renderQuotes() string {
	if len(v.quotes) == 0 {
		return "No rates.\n"
	}

	var b strings.Builder
	b.WriteString("Choose a courier:\n\n")
	for i, q := range v.quotes {
		line := fmt.Sprintf("%-16s %-10s %8.2f", q.CarrierName, q.ServiceType, q.Amount)
		if q.ETADays > 0 {
			line += fmt.Sprintf("  ~%dd", q.ETADays)
		}
		if q.Recommended {
			line += "  " + styles.SuccessStyle.Render("recommended")
		}
		if i == v.quoteIdx {
			b.WriteString(styles.SelectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (v *ShipView) renderConfirm() string {
	quote, _ := v.controller.Data(1).(models.RateQuote)

	var b strings.Builder
	b.WriteString("Review and confirm:\n\n")
	b.WriteString(fmt.Sprintf("  Order:   %s\n", v.orderID))
	b.WriteString(fmt.Sprintf("  Courier: %s (%s)\n", quote.CarrierName, quote.ServiceType))
	b.WriteString(fmt.Sprintf("  Charge:  %.2f\n", quote.Amount))
	return b.String()
}

func (v *ShipView) renderResult() string {
	result, ok := v.controller.Data(v.controller.Step()).(*models.ShipResult)
	if !ok || result == nil {
		return styles.SuccessStyle.Render("✓ Shipment booked") + "\n"
	}

	var b strings.Builder
	b.WriteString(styles.SuccessStyle.Render("✓ Shipment booked"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  AWB:     %s\n", result.AWB))
	b.WriteString(fmt.Sprintf("  Carrier: %s\n", result.Carrier))
	if result.LabelURL != "" {
		b.WriteString(fmt.Sprintf("  Label:   %s\n", result.LabelURL))
	}
	return b.String()
}
