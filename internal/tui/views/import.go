package views

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shipdeck/shipdeck-cli/internal/api/dto"
	"github.com/shipdeck/shipdeck-cli/internal/dispatch"
	"github.com/shipdeck/shipdeck-cli/internal/importer"
	"github.com/shipdeck/shipdeck-cli/internal/models"
	"github.com/shipdeck/shipdeck-cli/internal/tui/messages"
	"github.com/shipdeck/shipdeck-cli/internal/tui/styles"
)

type connectionsLoadedMsg struct {
	conns []models.Connection
	err   error
}

type uploadDoneMsg struct {
	resp *dto.BulkMappingResponse
	err  error
}

// ImportView drives the CSV mapping import: pick a file, preview the
// parsed rows against a connection, upload, inspect per-row outcomes.
// All flow state lives in the importer session; this view renders it.
type ImportView struct {
	client  APIClient
	session *importer.Session

	fileInput textinput.Model
	preview   string

	conns     []models.Connection
	connIdx   int
	uploading bool
	spinner   spinner.Model
	errMsg    string

	width  int
	height int
}

func NewImportView(client APIClient, filePath string) *ImportView {
	ti := textinput.New()
	ti.Placeholder = "path/to/mappings.csv"
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 48
	if filePath != "" {
		ti.SetValue(filePath)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.ProcessingStyle

	return &ImportView{
		client:    client,
		session:   importer.NewSession(),
		fileInput: ti,
		spinner:   s,
	}
}

func (v *ImportView) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, v.fetchConnections())
}

func (v *ImportView) fetchConnections() tea.Cmd {
	return func() tea.Msg {
		conns, err := v.client.ListConnections(context.Background())
		return connectionsLoadedMsg{conns: conns, err: err}
	}
}

func (v *ImportView) upload() tea.Cmd {
	parsed := v.session.Parsed()
	req := &dto.BulkMappingRequest{
		ConnectionID: v.session.ConnectionID(),
		Mappings:     make([]dto.MappingItem, 0, len(parsed.Rows)),
	}
	for _, row := range parsed.Rows {
		item := dto.MappingItem{
			SKUCode:        row.Fields["sku_code"],
			MarketplaceSKU: row.Fields["marketplace_sku"],
			SourceRow:      row.RowNumber,
		}
		if price := row.Fields["price"]; price != "" {
			if f, err := strconv.ParseFloat(price, 64); err == nil {
				item.Price = f
			}
		}
		req.Mappings = append(req.Mappings, item)
	}

	client := v.client
	return tea.Batch(v.spinner.Tick, func() tea.Msg {
		resp, err := client.BulkUploadMappings(context.Background(), req)
		return uploadDoneMsg{resp: resp, err: err}
	})
}

func (v *ImportView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case spinner.TickMsg:
		if v.uploading {
			var cmd tea.Cmd
			v.spinner, cmd = v.spinner.Update(msg)
			return v, cmd
		}
		return v, nil

	case connectionsLoadedMsg:
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		v.conns = msg.conns
		return v, nil

	case uploadDoneMsg:
		v.uploading = false
		if msg.err != nil {
			// Transport failure: stay on preview, rows keep their state
			v.errMsg = msg.err.Error()
			return v, nil
		}
		outcome := dispatch.FromBatchResponse(msg.resp, func(row int) string {
			return fmt.Sprintf("row %d", row)
		})
		rowErrors := make(map[int]string, len(msg.resp.Errors))
		for _, rowErr := range msg.resp.Errors {
			rowErrors[rowErr.Row] = rowErr.Error
		}
		if err := v.session.CompleteSubmit(outcome, rowErrors); err != nil {
			v.errMsg = err.Error()
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	if v.session.State() == importer.StateSelect {
		var cmd tea.Cmd
		v.fileInput, cmd = v.fileInput.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *ImportView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.uploading {
		if msg.String() == "ctrl+c" {
			return v, tea.Quit
		}
		return v, nil
	}

	switch v.session.State() {
	case importer.StateSelect:
		switch msg.String() {
		case "ctrl+c":
			return v, tea.Quit
		case "esc":
			return v, func() tea.Msg { return messages.NavigateBackMsg{} }
		case "enter":
			return v.selectFile()
		default:
			var cmd tea.Cmd
			v.fileInput, cmd = v.fileInput.Update(msg)
			return v, cmd
		}

	case importer.StatePreview:
		switch msg.String() {
		case "ctrl+c":
			return v, tea.Quit
		case "esc", "n":
			// Forward-only: abandoning the preview means starting over
			v.session.ResetForNewFile()
			v.preview = ""
			v.errMsg = ""
			v.fileInput.Focus()
		case "j", "down":
			if v.connIdx < len(v.conns)-1 {
				v.connIdx++
				v.session.SetConnection(v.conns[v.connIdx].ID)
			}
		case "k", "up":
			if v.connIdx > 0 {
				v.connIdx--
				v.session.SetConnection(v.conns[v.connIdx].ID)
			}
		case " ":
			if len(v.conns) > 0 {
				v.session.SetConnection(v.conns[v.connIdx].ID)
			}
		case "enter":
			if !v.session.CanSubmit() {
				v.errMsg = "choose a marketplace connection first"
				return v, nil
			}
			v.uploading = true
			v.errMsg = ""
			return v, v.upload()
		}

	case importer.StateResult:
		switch msg.String() {
		case "ctrl+c":
			return v, tea.Quit
		case "esc", "q":
			return v, func() tea.Msg { return messages.NavigateBackMsg{} }
		case "n":
			v.session.ResetForNewFile()
			v.preview = ""
			v.errMsg = ""
			v.fileInput.SetValue("")
			v.fileInput.Focus()
		}
	}

	return v, nil
}

func (v *ImportView) selectFile() (tea.Model, tea.Cmd) {
	path := strings.TrimSpace(v.fileInput.Value())
	if path == "" {
		v.errMsg = "enter a file path"
		return v, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		v.errMsg = fmt.Sprintf("failed to read %s: %v", path, err)
		return v, nil
	}

	if err := v.session.SelectFile(path, string(content)); err != nil {
		v.errMsg = err.Error()
		v.preview = ""
		return v, nil
	}

	v.errMsg = ""
	v.preview = highlightCSV(string(content), path)
	if len(v.conns) > 0 {
		v.session.SetConnection(v.conns[v.connIdx].ID)
	}
	return v, nil
}

// highlightCSV renders the raw file through chroma for the preview pane
func highlightCSV(content, filename string) string {
	const maxPreviewLines = 12
	lines := strings.Split(content, "\n")
	if len(lines) > maxPreviewLines {
		lines = lines[:maxPreviewLines]
	}
	snippet := strings.Join(lines, "\n")

	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	style := chromastyles.Get("monokai")
	if style == nil {
		style = chromastyles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, snippet)
	if err != nil {
		return snippet
	}
	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return snippet
	}
	return buf.String()
}

func (v *ImportView) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Import SKU Mappings"))
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render(v.session.State().String()))
	b.WriteString("\n\n")

	switch v.session.State() {
	case importer.StateSelect:
		b.WriteString("CSV file:\n")
		b.WriteString(v.fileInput.View())
		b.WriteString("\n")
	case importer.StatePreview:
		if v.uploading {
			b.WriteString(fmt.Sprintf("%s Uploading...\n", v.spinner.View()))
		} else {
			b.WriteString(v.renderPreview())
		}
	case importer.StateResult:
		b.WriteString(v.renderResult())
	}

	if v.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(v.errMsg))
	}

	b.WriteString("\n\n")
	switch v.session.State() {
	case importer.StateSelect:
		b.WriteString(styles.HelpStyle.Render("enter parse · esc back"))
	case importer.StatePreview:
		b.WriteString(styles.HelpStyle.Render("j/k connection · enter upload · n new file · esc cancel"))
	default:
		b.WriteString(styles.HelpStyle.Render("n import another · esc back"))
	}

	return b.String()
}

func (v *ImportView) renderPreview() string {
	parsed := v.session.Parsed()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s: %d rows ready", v.session.FileName(), len(parsed.Rows)))
	if len(parsed.SkippedLines) > 0 {
		b.WriteString(styles.WarningStyle.Render(
			fmt.Sprintf("  (skipped lines %v)", parsed.SkippedLines)))
	}
	b.WriteString("\n\n")

	if v.preview != "" {
		b.WriteString(styles.BorderStyle.Render(v.preview))
		b.WriteString("\n\n")
	}

	b.WriteString("Target connection:\n")
	if len(v.conns) == 0 {
		b.WriteString(styles.WarningStyle.Render("  no marketplace connections configured\n"))
	}
	for i, c := range v.conns {
		line := fmt.Sprintf("%s (%s)", c.Name, c.Channel)
		if i == v.connIdx && v.session.ConnectionID() == c.ID {
			b.WriteString(styles.SelectedStyle.Render("> " + line))
		} else if i == v.connIdx {
			b.WriteString("> " + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (v *ImportView) renderResult() string {
	parsed := v.session.Parsed()
	outcome := v.session.Outcome()

	var b strings.Builder
	switch {
	case outcome.Failed == 0:
		b.WriteString(styles.SuccessStyle.Render(
			fmt.Sprintf("✓ All %d mappings created", outcome.Succeeded)))
	case outcome.Succeeded == 0:
		b.WriteString(styles.ErrorStyle.Render(
			fmt.Sprintf("✗ All %d rows rejected", outcome.Failed)))
	default:
		b.WriteString(styles.WarningStyle.Render(
			fmt.Sprintf("⚠ %d created, %d rejected", outcome.Succeeded, outcome.Failed)))
	}
	b.WriteString("\n\n")

	for _, row := range parsed.Rows {
		switch row.Status {
		case importer.RowSuccess:
			b.WriteString(styles.SuccessStyle.Render(fmt.Sprintf("  ✓ row %d", row.RowNumber)))
		case importer.RowError:
			b.WriteString(styles.ErrorStyle.Render(
				fmt.Sprintf("  ✗ row %d: %s", row.RowNumber, row.ErrorMessage)))
		default:
			b.WriteString(fmt.Sprintf("  · row %d", row.RowNumber))
		}
		b.WriteString("\n")
	}

	return b.String()
}
