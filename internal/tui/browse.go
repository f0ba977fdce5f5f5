// Package tui provides the terminal front-end for browsing placement drives.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yigit/crackgrid/internal/app/models"
	"github.com/yigit/crackgrid/internal/filter"
)

// Selector is the part of filter.Controller the view drives.
type Selector interface {
	LoadYears()
	SelectYear(year *int)
	SelectCompany(name *string)
	Refresh()
	ResetSelections()
	OpenDocument(action models.AnalyticsAction) (string, bool)
	PreviewURL() string
	Snapshot() filter.State
}

// ExportFunc writes the roster of the current selection and returns where it went.
type ExportFunc func(s filter.State) (string, error)

type pane int

const (
	yearPane pane = iota
	companyPane
)

// changedMsg tells the model the controller state moved on.
type changedMsg struct{}

// Notifier coalesces controller change callbacks into a channel the view can wait on.
type Notifier chan struct{}

// NewNotifier creates a notifier.
func NewNotifier() Notifier {
	return make(Notifier, 1)
}

// Notify is suitable as filter.Options.OnChange. It never blocks.
func (n Notifier) Notify(filter.State) {
	select {
	case n <- struct{}{}:
	default:
	}
}

func (n Notifier) wait() tea.Cmd {
	return func() tea.Msg {
		<-n
		return changedMsg{}
	}
}

// Model is the browse view.
type Model struct {
	ctrl     Selector
	changes  Notifier
	exporter ExportFunc
	styles   *Styles

	state         filter.State
	focus         pane
	yearCursor    int
	companyCursor int
	status        string
	statusIsError bool

	width  int
	height int
	ready  bool
}

// NewModel creates the browse view. exporter may be nil.
func NewModel(ctrl Selector, changes Notifier, exporter ExportFunc, s *Styles) *Model {
	if s == nil {
		s = DefaultStyles()
	}
	return &Model{
		ctrl:     ctrl,
		changes:  changes,
		exporter: exporter,
		styles:   s,
		state:    ctrl.Snapshot(),
		width:    80,
		height:   24,
	}
}

// Init loads the year list and starts listening for state changes.
func (m *Model) Init() tea.Cmd {
	load := func() tea.Msg {
		m.ctrl.LoadYears()
		return nil
	}
	return tea.Batch(load, m.changes.wait())
}

// Update handles messages for the browse view.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case changedMsg:
		m.sync()
		return m, m.changes.wait()

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit

	case "up", "k":
		m.moveCursor(-1)

	case "down", "j":
		m.moveCursor(1)

	case "tab", "left", "right", "h", "l":
		if m.focus == yearPane {
			m.focus = companyPane
		} else {
			m.focus = yearPane
		}

	case "enter":
		m.choose()

	case "r":
		m.ctrl.Refresh()
		m.setStatus("Refreshing...", false)
		m.sync()

	case "c", "esc":
		m.ctrl.ResetSelections()
		m.focus = yearPane
		m.companyCursor = 0
		m.setStatus("", false)
		m.sync()

	case "o":
		m.open(models.ActionView)

	case "d":
		m.open(models.ActionDownload)

	case "x":
		m.export()
	}
	return nil
}

func (m *Model) moveCursor(delta int) {
	if m.focus == yearPane {
		m.yearCursor = clamp(m.yearCursor+delta, len(m.state.Years))
		return
	}
	m.companyCursor = clamp(m.companyCursor+delta, len(m.state.Companies))
}

func (m *Model) choose() {
	switch m.focus {
	case yearPane:
		if len(m.state.Years) == 0 {
			return
		}
		year := m.state.Years[m.yearCursor]
		m.ctrl.SelectYear(&year)
		m.focus = companyPane
		m.companyCursor = 0
	case companyPane:
		if len(m.state.Companies) == 0 {
			return
		}
		name := m.state.Companies[m.companyCursor].Name
		m.ctrl.SelectCompany(&name)
	}
	m.setStatus("", false)
	m.sync()
}

func (m *Model) open(action models.AnalyticsAction) {
	link, ok := m.ctrl.OpenDocument(action)
	if !ok {
		m.setStatus("No interview document for this selection", true)
		return
	}
	if action == models.ActionDownload {
		m.setStatus("Download: "+link, false)
		return
	}
	m.setStatus("Open: "+link, false)
}

func (m *Model) export() {
	if m.exporter == nil {
		m.setStatus("Export is not available", true)
		return
	}
	path, err := m.exporter(m.state)
	if err != nil {
		m.setStatus("Export failed: "+err.Error(), true)
		return
	}
	m.setStatus("Saved "+path, false)
}

func (m *Model) setStatus(text string, isError bool) {
	m.status = text
	m.statusIsError = isError
}

// sync copies the controller state and keeps the cursors in range.
func (m *Model) sync() {
	m.state = m.ctrl.Snapshot()
	m.yearCursor = clamp(m.yearCursor, len(m.state.Years))
	m.companyCursor = clamp(m.companyCursor, len(m.state.Companies))
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// View renders the browse view.
func (m *Model) View() string {
	if !m.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render("CrackGrid"))
	b.WriteString("  ")
	b.WriteString(m.styles.Subtitle.Render("Placement drive lookup"))
	b.WriteString("\n\n")

	years := make([]string, 0, len(m.state.Years))
	for _, y := range m.state.Years {
		years = append(years, strconv.Itoa(y))
	}
	selectedYear := ""
	if m.state.Year != nil {
		selectedYear = strconv.Itoa(*m.state.Year)
	}

	companies := make([]string, 0, len(m.state.Companies))
	for _, c := range m.state.Companies {
		companies = append(companies, c.Name)
	}
	selectedCompany := ""
	if m.state.Company != nil {
		selectedCompany = m.state.Company.Name
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderPane("Year", years, m.yearCursor, selectedYear, m.focus == yearPane),
		" ",
		m.renderPane("Company", companies, m.companyCursor, selectedCompany, m.focus == companyPane),
	))
	b.WriteString("\n\n")

	b.WriteString(m.renderDetails())

	if m.state.Loading {
		b.WriteString(m.styles.Muted.Render("Loading..."))
		b.WriteString("\n")
	}
	if m.state.Error != filter.ErrNone {
		b.WriteString(m.styles.Error.Render(m.state.Message))
		b.WriteString("\n")
	}
	if m.status != "" {
		style := m.styles.Success
		if m.statusIsError {
			style = m.styles.Error
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("[j/k] Move  [Tab] Switch  [Enter] Select  [r] Refresh  [c] Clear  [o] Open  [d] Download  [x] Export  [q] Quit"))

	return b.String()
}

func (m *Model) renderPane(title string, items []string, cursor int, chosen string, focused bool) string {
	var b strings.Builder
	b.WriteString(m.styles.PaneTitle.Render(title))
	b.WriteString("\n")

	if len(items) == 0 {
		b.WriteString(m.styles.Muted.Render("(none)"))
	}
	for i, item := range items {
		prefix := "  "
		style := m.styles.Item
		if item == chosen {
			style = m.styles.Chosen
		}
		if focused && i == cursor {
			prefix = "> "
			style = m.styles.Cursor
		}
		b.WriteString(prefix + style.Render(item))
		if i < len(items)-1 {
			b.WriteString("\n")
		}
	}

	if focused {
		return m.styles.FocusedPane.Render(b.String())
	}
	return m.styles.Pane.Render(b.String())
}

func (m *Model) renderDetails() string {
	if m.state.Company == nil || m.state.Loading {
		return ""
	}
	var b strings.Builder

	if doc := m.state.InterviewDoc; doc != nil {
		b.WriteString(m.styles.PaneTitle.Render("Interview questions"))
		b.WriteString("\n")
		b.WriteString(doc.Title)
		b.WriteString("\n")
		b.WriteString(m.styles.Link.Render(m.ctrl.PreviewURL()))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("Last updated " + doc.LastModified().Format("2 Jan 2006")))
		b.WriteString("\n\n")
	}

	if len(m.state.Students) > 0 {
		b.WriteString(m.styles.PaneTitle.Render(fmt.Sprintf("Placed students (%d)", len(m.state.Students))))
		b.WriteString("\n")
		for _, s := range m.state.Students {
			line := fmt.Sprintf("%s  %s  %d", s.FullName, s.Branch, s.GraduationYear)
			if s.LinkedInURL != nil && *s.LinkedInURL != "" {
				line += "  " + m.styles.Link.Render(*s.LinkedInURL)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(m.state.Photos) > 0 {
		b.WriteString(m.styles.PaneTitle.Render(fmt.Sprintf("Photos (%d)", len(m.state.Photos))))
		b.WriteString("\n")
		for _, p := range m.state.Photos {
			line := p.ImageURL
			if p.Caption != nil && *p.Caption != "" {
				line = *p.Caption + "  " + m.styles.Muted.Render(p.ImageURL)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}
