package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Pane        lipgloss.Style
	FocusedPane lipgloss.Style
	PaneTitle   lipgloss.Style
	Item        lipgloss.Style
	Cursor      lipgloss.Style
	Chosen      lipgloss.Style
	Muted       lipgloss.Style
	Error       lipgloss.Style
	Success     lipgloss.Style
	Link        lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() *Styles {
	border := lipgloss.Color("#45475A")
	primary := lipgloss.Color("#7C3AED")
	muted := lipgloss.Color("241")

	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(28)

	return &Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(primary),
		Subtitle:    lipgloss.NewStyle().Foreground(muted),
		Pane:        pane,
		FocusedPane: pane.BorderForeground(primary),
		PaneTitle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4")),
		Item:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Cursor:      lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		Chosen:      lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		Muted:       lipgloss.NewStyle().Foreground(muted),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		Link:        lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("#06B6D4")),
	}
}
