package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Item         *lipgloss.Style
	SelectedItem *lipgloss.Style
	Stick        *lipgloss.Style
	Label        *lipgloss.Style
	TypedLabel   *lipgloss.Style
	Path         *lipgloss.Style
	Error        *lipgloss.Style
	Info         *lipgloss.Style
	Footer       *lipgloss.Style
	Filter       *lipgloss.Style
	FilterPrompt *lipgloss.Style
	Cursor       *lipgloss.Style
	PreviewTitle *lipgloss.Style
	PreviewBody  *lipgloss.Style
	PreviewError *lipgloss.Style
	PreviewFrame *lipgloss.Style
}

var defaultStyles = Styles{
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Stick: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	Label: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	),
	TypedLabel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Path: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
	PreviewTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	PreviewBody: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	PreviewError: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	PreviewFrame: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
