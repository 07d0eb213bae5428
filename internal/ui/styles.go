package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title        lipgloss.Style
	Dim          lipgloss.Style
	Status       lipgloss.Style
	StatusError  lipgloss.Style
	Help         lipgloss.Style
	Pane         lipgloss.Style
	FocusedPane  lipgloss.Style
	TOCItem      lipgloss.Style
	TOCCurrent   lipgloss.Style
	SectionTitle lipgloss.Style
	Button       lipgloss.Style
	ButtonOff    lipgloss.Style
	Position     lipgloss.Style
	MetaKey      lipgloss.Style
	MetaValue    lipgloss.Style
	Prompt       lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Help:        lipgloss.NewStyle().Faint(true),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		FocusedPane: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		TOCItem:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		TOCCurrent:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true).Background(lipgloss.Color("238")),
		SectionTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("78")). // green
			Bold(true),
		ButtonOff: lipgloss.NewStyle().Faint(true),
		Position:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		MetaKey:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		MetaValue: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
}
