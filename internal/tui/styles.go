package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	keyStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	cursorStyle = lipgloss.NewStyle().Background(lipgloss.Color("236"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)
