package ui

import "github.com/charmbracelet/lipgloss"

var (
	styleHeader     = lipgloss.NewStyle().Bold(true)
	styleGroupTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	styleSelected   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	styleGreen      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleMuted      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleKey        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	styleStatusOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleStatusErr  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)
