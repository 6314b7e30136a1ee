package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle      = lipgloss.NewStyle().Padding(1, 2)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	lockedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	managerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	adminStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))

	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	dangerBoxStyle  = overlayBoxStyle.BorderForeground(lipgloss.Color("9"))
)
