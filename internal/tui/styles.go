package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("39")
	colorMuted   = lipgloss.Color("241")
	colorDanger  = lipgloss.Color("196")
	colorSuccess = lipgloss.Color("42")

	appStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	metricLabelStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Width(28)

	metricValueStyle = lipgloss.NewStyle().Bold(true)

	depletedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorDanger)

	healthyStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)
)
