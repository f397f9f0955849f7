package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/costamaya/backoffice/internal/notify"
)

var (
	// Color palette
	colorPrimary = lipgloss.Color("#00BFA6") // Caribbean teal
	colorDanger  = lipgloss.Color("#FF6B6B")
	colorWarning = lipgloss.Color("#FFD93D")
	colorSuccess = lipgloss.Color("#6BCF7F")
	colorMuted   = lipgloss.Color("#6C757D")
	colorBorder  = lipgloss.Color("#4A90E2")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	tabStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).
			Padding(0, 2)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	errorTextStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(1, 0)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	filterChipStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 3)

	bannerStyles = map[notify.Severity]lipgloss.Style{
		notify.Info:    lipgloss.NewStyle().Foreground(colorBorder).Bold(true),
		notify.Success: lipgloss.NewStyle().Foreground(colorSuccess).Bold(true),
		notify.Warning: lipgloss.NewStyle().Foreground(colorWarning).Bold(true),
		notify.Error:   lipgloss.NewStyle().Foreground(colorDanger).Bold(true),
	}
)
