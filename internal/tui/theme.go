package tui

import "github.com/charmbracelet/lipgloss"

type theme struct {
	Title      lipgloss.Style
	ActiveLine lipgloss.Style
	MetaLabel  lipgloss.Style
	MetaValue  lipgloss.Style
	Tag        lipgloss.Style
	StatusOK   lipgloss.Style
	StatusWarn lipgloss.Style
	Expired    lipgloss.Style
	FormLabel  lipgloss.Style
	FormActive lipgloss.Style
	Help       lipgloss.Style
}

func defaultTheme() theme {
	green := lipgloss.Color("#a6e3a1")
	red := lipgloss.Color("#f38ba8")
	yellow := lipgloss.Color("#f9e2af")
	lavender := lipgloss.Color("#b4befe")
	text := lipgloss.Color("#cdd6f4")
	subtext := lipgloss.Color("#a6adc8")
	surface := lipgloss.Color("#313244")

	return theme{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lavender),
		ActiveLine: lipgloss.NewStyle().Background(surface).Foreground(text),
		MetaLabel:  lipgloss.NewStyle().Foreground(subtext),
		MetaValue:  lipgloss.NewStyle().Foreground(text),
		Tag:        lipgloss.NewStyle().Foreground(green),
		StatusOK:   lipgloss.NewStyle().Foreground(green),
		StatusWarn: lipgloss.NewStyle().Foreground(red),
		Expired:    lipgloss.NewStyle().Foreground(yellow),
		FormLabel:  lipgloss.NewStyle().Foreground(subtext),
		FormActive: lipgloss.NewStyle().Bold(true).Foreground(lavender),
		Help:       lipgloss.NewStyle().Foreground(subtext),
	}
}
