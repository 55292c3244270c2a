package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Title     lipgloss.Style
	Label     lipgloss.Style
	Header    lipgloss.Style
	Cell      lipgloss.Style
	Location  lipgloss.Style
	Original  lipgloss.Style
	Fallback  lipgloss.Style
	Muted     lipgloss.Style
	StatusOK  lipgloss.Style
	StatusErr lipgloss.Style
}

func defaultStyles() styles {
	red := lipgloss.Color("#D7263D")
	gray := lipgloss.Color("#8A8A8A")
	return styles{
		Title:     lipgloss.NewStyle().Bold(true).MarginBottom(1),
		Label:     lipgloss.NewStyle().Bold(true),
		Header:    lipgloss.NewStyle().Bold(true).Underline(true),
		Cell:      lipgloss.NewStyle(),
		Location:  lipgloss.NewStyle().Bold(true).Foreground(red),
		Original:  lipgloss.NewStyle().Strikethrough(true).Foreground(gray),
		Fallback:  lipgloss.NewStyle().Italic(true).Foreground(gray),
		Muted:     lipgloss.NewStyle().Foreground(gray),
		StatusOK:  lipgloss.NewStyle().Foreground(lipgloss.Color("#2E8B57")),
		StatusErr: lipgloss.NewStyle().Bold(true).Foreground(red),
	}
}
