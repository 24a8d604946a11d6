package chat

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	active    lipgloss.Style
	inactive  lipgloss.Style
	detail    lipgloss.Style
	id        lipgloss.Style
	banner    lipgloss.Style
	section   lipgloss.Style
	empty     lipgloss.Style
	hint      lipgloss.Style
	user      lipgloss.Style
	assistant lipgloss.Style
	body      lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		active:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		inactive:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		detail:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		id:        lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		banner:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:   lipgloss.NewStyle().MarginTop(1),
		empty:     lipgloss.NewStyle().Faint(true),
		hint:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		user:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")),
		assistant: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114")),
		body:      lipgloss.NewStyle().PaddingLeft(2),
	}
}
