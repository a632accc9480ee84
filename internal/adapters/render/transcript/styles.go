package transcript

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	tabActive  lipgloss.Style
	tab        lipgloss.Style
	section    lipgloss.Style
	counter    lipgloss.Style
	source     lipgloss.Style
	sourceID   lipgloss.Style
	empty      lipgloss.Style
	user       lipgloss.Style
	assistant  lipgloss.Style
	system     lipgloss.Style
	body       lipgloss.Style
	citation   lipgloss.Style
	confidence lipgloss.Style
	loading    lipgloss.Style
	errorText  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		tabActive:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("37")),
		tab:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		section:    lipgloss.NewStyle().MarginTop(1),
		counter:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("37")),
		source:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		sourceID:   lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		empty:      lipgloss.NewStyle().Faint(true),
		user:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		assistant:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("37")),
		system:     lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245")),
		body:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		citation:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("73")),
		confidence: lipgloss.NewStyle().Foreground(lipgloss.Color("115")),
		loading:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("80")),
		errorText:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}
