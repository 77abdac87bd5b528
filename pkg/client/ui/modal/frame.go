package modal

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("#5865F2")
	errorColor  = lipgloss.Color("#FF5555")
	mutedColor  = lipgloss.Color("240")
	textColor   = lipgloss.Color("252")

	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Foreground(mutedColor).Width(10)
	valueStyle = lipgloss.NewStyle().Foreground(textColor)
	hintStyle  = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)
)

// frame draws content in a bordered box centred in width x height
func frame(width, height, preferred int, border lipgloss.Color, content string) string {
	modalWidth := preferred
	if width < modalWidth+4 {
		modalWidth = width - 4
	}
	if modalWidth < 10 {
		modalWidth = 10
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Width(modalWidth - 4).
		Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func field(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}
