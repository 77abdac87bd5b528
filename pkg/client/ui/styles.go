package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/aeolun/discordlite/pkg/protocol"
)

// Colors
var (
	PrimaryColor = lipgloss.Color("#5865F2")
	MutedColor   = lipgloss.Color("240")
	TextColor    = lipgloss.Color("252")
	ErrorColor   = lipgloss.Color("#FF5555")
	SuccessColor = lipgloss.Color("#57F287")
	BorderColor  = lipgloss.Color("238")
)

// Pane and text styles
var (
	GuildPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	ChannelPaneStyle = GuildPaneStyle

	ChatPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	FocusedBorderColor = PrimaryColor

	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)

	SelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	CursorStyle   = lipgloss.NewStyle().Foreground(PrimaryColor)
	CategoryStyle = lipgloss.NewStyle().Foreground(MutedColor).Bold(true)
	MutedStyle    = lipgloss.NewStyle().Foreground(MutedColor)

	AuthorStyle    = lipgloss.NewStyle().Bold(true).Foreground(TextColor)
	TimestampStyle = lipgloss.NewStyle().Foreground(MutedColor)

	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	FooterStyle  = lipgloss.NewStyle().Foreground(MutedColor).Padding(0, 1)

	LoginBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(1, 3)

	SpinnerStyle = lipgloss.NewStyle().Foreground(PrimaryColor)
)

// RenderError renders an error line
func RenderError(msg string) string {
	return ErrorStyle.Render("✗ " + msg)
}

// PresenceStyle colours text with the presence colour
func PresenceStyle(p protocol.Presence) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color().Hex()))
}

func paneStyle(base lipgloss.Style, focused bool) lipgloss.Style {
	if focused {
		return base.BorderForeground(FocusedBorderColor)
	}
	return base
}
