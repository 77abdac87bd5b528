package ui

import (
	"fmt"
	"strings"

	"github.com/76creates/stickers/flexbox"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/aeolun/discordlite/pkg/protocol"
	"github.com/aeolun/discordlite/pkg/session"
)

const (
	// Border and horizontal padding of a pane
	paneChromeWidth  = 4
	paneChromeHeight = 2
	paneBorderWidth  = 2
	// Channel header, error line and composer inside the chat pane
	chatFixedLines = 3
)

// View renders the current view
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var base string
	if m.state.Authenticated() {
		base = m.renderMain()
	} else {
		base = m.renderLogin()
	}

	if activeModal := m.modalStack.Top(); activeModal != nil {
		return activeModal.Render(m.width, m.height)
	}
	return base
}

func (m Model) renderLogin() string {
	lines := []string{
		HeaderStyle.Render("discordlite"),
		"",
		"Token",
		m.tokenInput.View(),
		"",
	}

	if m.state.Phase() == session.PhaseAuthenticating {
		lines = append(lines, m.spinner.View()+" Logging in...")
	} else {
		lines = append(lines, MutedStyle.Render("Press Enter to log in"))
	}
	if msg := m.state.ErrorMessage(); msg != "" {
		lines = append(lines, "", RenderError(msg))
	}

	boxWidth := 50
	if m.width < boxWidth+4 {
		boxWidth = m.width - 4
	}
	m.tokenInput.Width = boxWidth - 8
	box := LoginBoxStyle.Width(boxWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderMain() string {
	contentHeight := m.height - 1 // footer
	layout := flexbox.NewHorizontal(m.width, contentHeight)

	// Ratios equal to the widths keep the side panes at their configured size
	guildW, channelW, chatW := m.opts.GuildPaneWidth, m.opts.ChannelPaneWidth, m.chatWidth()

	guildCol := layout.NewColumn().AddCells(
		flexbox.NewCell(guildW, 1).
			SetStyle(paneStyle(GuildPaneStyle, m.focus == FocusGuilds).
				Width(guildW - paneBorderWidth).
				Height(contentHeight - paneChromeHeight)).
			SetContent(m.buildGuildPane(guildW - paneChromeWidth)),
	)
	channelCol := layout.NewColumn().AddCells(
		flexbox.NewCell(channelW, 1).
			SetStyle(paneStyle(ChannelPaneStyle, m.focus == FocusChannels).
				Width(channelW - paneBorderWidth).
				Height(contentHeight - paneChromeHeight)).
			SetContent(m.buildChannelPane(channelW - paneChromeWidth)),
	)
	chatCol := layout.NewColumn().AddCells(
		flexbox.NewCell(chatW, 1).
			SetStyle(paneStyle(ChatPaneStyle, m.focus == FocusMessages || m.focus == FocusComposer).
				Width(chatW - paneBorderWidth).
				Height(contentHeight - paneChromeHeight)).
			SetContent(m.buildChatPane()),
	)
	layout.AddColumns([]*flexbox.Column{guildCol, channelCol, chatCol})

	return lipgloss.JoinVertical(lipgloss.Left, layout.Render(), m.renderFooter())
}

// buildGuildPane lists the guilds under the user's @name header
func (m Model) buildGuildPane(width int) string {
	var b strings.Builder

	if m.state.Identity != nil {
		dot := PresenceStyle(m.state.Presence).Render("●")
		b.WriteString(dot + " " + HeaderStyle.Render(truncate("@"+m.state.Identity.Username, width-2)))
		b.WriteString("\n\n")
	}

	guilds := m.visibleGuilds()
	if len(guilds) == 0 {
		b.WriteString(MutedStyle.Render("No servers"))
		return b.String()
	}

	for i, g := range guilds {
		name := truncate(g.Name, width-2)
		selected := m.state.SelectedGuildID != nil && *m.state.SelectedGuildID == g.ID
		b.WriteString(m.renderRow(name, selected, m.focus == FocusGuilds && i == m.guildCursor))
		b.WriteString("\n")
	}
	return b.String()
}

// buildChannelPane lists the selected guild's channels by category
func (m Model) buildChannelPane(width int) string {
	var b strings.Builder

	guild, ok := m.state.SelectedGuild()
	if !ok {
		if m.state.SelectedGuildID != nil {
			b.WriteString(HeaderStyle.Render("Unknown") + "\n\n")
		}
		b.WriteString(MutedStyle.Render("Select a server"))
		return b.String()
	}

	b.WriteString(HeaderStyle.Render(truncate(guild.Name, width)))
	b.WriteString("\n\n")

	if !m.state.ChannelsCurrent() {
		b.WriteString(m.spinner.View() + MutedStyle.Render(" Loading channels"))
		return b.String()
	}

	for i, node := range m.tree {
		cursor := m.focus == FocusChannels && i == m.channelCursor
		if node.Header {
			b.WriteString(CategoryStyle.Render(truncate(strings.ToUpper(node.Channel.DisplayName()), width)))
			b.WriteString("\n")
			continue
		}

		indent := strings.Repeat("  ", node.Depth)
		prefix := "# "
		if node.Channel.Kind() == protocol.ChannelKindVoice {
			prefix = "🔊 "
		}
		label := truncate(indent+prefix+node.Channel.DisplayName(), width-2)
		selected := m.state.SelectedChannelID != nil && *m.state.SelectedChannelID == node.Channel.ID
		b.WriteString(m.renderRow(label, selected, cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderRow(label string, selected, cursor bool) string {
	switch {
	case selected:
		label = SelectedStyle.Render(label)
	case cursor:
		label = CursorStyle.Render(label)
	}
	if cursor {
		return CursorStyle.Render("›") + " " + label
	}
	return "  " + label
}

// buildChatPane shows the channel header, messages, error line and composer
func (m Model) buildChatPane() string {
	channel, ok := m.state.SelectedChannel()
	if !ok {
		lines := []string{"", MutedStyle.Render("Select a channel to view messages")}
		if msg := m.state.ErrorMessage(); msg != "" {
			lines = append(lines, "", RenderError(msg))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	header := HeaderStyle.Render("# " + channel.DisplayName())
	errLine := ""
	if msg := m.state.ErrorMessage(); msg != "" {
		errLine = RenderError(truncate(msg, m.chatViewport.Width-2))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.chatViewport.View(),
		errLine,
		m.messageInput.View(),
	)
}

// buildChatContent renders the messages, oldest first
func (m Model) buildChatContent(width int) string {
	if len(m.state.Messages) == 0 {
		return MutedStyle.Render("No messages yet")
	}

	blocks := make([]string, 0, len(m.state.Messages))
	for i, msg := range m.state.Messages {
		head := AuthorStyle.Render(msg.Author.DisplayName())
		if ts := session.FormatTimestamp(msg.Timestamp); ts != "" {
			head += " " + TimestampStyle.Render(ts)
		}
		if m.focus == FocusMessages && i == m.messageCursor {
			head = CursorStyle.Render("▌") + head
		}

		var body string
		if m.opts.Markdown {
			body = renderMarkdown(msg.Content, width)
		} else {
			body = xansi.Hardwrap(msg.Content, width, true)
		}
		blocks = append(blocks, head+"\n"+body)
	}
	return strings.Join(blocks, "\n\n")
}

func (m Model) renderFooter() string {
	content := m.help.ShortHelpView(keys.shortHelp())
	if m.statusMessage != "" {
		content += "  " + SuccessStyle.Render(m.statusMessage)
	}
	if m.opts.Version != "" {
		content += "  " + MutedStyle.Render(fmt.Sprintf("v%s", m.opts.Version))
	}
	return FooterStyle.Render(truncate(content, m.width-2))
}

// chatWidth is what is left for the chat pane
func (m Model) chatWidth() int {
	w := m.width - m.opts.GuildPaneWidth - m.opts.ChannelPaneWidth
	if w < 20 {
		w = 20
	}
	return w
}

// resize fits the viewport and composer to the window
func (m *Model) resize() {
	innerWidth := m.chatWidth() - paneChromeWidth
	innerHeight := m.height - 1 - paneChromeHeight - chatFixedLines
	if innerWidth < 10 {
		innerWidth = 10
	}
	if innerHeight < 3 {
		innerHeight = 3
	}
	m.chatViewport.Width = innerWidth
	m.chatViewport.Height = innerHeight
	m.messageInput.Width = innerWidth - 3
	m.refreshChat()
}

// refreshChat re-renders the message list into the viewport
func (m *Model) refreshChat() {
	if m.chatViewport.Width == 0 {
		return
	}
	m.chatViewport.SetContent(m.buildChatContent(m.chatViewport.Width))
	if m.followBottom {
		m.chatViewport.GotoBottom()
	}
}

// truncate shortens s to width cells, ending with an ellipsis
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	if strings.Contains(s, "\x1b") {
		return lipgloss.NewStyle().MaxWidth(width).Render(s)
	}
	return runewidth.Truncate(s, width, "…")
}
