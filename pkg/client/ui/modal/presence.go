package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aeolun/discordlite/pkg/protocol"
	"github.com/aeolun/discordlite/pkg/session"
)

// PresenceMenuModal lets the user pick a presence
type PresenceMenuModal struct {
	cursor int
}

// NewPresenceMenuModal opens the menu with current highlighted
func NewPresenceMenuModal(current protocol.Presence) *PresenceMenuModal {
	m := &PresenceMenuModal{}
	for i, p := range protocol.Presences {
		if p == current {
			m.cursor = i
		}
	}
	return m
}

func (m *PresenceMenuModal) Type() ModalType {
	return ModalPresenceMenu
}

// Selected returns the highlighted presence
func (m *PresenceMenuModal) Selected() protocol.Presence {
	return protocol.Presences[m.cursor]
}

func (m *PresenceMenuModal) HandleKey(msg tea.KeyMsg) (bool, Modal, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return true, m, nil
	case "down", "j":
		if m.cursor < len(protocol.Presences)-1 {
			m.cursor++
		}
		return true, m, nil
	case "1", "2", "3", "4":
		m.cursor = int(msg.String()[0] - '1')
		return true, nil, Emit(session.ChangePresence{Presence: m.Selected()})
	case "enter":
		return true, nil, Emit(session.ChangePresence{Presence: m.Selected()})
	case "esc", "ctrl+s":
		return true, nil, Emit(session.TogglePresenceMenu{})
	}
	return true, m, nil
}

func (m *PresenceMenuModal) Render(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Set status"))
	b.WriteString("\n")
	for i, p := range protocol.Presences {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color().Hex())).Render("●")
		line := dot + " " + p.Label()
		if i == m.cursor {
			line = lipgloss.NewStyle().Bold(true).Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("↑/↓ select · Enter apply · Esc cancel"))
	return frame(width, height, 40, accentColor, b.String())
}

func (m *PresenceMenuModal) IsBlockingInput() bool {
	return true
}
