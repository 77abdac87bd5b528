package modal

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aeolun/discordlite/pkg/protocol"
	"github.com/aeolun/discordlite/pkg/session"
)

// ProfileEditorModal shows the logged-in user's profile. The only editable
// field is the presence, changed through the presence menu.
type ProfileEditorModal struct {
	user     protocol.Identity
	presence protocol.Presence
}

func NewProfileEditorModal(user protocol.Identity, presence protocol.Presence) *ProfileEditorModal {
	return &ProfileEditorModal{user: user, presence: presence}
}

func (m *ProfileEditorModal) Type() ModalType {
	return ModalProfileEditor
}

// SetPresence refreshes the presence shown after it changes
func (m *ProfileEditorModal) SetPresence(p protocol.Presence) {
	m.presence = p
}

func (m *ProfileEditorModal) HandleKey(msg tea.KeyMsg) (bool, Modal, tea.Cmd) {
	switch msg.String() {
	case "s", "enter":
		return true, m, Emit(session.TogglePresenceMenu{})
	case "c", "y":
		return true, m, copyText(m.user.ID, "user id")
	case "esc", "q", "ctrl+p":
		return true, nil, Emit(session.CloseOverlay{})
	}
	return true, m, nil
}

func (m *ProfileEditorModal) Render(width, height int) string {
	status := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.presence.Color().Hex())).
		Render("● " + m.presence.Label())

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Foreground(accentColor).Render("My profile"),
		field("Name", m.user.DisplayName()),
		field("Username", m.user.Tag()),
		field("ID", m.user.ID),
		field("Status", status),
		"",
		hintStyle.Render("s change status · c copy id · Esc close"),
	)
	return frame(width, height, 50, accentColor, content)
}

func (m *ProfileEditorModal) IsBlockingInput() bool {
	return true
}

// UserProfileModal shows another user's public profile
type UserProfileModal struct {
	user protocol.Identity
}

func NewUserProfileModal(user protocol.Identity) *UserProfileModal {
	return &UserProfileModal{user: user}
}

func (m *UserProfileModal) Type() ModalType {
	return ModalUserProfile
}

// User returns the profile being shown
func (m *UserProfileModal) User() protocol.Identity {
	return m.user
}

func (m *UserProfileModal) HandleKey(msg tea.KeyMsg) (bool, Modal, tea.Cmd) {
	switch msg.String() {
	case "c", "y":
		return true, m, copyText(m.user.ID, "user id")
	case "esc", "q", "enter":
		return true, nil, Emit(session.CloseOverlay{})
	}
	return true, m, nil
}

func (m *UserProfileModal) Render(width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Foreground(accentColor).Render(m.user.DisplayName()),
		field("Username", m.user.Tag()),
		field("ID", m.user.ID),
		"",
		hintStyle.Render("c copy id · Esc close"),
	)
	return frame(width, height, 50, accentColor, content)
}

func (m *UserProfileModal) IsBlockingInput() bool {
	return true
}
