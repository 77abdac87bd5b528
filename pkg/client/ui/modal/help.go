package modal

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModal shows the key bindings
type HelpModal struct {
	content string
}

// NewHelpModal wraps pre-rendered help text
func NewHelpModal(content string) *HelpModal {
	return &HelpModal{content: content}
}

func (m *HelpModal) Type() ModalType {
	return ModalHelp
}

func (m *HelpModal) HandleKey(msg tea.KeyMsg) (bool, Modal, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?", "enter":
		return true, nil, nil
	}
	return true, m, nil
}

func (m *HelpModal) Render(width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Foreground(accentColor).Render("Keys"),
		m.content,
		"",
		hintStyle.Render("Press Esc to close"),
	)
	return frame(width, height, 60, accentColor, content)
}

func (m *HelpModal) IsBlockingInput() bool {
	return true
}
