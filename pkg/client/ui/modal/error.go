package modal

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrorModal shows a local failure (clipboard, notifications) that must be
// acknowledged. Request failures use the session's error line instead.
type ErrorModal struct {
	title   string
	message string
}

// NewErrorModal creates a new error modal
func NewErrorModal(title, message string) *ErrorModal {
	return &ErrorModal{title: title, message: message}
}

func (m *ErrorModal) Type() ModalType {
	return ModalError
}

// HandleKey closes on enter, esc or space and swallows everything else
func (m *ErrorModal) HandleKey(msg tea.KeyMsg) (bool, Modal, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", " ":
		return true, nil, nil
	}
	return true, m, nil
}

func (m *ErrorModal) Render(width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Foreground(errorColor).Render(m.title),
		valueStyle.MarginBottom(1).Render(m.message),
		hintStyle.Render("Press Enter or Esc to dismiss"),
	)
	return frame(width, height, 50, errorColor, content)
}

func (m *ErrorModal) IsBlockingInput() bool {
	return true
}
