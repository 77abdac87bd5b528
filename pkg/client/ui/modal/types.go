package modal

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aeolun/discordlite/pkg/session"
)

// ModalType uniquely identifies each modal type
type ModalType int

const (
	ModalNone ModalType = iota // Special value: no modal active
	ModalHelp
	ModalError
	ModalPresenceMenu
	ModalProfileEditor
	ModalUserProfile
)

// String returns the string representation of the modal type
func (m ModalType) String() string {
	switch m {
	case ModalNone:
		return "None"
	case ModalHelp:
		return "Help"
	case ModalError:
		return "Error"
	case ModalPresenceMenu:
		return "PresenceMenu"
	case ModalProfileEditor:
		return "ProfileEditor"
	case ModalUserProfile:
		return "UserProfile"
	default:
		return "Unknown"
	}
}

// Modal represents a modal dialog
type Modal interface {
	// Type returns the modal type identifier
	Type() ModalType

	// HandleKey processes keyboard input when this modal is active
	// Returns (handled, newModal, cmd)
	// - handled: true if the key was consumed by this modal
	// - newModal: nil to close modal, same modal to stay open, different modal to replace
	// - cmd: bubbletea command to execute
	HandleKey(msg tea.KeyMsg) (handled bool, newModal Modal, cmd tea.Cmd)

	// Render returns the modal content to be overlaid
	Render(width, height int) string

	// IsBlockingInput returns true if this modal blocks all input to underlying views
	// If false, unhandled keys fall through to the main view
	IsBlockingInput() bool
}

// EventMsg carries a session event raised by a modal back to the model
type EventMsg struct {
	Event session.Event
}

// CopyMsg asks the model to put Text on the clipboard
type CopyMsg struct {
	Text  string
	Label string
}

// Emit returns a command that raises ev
func Emit(ev session.Event) tea.Cmd {
	return func() tea.Msg {
		return EventMsg{Event: ev}
	}
}

func copyText(text, label string) tea.Cmd {
	return func() tea.Msg {
		return CopyMsg{Text: text, Label: label}
	}
}

// ModalStack manages the stack of active modals
type ModalStack struct {
	stack []Modal
}

// Push adds a modal to the top of the stack
// If a modal of the same type already exists, it is removed first
func (ms *ModalStack) Push(m Modal) {
	ms.stack = ms.removeByType(m.Type())
	ms.stack = append(ms.stack, m)
}

// Pop removes and returns the top modal
// Returns nil if stack is empty
func (ms *ModalStack) Pop() Modal {
	if len(ms.stack) == 0 {
		return nil
	}
	m := ms.stack[len(ms.stack)-1]
	ms.stack = ms.stack[:len(ms.stack)-1]
	return m
}

// Top returns the active (topmost) modal without removing it
// Returns nil if stack is empty
func (ms *ModalStack) Top() Modal {
	if len(ms.stack) == 0 {
		return nil
	}
	return ms.stack[len(ms.stack)-1]
}

// TopType returns the type of the active modal, or ModalNone if empty
func (ms *ModalStack) TopType() ModalType {
	if m := ms.Top(); m != nil {
		return m.Type()
	}
	return ModalNone
}

// Has reports whether a modal of type t is anywhere on the stack
func (ms *ModalStack) Has(t ModalType) bool {
	for _, m := range ms.stack {
		if m.Type() == t {
			return true
		}
	}
	return false
}

// Find returns the topmost modal of type t, or nil
func (ms *ModalStack) Find(t ModalType) Modal {
	for i := len(ms.stack) - 1; i >= 0; i-- {
		if ms.stack[i].Type() == t {
			return ms.stack[i]
		}
	}
	return nil
}

func (ms *ModalStack) removeByType(t ModalType) []Modal {
	filtered := []Modal{}
	for _, m := range ms.stack {
		if m.Type() != t {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// RemoveByType removes all modals of a specific type from the stack
func (ms *ModalStack) RemoveByType(t ModalType) {
	ms.stack = ms.removeByType(t)
}

// Clear removes all modals
func (ms *ModalStack) Clear() {
	ms.stack = []Modal{}
}

// IsEmpty returns true if no modals are active
func (ms *ModalStack) IsEmpty() bool {
	return len(ms.stack) == 0
}

// Size returns the number of modals in the stack
func (ms *ModalStack) Size() int {
	return len(ms.stack)
}
