package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit          key.Binding
	Help          key.Binding
	NextPane      key.Binding
	PrevPane      key.Binding
	Up            key.Binding
	Down          key.Binding
	Select        key.Binding
	Send          key.Binding
	Refresh       key.Binding
	Profile       key.Binding
	Presence      key.Binding
	ViewAuthor    key.Binding
	CopyMessage   key.Binding
	DismissError  key.Binding
	Logout        key.Binding
	ScrollUp      key.Binding
	ScrollDown    key.Binding
	FocusComposer key.Binding
}

var keys = keyMap{
	Quit:          key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	NextPane:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
	PrevPane:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous pane")),
	Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Send:          key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
	Refresh:       key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
	Profile:       key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "profile")),
	Presence:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "status")),
	ViewAuthor:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "author profile")),
	CopyMessage:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy message")),
	DismissError:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss error")),
	Logout:        key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "log out")),
	ScrollUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
	ScrollDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
	FocusComposer: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "compose")),
}

// shortHelp is shown in the footer
func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.NextPane, k.Select, k.Presence, k.Profile, k.Help, k.Quit}
}

// fullHelp is shown in the help modal
func (k keyMap) fullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextPane, k.PrevPane, k.Up, k.Down, k.Select, k.FocusComposer},
		{k.Send, k.Refresh, k.ViewAuthor, k.CopyMessage, k.ScrollUp, k.ScrollDown},
		{k.Profile, k.Presence, k.DismissError, k.Logout, k.Help, k.Quit},
	}
}
