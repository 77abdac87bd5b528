package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aeolun/discordlite/pkg/client/ui/modal"
	"github.com/aeolun/discordlite/pkg/protocol"
	"github.com/aeolun/discordlite/pkg/session"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case EffectMsg:
		if msg.Event == nil {
			return m, nil
		}
		return m.dispatch(msg.Event)

	case modal.EventMsg:
		return m.dispatch(msg.Event)

	case modal.CopyMsg:
		return m, copyToClipboard(msg.Text, msg.Label)

	case copiedMsg:
		if msg.Err != nil {
			m.logger.Warn().Err(msg.Err).Msg("clipboard write failed")
			m.modalStack.Push(modal.NewErrorModal("Copy failed", msg.Err.Error()))
			return m, nil
		}
		return m, m.setStatus("Copied " + msg.Label)

	case statusTimeoutMsg:
		if msg.Version == m.statusVersion {
			m.statusMessage = ""
		}
		return m, nil

	case notifiedMsg:
		if msg.Err != nil {
			m.logger.Warn().Err(msg.Err).Msg("failed to send desktop notification")
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and friends
	var cmd tea.Cmd
	if m.state.Authenticated() {
		m.messageInput, cmd = m.messageInput.Update(msg)
	} else {
		m.tokenInput, cmd = m.tokenInput.Update(msg)
	}
	return m, cmd
}

// dispatch feeds one event through the reducer and schedules its effects
func (m Model) dispatch(ev session.Event) (tea.Model, tea.Cmd) {
	prev := m.state
	next, effects := session.Reduce(m.state, ev)
	m.state = next
	m.afterReduce(prev)

	cmds := []tea.Cmd{m.runEffects(effects)}
	if sent, ok := ev.(session.MessageSent); ok && sent.Err != nil && prev.Authenticated() && m.opts.Notifications {
		cmds = append(cmds, m.notifyCmd("Message not sent", m.state.ErrorMessage()))
	}
	return m, tea.Batch(cmds...)
}

// afterReduce brings the presentation in line with a new state
func (m *Model) afterReduce(prev session.State) {
	m.refreshDerived()

	if m.tokenInput.Value() != m.state.TokenInput {
		m.tokenInput.SetValue(m.state.TokenInput)
	}
	if m.messageInput.Value() != m.state.MessageInput {
		m.messageInput.SetValue(m.state.MessageInput)
	}

	switch {
	case !prev.Authenticated() && m.state.Authenticated():
		m.tokenInput.Blur()
		m.guildCursor = 0
		m.setFocus(FocusGuilds)
	case prev.Authenticated() && !m.state.Authenticated():
		m.modalStack.Clear()
		m.setFocus(FocusGuilds)
		m.tokenInput.Focus()
	}

	if !sameChannel(prev.SelectedChannelID, m.state.SelectedChannelID) {
		m.followBottom = true
		m.chatViewport.GotoTop()
	}
	if !sameMessages(prev.Messages, m.state.Messages) {
		if m.followBottom {
			m.messageCursor = len(m.state.Messages) - 1
		}
		m.messageCursor = clamp(m.messageCursor, len(m.state.Messages))
		m.refreshChat()
	}

	m.syncModals()
}

// syncModals shows exactly the overlays the session asks for
func (m *Model) syncModals() {
	s := m.state

	if s.Overlay == session.OverlayProfileEditor && s.Identity != nil {
		if editor, ok := m.modalStack.Find(modal.ModalProfileEditor).(*modal.ProfileEditorModal); ok {
			editor.SetPresence(s.Presence)
		} else {
			m.modalStack.Push(modal.NewProfileEditorModal(*s.Identity, s.Presence))
		}
	} else {
		m.modalStack.RemoveByType(modal.ModalProfileEditor)
	}

	if s.Overlay == session.OverlayUserProfile && s.ViewedUser != nil {
		viewer, ok := m.modalStack.Find(modal.ModalUserProfile).(*modal.UserProfileModal)
		if !ok || viewer.User().ID != s.ViewedUser.ID {
			m.modalStack.Push(modal.NewUserProfileModal(*s.ViewedUser))
		}
	} else {
		m.modalStack.RemoveByType(modal.ModalUserProfile)
	}

	if s.PresenceMenuOpen {
		if !m.modalStack.Has(modal.ModalPresenceMenu) {
			m.modalStack.Push(modal.NewPresenceMenuModal(s.Presence))
		}
	} else {
		m.modalStack.RemoveByType(modal.ModalPresenceMenu)
	}
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits immediately
	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}

	if activeModal := m.modalStack.Top(); activeModal != nil {
		handled, newModal, cmd := activeModal.HandleKey(msg)

		if newModal == nil {
			m.modalStack.Pop()
		} else if newModal.Type() != activeModal.Type() {
			m.modalStack.Pop()
			m.modalStack.Push(newModal)
		}

		if handled {
			// Modal commands only wrap an event or a copy request; apply
			// them now so the session and the stack never disagree
			if cmd != nil {
				return m.Update(cmd())
			}
			return m, nil
		}
		if activeModal.IsBlockingInput() {
			return m, nil
		}
	}

	if !m.state.Authenticated() {
		return m.handleLoginKeys(msg)
	}
	return m.handleMainKeys(msg)
}

func (m Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Select):
		if m.state.Phase() == session.PhaseAuthenticating {
			return m, nil
		}
		return m.dispatch(session.Login{})
	case key.Matches(msg, keys.DismissError):
		return m.dispatch(session.DismissError{})
	}

	var cmd tea.Cmd
	m.tokenInput, cmd = m.tokenInput.Update(msg)
	if m.tokenInput.Value() == m.state.TokenInput {
		return m, cmd
	}
	next, dcmd := m.dispatch(session.TokenInputChanged{Text: m.tokenInput.Value()})
	return next, tea.Batch(cmd, dcmd)
}

func (m Model) handleMainKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global bindings
	switch {
	case key.Matches(msg, keys.Profile):
		return m.dispatch(session.OpenProfileEditor{})
	case key.Matches(msg, keys.Presence):
		return m.dispatch(session.TogglePresenceMenu{})
	case key.Matches(msg, keys.Refresh):
		return m.dispatch(session.RefreshMessages{})
	case key.Matches(msg, keys.Logout):
		return m.dispatch(session.Logout{})
	case key.Matches(msg, keys.NextPane):
		m.setFocus((m.focus + 1) % 4)
		return m, nil
	case key.Matches(msg, keys.PrevPane):
		m.setFocus((m.focus + 3) % 4)
		return m, nil
	case key.Matches(msg, keys.DismissError):
		if m.state.LastError != nil {
			return m.dispatch(session.DismissError{})
		}
		if m.focus == FocusComposer {
			m.setFocus(FocusMessages)
		}
		return m, nil
	case key.Matches(msg, keys.ScrollUp), key.Matches(msg, keys.ScrollDown):
		var cmd tea.Cmd
		m.chatViewport, cmd = m.chatViewport.Update(msg)
		m.followBottom = m.chatViewport.AtBottom()
		return m, cmd
	}

	if m.focus == FocusComposer {
		return m.handleComposerKeys(msg)
	}

	switch {
	case key.Matches(msg, keys.Help):
		m.modalStack.Push(modal.NewHelpModal(m.help.FullHelpView(keys.fullHelp())))
		return m, nil
	case key.Matches(msg, keys.FocusComposer):
		m.setFocus(FocusComposer)
		return m, nil
	}

	switch m.focus {
	case FocusGuilds:
		return m.handleGuildKeys(msg)
	case FocusChannels:
		return m.handleChannelKeys(msg)
	case FocusMessages:
		return m.handleMessageKeys(msg)
	}
	return m, nil
}

func (m Model) handleGuildKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	guilds := m.visibleGuilds()
	switch {
	case key.Matches(msg, keys.Up):
		m.guildCursor = clamp(m.guildCursor-1, len(guilds))
	case key.Matches(msg, keys.Down):
		m.guildCursor = clamp(m.guildCursor+1, len(guilds))
	case key.Matches(msg, keys.Select):
		if len(guilds) == 0 {
			return m, nil
		}
		m.channelCursor = 0
		next, cmd := m.dispatch(session.SelectGuild{GuildID: guilds[m.guildCursor].ID})
		model := next.(Model)
		model.setFocus(FocusChannels)
		return model, cmd
	}
	return m, nil
}

func (m Model) handleChannelKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		m.channelCursor = m.nextSelectable(m.channelCursor, -1)
	case key.Matches(msg, keys.Down):
		m.channelCursor = m.nextSelectable(m.channelCursor, 1)
	case key.Matches(msg, keys.Select):
		if !m.selectableChannel(m.channelCursor) {
			return m, nil
		}
		next, cmd := m.dispatch(session.SelectChannel{ChannelID: m.tree[m.channelCursor].Channel.ID})
		model := next.(Model)
		if _, ok := model.state.SelectedChannel(); ok {
			model.setFocus(FocusComposer)
		}
		return model, cmd
	}
	return m, nil
}

// nextSelectable walks the channel tree from i in direction dir, skipping
// category headers. It stays put when nothing selectable lies that way.
func (m Model) nextSelectable(i, dir int) int {
	for j := i + dir; j >= 0 && j < len(m.tree); j += dir {
		if m.tree[j].Selectable() {
			return j
		}
	}
	if m.selectableChannel(i) {
		return i
	}
	// Cursor parked on a header: find anything selectable
	for j := range m.tree {
		if m.tree[j].Selectable() {
			return j
		}
	}
	return i
}

func (m Model) handleMessageKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	messages := m.state.Messages
	switch {
	case key.Matches(msg, keys.Up):
		m.messageCursor = clamp(m.messageCursor-1, len(messages))
		m.followBottom = false
		m.refreshChat()
	case key.Matches(msg, keys.Down):
		m.messageCursor = clamp(m.messageCursor+1, len(messages))
		m.followBottom = m.messageCursor == len(messages)-1
		m.refreshChat()
	case key.Matches(msg, keys.ViewAuthor), key.Matches(msg, keys.Select):
		if selected, ok := m.selectedMessage(); ok {
			return m.dispatch(session.ViewUserProfile{User: selected.Author})
		}
	case key.Matches(msg, keys.CopyMessage):
		if selected, ok := m.selectedMessage(); ok {
			return m, copyToClipboard(selected.Content, "message")
		}
	}
	return m, nil
}

func (m Model) handleComposerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Send) {
		m.followBottom = true
		return m.dispatch(session.SendMessage{})
	}

	var cmd tea.Cmd
	m.messageInput, cmd = m.messageInput.Update(msg)
	if m.messageInput.Value() == m.state.MessageInput {
		return m, cmd
	}
	next, dcmd := m.dispatch(session.MessageInputChanged{Text: m.messageInput.Value()})
	return next, tea.Batch(cmd, dcmd)
}

func (m Model) selectedMessage() (protocol.Message, bool) {
	if m.messageCursor < 0 || m.messageCursor >= len(m.state.Messages) {
		return protocol.Message{}, false
	}
	return m.state.Messages[m.messageCursor], true
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	if f == FocusComposer {
		m.messageInput.Focus()
	} else {
		m.messageInput.Blur()
	}
	if f == FocusChannels && !m.selectableChannel(m.channelCursor) {
		m.channelCursor = m.nextSelectable(m.channelCursor, 1)
	}
	m.refreshChat()
}

func (m *Model) setStatus(message string) tea.Cmd {
	m.statusMessage = message
	m.statusVersion++
	version := m.statusVersion
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return statusTimeoutMsg{Version: version}
	})
}

func (m Model) notifyCmd(title, body string) tea.Cmd {
	notify := m.notify
	return func() tea.Msg {
		return notifiedMsg{Err: notify(title, body)}
	}
}

func sameChannel(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// sameMessages relies on the reducer replacing slices wholesale
func sameMessages(a, b []protocol.Message) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}
