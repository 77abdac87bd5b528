package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
	"github.com/rs/zerolog"

	"github.com/aeolun/discordlite/pkg/client"
	"github.com/aeolun/discordlite/pkg/client/ui/modal"
	"github.com/aeolun/discordlite/pkg/protocol"
	"github.com/aeolun/discordlite/pkg/session"
)

// Focus is the pane receiving navigation keys
type Focus int

const (
	FocusGuilds Focus = iota
	FocusChannels
	FocusMessages
	FocusComposer
)

// String returns the string representation of the focus
func (f Focus) String() string {
	switch f {
	case FocusGuilds:
		return "Guilds"
	case FocusChannels:
		return "Channels"
	case FocusMessages:
		return "Messages"
	case FocusComposer:
		return "Composer"
	default:
		return "Unknown"
	}
}

// Options configures the model
type Options struct {
	Logger        zerolog.Logger
	Notifications bool
	Markdown      bool
	// Pane widths in cells, borders included
	GuildPaneWidth   int
	ChannelPaneWidth int
	// InitialToken pre-fills the login input
	InitialToken string
	// RequestTimeout bounds each effect; zero means none
	RequestTimeout time.Duration
	Version        string
}

// Notifier shows a desktop notification
type Notifier func(title, body string) error

// guildCache memoizes the reconciled guild list for one guild revision
type guildCache struct {
	rev    uint64
	valid  bool
	guilds []protocol.Guild
}

// Model is the bubbletea model. All session data lives in state and is only
// changed through session.Reduce; the rest is presentation.
type Model struct {
	gateway client.GatewayInterface
	logger  zerolog.Logger
	opts    Options
	ctx     context.Context
	notify  Notifier

	// Session
	state session.State

	// Derived, refreshed after every event
	guilds guildCache
	tree   []session.ChannelNode

	// UI state
	width         int
	height        int
	focus         Focus
	guildCursor   int
	channelCursor int
	messageCursor int
	followBottom  bool

	tokenInput   textinput.Model
	messageInput textinput.Model
	chatViewport viewport.Model
	spinner      spinner.Model
	help         help.Model
	modalStack   modal.ModalStack

	statusMessage string
	statusVersion uint64
}

// NewModel creates a new application model
func NewModel(gateway client.GatewayInterface, opts Options) Model {
	if opts.GuildPaneWidth <= 0 {
		opts.GuildPaneWidth = 24
	}
	if opts.ChannelPaneWidth <= 0 {
		opts.ChannelPaneWidth = 26
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	token := textinput.New()
	token.Placeholder = "Paste your token"
	token.EchoMode = textinput.EchoPassword
	token.EchoCharacter = '•'
	token.Prompt = ""
	token.Focus()

	input := textinput.New()
	input.Placeholder = "Message"
	input.Prompt = "> "
	input.CharLimit = 2000

	m := Model{
		gateway:      gateway,
		logger:       opts.Logger,
		opts:         opts,
		ctx:          context.Background(),
		notify:       desktopNotifier,
		state:        session.New(),
		focus:        FocusGuilds,
		followBottom: true,
		tokenInput:   token,
		messageInput: input,
		chatViewport: viewport.New(0, 0),
		spinner:      s,
		help:         help.New(),
	}

	if opts.InitialToken != "" {
		m.tokenInput.SetValue(opts.InitialToken)
		m.state, _ = session.Reduce(m.state, session.TokenInputChanged{Text: opts.InitialToken})
	}
	return m
}

func desktopNotifier(title, body string) error {
	return beeep.Notify(title, body, "")
}

// WithContext returns a copy whose requests are bound to ctx
func (m Model) WithContext(ctx context.Context) Model {
	m.ctx = ctx
	return m
}

// WithNotifier replaces the desktop notifier
func (m Model) WithNotifier(n Notifier) Model {
	m.notify = n
	return m
}

// State returns the current session state
func (m Model) State() session.State {
	return m.state
}

// Init starts the cursor blink and the spinner
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// visibleGuilds returns the memoized guild list
func (m Model) visibleGuilds() []protocol.Guild {
	if m.guilds.valid && m.guilds.rev == m.state.GuildsRevision() {
		return m.guilds.guilds
	}
	return m.state.OrderedGuilds()
}

// refreshDerived recomputes the guild list when its revision moved and
// rebuilds the channel tree, keeping cursors in range
func (m *Model) refreshDerived() {
	if !m.guilds.valid || m.guilds.rev != m.state.GuildsRevision() {
		m.guilds = guildCache{
			rev:    m.state.GuildsRevision(),
			valid:  true,
			guilds: m.state.OrderedGuilds(),
		}
	}
	m.tree = m.state.ChannelTree()

	m.guildCursor = clamp(m.guildCursor, len(m.guilds.guilds))
	m.channelCursor = clamp(m.channelCursor, len(m.tree))
	m.messageCursor = clamp(m.messageCursor, len(m.state.Messages))
}

// selectableChannel reports whether the tree node at i can be opened
func (m Model) selectableChannel(i int) bool {
	return i >= 0 && i < len(m.tree) && m.tree[i].Selectable()
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// EffectMsg carries the event produced by a finished effect
type EffectMsg struct {
	Event session.Event
}

// statusTimeoutMsg clears the status line if nothing replaced it
type statusTimeoutMsg struct {
	Version uint64
}

// notifiedMsg reports a failed desktop notification
type notifiedMsg struct {
	Err error
}
