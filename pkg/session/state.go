// Package session holds the client's in-memory world and the reducer that is
// its only mutator.
//
// The reducer is pure: Reduce(State, Event) returns the next State and the
// requests (Effects) the caller must perform. Results of those requests come
// back as new Events. Nothing in this package touches the network.
package session

import "github.com/aeolun/discordlite/pkg/protocol"

// Phase is the coarse authentication state
type Phase int

const (
	PhaseUnauthenticated Phase = iota
	PhaseAuthenticating
	PhaseAuthenticated
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseUnauthenticated:
		return "Unauthenticated"
	case PhaseAuthenticating:
		return "Authenticating"
	case PhaseAuthenticated:
		return "Authenticated"
	default:
		return "Unknown"
	}
}

// OverlayKind identifies a modal overlay. Overlays hide the main view but
// never change selection.
type OverlayKind int

const (
	OverlayNone OverlayKind = iota
	OverlayProfileEditor
	OverlayUserProfile
)

// String returns the string representation of the overlay kind
func (o OverlayKind) String() string {
	switch o {
	case OverlayNone:
		return "None"
	case OverlayProfileEditor:
		return "ProfileEditor"
	case OverlayUserProfile:
		return "UserProfile"
	default:
		return "Unknown"
	}
}

// State is a snapshot of the client's world. Slices are replaced wholesale by
// the reducer, never mutated in place, so an older snapshot stays valid.
type State struct {
	// Authentication
	TokenInput     string
	Token          *string
	Identity       *protocol.Identity
	authenticating bool

	// Data
	Guilds     []protocol.Guild
	Preference *protocol.OrderingPreference
	Channels   []protocol.Channel
	Messages   []protocol.Message

	// Guild the channel collection was loaded for
	channelsGuildID string

	// Selection
	SelectedGuildID   *string
	SelectedChannelID *string

	// Input
	MessageInput string

	// Presence
	Presence         protocol.Presence
	PresenceMenuOpen bool

	// Overlays
	Overlay    OverlayKind
	ViewedUser *protocol.Identity

	// Single error slot, cleared by the next successful result of any kind
	LastError *string

	guildsRev uint64
}

// New returns the empty startup state
func New() State {
	return State{Presence: protocol.PresenceOnline}
}

// Phase derives the authentication phase from the state
func (s State) Phase() Phase {
	switch {
	case s.Token != nil && s.Identity != nil:
		return PhaseAuthenticated
	case s.authenticating:
		return PhaseAuthenticating
	default:
		return PhaseUnauthenticated
	}
}

// Authenticated reports whether a token has been verified
func (s State) Authenticated() bool {
	return s.Phase() == PhaseAuthenticated
}

// GuildsRevision changes whenever the raw guild list or the ordering
// preference is replaced. Callers memoizing OrderedGuilds key on it.
func (s State) GuildsRevision() uint64 {
	return s.guildsRev
}

// OrderedGuilds returns the guilds in the user's sidebar order with invalid
// guilds removed
func (s State) OrderedGuilds() []protocol.Guild {
	return VisibleGuilds(ReconcileGuildOrder(s.Guilds, s.Preference))
}

// ChannelTree returns the render order of the current guild's channels
func (s State) ChannelTree() []ChannelNode {
	return BuildChannelTree(s.Channels)
}

// SelectedGuild returns the selected guild, if it is in the collection
func (s State) SelectedGuild() (protocol.Guild, bool) {
	if s.SelectedGuildID == nil {
		return protocol.Guild{}, false
	}
	for _, g := range s.Guilds {
		if g.ID == *s.SelectedGuildID {
			return g, true
		}
	}
	return protocol.Guild{}, false
}

// ChannelsCurrent reports whether the channel collection belongs to the
// selected guild, i.e. the fetch issued by the last SelectGuild completed
func (s State) ChannelsCurrent() bool {
	return s.SelectedGuildID != nil && s.channelsGuildID == *s.SelectedGuildID
}

// SelectedChannel returns the selected channel, if any
func (s State) SelectedChannel() (protocol.Channel, bool) {
	if s.SelectedChannelID == nil {
		return protocol.Channel{}, false
	}
	return s.findChannel(*s.SelectedChannelID)
}

// ErrorMessage returns the last error or ""
func (s State) ErrorMessage() string {
	if s.LastError == nil {
		return ""
	}
	return *s.LastError
}

func (s State) findChannel(id string) (protocol.Channel, bool) {
	for _, c := range s.Channels {
		if c.ID == id {
			return c, true
		}
	}
	return protocol.Channel{}, false
}

func (s State) guildSelected(id string) bool {
	return s.SelectedGuildID != nil && *s.SelectedGuildID == id
}

func (s State) channelSelected(id string) bool {
	return s.SelectedChannelID != nil && *s.SelectedChannelID == id
}

func ptr[T any](v T) *T {
	return &v
}
