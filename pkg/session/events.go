package session

import "github.com/aeolun/discordlite/pkg/protocol"

// Event is a discrete input to the reducer: a user action or the result of
// an Effect
type Event interface {
	isEvent()
}

// User actions

// TokenInputChanged replaces the login token buffer
type TokenInputChanged struct{ Text string }

// Login starts verifying the buffered token
type Login struct{}

// Logout ends the session, keeping only the token buffer
type Logout struct{}

// SelectGuild switches to a guild and loads its channels
type SelectGuild struct{ GuildID string }

// SelectChannel opens a text or voice channel of the selected guild
type SelectChannel struct{ ChannelID string }

// MessageInputChanged replaces the composer buffer
type MessageInputChanged struct{ Text string }

// SendMessage posts the composer buffer to the selected channel
type SendMessage struct{}

// RefreshMessages re-fetches the selected channel's messages
type RefreshMessages struct{}

// TogglePresenceMenu opens or closes the presence picker
type TogglePresenceMenu struct{}

// ChangePresence requests a new presence status
type ChangePresence struct{ Presence protocol.Presence }

// OpenProfileEditor shows the logged-in user's profile
type OpenProfileEditor struct{}

// ViewUserProfile shows another user's profile
type ViewUserProfile struct{ User protocol.Identity }

// CloseOverlay dismisses the profile overlay
type CloseOverlay struct{}

// DismissError clears the error slot
type DismissError struct{}

// Results. Err is nil on success.

// LoginResult carries the token the verification was issued with
type LoginResult struct {
	Token    string
	Identity protocol.Identity
	Err      error
}

// GuildsLoaded carries the raw guild list. Preference is nil when the
// user's settings could not be fetched.
type GuildsLoaded struct {
	Guilds     []protocol.Guild
	Preference *protocol.OrderingPreference
	Err        error
}

// ChannelsLoaded is tagged with the guild the fetch was issued for
type ChannelsLoaded struct {
	GuildID  string
	Channels []protocol.Channel
	Err      error
}

// MessagesLoaded is tagged with the channel the fetch was issued for
type MessagesLoaded struct {
	ChannelID string
	Messages  []protocol.Message
	Err       error
}

// MessageSent is tagged with the channel the message was posted to
type MessageSent struct {
	ChannelID string
	Err       error
}

// PresenceChanged reports the outcome of a ChangePresence
type PresenceChanged struct {
	Presence protocol.Presence
	Err      error
}

func (TokenInputChanged) isEvent()   {}
func (Login) isEvent()               {}
func (Logout) isEvent()              {}
func (SelectGuild) isEvent()         {}
func (SelectChannel) isEvent()       {}
func (MessageInputChanged) isEvent() {}
func (SendMessage) isEvent()         {}
func (RefreshMessages) isEvent()     {}
func (TogglePresenceMenu) isEvent()  {}
func (ChangePresence) isEvent()      {}
func (OpenProfileEditor) isEvent()   {}
func (ViewUserProfile) isEvent()     {}
func (CloseOverlay) isEvent()        {}
func (DismissError) isEvent()        {}
func (LoginResult) isEvent()         {}
func (GuildsLoaded) isEvent()        {}
func (ChannelsLoaded) isEvent()      {}
func (MessagesLoaded) isEvent()      {}
func (MessageSent) isEvent()         {}
func (PresenceChanged) isEvent()     {}
