package session

import "github.com/aeolun/discordlite/pkg/protocol"

// Effect describes a request for the caller to perform. Every field is a
// copy taken when the reducer ran, so later state changes cannot alter an
// in-flight request.
type Effect interface {
	// Op names the effect for logs and metrics
	Op() string
}

// VerifyIdentity checks a token and fetches the user it belongs to
type VerifyIdentity struct{ Token string }

// FetchGuilds loads the guild list and the ordering preference
type FetchGuilds struct{ Token string }

// FetchChannels loads one guild's channels
type FetchChannels struct {
	Token   string
	GuildID string
}

// FetchMessages loads the latest messages of a channel
type FetchMessages struct {
	Token     string
	ChannelID string
}

// PostMessage sends Content to a channel
type PostMessage struct {
	Token     string
	ChannelID string
	Content   string
}

// UpdatePresence stores the user's presence status
type UpdatePresence struct {
	Token    string
	Presence protocol.Presence
}

func (VerifyIdentity) Op() string { return "verify_identity" }
func (FetchGuilds) Op() string    { return "fetch_guilds" }
func (FetchChannels) Op() string  { return "fetch_channels" }
func (FetchMessages) Op() string  { return "fetch_messages" }
func (PostMessage) Op() string    { return "send_message" }
func (UpdatePresence) Op() string { return "update_presence" }
