package session

import (
	"fmt"
	"strings"
)

// Reduce applies one event to the state and returns the next state together
// with the requests to issue. It never blocks and never performs I/O; the
// caller must feed events one at a time.
func Reduce(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	// === Authentication ===

	case TokenInputChanged:
		s.TokenInput = ev.Text
		return s, nil

	case Login:
		if s.TokenInput == "" {
			return s, nil
		}
		s.authenticating = true
		return s, []Effect{VerifyIdentity{Token: s.TokenInput}}

	case LoginResult:
		// A verification that finished after Logout belongs to a dead session
		if !s.authenticating {
			return s, nil
		}
		s.authenticating = false
		if ev.Err != nil {
			s.LastError = failure("Login failed", ev.Err)
			return s, nil
		}
		identity := ev.Identity
		s.Token = ptr(ev.Token)
		s.Identity = &identity
		s.LastError = nil
		return s, []Effect{FetchGuilds{Token: ev.Token}}

	case Logout:
		// The token buffer survives so the user can log straight back in
		n := New()
		n.TokenInput = s.TokenInput
		return n, nil

	// === Guilds ===

	case GuildsLoaded:
		if !s.Authenticated() {
			return s, nil
		}
		if ev.Err != nil {
			s.LastError = failure("Failed to load guilds", ev.Err)
			return s, nil
		}
		s.Guilds = ev.Guilds
		s.Preference = ev.Preference
		s.guildsRev++
		s.LastError = nil
		return s, nil

	case SelectGuild:
		if !s.Authenticated() {
			return s, nil
		}
		s.SelectedGuildID = ptr(ev.GuildID)
		s.SelectedChannelID = nil
		s.Messages = nil
		return s, []Effect{FetchChannels{Token: *s.Token, GuildID: ev.GuildID}}

	// === Channels ===

	case ChannelsLoaded:
		if !s.Authenticated() || !s.guildSelected(ev.GuildID) {
			return s, nil
		}
		if ev.Err != nil {
			s.LastError = failure("Failed to load channels", ev.Err)
			return s, nil
		}
		s.Channels = ev.Channels
		s.channelsGuildID = ev.GuildID
		s.LastError = nil
		if s.SelectedChannelID != nil {
			if _, ok := s.findChannel(*s.SelectedChannelID); !ok {
				s.SelectedChannelID = nil
				s.Messages = nil
			}
		}
		return s, nil

	case SelectChannel:
		if !s.Authenticated() || s.SelectedGuildID == nil {
			return s, nil
		}
		// The collection may still belong to the previous guild while the
		// new guild's channels are loading
		if s.channelsGuildID != *s.SelectedGuildID {
			return s, nil
		}
		channel, ok := s.findChannel(ev.ChannelID)
		if !ok || !isConversation(channel) {
			return s, nil
		}
		s.SelectedChannelID = ptr(ev.ChannelID)
		return s, []Effect{FetchMessages{Token: *s.Token, ChannelID: ev.ChannelID}}

	// === Messages ===

	case MessagesLoaded:
		if !s.Authenticated() || !s.channelSelected(ev.ChannelID) {
			return s, nil
		}
		if ev.Err != nil {
			s.LastError = failure("Failed to load messages", ev.Err)
			return s, nil
		}
		s.Messages = ev.Messages
		s.LastError = nil
		return s, nil

	case RefreshMessages:
		if !s.Authenticated() || s.SelectedChannelID == nil {
			return s, nil
		}
		return s, []Effect{FetchMessages{Token: *s.Token, ChannelID: *s.SelectedChannelID}}

	case MessageInputChanged:
		s.MessageInput = ev.Text
		return s, nil

	case SendMessage:
		if strings.TrimSpace(s.MessageInput) == "" {
			return s, nil
		}
		if !s.Authenticated() || s.SelectedChannelID == nil {
			return s, nil
		}
		content := s.MessageInput
		// Cleared before the request completes and not restored on failure
		s.MessageInput = ""
		return s, []Effect{PostMessage{
			Token:     *s.Token,
			ChannelID: *s.SelectedChannelID,
			Content:   content,
		}}

	case MessageSent:
		if !s.Authenticated() {
			return s, nil
		}
		if ev.Err != nil {
			s.LastError = failure("Failed to send message", ev.Err)
			return s, nil
		}
		s.LastError = nil
		if s.SelectedChannelID == nil {
			return s, nil
		}
		return s, []Effect{FetchMessages{Token: *s.Token, ChannelID: *s.SelectedChannelID}}

	// === Presence ===

	case TogglePresenceMenu:
		s.PresenceMenuOpen = !s.PresenceMenuOpen
		return s, nil

	case ChangePresence:
		s.PresenceMenuOpen = false
		s.Presence = ev.Presence
		if !s.Authenticated() {
			return s, nil
		}
		return s, []Effect{UpdatePresence{Token: *s.Token, Presence: ev.Presence}}

	case PresenceChanged:
		if !s.Authenticated() {
			return s, nil
		}
		if ev.Err != nil {
			// The local presence stays as chosen
			s.LastError = failure("Failed to change status", ev.Err)
			return s, nil
		}
		s.LastError = nil
		return s, nil

	// === Overlays ===

	case OpenProfileEditor:
		if s.Identity == nil {
			return s, nil
		}
		s.Overlay = OverlayProfileEditor
		s.ViewedUser = nil
		return s, nil

	case ViewUserProfile:
		user := ev.User
		s.Overlay = OverlayUserProfile
		s.ViewedUser = &user
		return s, nil

	case CloseOverlay:
		s.Overlay = OverlayNone
		s.ViewedUser = nil
		return s, nil

	case DismissError:
		s.LastError = nil
		return s, nil
	}

	return s, nil
}

func failure(context string, err error) *string {
	return ptr(fmt.Sprintf("%s: %v", context, err))
}
