package session

import (
	"errors"
	"testing"

	"github.com/aeolun/discordlite/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = protocol.Identity{ID: "u1", Username: "alice", Discriminator: "0"}

func textChannel(id string, pos int, parent *string) protocol.Channel {
	name := "chan-" + id
	return protocol.Channel{ID: id, Type: protocol.ChannelTypeGuildText, Name: &name, Position: pos, ParentID: parent}
}

func category(id string, pos int) protocol.Channel {
	name := "cat-" + id
	return protocol.Channel{ID: id, Type: protocol.ChannelTypeGuildCategory, Name: &name, Position: pos}
}

func voiceChannel(id string, pos int, parent *string) protocol.Channel {
	name := "voice-" + id
	return protocol.Channel{ID: id, Type: protocol.ChannelTypeGuildVoice, Name: &name, Position: pos, ParentID: parent}
}

// apply runs a sequence of events and returns the final state and the
// effects of the last event
func apply(s State, events ...Event) (State, []Effect) {
	var effects []Effect
	for _, ev := range events {
		s, effects = Reduce(s, ev)
	}
	return s, effects
}

func loggedIn(t *testing.T) State {
	t.Helper()
	s, effects := apply(New(),
		TokenInputChanged{Text: "tok"},
		Login{},
		LoginResult{Token: "tok", Identity: testUser},
	)
	require.Equal(t, []Effect{FetchGuilds{Token: "tok"}}, effects)
	require.True(t, s.Authenticated())
	return s
}

func inChannel(t *testing.T) State {
	t.Helper()
	s, _ := apply(loggedIn(t),
		SelectGuild{GuildID: "g1"},
		ChannelsLoaded{GuildID: "g1", Channels: []protocol.Channel{textChannel("c1", 0, nil), textChannel("c2", 1, nil)}},
		SelectChannel{ChannelID: "c1"},
		MessagesLoaded{ChannelID: "c1", Messages: []protocol.Message{{ID: "m1", Content: "hi", Author: testUser}}},
	)
	require.Equal(t, "c1", *s.SelectedChannelID)
	return s
}

func TestNewState(t *testing.T) {
	s := New()
	assert.Equal(t, PhaseUnauthenticated, s.Phase())
	assert.Equal(t, protocol.PresenceOnline, s.Presence)
	assert.False(t, s.PresenceMenuOpen)
	assert.Nil(t, s.LastError)
	assert.Equal(t, OverlayNone, s.Overlay)
}

func TestLogin(t *testing.T) {
	t.Run("empty token does nothing", func(t *testing.T) {
		s, effects := Reduce(New(), Login{})
		assert.Empty(t, effects)
		assert.Equal(t, PhaseUnauthenticated, s.Phase())
	})

	t.Run("verifies the pending token", func(t *testing.T) {
		s, effects := apply(New(), TokenInputChanged{Text: "secret"}, Login{})
		assert.Equal(t, []Effect{VerifyIdentity{Token: "secret"}}, effects)
		assert.Equal(t, PhaseAuthenticating, s.Phase())
	})

	t.Run("success stores the submitted token, not the current input", func(t *testing.T) {
		s, effects := apply(New(),
			TokenInputChanged{Text: "first"},
			Login{},
			TokenInputChanged{Text: "edited"},
			LoginResult{Token: "first", Identity: testUser},
		)
		require.NotNil(t, s.Token)
		assert.Equal(t, "first", *s.Token)
		assert.Equal(t, "edited", s.TokenInput)
		assert.Equal(t, &testUser, s.Identity)
		assert.Equal(t, []Effect{FetchGuilds{Token: "first"}}, effects)
	})

	t.Run("failure sets error and stays unauthenticated", func(t *testing.T) {
		s, effects := apply(New(),
			TokenInputChanged{Text: "bad"},
			Login{},
			LoginResult{Token: "bad", Err: errors.New("Invalid token: 401 Unauthorized")},
		)
		assert.Empty(t, effects)
		assert.Equal(t, PhaseUnauthenticated, s.Phase())
		assert.Equal(t, "Login failed: Invalid token: 401 Unauthorized", s.ErrorMessage())
	})

	t.Run("success clears a previous error", func(t *testing.T) {
		s, _ := apply(New(),
			TokenInputChanged{Text: "bad"},
			Login{},
			LoginResult{Token: "bad", Err: errors.New("nope")},
			Login{},
			LoginResult{Token: "bad", Identity: testUser},
		)
		assert.Nil(t, s.LastError)
	})

	t.Run("result after logout is ignored", func(t *testing.T) {
		s, effects := apply(New(),
			TokenInputChanged{Text: "tok"},
			Login{},
			Logout{},
			LoginResult{Token: "tok", Identity: testUser},
		)
		assert.Empty(t, effects)
		assert.False(t, s.Authenticated())
	})
}

func TestGuildsLoaded(t *testing.T) {
	guilds := []protocol.Guild{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}
	pref := &protocol.OrderingPreference{GuildPositions: []string{"b", "a"}}

	s := loggedIn(t)
	rev := s.GuildsRevision()
	s, effects := Reduce(s, GuildsLoaded{Guilds: guilds, Preference: pref})
	assert.Empty(t, effects)
	assert.Equal(t, guilds, s.Guilds, "raw order is stored")
	assert.Equal(t, []string{"b", "a"}, guildIDs(s.OrderedGuilds()))
	assert.NotEqual(t, rev, s.GuildsRevision())

	s, _ = Reduce(s, GuildsLoaded{Err: errors.New("Failed to fetch guilds: 500 Internal Server Error")})
	assert.Equal(t, guilds, s.Guilds, "a failed refresh keeps the old list")
	assert.Equal(t, "Failed to load guilds: Failed to fetch guilds: 500 Internal Server Error", s.ErrorMessage())
}

func TestGuildsLoadedWithoutPreference(t *testing.T) {
	guilds := []protocol.Guild{{ID: "b", Name: "B"}, {ID: "a", Name: "A"}}
	s, _ := Reduce(loggedIn(t), GuildsLoaded{Guilds: guilds})
	assert.Nil(t, s.LastError)
	assert.Equal(t, []string{"b", "a"}, guildIDs(s.OrderedGuilds()))
}

func TestSelectGuild(t *testing.T) {
	t.Run("requires authentication", func(t *testing.T) {
		s, effects := Reduce(New(), SelectGuild{GuildID: "g1"})
		assert.Empty(t, effects)
		assert.Nil(t, s.SelectedGuildID)
	})

	t.Run("clears channel selection and messages before the fetch completes", func(t *testing.T) {
		s := inChannel(t)
		require.NotEmpty(t, s.Messages)

		s, effects := Reduce(s, SelectGuild{GuildID: "g2"})
		assert.Equal(t, "g2", *s.SelectedGuildID)
		assert.Nil(t, s.SelectedChannelID)
		assert.Empty(t, s.Messages)
		assert.Equal(t, []Effect{FetchChannels{Token: "tok", GuildID: "g2"}}, effects)
		assert.False(t, s.ChannelsCurrent())
	})

	t.Run("channels of the previous guild cannot be selected while loading", func(t *testing.T) {
		s, _ := Reduce(inChannel(t), SelectGuild{GuildID: "g2"})
		s, effects := Reduce(s, SelectChannel{ChannelID: "c2"})
		assert.Empty(t, effects)
		assert.Nil(t, s.SelectedChannelID)
	})
}

func TestChannelsLoaded(t *testing.T) {
	t.Run("replaces the collection", func(t *testing.T) {
		s, _ := apply(loggedIn(t),
			SelectGuild{GuildID: "g1"},
			ChannelsLoaded{GuildID: "g1", Channels: []protocol.Channel{textChannel("c1", 0, nil)}},
		)
		assert.Len(t, s.Channels, 1)
		assert.True(t, s.ChannelsCurrent())
	})

	t.Run("stale result for another guild is discarded", func(t *testing.T) {
		s, _ := apply(loggedIn(t),
			SelectGuild{GuildID: "g1"},
			SelectGuild{GuildID: "g2"},
			ChannelsLoaded{GuildID: "g2", Channels: []protocol.Channel{textChannel("new", 0, nil)}},
			ChannelsLoaded{GuildID: "g1", Channels: []protocol.Channel{textChannel("old", 0, nil)}},
		)
		require.Len(t, s.Channels, 1)
		assert.Equal(t, "new", s.Channels[0].ID)
	})

	t.Run("stale failure does not set the error", func(t *testing.T) {
		s, _ := apply(loggedIn(t),
			SelectGuild{GuildID: "g1"},
			SelectGuild{GuildID: "g2"},
			ChannelsLoaded{GuildID: "g1", Err: errors.New("boom")},
		)
		assert.Nil(t, s.LastError)
	})

	t.Run("failure keeps existing channels", func(t *testing.T) {
		s := inChannel(t)
		s, _ = Reduce(s, ChannelsLoaded{GuildID: "g1", Err: errors.New("Network error: timeout")})
		assert.Len(t, s.Channels, 2)
		assert.Equal(t, "Failed to load channels: Network error: timeout", s.ErrorMessage())
	})

	t.Run("selection is cleared when the channel disappears", func(t *testing.T) {
		s := inChannel(t)
		s, _ = Reduce(s, ChannelsLoaded{GuildID: "g1", Channels: []protocol.Channel{textChannel("c2", 0, nil)}})
		assert.Nil(t, s.SelectedChannelID)
		assert.Empty(t, s.Messages)
	})
}

func TestSelectChannel(t *testing.T) {
	withChannels := func(t *testing.T) State {
		s, _ := apply(loggedIn(t),
			SelectGuild{GuildID: "g1"},
			ChannelsLoaded{GuildID: "g1", Channels: []protocol.Channel{
				category("cat", 0),
				textChannel("c1", 0, ptr("cat")),
				voiceChannel("v1", 1, ptr("cat")),
			}},
		)
		return s
	}

	tests := []struct {
		name      string
		channelID string
		selected  bool
	}{
		{"text channel", "c1", true},
		{"voice channel", "v1", true},
		{"category", "cat", false},
		{"unknown id", "nope", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, effects := Reduce(withChannels(t), SelectChannel{ChannelID: tt.channelID})
			if !tt.selected {
				assert.Empty(t, effects)
				assert.Nil(t, s.SelectedChannelID)
				return
			}
			require.NotNil(t, s.SelectedChannelID)
			assert.Equal(t, tt.channelID, *s.SelectedChannelID)
			assert.Equal(t, []Effect{FetchMessages{Token: "tok", ChannelID: tt.channelID}}, effects)
		})
	}

	t.Run("requires a selected guild", func(t *testing.T) {
		s, effects := Reduce(loggedIn(t), SelectChannel{ChannelID: "c1"})
		assert.Empty(t, effects)
		assert.Nil(t, s.SelectedChannelID)
	})
}

func TestMessagesLoaded(t *testing.T) {
	t.Run("stale result for another channel is discarded", func(t *testing.T) {
		s, _ := apply(inChannel(t),
			SelectChannel{ChannelID: "c2"},
			MessagesLoaded{ChannelID: "c1", Messages: []protocol.Message{{ID: "late"}}},
		)
		for _, m := range s.Messages {
			assert.NotEqual(t, "late", m.ID)
		}
	})

	t.Run("failure keeps existing messages", func(t *testing.T) {
		s, _ := Reduce(inChannel(t), MessagesLoaded{ChannelID: "c1", Err: errors.New("x")})
		assert.Len(t, s.Messages, 1)
		assert.Equal(t, "Failed to load messages: x", s.ErrorMessage())
	})

	t.Run("refresh re-fetches the selected channel", func(t *testing.T) {
		_, effects := Reduce(inChannel(t), RefreshMessages{})
		assert.Equal(t, []Effect{FetchMessages{Token: "tok", ChannelID: "c1"}}, effects)
	})
}

func TestSendMessage(t *testing.T) {
	t.Run("blank input is ignored", func(t *testing.T) {
		s, effects := apply(inChannel(t), MessageInputChanged{Text: "   \t"}, SendMessage{})
		assert.Empty(t, effects)
		assert.Equal(t, "   \t", s.MessageInput)
	})

	t.Run("requires a selected channel", func(t *testing.T) {
		s, effects := apply(loggedIn(t), MessageInputChanged{Text: "hello"}, SendMessage{})
		assert.Empty(t, effects)
		assert.Equal(t, "hello", s.MessageInput)
	})

	t.Run("clears the input and sends the untrimmed content", func(t *testing.T) {
		s, effects := apply(inChannel(t), MessageInputChanged{Text: " hello "}, SendMessage{})
		assert.Empty(t, s.MessageInput)
		assert.Equal(t, []Effect{PostMessage{Token: "tok", ChannelID: "c1", Content: " hello "}}, effects)
		assert.Len(t, s.Messages, 1, "no optimistic insert")
	})

	t.Run("success re-fetches the current channel", func(t *testing.T) {
		s, _ := apply(inChannel(t), MessageInputChanged{Text: "hello"}, SendMessage{})
		s.LastError = ptr("old")
		s, effects := Reduce(s, MessageSent{ChannelID: "c1"})
		assert.Nil(t, s.LastError)
		assert.Equal(t, []Effect{FetchMessages{Token: "tok", ChannelID: "c1"}}, effects)
	})

	t.Run("success re-fetches the channel selected now", func(t *testing.T) {
		s, _ := apply(inChannel(t), MessageInputChanged{Text: "hello"}, SendMessage{}, SelectChannel{ChannelID: "c2"})
		_, effects := Reduce(s, MessageSent{ChannelID: "c1"})
		assert.Equal(t, []Effect{FetchMessages{Token: "tok", ChannelID: "c2"}}, effects)
	})

	t.Run("failure keeps the input cleared and does not re-fetch", func(t *testing.T) {
		s, _ := apply(inChannel(t), MessageInputChanged{Text: "hello"}, SendMessage{})
		s, effects := Reduce(s, MessageSent{ChannelID: "c1", Err: errors.New("Failed to send message: 403 Forbidden")})
		assert.Empty(t, effects)
		assert.Empty(t, s.MessageInput)
		assert.Equal(t, "Failed to send message: Failed to send message: 403 Forbidden", s.ErrorMessage())
	})
}

func TestPresence(t *testing.T) {
	t.Run("toggle flips the menu", func(t *testing.T) {
		s, _ := Reduce(New(), TogglePresenceMenu{})
		assert.True(t, s.PresenceMenuOpen)
		s, _ = Reduce(s, TogglePresenceMenu{})
		assert.False(t, s.PresenceMenuOpen)
	})

	t.Run("change is optimistic and closes the menu", func(t *testing.T) {
		s, effects := apply(loggedIn(t), TogglePresenceMenu{}, ChangePresence{Presence: protocol.PresenceIdle})
		assert.False(t, s.PresenceMenuOpen)
		assert.Equal(t, protocol.PresenceIdle, s.Presence)
		assert.Equal(t, []Effect{UpdatePresence{Token: "tok", Presence: protocol.PresenceIdle}}, effects)
	})

	t.Run("failure does not roll back", func(t *testing.T) {
		s, _ := apply(loggedIn(t),
			ChangePresence{Presence: protocol.PresenceDoNotDisturb},
			PresenceChanged{Presence: protocol.PresenceDoNotDisturb, Err: errors.New("x")},
		)
		assert.Equal(t, protocol.PresenceDoNotDisturb, s.Presence)
		assert.Equal(t, "Failed to change status: x", s.ErrorMessage())
	})

	t.Run("unauthenticated change is local only", func(t *testing.T) {
		s, effects := Reduce(New(), ChangePresence{Presence: protocol.PresenceInvisible})
		assert.Empty(t, effects)
		assert.Equal(t, protocol.PresenceInvisible, s.Presence)
	})
}

func TestErrorSlotIsShared(t *testing.T) {
	s, _ := apply(inChannel(t),
		ChangePresence{Presence: protocol.PresenceIdle},
		PresenceChanged{Err: errors.New("x")},
		MessagesLoaded{ChannelID: "c1", Messages: nil},
	)
	assert.Nil(t, s.LastError, "an unrelated success clears the error")
}

func TestOverlays(t *testing.T) {
	base := inChannel(t)

	s, _ := Reduce(base, OpenProfileEditor{})
	assert.Equal(t, OverlayProfileEditor, s.Overlay)

	s, _ = Reduce(s, CloseOverlay{})
	assert.Equal(t, base, s, "closing returns to the prior state")

	author := protocol.Identity{ID: "u2", Username: "bob"}
	s, _ = Reduce(base, ViewUserProfile{User: author})
	assert.Equal(t, OverlayUserProfile, s.Overlay)
	assert.Equal(t, &author, s.ViewedUser)
	assert.Equal(t, base.SelectedChannelID, s.SelectedChannelID)

	s, _ = Reduce(s, CloseOverlay{})
	assert.Equal(t, base, s)

	s, _ = Reduce(New(), OpenProfileEditor{})
	assert.Equal(t, OverlayNone, s.Overlay, "no profile to edit before login")
}

func TestLogout(t *testing.T) {
	s, effects := Reduce(inChannel(t), Logout{})
	assert.Empty(t, effects)

	want := New()
	want.TokenInput = "tok"
	assert.Equal(t, want, s)
	assert.False(t, s.Authenticated())
	assert.Nil(t, s.Token)
	assert.Nil(t, s.Identity)
}

func TestLogoutKeepsTokenInputForRelogin(t *testing.T) {
	s, _ := apply(New(),
		TokenInputChanged{Text: "tok"},
		Login{},
		LoginResult{Token: "tok", Identity: testUser},
		Logout{},
	)
	assert.Equal(t, "tok", s.TokenInput)
	assert.Equal(t, PhaseUnauthenticated, s.Phase())

	s, effects := Reduce(s, Login{})
	assert.Equal(t, []Effect{VerifyIdentity{Token: "tok"}}, effects)
	assert.Equal(t, PhaseAuthenticating, s.Phase())
}

func TestResultsIgnoredAfterLogout(t *testing.T) {
	loggedOut, _ := Reduce(inChannel(t), Logout{})

	late := []Event{
		GuildsLoaded{Guilds: []protocol.Guild{{ID: "g1", Name: "G"}}},
		GuildsLoaded{Err: errors.New("boom")},
		ChannelsLoaded{GuildID: "g1", Channels: []protocol.Channel{textChannel("c1", 0, nil)}},
		MessagesLoaded{ChannelID: "c1", Err: errors.New("boom")},
		MessageSent{ChannelID: "c1", Err: errors.New("boom")},
		PresenceChanged{Presence: protocol.PresenceIdle, Err: errors.New("boom")},
	}
	for _, ev := range late {
		s, effects := Reduce(loggedOut, ev)
		assert.Empty(t, effects, "%T", ev)
		assert.Equal(t, loggedOut, s, "%T", ev)
	}
}

func TestDismissError(t *testing.T) {
	s, _ := apply(New(), TokenInputChanged{Text: "x"}, Login{}, LoginResult{Err: errors.New("no")})
	require.NotNil(t, s.LastError)
	s, _ = Reduce(s, DismissError{})
	assert.Nil(t, s.LastError)
}

func guildIDs(guilds []protocol.Guild) []string {
	ids := make([]string, len(guilds))
	for i, g := range guilds {
		ids[i] = g.ID
	}
	return ids
}
