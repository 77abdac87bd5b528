// Package fakeapi is an in-memory stand-in for the platform's REST API. It
// serves the handful of endpoints the client uses and is driven by a TOML
// seed file.
package fakeapi

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aeolun/discordlite/pkg/protocol"
)

// TimestampLayout matches the platform's message timestamps
const TimestampLayout = "2006-01-02T15:04:05.000000-07:00"

var (
	ErrUnknownToken   = errors.New("unknown token")
	ErrUnknownGuild   = errors.New("unknown guild")
	ErrUnknownChannel = errors.New("unknown channel")
	ErrNotTextChannel = errors.New("channel does not accept messages")
	ErrEmptyMessage   = errors.New("cannot send an empty message")
)

// Settings is what GET /users/@me/settings returns
type Settings struct {
	protocol.OrderingPreference
	Status string `json:"status"`
}

// Store holds users, guilds, channels and messages in memory
type Store struct {
	mu sync.RWMutex

	users    map[string]protocol.Identity // token -> user
	settings map[string]*Settings         // user id -> settings
	guilds   []protocol.Guild
	channels map[string][]protocol.Channel // guild id -> channels, as seeded
	messages map[string][]protocol.Message // channel id -> messages, oldest first

	// Indexes
	channelGuild map[string]string // channel id -> guild id

	now func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		users:        make(map[string]protocol.Identity),
		settings:     make(map[string]*Settings),
		channels:     make(map[string][]protocol.Channel),
		messages:     make(map[string][]protocol.Message),
		channelGuild: make(map[string]string),
		now:          time.Now,
	}
}

// AddUser registers a user reachable with token
func (s *Store) AddUser(token string, user protocol.Identity, settings Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[token] = user
	if settings.Status == "" {
		settings.Status = protocol.PresenceOnline.Token()
	}
	s.settings[user.ID] = &settings
}

// AddGuild adds a guild and its channels. Every user is a member.
func (s *Store) AddGuild(guild protocol.Guild, channels []protocol.Channel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guilds = append(s.guilds, guild)
	s.channels[guild.ID] = append(s.channels[guild.ID], channels...)
	for _, c := range channels {
		s.channelGuild[c.ID] = guild.ID
	}
}

// AddMessage appends an existing message to a channel's history
func (s *Store) AddMessage(channelID string, msg protocol.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[channelID] = append(s.messages[channelID], msg)
}

// Authenticate resolves a token to its user
func (s *Store) Authenticate(token string) (protocol.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[token]
	if !ok {
		return protocol.Identity{}, ErrUnknownToken
	}
	return user, nil
}

// Settings returns a copy of the user's settings
func (s *Store) Settings(userID string) Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.settings[userID]; ok {
		return *st
	}
	return Settings{Status: protocol.PresenceOnline.Token()}
}

// SetStatus records a new presence for the user
func (s *Store) SetStatus(userID string, presence protocol.Presence) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.settings[userID]
	if !ok {
		st = &Settings{}
		s.settings[userID] = st
	}
	st.Status = presence.Token()
}

// Guilds returns every guild in insertion order
func (s *Store) Guilds() []protocol.Guild {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]protocol.Guild(nil), s.guilds...)
}

// Channels returns a guild's channels unsorted and unfiltered, like the
// platform does
func (s *Store) Channels(guildID string) ([]protocol.Channel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasGuild(guildID) {
		return nil, ErrUnknownGuild
	}
	return append([]protocol.Channel{}, s.channels[guildID]...), nil
}

// RecentMessages returns up to limit messages, newest first
func (s *Store) RecentMessages(channelID string, limit int) ([]protocol.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.channelGuild[channelID]; !ok {
		return nil, ErrUnknownChannel
	}
	history := s.messages[channelID]
	if limit > len(history) {
		limit = len(history)
	}
	out := make([]protocol.Message, 0, limit)
	for i := len(history) - 1; i >= len(history)-limit; i-- {
		out = append(out, history[i])
	}
	return out, nil
}

// PostMessage stores a new message from author
func (s *Store) PostMessage(author protocol.Identity, channelID, content string) (protocol.Message, error) {
	if content == "" {
		return protocol.Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.findChannel(channelID)
	if !ok {
		return protocol.Message{}, ErrUnknownChannel
	}
	if ch.Kind() != protocol.ChannelKindText {
		return protocol.Message{}, ErrNotTextChannel
	}

	msg := protocol.Message{
		ID:        uuid.NewString(),
		Content:   content,
		Author:    author,
		Timestamp: s.now().UTC().Format(TimestampLayout),
	}
	s.messages[channelID] = append(s.messages[channelID], msg)
	return msg, nil
}

// Stats reports the number of guilds, channels and messages
func (s *Store) Stats() (guilds, channels, messages int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, cs := range s.channels {
		channels += len(cs)
	}
	for _, ms := range s.messages {
		messages += len(ms)
	}
	return len(s.guilds), channels, messages
}

// Tokens lists the known tokens, sorted
func (s *Store) Tokens() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tokens := make([]string, 0, len(s.users))
	for t := range s.users {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}

func (s *Store) hasGuild(id string) bool {
	for _, g := range s.guilds {
		if g.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) findChannel(id string) (protocol.Channel, bool) {
	guildID, ok := s.channelGuild[id]
	if !ok {
		return protocol.Channel{}, false
	}
	for _, c := range s.channels[guildID] {
		if c.ID == id {
			return c, true
		}
	}
	return protocol.Channel{}, false
}
