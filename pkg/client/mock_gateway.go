package client

import (
	"context"
	"sync"

	"github.com/aeolun/discordlite/pkg/protocol"
)

// MockGateway is a test implementation of GatewayInterface
type MockGateway struct {
	mu sync.RWMutex

	// Canned responses
	identity   protocol.Identity
	preference protocol.OrderingPreference
	guilds     []protocol.Guild
	channels   map[string][]protocol.Channel
	messages   map[string][]protocol.Message

	// Injected failures
	verifyErr     error
	preferenceErr error
	guildsErr     error
	channelsErr   error
	messagesErr   error
	sendErr       error
	presenceErr   error

	// Recorded calls for verification
	Calls         []string
	SentMessages  []MockSentMessage
	PresenceCalls []protocol.Presence
}

// MockSentMessage tracks messages sent via SendMessage
type MockSentMessage struct {
	Token     string
	ChannelID string
	Content   string
}

// NewMockGateway creates a mock gateway that accepts any token as identity
func NewMockGateway(identity protocol.Identity) *MockGateway {
	return &MockGateway{
		identity: identity,
		channels: make(map[string][]protocol.Channel),
		messages: make(map[string][]protocol.Message),
	}
}

func (m *MockGateway) record(op string) {
	m.Calls = append(m.Calls, op)
}

func (m *MockGateway) VerifyIdentity(ctx context.Context, token string) (protocol.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(OpVerifyIdentity)
	if m.verifyErr != nil {
		return protocol.Identity{}, m.verifyErr
	}
	return m.identity, nil
}

func (m *MockGateway) FetchOrderingPreference(ctx context.Context, token string) (protocol.OrderingPreference, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(OpFetchSettings)
	if m.preferenceErr != nil {
		return protocol.OrderingPreference{}, m.preferenceErr
	}
	return m.preference, nil
}

func (m *MockGateway) FetchGuilds(ctx context.Context, token string) ([]protocol.Guild, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(OpFetchGuilds)
	if m.guildsErr != nil {
		return nil, m.guildsErr
	}
	return append([]protocol.Guild(nil), m.guilds...), nil
}

func (m *MockGateway) FetchChannels(ctx context.Context, token, guildID string) ([]protocol.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(OpFetchChannels)
	if m.channelsErr != nil {
		return nil, m.channelsErr
	}
	return NormalizeChannels(m.channels[guildID]), nil
}

func (m *MockGateway) FetchMessages(ctx context.Context, token, channelID string) ([]protocol.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(OpFetchMessages)
	if m.messagesErr != nil {
		return nil, m.messagesErr
	}
	return append([]protocol.Message(nil), m.messages[channelID]...), nil
}

func (m *MockGateway) SendMessage(ctx context.Context, token, channelID, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(OpSendMessage)
	if m.sendErr != nil {
		return m.sendErr
	}
	m.SentMessages = append(m.SentMessages, MockSentMessage{Token: token, ChannelID: channelID, Content: content})
	return nil
}

func (m *MockGateway) UpdatePresence(ctx context.Context, token string, presence protocol.Presence) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(OpUpdatePresence)
	m.PresenceCalls = append(m.PresenceCalls, presence)
	return m.presenceErr
}

// Test helpers

// SetGuilds sets the guild list and ordering preference returned by fetches
func (m *MockGateway) SetGuilds(guilds []protocol.Guild, pref protocol.OrderingPreference) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.guilds = guilds
	m.preference = pref
}

// SetChannels sets the raw channel list for a guild
func (m *MockGateway) SetChannels(guildID string, channels []protocol.Channel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels[guildID] = channels
}

// SetMessages sets the messages, oldest first, for a channel
func (m *MockGateway) SetMessages(channelID string, messages []protocol.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[channelID] = messages
}

// SetVerifyError makes VerifyIdentity fail
func (m *MockGateway) SetVerifyError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verifyErr = err
}

// SetPreferenceError makes FetchOrderingPreference fail
func (m *MockGateway) SetPreferenceError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.preferenceErr = err
}

// SetGuildsError makes FetchGuilds fail
func (m *MockGateway) SetGuildsError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.guildsErr = err
}

// SetChannelsError makes FetchChannels fail
func (m *MockGateway) SetChannelsError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channelsErr = err
}

// SetMessagesError makes FetchMessages fail
func (m *MockGateway) SetMessagesError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messagesErr = err
}

// SetSendError makes SendMessage fail
func (m *MockGateway) SetSendError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendErr = err
}

// SetPresenceError makes UpdatePresence fail
func (m *MockGateway) SetPresenceError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.presenceErr = err
}

// CallCount returns how many times op was invoked
func (m *MockGateway) CallCount(op string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, c := range m.Calls {
		if c == op {
			n++
		}
	}
	return n
}
