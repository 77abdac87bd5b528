package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/aeolun/discordlite/pkg/client"
	"github.com/aeolun/discordlite/pkg/client/ui/modal"
	"github.com/aeolun/discordlite/pkg/protocol"
)

const testToken = "test-token"

func strPtr(s string) *string {
	return &s
}

// testIdentity is the user every mock gateway logs in as
func testIdentity() protocol.Identity {
	return protocol.Identity{ID: "100", Username: "dev", Discriminator: "0", GlobalName: strPtr("Developer")}
}

// NewTestGateway returns a mock with two guilds, one of them with channels
// and messages. The preference puts "Day Job" before "Gophers".
func NewTestGateway() *client.MockGateway {
	gw := client.NewMockGateway(testIdentity())
	gw.SetGuilds(
		[]protocol.Guild{{ID: "300", Name: "Gophers"}, {ID: "200", Name: "Day Job"}},
		protocol.OrderingPreference{GuildFolders: []protocol.GuildFolder{
			{GuildIDs: []string{"200"}},
			{GuildIDs: []string{"300"}},
		}},
	)
	gw.SetChannels("300", []protocol.Channel{
		CreateTestChannel("310", protocol.ChannelTypeGuildCategory, "General", 0, ""),
		CreateTestChannel("311", protocol.ChannelTypeGuildText, "chat", 1, "310"),
		CreateTestChannel("314", protocol.ChannelTypeGuildText, "random", 2, ""),
		CreateTestChannel("313", protocol.ChannelTypeGuildVoice, "Lounge", 3, "310"),
	})
	gw.SetMessages("314", []protocol.Message{
		CreateTestMessage("1", "alice", "hello"),
		CreateTestMessage("2", "bob", "hi **there**"),
	})
	return gw
}

// NewTestModel creates a Model over gw with logging and notifications off
func NewTestModel(gw client.GatewayInterface) Model {
	return NewModel(gw, Options{
		Logger:  zerolog.Nop(),
		Version: "0.0.0-test",
	})
}

// SetupTestModelWithDimensions creates a test model with window dimensions set
func SetupTestModelWithDimensions(gw client.GatewayInterface, width, height int) Model {
	next, _ := NewTestModel(gw).Update(tea.WindowSizeMsg{Width: width, Height: height})
	return next.(Model)
}

// LoggedInModel returns a sized model that has completed login and loaded
// its guilds
func LoggedInModel(t *testing.T, gw client.GatewayInterface) Model {
	t.Helper()
	m := SetupTestModelWithDimensions(gw, 120, 40)
	m = send(t, m, typeText(testToken)...)
	return press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

// CreateTestChannel builds a channel; parent "" means top level
func CreateTestChannel(id string, channelType int, name string, position int, parent string) protocol.Channel {
	c := protocol.Channel{ID: id, Type: channelType, Name: strPtr(name), Position: position}
	if parent != "" {
		c.ParentID = strPtr(parent)
	}
	return c
}

// CreateTestMessage builds a message authored by a user named author
func CreateTestMessage(id, author, content string) protocol.Message {
	return protocol.Message{
		ID:        id,
		Content:   content,
		Author:    protocol.Identity{ID: "u-" + author, Username: author, Discriminator: "0"},
		Timestamp: "2024-03-01T12:34:56.000000+00:00",
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, runes(string(r)))
	}
	return msgs
}

// press feeds one message and drains the commands it produces
func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	return drain(t, next.(Model), cmd)
}

// send feeds messages without running their commands. Key presses that
// reach a text input return cursor blink commands that would sleep.
func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

// drain runs cmd and everything it leads to, feeding effect and modal
// results back into the model. Timers and blinks are dropped.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 1000 {
			t.Fatal("drain: command loop did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case EffectMsg, modal.EventMsg, notifiedMsg:
			next, more := m.Update(msg)
			m = next.(Model)
			queue = append(queue, more)
		}
	}
	return m
}
