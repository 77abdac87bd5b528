package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/aeolun/discordlite/pkg/protocol"
)

func TestNormalizeChannels(t *testing.T) {
	channels := []protocol.Channel{
		{ID: "a", Type: protocol.ChannelTypeGuildText, Position: 2},
		{ID: "thread", Type: 11, Position: 0},
		{ID: "b", Type: protocol.ChannelTypeGuildCategory, Position: 1},
		{ID: "c", Type: protocol.ChannelTypeGuildVoice, Position: 1},
		{ID: "stage", Type: 13, Position: 1},
	}

	got := NormalizeChannels(channels)

	ids := make([]string, len(got))
	for i, c := range got {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{"b", "c", "a"}, ids)
	assert.Len(t, channels, 5, "input must not be modified")
}

func TestNormalizeChannelsEmpty(t *testing.T) {
	assert.Empty(t, NormalizeChannels(nil))
}

func TestNormalizeChannelsProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 30).Draw(t, "n")
		channels := make([]protocol.Channel, n)
		for i := range channels {
			channels[i] = protocol.Channel{
				ID:       string(rune('a' + i)),
				Type:     rapid.SampledFrom([]int{0, 2, 4, 5, 11, 13, 15}).Draw(t, "type"),
				Position: rapid.IntRange(0, 5).Draw(t, "position"),
			}
		}

		got := NormalizeChannels(channels)
		for i, c := range got {
			if c.Kind() == protocol.ChannelKindOther {
				t.Fatalf("kept channel %s of type %d", c.ID, c.Type)
			}
			if i > 0 && got[i-1].Position > c.Position {
				t.Fatalf("not sorted at %d", i)
			}
			if i > 0 && got[i-1].Position == c.Position && got[i-1].ID > c.ID {
				t.Fatalf("tie at position %d lost fetch order", c.Position)
			}
		}
	})
}

func TestChronologicalMessages(t *testing.T) {
	in := []protocol.Message{{ID: "3"}, {ID: "2"}, {ID: "1"}}
	got := ChronologicalMessages(in)
	assert.Equal(t, []protocol.Message{{ID: "1"}, {ID: "2"}, {ID: "3"}}, got)
	assert.Equal(t, "3", in[0].ID)
	assert.Empty(t, ChronologicalMessages(nil))
}
