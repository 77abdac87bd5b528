package client

import (
	"sort"

	"github.com/aeolun/discordlite/pkg/protocol"
)

// NormalizeChannels keeps text, voice and category channels and sorts them
// by position. The sort is stable: channels sharing a position stay in the
// order the platform returned them.
func NormalizeChannels(channels []protocol.Channel) []protocol.Channel {
	kept := make([]protocol.Channel, 0, len(channels))
	for _, c := range channels {
		switch c.Kind() {
		case protocol.ChannelKindText, protocol.ChannelKindVoice, protocol.ChannelKindCategory:
			kept = append(kept, c)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Position < kept[j].Position
	})
	return kept
}

// ChronologicalMessages reverses the platform's newest-first order
func ChronologicalMessages(messages []protocol.Message) []protocol.Message {
	out := make([]protocol.Message, len(messages))
	for i, m := range messages {
		out[len(messages)-1-i] = m
	}
	return out
}
