package session

import (
	"sort"

	"github.com/aeolun/discordlite/pkg/protocol"
)

// ChannelNode is one row of the channel sidebar
type ChannelNode struct {
	Channel protocol.Channel
	// Header is true for category rows, which group but cannot be selected
	Header bool
	// Depth is 1 for channels inside a category, 0 otherwise
	Depth int
}

// Selectable reports whether the row can be opened as a conversation
func (n ChannelNode) Selectable() bool {
	return !n.Header && isConversation(n.Channel)
}

// BuildChannelTree lays a guild's channels out for display: parentless text
// and voice channels first in collection order, then every category in
// collection order, each followed by its text and voice children sorted by
// position. Channels whose parent is not a category in the collection are
// left out. The function has no side effects and does not modify channels.
func BuildChannelTree(channels []protocol.Channel) []ChannelNode {
	categories := make(map[string]bool)
	for _, c := range channels {
		if c.Kind() == protocol.ChannelKindCategory {
			categories[c.ID] = true
		}
	}

	nodes := make([]ChannelNode, 0, len(channels))
	children := make(map[string][]protocol.Channel)
	for _, c := range channels {
		if !isConversation(c) {
			continue
		}
		parent := c.Parent()
		switch {
		case parent == "":
			nodes = append(nodes, ChannelNode{Channel: c})
		case categories[parent]:
			children[parent] = append(children[parent], c)
		}
		// orphans fall through and are not rendered
	}

	for _, c := range channels {
		if c.Kind() != protocol.ChannelKindCategory {
			continue
		}
		nodes = append(nodes, ChannelNode{Channel: c, Header: true})
		group := children[c.ID]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Position < group[j].Position
		})
		for _, child := range group {
			nodes = append(nodes, ChannelNode{Channel: child, Depth: 1})
		}
	}
	return nodes
}

func isConversation(c protocol.Channel) bool {
	kind := c.Kind()
	return kind == protocol.ChannelKindText || kind == protocol.ChannelKindVoice
}
