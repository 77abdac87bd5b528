// Package protocol defines the platform's REST resources as the client sees
// them: users, guilds, channels, messages and the user's settings.
package protocol

import (
	"encoding/json"
	"strings"
)

// Identity is a user record. The logged-in user and message authors share it.
type Identity struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	Discriminator string  `json:"discriminator"`
	GlobalName    *string `json:"global_name,omitempty"`
	Avatar        *string `json:"avatar,omitempty"`
}

// DisplayName returns the global name when set, otherwise the username
func (i Identity) DisplayName() string {
	if i.GlobalName != nil && strings.TrimSpace(*i.GlobalName) != "" {
		return *i.GlobalName
	}
	return i.Username
}

// Tag returns username#discriminator, or just the username for accounts
// migrated to unique usernames (discriminator "0")
func (i Identity) Tag() string {
	if i.Discriminator == "" || i.Discriminator == "0" {
		return i.Username
	}
	return i.Username + "#" + i.Discriminator
}

// Guild is a server the user is a member of
type Guild struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Icon *string `json:"icon,omitempty"`
}

// Valid reports whether the guild has a displayable name.
// Invalid guilds are hidden from listings but still take part in ordering.
func (g Guild) Valid() bool {
	return strings.TrimSpace(g.Name) != ""
}

// ChannelKind is the client's view of a channel type
type ChannelKind int

const (
	ChannelKindOther ChannelKind = iota
	ChannelKindText
	ChannelKindVoice
	ChannelKindCategory
)

// Platform channel type codes
const (
	ChannelTypeGuildText     = 0
	ChannelTypeGuildVoice    = 2
	ChannelTypeGuildCategory = 4
)

// String returns the string representation of the channel kind
func (k ChannelKind) String() string {
	switch k {
	case ChannelKindText:
		return "text"
	case ChannelKindVoice:
		return "voice"
	case ChannelKindCategory:
		return "category"
	default:
		return "other"
	}
}

// KindForType maps a wire channel type to a ChannelKind
func KindForType(channelType int) ChannelKind {
	switch channelType {
	case ChannelTypeGuildText:
		return ChannelKindText
	case ChannelTypeGuildVoice:
		return ChannelKindVoice
	case ChannelTypeGuildCategory:
		return ChannelKindCategory
	default:
		return ChannelKindOther
	}
}

// Channel is a conversation or category inside a guild
type Channel struct {
	ID       string  `json:"id"`
	Type     int     `json:"type"`
	Name     *string `json:"name,omitempty"`
	Position int     `json:"position"`
	ParentID *string `json:"parent_id,omitempty"`
}

// Kind returns the channel's kind. Unknown wire types are reported as
// ChannelKindOther; Type still holds the raw value.
func (c Channel) Kind() ChannelKind {
	return KindForType(c.Type)
}

// DisplayName returns the channel name or "Unknown" when it has none
func (c Channel) DisplayName() string {
	if c.Name == nil {
		return "Unknown"
	}
	return *c.Name
}

// Parent returns the parent category id, or "" for top-level channels
func (c Channel) Parent() string {
	if c.ParentID == nil {
		return ""
	}
	return *c.ParentID
}

// Message is a chat message. Timestamp is kept as the ISO-8601 string the
// platform sent; it is never parsed.
type Message struct {
	ID        string   `json:"id"`
	Content   string   `json:"content"`
	Author    Identity `json:"author"`
	Timestamp string   `json:"timestamp"`
}

// GuildFolder groups guild ids in the user's sidebar
type GuildFolder struct {
	GuildIDs []string        `json:"guild_ids"`
	ID       json.RawMessage `json:"id,omitempty"`
	Name     *string         `json:"name,omitempty"`
}

// OrderingPreference is the subset of the user's settings that decides
// guild order
type OrderingPreference struct {
	GuildPositions []string      `json:"guild_positions"`
	GuildFolders   []GuildFolder `json:"guild_folders"`
}

// OrderedGuildIDs flattens the folders in folder order, then intra-folder
// order. The legacy flat positions are used only when that yields nothing.
func (p OrderingPreference) OrderedGuildIDs() []string {
	var ids []string
	for _, folder := range p.GuildFolders {
		ids = append(ids, folder.GuildIDs...)
	}
	if len(ids) == 0 {
		ids = append(ids, p.GuildPositions...)
	}
	return ids
}

// SendMessageRequest is the body of a message post
type SendMessageRequest struct {
	Content string `json:"content"`
}

// UpdateSettingsRequest is the body of a settings patch. Only the status is
// ever sent by the client.
type UpdateSettingsRequest struct {
	Status string `json:"status"`
}
