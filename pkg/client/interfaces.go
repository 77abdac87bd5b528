package client

import (
	"context"

	"github.com/aeolun/discordlite/pkg/protocol"
)

// GatewayInterface defines the platform operations the client needs.
// This allows for mocking in tests while HTTPGateway talks to the real API.
// Every failure is returned as a *RequestError whose message is safe to show.
type GatewayInterface interface {
	// Identity
	VerifyIdentity(ctx context.Context, token string) (protocol.Identity, error)
	FetchOrderingPreference(ctx context.Context, token string) (protocol.OrderingPreference, error)

	// Collections
	FetchGuilds(ctx context.Context, token string) ([]protocol.Guild, error)
	// FetchChannels returns only text, voice and category channels, sorted
	// by position with ties in fetch order
	FetchChannels(ctx context.Context, token, guildID string) ([]protocol.Channel, error)
	// FetchMessages returns messages oldest first
	FetchMessages(ctx context.Context, token, channelID string) ([]protocol.Message, error)

	// Writes
	SendMessage(ctx context.Context, token, channelID, content string) error
	UpdatePresence(ctx context.Context, token string, presence protocol.Presence) error
}
