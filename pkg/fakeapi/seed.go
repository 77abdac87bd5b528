package fakeapi

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/aeolun/discordlite/pkg/protocol"
)

//go:embed default_seed.toml
var defaultSeed string

// Seed is the TOML fixture a Store is built from
type Seed struct {
	Users  []SeedUser  `toml:"users"`
	Guilds []SeedGuild `toml:"guilds"`
}

// SeedUser is an account and its settings
type SeedUser struct {
	Token          string       `toml:"token"`
	ID             string       `toml:"id"`
	Username       string       `toml:"username"`
	Discriminator  string       `toml:"discriminator"`
	GlobalName     string       `toml:"global_name"`
	Status         string       `toml:"status"`
	GuildPositions []string     `toml:"guild_positions"`
	Folders        []SeedFolder `toml:"folders"`
}

type SeedFolder struct {
	Name     string   `toml:"name"`
	GuildIDs []string `toml:"guild_ids"`
}

type SeedGuild struct {
	ID       string        `toml:"id"`
	Name     string        `toml:"name"`
	Channels []SeedChannel `toml:"channels"`
}

type SeedChannel struct {
	ID       string        `toml:"id"`
	Type     int           `toml:"type"`
	Name     string        `toml:"name"`
	Position int           `toml:"position"`
	ParentID string        `toml:"parent_id"`
	Messages []SeedMessage `toml:"messages"`
}

type SeedMessage struct {
	ID        string `toml:"id"`
	Author    string `toml:"author"` // user id
	Content   string `toml:"content"`
	Timestamp string `toml:"timestamp"`
}

// DefaultSeed returns the built-in fixture
func DefaultSeed() (*Seed, error) {
	return ParseSeed(defaultSeed)
}

// ParseSeed decodes a TOML fixture
func ParseSeed(data string) (*Seed, error) {
	var seed Seed
	if _, err := toml.Decode(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}
	if err := seed.validate(); err != nil {
		return nil, err
	}
	return &seed, nil
}

// LoadSeed reads a fixture file. An empty path selects the built-in seed.
func LoadSeed(path string) (*Seed, error) {
	if path == "" {
		return DefaultSeed()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(string(data))
}

func (s *Seed) validate() error {
	tokens := make(map[string]bool)
	for _, u := range s.Users {
		if u.Token == "" || u.ID == "" {
			return fmt.Errorf("seed user %q needs a token and an id", u.Username)
		}
		if tokens[u.Token] {
			return fmt.Errorf("duplicate seed token for user %q", u.Username)
		}
		tokens[u.Token] = true
		if u.Status != "" {
			if _, err := protocol.ParsePresence(u.Status); err != nil {
				return fmt.Errorf("seed user %q: %w", u.Username, err)
			}
		}
	}
	channels := make(map[string]bool)
	for _, g := range s.Guilds {
		if g.ID == "" {
			return fmt.Errorf("seed guild %q has no id", g.Name)
		}
		for _, c := range g.Channels {
			if channels[c.ID] {
				return fmt.Errorf("duplicate seed channel id %q", c.ID)
			}
			channels[c.ID] = true
		}
	}
	return nil
}

// Build creates a store holding the fixture
func (s *Seed) Build() *Store {
	store := NewStore()

	authors := make(map[string]protocol.Identity)
	for _, u := range s.Users {
		user := protocol.Identity{
			ID:            u.ID,
			Username:      u.Username,
			Discriminator: u.Discriminator,
			GlobalName:    optional(u.GlobalName),
		}
		if user.Discriminator == "" {
			user.Discriminator = "0"
		}
		authors[u.ID] = user

		settings := Settings{Status: u.Status}
		settings.GuildPositions = u.GuildPositions
		for _, f := range u.Folders {
			settings.GuildFolders = append(settings.GuildFolders, protocol.GuildFolder{
				GuildIDs: f.GuildIDs,
				Name:     optional(f.Name),
			})
		}
		store.AddUser(u.Token, user, settings)
	}

	for _, g := range s.Guilds {
		channels := make([]protocol.Channel, 0, len(g.Channels))
		for _, c := range g.Channels {
			channels = append(channels, protocol.Channel{
				ID:       c.ID,
				Type:     c.Type,
				Name:     optional(c.Name),
				Position: c.Position,
				ParentID: optional(c.ParentID),
			})
		}
		store.AddGuild(protocol.Guild{ID: g.ID, Name: g.Name}, channels)

		for _, c := range g.Channels {
			for i, m := range c.Messages {
				author, ok := authors[m.Author]
				if !ok {
					author = protocol.Identity{ID: m.Author, Username: m.Author, Discriminator: "0"}
				}
				id := m.ID
				if id == "" {
					id = fmt.Sprintf("%s-%d", c.ID, i+1)
				}
				store.AddMessage(c.ID, protocol.Message{
					ID:        id,
					Content:   m.Content,
					Author:    author,
					Timestamp: m.Timestamp,
				})
			}
		}
	}
	return store
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
