package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/aeolun/discordlite/pkg/client"
	"github.com/aeolun/discordlite/pkg/protocol"
	"github.com/aeolun/discordlite/pkg/session"
)

// runEffects turns reducer effects into commands. Each command performs one
// request and reports back with an EffectMsg.
func (m Model) runEffects(effects []session.Effect) tea.Cmd {
	if len(effects) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, eff := range effects {
		cmds = append(cmds, m.runEffect(eff))
	}
	return tea.Batch(cmds...)
}

func (m Model) runEffect(eff session.Effect) tea.Cmd {
	gw := m.gateway
	logger := m.logger.With().Str("effect", eff.Op()).Logger()
	parent := m.ctx
	timeout := m.opts.RequestTimeout

	return func() tea.Msg {
		ctx := parent
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(parent, timeout)
			defer cancel()
		}

		start := time.Now()
		ev := execute(ctx, gw, logger, eff)
		logResult(logger, ev, time.Since(start))
		return EffectMsg{Event: ev}
	}
}

func execute(ctx context.Context, gw client.GatewayInterface, logger zerolog.Logger, eff session.Effect) session.Event {
	switch e := eff.(type) {
	case session.VerifyIdentity:
		me, err := gw.VerifyIdentity(ctx, e.Token)
		return session.LoginResult{Token: e.Token, Identity: me, Err: err}

	case session.FetchGuilds:
		guilds, err := gw.FetchGuilds(ctx, e.Token)
		if err != nil {
			return session.GuildsLoaded{Err: err}
		}
		// A missing preference only loses the custom order
		var pref *protocol.OrderingPreference
		if p, perr := gw.FetchOrderingPreference(ctx, e.Token); perr != nil {
			logger.Warn().Err(perr).Str("kind", client.Kind(perr)).Msg("guild ordering unavailable, using platform order")
		} else {
			pref = &p
		}
		return session.GuildsLoaded{Guilds: guilds, Preference: pref}

	case session.FetchChannels:
		channels, err := gw.FetchChannels(ctx, e.Token, e.GuildID)
		return session.ChannelsLoaded{GuildID: e.GuildID, Channels: channels, Err: err}

	case session.FetchMessages:
		messages, err := gw.FetchMessages(ctx, e.Token, e.ChannelID)
		return session.MessagesLoaded{ChannelID: e.ChannelID, Messages: messages, Err: err}

	case session.PostMessage:
		err := gw.SendMessage(ctx, e.Token, e.ChannelID, e.Content)
		return session.MessageSent{ChannelID: e.ChannelID, Err: err}

	case session.UpdatePresence:
		err := gw.UpdatePresence(ctx, e.Token, e.Presence)
		return session.PresenceChanged{Presence: e.Presence, Err: err}
	}

	logger.Error().Msgf("unhandled effect %T", eff)
	return nil
}

func logResult(logger zerolog.Logger, ev session.Event, elapsed time.Duration) {
	var err error
	switch e := ev.(type) {
	case session.LoginResult:
		err = e.Err
	case session.GuildsLoaded:
		err = e.Err
	case session.ChannelsLoaded:
		err = e.Err
	case session.MessagesLoaded:
		err = e.Err
	case session.MessageSent:
		err = e.Err
	case session.PresenceChanged:
		err = e.Err
	}
	if err != nil {
		logger.Warn().Err(err).Str("kind", client.Kind(err)).Dur("elapsed", elapsed).Msg("effect failed")
		return
	}
	logger.Debug().Dur("elapsed", elapsed).Msg("effect done")
}
