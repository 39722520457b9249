package core

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/code-society-lab/grace/internal/metrics"
)

// WithCommandLogger logs each execution and records it in m. m may be nil.
func WithCommandLogger(m *metrics.Metrics) Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				start := time.Now()
				err := cmd.Run(ctx)

				event := log.Info()
				if err != nil {
					event = log.Error().Err(err)
				}

				switch v := ctx.(type) {
				case *SlashInteractionContext:
					event = event.Str("kind", "slash").Str("guild_id", v.Event.GuildID).Str("channel_id", v.Event.ChannelID)
					if u := interactionUser(v.Event); u != nil {
						event = event.Str("user_id", u.ID).Str("username", u.Username)
					}
				case *MessageContext:
					event = event.Str("kind", "message").Str("guild_id", v.Event.GuildID).Str("channel_id", v.Event.ChannelID)
					if v.Event.Author != nil {
						event = event.Str("user_id", v.Event.Author.ID).Str("username", v.Event.Author.Username)
					}
				}

				event.Str("command", cmd.Name()).
					Strs("args", Args(ctx)).
					Dur("took", time.Since(start)).
					Msg("Command executed")

				m.ObserveCommand(cmd.Name(), err)
				return err
			},
		}
	}
}
