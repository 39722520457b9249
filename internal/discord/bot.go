package discord

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/code-society-lab/grace/internal/core"
	"github.com/code-society-lab/grace/internal/language"
)

const messageTimeout = 15 * time.Second

// MessageHandler reacts to every message the bot can read.
type MessageHandler interface {
	OnMessage(ctx context.Context, botID string, m language.Message) error
}

// Options configures the runtime behavior of Bot.
type Options struct {
	Prefix            string
	InitSlashCommands bool
	GuildBlacklist    []string
}

// Bot is a Discord bot
type Bot struct {
	dg       *discordgo.Session
	opts     Options
	registry *core.Registry
	messages MessageHandler
	hashes   HashStore
	ready    atomic.Bool
}

// New wires a session to the command registry and the message handler. hashes
// may be nil, in which case slash commands are registered on every start.
func New(dg *discordgo.Session, opts Options, registry *core.Registry, messages MessageHandler, hashes HashStore) *Bot {
	return &Bot{
		dg:       dg,
		opts:     opts,
		registry: registry,
		messages: messages,
		hashes:   hashes,
	}
}

// NewSession creates a bot session with the intents the bot needs.
func NewSession(token string) (*discordgo.Session, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentDirectMessages |
		discordgo.IntentMessageContent
	return dg, nil
}

// Run opens the session and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	b.dg.AddHandler(b.onReady)
	b.dg.AddHandler(b.onGuildCreate)
	b.dg.AddHandler(b.onMessageCreate)
	b.dg.AddHandler(b.onInteractionCreate)
	b.dg.AddHandler(func(_ *discordgo.Session, _ *discordgo.Disconnect) {
		b.ready.Store(false)
	})

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.dg.Close()

	<-ctx.Done()
	log.Info().Msg("Shutdown signal received, closing Discord session")
	b.ready.Store(false)
	return nil
}

// Ready reports whether the gateway session is connected.
func (b *Bot) Ready() bool {
	return b.ready.Load()
}

// onReady is called when the bot is ready
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.ready.Store(true)

	for _, g := range r.Guilds {
		if b.leaveIfBlacklisted(s, g.ID) {
			continue
		}
		b.initGuildCommands(g.ID)
	}

	log.Info().Str("user", r.User.Username).Int("guilds", len(r.Guilds)).Msg("Discord bot is running")
}

// onGuildCreate is called when the bot joins a guild or a guild becomes available
func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	log.Info().Str("guild_id", g.ID).Str("guild", g.Name).Msg("Guild available")

	if b.leaveIfBlacklisted(s, g.ID) {
		return
	}
	b.initGuildCommands(g.ID)
}

func (b *Bot) initGuildCommands(guildID string) {
	if !b.opts.InitSlashCommands {
		log.Debug().Str("guild_id", guildID).Msg("Registering slash commands skipped")
		return
	}
	if err := b.registerCommands(guildID); err != nil {
		log.Error().Err(err).Str("guild_id", guildID).Msg("Error registering slash commands")
	}
}

func (b *Bot) isGuildBlacklisted(guildID string) bool {
	return slices.Contains(b.opts.GuildBlacklist, guildID)
}

func (b *Bot) leaveIfBlacklisted(s *discordgo.Session, guildID string) bool {
	if !b.isGuildBlacklisted(guildID) {
		return false
	}
	log.Info().Str("guild_id", guildID).Msg("Leaving blacklisted guild")
	if err := s.GuildLeave(guildID); err != nil {
		log.Error().Err(err).Str("guild_id", guildID).Msg("Failed to leave guild")
	}
	return true
}

// onMessageCreate runs the reactions on every message, then the prefixed
// command if there is one.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || s.State.User == nil {
		return
	}
	botID := s.State.User.ID

	ctx, cancel := context.WithTimeout(context.Background(), messageTimeout)
	defer cancel()

	if b.messages != nil {
		if err := b.messages.OnMessage(ctx, botID, ToMessage(m.Message)); err != nil {
			log.Error().Err(err).
				Str("guild_id", m.GuildID).
				Str("channel_id", m.ChannelID).
				Str("message_id", m.ID).
				Msg("Error reacting to message")
		}
	}

	if m.Author.Bot {
		return
	}
	b.dispatchPrefix(s, m)
}

func (b *Bot) dispatchPrefix(s *discordgo.Session, m *discordgo.MessageCreate) {
	name, args, raw, ok := core.ParsePrefix(b.opts.Prefix, m.Content)
	if !ok {
		return
	}

	cmd, ok := b.registry.Get(name)
	if !ok {
		log.Debug().Str("command", name).Msg("Unknown prefix command")
		return
	}

	ctx := &core.MessageContext{Session: s, Event: m, Args: args, Raw: raw}
	if err := cmd.Run(ctx); err != nil {
		log.Error().Err(err).Str("command", name).Msg("Error running message command")
	}
}

// onInteractionCreate is called when an interaction is created
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		log.Debug().Int("type", int(i.Type)).Msg("Unhandled interaction type")
		return
	}

	data := i.ApplicationCommandData()
	cmd, ok := b.registry.Get(data.Name)
	if !ok {
		log.Warn().Str("command", data.Name).Msg("Unknown slash command")
		return
	}

	ctx := &core.SlashInteractionContext{Session: s, Event: i, Args: core.SlashArgs(data.Options)}
	if err := cmd.Run(ctx); err != nil {
		log.Error().Err(err).Str("command", data.Name).Msg("Error running slash command")
	}
}
