package discord

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/code-society-lab/grace/internal/core"
)

// Discord allows bursts of application command writes; stay well under it.
const (
	registerRate  = 40
	registerBurst = 5
)

// registerCommands brings a guild's slash commands in line with the registry.
// Unchanged commands are skipped using the stored definition hashes.
func (b *Bot) registerCommands(guildID string) error {
	appID, err := b.appID()
	if err != nil {
		return err
	}

	existing, err := b.dg.ApplicationCommands(appID, guildID)
	if err != nil {
		return fmt.Errorf("failed to list commands: %w", err)
	}

	localHashes := map[string]string{}
	if b.hashes != nil {
		if localHashes, err = b.hashes.Load(guildID); err != nil {
			log.Warn().Err(err).Str("guild_id", guildID).Msg("Failed to load command hashes")
			localHashes = map[string]string{}
		}
	}

	wanted := slashDefinitions(b.registry.All())
	wantedHashes := make(map[string]string, len(wanted))
	for _, def := range wanted {
		wantedHashes[def.Name] = hashCommand(def)
	}

	// Delete obsolete
	present := map[string]bool{}
	for _, old := range existing {
		present[old.Name] = true
		if _, ok := wantedHashes[old.Name]; ok {
			continue
		}
		log.Info().Str("guild_id", guildID).Str("command", old.Name).Msg("Deleting obsolete command")
		if err := b.dg.ApplicationCommandDelete(appID, guildID, old.ID); err != nil {
			log.Error().Err(err).Str("guild_id", guildID).Str("command", old.Name).Msg("Failed to delete command")
		}
		delete(localHashes, old.Name)
	}

	changed := changedCommands(wanted, wantedHashes, localHashes, present)
	if len(changed) > 0 {
		log.Info().Str("guild_id", guildID).Int("count", len(changed)).Msg("Updating slash commands")
		for _, name := range b.createCommands(appID, guildID, changed) {
			localHashes[name] = wantedHashes[name]
		}
	}

	if b.hashes != nil {
		if err := b.hashes.Save(guildID, localHashes); err != nil {
			log.Warn().Err(err).Str("guild_id", guildID).Msg("Failed to save command hashes")
		}
	}
	return nil
}

func (b *Bot) appID() (string, error) {
	if b.dg.State != nil && b.dg.State.User != nil && b.dg.State.User.ID != "" {
		return b.dg.State.User.ID, nil
	}
	user, err := b.dg.User("@me")
	if err != nil {
		return "", fmt.Errorf("failed to fetch bot user: %w", err)
	}
	return user.ID, nil
}

// slashDefinitions collects the definitions of commands that have one
func slashDefinitions(cmds []core.Command) []*discordgo.ApplicationCommand {
	var defs []*discordgo.ApplicationCommand
	for _, cmd := range cmds {
		slash, ok := cmd.(core.SlashProvider)
		if !ok {
			continue
		}
		def := slash.SlashDefinition()
		if def == nil {
			continue
		}
		if def.Type == 0 {
			def.Type = discordgo.ChatApplicationCommand
		}
		defs = append(defs, def)
	}
	return defs
}

// changedCommands returns definitions whose hash differs from the stored one or
// that are missing from the guild.
func changedCommands(wanted []*discordgo.ApplicationCommand, wantedHashes, localHashes map[string]string, present map[string]bool) []*discordgo.ApplicationCommand {
	var changed []*discordgo.ApplicationCommand
	for _, def := range wanted {
		if localHashes[def.Name] != wantedHashes[def.Name] || !present[def.Name] {
			changed = append(changed, def)
		}
	}
	return changed
}

// createCommands creates cmds concurrently, paced by a rate limiter, and
// returns the names that were created.
func (b *Bot) createCommands(appID, guildID string, cmds []*discordgo.ApplicationCommand) []string {
	limiter := rate.NewLimiter(rate.Limit(registerRate), registerBurst)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created []string
	)

	for _, cmd := range cmds {
		wg.Add(1)
		go func(cmd *discordgo.ApplicationCommand) {
			defer wg.Done()
			if err := limiter.Wait(context.Background()); err != nil {
				return
			}

			if _, err := b.dg.ApplicationCommandCreate(appID, guildID, cmd); err != nil {
				log.Error().Err(err).Str("guild_id", guildID).Str("command", cmd.Name).Msg("Can't create command")
				return
			}
			log.Info().Str("guild_id", guildID).Str("command", cmd.Name).Msg("Command created")

			mu.Lock()
			created = append(created, cmd.Name)
			mu.Unlock()
		}(cmd)
	}

	wg.Wait()
	return created
}
