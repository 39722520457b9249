package core

import (
	"github.com/bwmarrin/discordgo"
)

type Command interface {
	Name() string
	Description() string
	Aliases() []string
	Category() string
	UserPermissions() []int64
	Run(ctx interface{}) error
}

// Providers - how this command should be registered with Discord
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// Contexts - what runtime hands you when executing a command

// Slash command. Args holds the invoked subcommand path followed by option
// values, see SlashArgs.
type SlashInteractionContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Args    []string
}

// Prefixed text command. Args are the words after the command name and Raw
// is everything after the command name.
type MessageContext struct {
	Session *discordgo.Session
	Event   *discordgo.MessageCreate
	Args    []string
	Raw     string
}

// Args returns the arguments of either context.
func Args(ctx interface{}) []string {
	switch v := ctx.(type) {
	case *SlashInteractionContext:
		return v.Args
	case *MessageContext:
		return v.Args
	}
	return nil
}

// GuildID returns the guild of either context.
func GuildID(ctx interface{}) string {
	switch v := ctx.(type) {
	case *SlashInteractionContext:
		return v.Event.GuildID
	case *MessageContext:
		return v.Event.GuildID
	}
	return ""
}
