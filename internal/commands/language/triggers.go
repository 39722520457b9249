package language

import (
	"context"

	"github.com/bwmarrin/discordgo"

	lang "github.com/code-society-lab/grace/internal/language"
)

type TriggersCommand struct {
	Admin  *lang.Admin
	Prefix string
}

func (c *TriggersCommand) Name() string             { return "triggers" }
func (c *TriggersCommand) Description() string      { return "Commands to manage triggers" }
func (c *TriggersCommand) Aliases() []string        { return []string{} }
func (c *TriggersCommand) Category() string         { return category }
func (c *TriggersCommand) UserPermissions() []int64 { return []int64{adminPermission} }

func (c *TriggersCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     c.Name(),
		Description:              c.Description(),
		DefaultMemberPermissions: &adminPermission,
		Options: []*discordgo.ApplicationCommandOption{
			subcommand("list", "List the trigger words"),
			subcommand("add", "Add a trigger word", wordOption("word", "The new trigger word")),
			subcommand("remove", "Remove a trigger word", wordOption("word", "The trigger word to remove")),
		},
	}
}

func (c *TriggersCommand) Run(ctx interface{}) error {
	return run(ctx, c.Dispatch)
}

// Dispatch runs the subcommand named by the first argument.
func (c *TriggersCommand) Dispatch(ctx context.Context, in Input) (lang.Notice, error) {
	switch in.sub() {
	case "", "list":
		return c.Admin.ListTriggers(ctx)
	case "add":
		word, ok := in.arg(1)
		if !ok {
			return usage(c.Prefix, "triggers add <word>"), nil
		}
		return c.Admin.AddTrigger(ctx, word)
	case "remove":
		word, ok := in.arg(1)
		if !ok {
			return usage(c.Prefix, "triggers remove <word>"), nil
		}
		return c.Admin.RemoveTrigger(ctx, word)
	default:
		return usage(c.Prefix, "triggers [add|remove] <word>"), nil
	}
}
