package language

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	lang "github.com/code-society-lab/grace/internal/language"
)

type PunsCommand struct {
	Admin  *lang.Admin
	Prefix string
}

func (c *PunsCommand) Name() string             { return "puns" }
func (c *PunsCommand) Description() string      { return "Commands to manage puns" }
func (c *PunsCommand) Aliases() []string        { return []string{} }
func (c *PunsCommand) Category() string         { return category }
func (c *PunsCommand) UserPermissions() []int64 { return []int64{adminPermission} }

func (c *PunsCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     c.Name(),
		Description:              c.Description(),
		DefaultMemberPermissions: &adminPermission,
		Options: []*discordgo.ApplicationCommandOption{
			subcommand("list", "List all puns"),
			subcommand("add", "Add a pun", wordOption("text", "The pun text")),
			subcommand("remove", "Remove a pun", idOption()),
			subcommand("add-word", "Add a pun word to a pun",
				idOption(),
				wordOption("word", "The word that triggers the pun"),
				wordOption("emoji", "The emoji to react with"),
			),
			subcommand("remove-word", "Remove a pun word from a pun",
				idOption(),
				wordOption("word", "The pun word to remove"),
			),
		},
	}
}

func (c *PunsCommand) Run(ctx interface{}) error {
	return run(ctx, c.Dispatch)
}

// Dispatch runs the subcommand named by the first argument.
func (c *PunsCommand) Dispatch(ctx context.Context, in Input) (lang.Notice, error) {
	switch in.sub() {
	case "", "list":
		return c.Admin.ListPuns(ctx)

	case "add":
		text := in.Text(1)
		if text == "" {
			return usage(c.Prefix, "puns add <text>"), nil
		}
		return c.Admin.AddPun(ctx, text)

	case "remove":
		id, notice, ok := c.id(in, "puns remove <id>")
		if !ok {
			return notice, nil
		}
		return c.Admin.RemovePun(ctx, id)

	case "add-word":
		id, notice, ok := c.id(in, "puns add-word <id> <word> <emoji>")
		if !ok {
			return notice, nil
		}
		word, okWord := in.arg(2)
		emoji, okEmoji := in.arg(3)
		if !okWord || !okEmoji {
			return usage(c.Prefix, "puns add-word <id> <word> <emoji>"), nil
		}
		return c.Admin.AddPunWord(ctx, id, word, emoji)

	case "remove-word":
		id, notice, ok := c.id(in, "puns remove-word <id> <word>")
		if !ok {
			return notice, nil
		}
		word, okWord := in.arg(2)
		if !okWord {
			return usage(c.Prefix, "puns remove-word <id> <word>"), nil
		}
		return c.Admin.RemovePunWord(ctx, id, word)

	default:
		return usage(c.Prefix, "puns [add|remove|add-word|remove-word]"), nil
	}
}

// id parses the pun id argument, returning the notice to send when it is
// missing or malformed.
func (c *PunsCommand) id(in Input, form string) (int64, lang.Notice, bool) {
	raw, ok := in.arg(1)
	if !ok {
		return 0, usage(c.Prefix, form), false
	}
	id, ok := parseID(raw)
	if !ok {
		return 0, lang.Notice{Text: fmt.Sprintf("**%s** is not a valid pun id.", raw)}, false
	}
	return id, lang.Notice{}, true
}
