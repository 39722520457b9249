// Package language exposes the trigger and pun admin operations as hybrid
// prefix and slash command groups.
package language

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/code-society-lab/grace/internal/core"
	lang "github.com/code-society-lab/grace/internal/language"
)

const (
	category     = "💬 Language"
	adminTimeout = 10 * time.Second
)

var adminPermission int64 = discordgo.PermissionAdministrator

// Register adds the triggers and puns groups to r.
func Register(r *core.Registry, admin *lang.Admin, prefix string, mws ...core.Middleware) {
	r.Register(core.ApplyMiddlewares(&TriggersCommand{Admin: admin, Prefix: prefix}, mws...))
	r.Register(core.ApplyMiddlewares(&PunsCommand{Admin: admin, Prefix: prefix}, mws...))
}

// Input is a parsed group invocation: the subcommand words and a way to read
// free text starting at a given word.
type Input struct {
	Args []string
	// Text returns everything from word n on. For slash commands that is the
	// nth option value.
	Text func(n int) string
}

func (in Input) sub() string {
	if len(in.Args) == 0 {
		return ""
	}
	return in.Args[0]
}

func (in Input) arg(n int) (string, bool) {
	if n >= len(in.Args) || in.Args[n] == "" {
		return "", false
	}
	return in.Args[n], true
}

// InputFrom reads the invocation from a command context.
func InputFrom(ctx interface{}) Input {
	args := core.Args(ctx)
	in := Input{Args: args}

	if v, ok := ctx.(*core.MessageContext); ok {
		in.Text = func(n int) string { return core.TrailingText(v.Raw, n) }
		return in
	}
	in.Text = func(n int) string {
		if n < len(args) {
			return args[n]
		}
		return ""
	}
	return in
}

// sendNotice replies with n. Notices with a title become embeds.
func sendNotice(ctx interface{}, n lang.Notice) error {
	if n.IsEmpty() {
		return nil
	}
	if n.Title != "" {
		return core.ReplyEmbed(ctx, &discordgo.MessageEmbed{
			Title:       n.Title,
			Description: n.Text,
			Color:       core.EmbedColor,
		})
	}
	return core.ReplyText(ctx, n.Text)
}

func usage(prefix, form string) lang.Notice {
	return lang.Notice{Text: fmt.Sprintf("Usage: `%s%s`", prefix, form)}
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	return id, err == nil
}

func run(ctx interface{}, dispatch func(context.Context, Input) (lang.Notice, error)) error {
	c, cancel := context.WithTimeout(context.Background(), adminTimeout)
	defer cancel()

	n, err := dispatch(c, InputFrom(ctx))
	if err != nil {
		_ = core.ReplyEphemeral(ctx, "Something went wrong, please try again later.")
		return err
	}
	return sendNotice(ctx, n)
}

func wordOption(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    true,
	}
}

func idOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "id",
		Description: "Pun id",
		Required:    true,
	}
}

func subcommand(name, description string, opts ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: description,
		Options:     opts,
	}
}
