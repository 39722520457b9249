package general

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/code-society-lab/grace/internal/core"
	"github.com/code-society-lab/grace/internal/emoji"
	"github.com/code-society-lab/grace/internal/version"
)

type InfoCommand struct {
	Prefix string
}

func (c *InfoCommand) Name() string             { return "info" }
func (c *InfoCommand) Description() string      { return "Show information about the bot" }
func (c *InfoCommand) Aliases() []string        { return []string{} }
func (c *InfoCommand) Category() string         { return "🕯️ Information" }
func (c *InfoCommand) UserPermissions() []int64 { return nil }

func (c *InfoCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *InfoCommand) Run(ctx interface{}) error {
	return core.ReplyEmbed(ctx, InfoEmbed(core.InvokerMention(ctx), c.Prefix))
}

// InfoEmbed builds the introduction card. mention greets the invoking user.
func InfoEmbed(mention, prefix string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "My name is " + version.AppName,
		Description: fmt.Sprintf("Hi, %s. I'm the official **Code Society** Discord Bot.\n\u200b", mention),
		Color:       core.EmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Fun fact about me",
				Value: "I'm named after [Grace Hopper](https://en.wikipedia.org/wiki/Grace_Hopper) " + emoji.Emojize(":rabbit:") + "\n\u200b",
			},
			{
				Name:   emoji.Emojize(":test_tube:") + " Code Society Lab",
				Value:  "Contribute to our [projects](https://github.com/Code-Society-Lab/grace)\n\u200b",
				Inline: true,
			},
			{
				Name:   emoji.Emojize(":crossed_swords:") + " Codewars",
				Value:  "Set your clan to **CodeSoc**\n\u200b",
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Need help? Send %shelp", prefix),
		},
	}
}
