package general

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/code-society-lab/grace/internal/config"
	"github.com/code-society-lab/grace/internal/core"
	"github.com/code-society-lab/grace/internal/version"
)

type HelpCommand struct {
	Registry *core.Registry
	Prefix   string
}

func (c *HelpCommand) Name() string             { return "help" }
func (c *HelpCommand) Description() string      { return "Get a list of available commands" }
func (c *HelpCommand) Aliases() []string        { return []string{} }
func (c *HelpCommand) Category() string         { return "🕯️ Information" }
func (c *HelpCommand) UserPermissions() []int64 { return nil }

func (c *HelpCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *HelpCommand) Run(ctx interface{}) error {
	embed := &discordgo.MessageEmbed{
		Title:       version.AppName + " Help",
		Description: BuildHelp(c.Registry.All(), c.Prefix),
		Color:       core.EmbedColor,
	}
	return core.ReplyEmbed(ctx, embed)
}

// BuildHelp lists cmds grouped by category, categories ordered by
// config.CategoryWeights and commands by name.
func BuildHelp(cmds []core.Command, prefix string) string {
	categoryMap := make(map[string][]core.Command)
	for _, cmd := range cmds {
		categoryMap[cmd.Category()] = append(categoryMap[cmd.Category()], cmd)
	}

	cats := make([]string, 0, len(categoryMap))
	for cat := range categoryMap {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool {
		wi, wj := config.CategoryWeights[cats[i]], config.CategoryWeights[cats[j]]
		if wi != wj {
			return wi < wj
		}
		return cats[i] < cats[j]
	})

	var sb strings.Builder
	for _, cat := range cats {
		sb.WriteString(fmt.Sprintf("**%s**\n", cat))
		list := categoryMap[cat]
		sort.Slice(list, func(i, j int) bool {
			return list[i].Name() < list[j].Name()
		})
		for _, cmd := range list {
			sb.WriteString(fmt.Sprintf("`%s%s` - %s\n", prefix, cmd.Name(), cmd.Description()))
		}
		sb.WriteString("\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}
