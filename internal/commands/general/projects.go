package general

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	gh "github.com/google/go-github/v66/github"

	"github.com/code-society-lab/grace/internal/core"
)

const projectsTimeout = 10 * time.Second

// Projects fetches the advertised repositories.
type Projects interface {
	CanConnect() bool
	Projects(ctx context.Context) ([]*gh.Repository, error)
}

type ProjectsCommand struct {
	GitHub Projects
}

func (c *ProjectsCommand) Name() string             { return "projects" }
func (c *ProjectsCommand) Description() string      { return "Show the Code Society Lab projects" }
func (c *ProjectsCommand) Aliases() []string        { return []string{} }
func (c *ProjectsCommand) Category() string         { return "🧪 Projects" }
func (c *ProjectsCommand) UserPermissions() []int64 { return nil }

func (c *ProjectsCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *ProjectsCommand) Run(ctx interface{}) error {
	if c.GitHub == nil || !c.GitHub.CanConnect() {
		return core.ReplyText(ctx, "GitHub is not configured for this bot.")
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), projectsTimeout)
	defer cancel()

	repos, err := c.GitHub.Projects(reqCtx)
	if err != nil {
		_ = core.ReplyText(ctx, "Unable to reach GitHub right now.")
		return err
	}

	return core.ReplyEmbed(ctx, ProjectsEmbed(repos))
}

// ProjectsEmbed renders one field per repository.
func ProjectsEmbed(repos []*gh.Repository) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(repos))
	for _, r := range repos {
		desc := r.GetDescription()
		if desc == "" {
			desc = "No description"
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: r.GetName(),
			Value: fmt.Sprintf("%s\n⭐ %d · 🍴 %d · [View on GitHub](%s)",
				desc, r.GetStargazersCount(), r.GetForksCount(), r.GetHTMLURL()),
		})
	}

	return &discordgo.MessageEmbed{
		Title:  "Code Society Lab",
		Color:  core.EmbedColor,
		Fields: fields,
	}
}
