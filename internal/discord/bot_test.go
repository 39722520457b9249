package discord

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-society-lab/grace/datastore"
	"github.com/code-society-lab/grace/internal/core"
	"github.com/code-society-lab/grace/internal/language"
)

type recordingHandler struct {
	botID    string
	messages []language.Message
}

func (h *recordingHandler) OnMessage(_ context.Context, botID string, m language.Message) error {
	h.botID = botID
	h.messages = append(h.messages, m)
	return nil
}

type recordingCommand struct {
	name string
	ctxs []*core.MessageContext
}

func (c *recordingCommand) Name() string             { return c.name }
func (c *recordingCommand) Description() string      { return "records " + c.name }
func (c *recordingCommand) Aliases() []string        { return nil }
func (c *recordingCommand) Category() string         { return "Test" }
func (c *recordingCommand) UserPermissions() []int64 { return nil }
func (c *recordingCommand) Run(ctx interface{}) error {
	if v, ok := ctx.(*core.MessageContext); ok {
		c.ctxs = append(c.ctxs, v)
	}
	return nil
}

func (c *recordingCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.name,
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "remove", Description: "remove"},
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "add", Description: "add"},
		},
	}
}

func testSession(botID string) *discordgo.Session {
	s := &discordgo.Session{State: discordgo.NewState()}
	s.State.User = &discordgo.User{ID: botID}
	return s
}

func messageCreate(authorID, content string, bot bool) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        "m1",
		ChannelID: "c1",
		GuildID:   "g1",
		Content:   content,
		Author:    &discordgo.User{ID: authorID, Bot: bot},
	}}
}

func TestToMessage(t *testing.T) {
	m := &discordgo.Message{
		ID:              "m1",
		ChannelID:       "c1",
		GuildID:         "g1",
		Content:         "hi <@bot>",
		Author:          &discordgo.User{ID: "u1"},
		Mentions:        []*discordgo.User{{ID: "bot"}, nil, {ID: "u2"}},
		MentionEveryone: true,
	}

	assert.Equal(t, language.Message{
		ID:              "m1",
		ChannelID:       "c1",
		GuildID:         "g1",
		AuthorID:        "u1",
		Content:         "hi <@bot>",
		Mentions:        []string{"bot", "u2"},
		MentionEveryone: true,
	}, ToMessage(m))
}

func TestOnMessageCreate_ReactsAndDispatches(t *testing.T) {
	registry := core.NewRegistry()
	puns := &recordingCommand{name: "puns"}
	registry.Register(puns)
	handler := &recordingHandler{}

	b := New(nil, Options{Prefix: "::"}, registry, handler, nil)
	b.onMessageCreate(testSession("bot"), messageCreate("u1", "::puns add I knead you", false))

	require.Len(t, handler.messages, 1)
	assert.Equal(t, "bot", handler.botID)
	assert.Equal(t, "u1", handler.messages[0].AuthorID)

	require.Len(t, puns.ctxs, 1)
	assert.Equal(t, []string{"add", "I", "knead", "you"}, puns.ctxs[0].Args)
	assert.Equal(t, "add I knead you", puns.ctxs[0].Raw)
}

func TestOnMessageCreate_BotAuthorsOnlyReact(t *testing.T) {
	registry := core.NewRegistry()
	puns := &recordingCommand{name: "puns"}
	registry.Register(puns)
	handler := &recordingHandler{}

	b := New(nil, Options{Prefix: "::"}, registry, handler, nil)
	b.onMessageCreate(testSession("bot"), messageCreate("bot", "::puns", true))

	assert.Len(t, handler.messages, 1)
	assert.Empty(t, puns.ctxs)
}

func TestOnMessageCreate_UnknownCommand(t *testing.T) {
	b := New(nil, Options{Prefix: "::"}, core.NewRegistry(), nil, nil)
	assert.NotPanics(t, func() {
		b.onMessageCreate(testSession("bot"), messageCreate("u1", "::nope", false))
	})
}

func TestIsGuildBlacklisted(t *testing.T) {
	b := New(nil, Options{GuildBlacklist: []string{"bad"}}, core.NewRegistry(), nil, nil)
	assert.True(t, b.isGuildBlacklisted("bad"))
	assert.False(t, b.isGuildBlacklisted("good"))
}

func TestSlashDefinitions(t *testing.T) {
	defs := slashDefinitions([]core.Command{&recordingCommand{name: "puns"}})
	require.Len(t, defs, 1)
	assert.Equal(t, discordgo.ChatApplicationCommand, defs[0].Type)
}

func TestHashCommand_IgnoresOptionOrder(t *testing.T) {
	a := (&recordingCommand{name: "puns"}).SlashDefinition()
	b := (&recordingCommand{name: "puns"}).SlashDefinition()
	b.Options[0], b.Options[1] = b.Options[1], b.Options[0]

	assert.Equal(t, hashCommand(a), hashCommand(b))

	b.Description = "changed"
	assert.NotEqual(t, hashCommand(a), hashCommand(b))
}

func TestChangedCommands(t *testing.T) {
	puns := (&recordingCommand{name: "puns"}).SlashDefinition()
	info := &discordgo.ApplicationCommand{Name: "info", Description: "info"}
	wanted := []*discordgo.ApplicationCommand{puns, info}
	wantedHashes := map[string]string{"puns": hashCommand(puns), "info": hashCommand(info)}

	local := map[string]string{"puns": hashCommand(puns), "info": "stale"}
	changed := changedCommands(wanted, wantedHashes, local, map[string]bool{"puns": true, "info": true})
	require.Len(t, changed, 1)
	assert.Equal(t, "info", changed[0].Name)

	local["info"] = hashCommand(info)
	changed = changedCommands(wanted, wantedHashes, local, map[string]bool{"info": true})
	require.Len(t, changed, 1)
	assert.Equal(t, "puns", changed[0].Name)
}

func TestDataStoreHashes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.json")
	ds, err := datastore.New(path)
	require.NoError(t, err)

	hashes := NewDataStoreHashes(ds)
	got, err := hashes.Load("g1")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, hashes.Save("g1", map[string]string{"puns": "abc"}))
	require.NoError(t, ds.Close())

	ds, err = datastore.New(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ds.Close() })

	got, err = NewDataStoreHashes(ds).Load("g1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"puns": "abc"}, got)
}

func TestDataStoreHashes_WritesThroughAndDrops(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.json")
	ds, err := datastore.New(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ds.Close() })
	hashes := NewDataStoreHashes(ds)

	require.NoError(t, hashes.Save("g1", map[string]string{"triggers": "def"}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "commands/g1")

	require.NoError(t, hashes.Save("g1", map[string]string{}))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "commands/g1")

	got, err := hashes.Load("g1")
	require.NoError(t, err)
	assert.Empty(t, got)
}
