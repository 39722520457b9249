package language

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-society-lab/grace/internal/domain"
	"github.com/code-society-lab/grace/internal/metrics"
	"github.com/code-society-lab/grace/internal/sentiment"
	"github.com/code-society-lab/grace/internal/storage"
)

const testBotID = "bot-1"

type reaction struct {
	ChannelID, MessageID, Emoji string
}

type embed struct {
	ChannelID, Title, Description string
}

type fakeChat struct {
	reactions []reaction
	embeds    []embed
	err       error
}

func (c *fakeChat) AddReaction(_ context.Context, channelID, messageID, emoji string) error {
	if c.err != nil {
		return c.err
	}
	c.reactions = append(c.reactions, reaction{channelID, messageID, emoji})
	return nil
}

func (c *fakeChat) SendEmbed(_ context.Context, channelID, title, description string) error {
	if c.err != nil {
		return c.err
	}
	c.embeds = append(c.embeds, embed{channelID, title, description})
	return nil
}

func (c *fakeChat) emojis() []string {
	out := make([]string, 0, len(c.reactions))
	for _, r := range c.reactions {
		out = append(out, r.Emoji)
	}
	return out
}

type fieldsTokenizer struct{}

func (fieldsTokenizer) Tokenize(text string) []string {
	return strings.Fields(text)
}

type fakeClassifier struct {
	polarity sentiment.Polarity
	calls    int
}

func (c *fakeClassifier) Classify(string) sentiment.Polarity {
	c.calls++
	return c.polarity
}

func newRepo(t *testing.T) domain.Repository {
	t.Helper()
	repo, err := storage.New(filepath.Join(t.TempDir(), "datastore.json"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func seedTriggers(t *testing.T, repo domain.Repository) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, repo.SaveTrigger(ctx, *linusTrigger()))
	require.NoError(t, repo.SaveTrigger(ctx, *graceTrigger()))
}

func seedPun(t *testing.T, repo domain.Repository, text string, words map[string]string) *domain.Pun {
	t.Helper()
	ctx := context.Background()
	pun, err := repo.CreatePun(ctx, text)
	require.NoError(t, err)
	for w, e := range words {
		_, err := repo.AddPunWord(ctx, pun.ID, w, e)
		require.NoError(t, err)
	}
	return pun
}

type reactorFixture struct {
	repo       domain.Repository
	chat       *fakeChat
	classifier *fakeClassifier
	metrics    *metrics.Metrics
	reactor    *Reactor
}

func newReactorFixture(t *testing.T, polarity sentiment.Polarity) *reactorFixture {
	t.Helper()
	f := &reactorFixture{
		repo:       newRepo(t),
		chat:       &fakeChat{},
		classifier: &fakeClassifier{polarity: polarity},
		metrics:    metrics.New(prometheus.NewRegistry()),
	}
	f.reactor = NewReactor(
		ReactorConfig{NameTrigger: "Grace", KeywordTrigger: "Linus"},
		f.repo, f.chat, fieldsTokenizer{}, f.classifier, f.metrics,
	)
	return f
}

func msg(content string) Message {
	return Message{ID: "m1", ChannelID: "c1", GuildID: "g1", AuthorID: "user-1", Content: content}
}

func TestReactor_KeywordThenNameThenPun(t *testing.T) {
	f := newReactorFixture(t, sentiment.Positive)
	seedTriggers(t, f.repo)
	seedPun(t, f.repo, "I knead you", map[string]string{"bread": "🍞"})

	m := msg("Linus and <@bot-1> love bread")
	m.Mentions = []string{testBotID}

	require.NoError(t, f.reactor.OnMessage(context.Background(), testBotID, m))

	assert.Equal(t, []string{"🐧", "💖", "🍞"}, f.chat.emojis())
	require.Len(t, f.chat.embeds, 1)
	assert.Equal(t, embed{"c1", "Gotcha", "I knead you"}, f.chat.embeds[0])
	assert.Equal(t, reaction{"c1", "m1", "🐧"}, f.chat.reactions[0])
	assert.Equal(t, 1, f.classifier.calls)
}

func TestReactor_NegativeKeyword(t *testing.T) {
	f := newReactorFixture(t, sentiment.Negative)
	seedTriggers(t, f.repo)

	require.NoError(t, f.reactor.OnMessage(context.Background(), testBotID, msg("I hate Linus")))

	assert.Equal(t, []string{"😠"}, f.chat.emojis())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Reactions.WithLabelValues("keyword", ToneNegative)))
}

func TestReactor_MissingTriggersDoNotBlockPuns(t *testing.T) {
	f := newReactorFixture(t, sentiment.Positive)
	seedPun(t, f.repo, "Rye not?", map[string]string{"bread": "🍞"})

	m := msg("linus bread")
	m.Mentions = []string{testBotID}
	require.NoError(t, f.reactor.OnMessage(context.Background(), testBotID, m))

	assert.Equal(t, []string{"🍞"}, f.chat.emojis())
	assert.Len(t, f.chat.embeds, 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.MissingTriggers.WithLabelValues("Linus")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.MissingTriggers.WithLabelValues("Grace")))
}

func TestReactor_BotAuthoredMessageGetsNoPuns(t *testing.T) {
	f := newReactorFixture(t, sentiment.Positive)
	seedPun(t, f.repo, "Rye not?", map[string]string{"bread": "🍞"})

	m := msg("bread")
	m.AuthorID = testBotID
	require.NoError(t, f.reactor.OnMessage(context.Background(), testBotID, m))

	assert.Empty(t, f.chat.reactions)
	assert.Empty(t, f.chat.embeds)
}

func TestReactor_ChatFailurePropagates(t *testing.T) {
	f := newReactorFixture(t, sentiment.Negative)
	seedTriggers(t, f.repo)
	seedPun(t, f.repo, "Rye not?", map[string]string{"bread": "🍞"})
	f.chat.err = errors.New("discord unavailable")

	err := f.reactor.OnMessage(context.Background(), testBotID, msg("linus bread"))
	require.Error(t, err)
	assert.ErrorIs(t, err, f.chat.err)
}

func TestReactor_NoTokensNoActions(t *testing.T) {
	f := newReactorFixture(t, sentiment.Negative)
	seedTriggers(t, f.repo)

	require.NoError(t, f.reactor.OnMessage(context.Background(), testBotID, msg("")))
	assert.Empty(t, f.chat.reactions)
	assert.Equal(t, 0, f.classifier.calls)
}

func TestMessage_MentionsUser(t *testing.T) {
	assert.True(t, Message{Mentions: []string{"a", "b"}}.MentionsUser("b"))
	assert.True(t, Message{MentionEveryone: true}.MentionsUser("b"))
	assert.False(t, Message{Mentions: []string{"a"}}.MentionsUser("b"))
	assert.True(t, Message{Content: "<@!123> hi"}.HasRawMentionPrefix())
	assert.False(t, Message{Content: "<@123> hi"}.HasRawMentionPrefix())
}
