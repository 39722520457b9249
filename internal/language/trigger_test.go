package language

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-society-lab/grace/internal/domain"
	"github.com/code-society-lab/grace/internal/sentiment"
	"github.com/code-society-lab/grace/internal/tokenize"
)

func linusTrigger() *domain.Trigger {
	return &domain.Trigger{
		Name:          "Linus",
		Words:         []string{"linus", "torvalds"},
		PositiveEmoji: "🐧",
		NegativeEmoji: "😠",
	}
}

func graceTrigger() *domain.Trigger {
	return &domain.Trigger{Name: "Grace", PositiveEmoji: "💖", NegativeEmoji: "💔"}
}

// countingPolarity returns p and counts how often it was asked.
func countingPolarity(p sentiment.Polarity) (PolarityFunc, *int) {
	calls := 0
	return func() sentiment.Polarity {
		calls++
		return p
	}, &calls
}

func fixed(p sentiment.Polarity) PolarityFunc {
	f, _ := countingPolarity(p)
	return f
}

func tokens(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

func TestKeywordReaction(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		polarity sentiment.Polarity
		want     string
	}{
		{"no trigger word", "i love penguins", sentiment.Negative, ""},
		{"negative occurrence", "linus is terrible", sentiment.Negative, "😠"},
		{"positive occurrence", "linus is great", sentiment.Positive, "🐧"},
		{"neutral occurrence", "linus wrote git", sentiment.Neutral, ""},
		{"tech tips excused when negative", "linus tech tips is terrible", sentiment.Negative, ""},
		{"and lucy excused when negative", "linus and lucy is awful", sentiment.Negative, ""},
		{"excused occurrence still positive", "linus tech tips is great", sentiment.Positive, "🐧"},
		{"exception cut short by end of message", "terrible linus tech", sentiment.Negative, "😠"},
		{"exception needs both tokens", "linus tech talks are bad", sentiment.Negative, "😠"},
		{"excuse carries over to later occurrence", "linus tech tips hates torvalds", sentiment.Negative, ""},
		{"negative first occurrence short circuits", "torvalds and linus tech tips are bad", sentiment.Negative, "😠"},
		{"any trigger word counts", "torvalds rocks", sentiment.Positive, "🐧"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeywordReaction(linusTrigger(), tokens(tt.text), fixed(tt.polarity))
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, ActionReact, got.Kind)
			assert.Equal(t, tt.want, got.Emoji)
		})
	}
}

func TestKeywordReaction_NegativeNeverAlsoPositive(t *testing.T) {
	got := KeywordReaction(linusTrigger(), tokens("linus linus linus"), fixed(sentiment.Negative))
	require.NotNil(t, got)
	assert.Equal(t, "😠", got.Emoji)
	assert.Equal(t, ToneNegative, got.Tone)
}

func TestKeywordReaction_PolarityOnlyConsultedOnMatch(t *testing.T) {
	polarity, calls := countingPolarity(sentiment.Negative)
	assert.Nil(t, KeywordReaction(linusTrigger(), tokens("nothing to see"), polarity))
	assert.Equal(t, 0, *calls)
}

func TestKeywordReaction_PossessiveIsNotTheKeyword(t *testing.T) {
	toks := tokenize.Lower(tokenize.New().Tokenize("I hate Linus's code"))
	assert.Nil(t, KeywordReaction(linusTrigger(), toks, fixed(sentiment.Negative)))
}

func TestKeywordReaction_EmptyTokens(t *testing.T) {
	assert.Nil(t, KeywordReaction(linusTrigger(), nil, fixed(sentiment.Positive)))
}

func TestNameReaction(t *testing.T) {
	const botID = "bot"

	tests := []struct {
		name     string
		msg      Message
		polarity sentiment.Polarity
		want     string
	}{
		{"mention positive", Message{Content: "thanks <@bot>", Mentions: []string{botID}}, sentiment.Positive, "💖"},
		{"mention neutral", Message{Content: "hey <@bot>", Mentions: []string{botID}}, sentiment.Neutral, "💖"},
		{"mention negative", Message{Content: "<@bot> you are awful", Mentions: []string{botID}}, sentiment.Negative, "💔"},
		{"everyone mention", Message{Content: "@everyone hi", MentionEveryone: true}, sentiment.Positive, "💖"},
		{"raw mention prefix", Message{Content: "<@!bot> hi", Mentions: []string{botID}}, sentiment.Positive, ""},
		{"other user mentioned", Message{Content: "hi <@someone>", Mentions: []string{"someone"}}, sentiment.Positive, ""},
		{"no mention", Message{Content: "hello"}, sentiment.Negative, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NameReaction(graceTrigger(), botID, tt.msg, fixed(tt.polarity))
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Emoji)
		})
	}
}

func TestExceptionFollows_OutOfRange(t *testing.T) {
	toks := []string{"linus"}
	assert.False(t, exceptionFollows(toks, 0))
	assert.Equal(t, "", tokenAt(toks, 5))
	assert.Equal(t, "", tokenAt(toks, -1))
}
