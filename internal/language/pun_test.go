package language

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-society-lab/grace/internal/domain"
	"github.com/code-society-lab/grace/internal/tokenize"
)

func TestMatchPunWords(t *testing.T) {
	words := []domain.PunWord{
		{ID: 1, PunID: 10, Word: "bread", Emoji: "🍞"},
		{ID: 2, PunID: 10, Word: "dough", Emoji: "💰"},
		{ID: 3, PunID: 20, Word: "cheese", Emoji: "🧀"},
		{ID: 4, PunID: 30, Word: "wine", Emoji: "🍷"},
	}

	matched, punIDs := MatchPunWords([]string{"Bread", "and", "DOUGH", "and", "cheese", "bread"}, words)

	assert.Equal(t, []domain.PunWord{words[0], words[1], words[2]}, matched)
	assert.Equal(t, []int64{10, 20}, punIDs)
}

func TestMatchPunWords_CasualTokens(t *testing.T) {
	words := []domain.PunWord{
		{ID: 1, PunID: 1, Word: "can't"},
		{ID: 2, PunID: 2, Word: ":)"},
		{ID: 3, PunID: 3, Word: "o'clock"},
	}
	tok := tokenize.New()

	tests := []struct {
		text string
		want []int64
	}{
		{"I can't even", []int64{1}},
		{"nice :)", []int64{2}},
		{"it's 5 o'clock", []int64{3}},
		{"I can not even", nil},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			_, punIDs := MatchPunWords(tokenize.Lower(tok.Tokenize(tt.text)), words)
			if tt.want == nil {
				assert.Empty(t, punIDs)
				return
			}
			assert.Equal(t, tt.want, punIDs)
		})
	}
}

func TestMatchPunWords_NoMatch(t *testing.T) {
	matched, punIDs := MatchPunWords([]string{"hello"}, []domain.PunWord{{Word: "bread", PunID: 1}})
	assert.Empty(t, matched)
	assert.Empty(t, punIDs)
}

func TestPunMatcher_TwoWordsSamePun(t *testing.T) {
	repo := newRepo(t)
	pun := seedPun(t, repo, "You're the yeast I could do", map[string]string{"bread": "🍞", "dough": "💰"})

	actions, err := NewPunMatcher(repo).Evaluate(context.Background(), testBotID, msg("bread dough"), []string{"bread", "dough"})
	require.NoError(t, err)

	var reacts, replies []Action
	for _, a := range actions {
		if a.Kind == ActionReact {
			reacts = append(reacts, a)
		} else {
			replies = append(replies, a)
		}
	}

	require.Len(t, reacts, 2)
	assert.ElementsMatch(t, []string{"🍞", "💰"}, []string{reacts[0].Emoji, reacts[1].Emoji})
	require.Len(t, replies, 1)
	assert.Equal(t, GotchaTitle, replies[0].Title)
	assert.Equal(t, pun.Text, replies[0].Text)
	assert.Equal(t, ActionReply, actions[len(actions)-1].Kind)
}

func TestPunMatcher_DistinctPunsEachReply(t *testing.T) {
	repo := newRepo(t)
	seedPun(t, repo, "first", map[string]string{"bread": "🍞"})
	seedPun(t, repo, "second", map[string]string{"cheese": "🧀"})

	actions, err := NewPunMatcher(repo).Evaluate(context.Background(), testBotID, msg(""), []string{"cheese", "bread"})
	require.NoError(t, err)
	require.Len(t, actions, 4)
	assert.Equal(t, "first", actions[2].Text)
	assert.Equal(t, "second", actions[3].Text)
}

func TestPunMatcher_SelfAuthored(t *testing.T) {
	repo := newRepo(t)
	seedPun(t, repo, "first", map[string]string{"bread": "🍞"})

	m := msg("bread")
	m.AuthorID = testBotID
	actions, err := NewPunMatcher(repo).Evaluate(context.Background(), testBotID, m, []string{"bread"})
	require.NoError(t, err)
	assert.Empty(t, actions)
}
