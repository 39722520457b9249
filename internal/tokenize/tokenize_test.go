package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCasual_SplitsWordsAndPunctuation(t *testing.T) {
	tokens := New().Tokenize("Linus tech tips is great!")
	assert.Equal(t, []string{"Linus", "tech", "tips", "is", "great", "!"}, tokens)
}

func TestCasual_KeepsCasualTokensWhole(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"I can't even", []string{"I", "can't", "even"}},
		{"don't stop!", []string{"don't", "stop", "!"}},
		{"I hate Linus's code", []string{"I", "hate", "Linus's", "code"}},
		{"they'll see", []string{"they'll", "see"}},
		{"nice :)", []string{"nice", ":)"}},
		{"love you <3", []string{"love", "you", "<3"}},
		{"it's 5 o'clock", []string{"it's", "5", "o'clock"}},
		{"can’t", []string{"can't"}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, New().Tokenize(tt.text))
		})
	}
}

func TestCasual_Empty(t *testing.T) {
	assert.Empty(t, New().Tokenize(""))
}

func TestRegroup_KeepsChunkProseDropped(t *testing.T) {
	out := regroup([]string{"'salright", "then"}, []string{"then"})
	assert.Equal(t, []string{"'salright", "then"}, out)
}

func TestLower(t *testing.T) {
	in := []string{"Linus", "AND", "lucy"}
	assert.Equal(t, []string{"linus", "and", "lucy"}, Lower(in))
	assert.Equal(t, "Linus", in[0])
}
