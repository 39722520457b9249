package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fixedScorer Scores

func (f fixedScorer) PolarityScores(string) Scores { return Scores(f) }

func TestBucket(t *testing.T) {
	tests := []struct {
		name   string
		scores Scores
		want   Polarity
	}{
		{"negative with no positive", Scores{Negative: 0.6, Neutral: 0.4, Positive: 0}, Negative},
		{"clearly positive", Scores{Negative: 0.1, Neutral: 0.3, Positive: 0.6}, Positive},
		{"fully neutral", Scores{Neutral: 1}, Neutral},
		{"empty text", Scores{}, Neutral},
		{"negative dominates neutral and positive", Scores{Negative: 0.7, Neutral: 0.2, Positive: 0.1}, Negative},
		{"small positive beats negative", Scores{Negative: 0.1, Neutral: 0.8, Positive: 0.1}, Positive},
		{"positive present but outweighed", Scores{Negative: 0.6, Neutral: 0.3, Positive: 0.1}, Negative},
		{"tie with zero positive is neutral", Scores{Negative: 0, Neutral: 1, Positive: 0}, Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Bucket(tt.scores))
		})
	}
}

func TestClassifier_UsesScorer(t *testing.T) {
	c := NewClassifier(fixedScorer{Negative: 0.6, Neutral: 0.4})
	assert.Equal(t, Negative, c.Classify("anything"))

	c = NewClassifier(fixedScorer{Negative: 0.1, Neutral: 0.3, Positive: 0.6})
	assert.Equal(t, Positive, c.Classify("anything"))
}

func TestPolarity_String(t *testing.T) {
	assert.Equal(t, "negative", Negative.String())
	assert.Equal(t, "neutral", Neutral.String())
	assert.Equal(t, "positive", Positive.String())
}

func TestVader_Polarity(t *testing.T) {
	c := NewClassifier(NewVader())

	assert.Equal(t, Positive, c.Classify("I love this, it is wonderful and great!"))
	assert.Equal(t, Negative, c.Classify("I hate this, it is terrible and awful."))
	assert.Equal(t, Neutral, c.Classify("The table is made of wood."))
}
