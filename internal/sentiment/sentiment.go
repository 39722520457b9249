// Package sentiment reduces lexicon sentiment scores to a three-way polarity.
package sentiment

// Polarity is the ternary sentiment of a message.
type Polarity int

const (
	Negative Polarity = -1
	Neutral  Polarity = 0
	Positive Polarity = 1
)

func (p Polarity) String() string {
	switch p {
	case Negative:
		return "negative"
	case Positive:
		return "positive"
	default:
		return "neutral"
	}
}

// Scores are the proportions reported by a lexicon scorer. Compound is the
// normalized aggregate in [-1, 1].
type Scores struct {
	Negative float64
	Neutral  float64
	Positive float64
	Compound float64
}

// Scorer produces sentiment scores for a text.
type Scorer interface {
	PolarityScores(text string) Scores
}

// Bucket maps scores to a polarity. A text with no positive score at all, or
// one whose negative score outweighs neutral and positive together, is never
// positive; it is negative only when negative beats positive.
func Bucket(s Scores) Polarity {
	if s.Neutral+s.Positive < s.Negative || s.Positive == 0 {
		if s.Negative > s.Positive {
			return Negative
		}
		return Neutral
	}
	return Positive
}

// Classifier turns text into a Polarity.
type Classifier struct {
	scorer Scorer
}

func NewClassifier(scorer Scorer) *Classifier {
	return &Classifier{scorer: scorer}
}

// Classify scores text and buckets the result.
func (c *Classifier) Classify(text string) Polarity {
	return Bucket(c.scorer.PolarityScores(text))
}
