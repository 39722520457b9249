package language

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/code-society-lab/grace/internal/domain"
	"github.com/code-society-lab/grace/internal/metrics"
	"github.com/code-society-lab/grace/internal/sentiment"
)

// Tones recorded on trigger reactions.
const (
	TonePositive = "positive"
	ToneNegative = "negative"
)

// exceptions are the two-token phrases that excuse a keyword occurrence.
var exceptions = [][2]string{
	{"tech", "tips"},
	{"and", "lucy"},
}

// PolarityFunc returns the sentiment of the message under evaluation.
type PolarityFunc func() sentiment.Polarity

// NameReaction reacts to messages that mention botID. Non-negative sentiment
// gets the positive emoji. Messages starting with a raw mention are ignored.
func NameReaction(t *domain.Trigger, botID string, m Message, polarity PolarityFunc) *Action {
	if !m.MentionsUser(botID) || m.HasRawMentionPrefix() {
		return nil
	}
	if polarity() >= sentiment.Neutral {
		return react(t.PositiveEmoji, TonePositive)
	}
	return react(t.NegativeEmoji, ToneNegative)
}

// KeywordReaction scans lower-cased tokens for trigger words.
//
// An occurrence followed by an exception phrase is excused. The first
// occurrence that is not excused while the message is negative returns the
// negative reaction. After the scan the positive reaction is returned only
// when the last occurrence saw a positive message; the excuse flag carries
// over from one occurrence to the next.
func KeywordReaction(t *domain.Trigger, tokens []string, polarity PolarityFunc) *Action {
	matched := false
	fail := false

	for i, tok := range tokens {
		if !t.HasWord(tok) {
			continue
		}
		matched = true

		if exceptionFollows(tokens, i) {
			fail = true
		}

		p := polarity()
		if !fail && p < sentiment.Neutral {
			return react(t.NegativeEmoji, ToneNegative)
		}
		fail = p < sentiment.Positive
	}

	if matched && !fail {
		return react(t.PositiveEmoji, TonePositive)
	}
	return nil
}

func exceptionFollows(tokens []string, i int) bool {
	next, after := tokenAt(tokens, i+1), tokenAt(tokens, i+2)
	for _, e := range exceptions {
		if next == e[0] && after == e[1] {
			return true
		}
	}
	return false
}

func tokenAt(tokens []string, i int) string {
	if i < 0 || i >= len(tokens) {
		return ""
	}
	return tokens[i]
}

// TriggerMatcher looks up trigger records and evaluates them.
type TriggerMatcher struct {
	triggers domain.TriggerRepository
	metrics  *metrics.Metrics
}

func NewTriggerMatcher(triggers domain.TriggerRepository, m *metrics.Metrics) *TriggerMatcher {
	return &TriggerMatcher{triggers: triggers, metrics: m}
}

// Name evaluates the named trigger as a mention trigger.
func (tm *TriggerMatcher) Name(ctx context.Context, name, botID string, m Message, polarity PolarityFunc) (*Action, error) {
	t, err := tm.lookup(ctx, name)
	if t == nil || err != nil {
		return nil, err
	}
	return NameReaction(t, botID, m, polarity), nil
}

// Keyword evaluates the named trigger against the message tokens.
func (tm *TriggerMatcher) Keyword(ctx context.Context, name string, tokens []string, polarity PolarityFunc) (*Action, error) {
	t, err := tm.lookup(ctx, name)
	if t == nil || err != nil {
		return nil, err
	}
	return KeywordReaction(t, tokens, polarity), nil
}

// lookup returns nil without error when the trigger is not configured.
func (tm *TriggerMatcher) lookup(ctx context.Context, name string) (*domain.Trigger, error) {
	t, err := tm.triggers.TriggerByName(ctx, name)
	if errors.Is(err, domain.ErrNotFound) {
		log.Warn().Str("trigger", name).Msgf("Missing trigger entry for %q", name)
		tm.metrics.ObserveMissingTrigger(name)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load trigger %q: %w", name, err)
	}
	return t, nil
}
