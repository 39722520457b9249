package language

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/code-society-lab/grace/internal/domain"
)

const (
	GotchaTitle = "Gotcha"
	TonePun     = "pun"
)

// MatchPunWords returns the pun word records whose word appears in tokens,
// and the distinct pun IDs they reference in first-seen order.
func MatchPunWords(tokens []string, words []domain.PunWord) ([]domain.PunWord, []int64) {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[domain.NormalizeWord(t)] = struct{}{}
	}

	var matched []domain.PunWord
	var punIDs []int64
	seen := map[int64]bool{}

	for _, w := range words {
		if _, ok := set[w.Word]; !ok {
			continue
		}
		matched = append(matched, w)
		if !seen[w.PunID] {
			seen[w.PunID] = true
			punIDs = append(punIDs, w.PunID)
		}
	}
	return matched, punIDs
}

// PunMatcher turns pun word hits into reactions and replies.
type PunMatcher struct {
	puns domain.PunRepository
}

func NewPunMatcher(puns domain.PunRepository) *PunMatcher {
	return &PunMatcher{puns: puns}
}

// Evaluate returns one reaction per matched pun word followed by one reply per
// distinct pun. Messages written by botID are ignored.
func (pm *PunMatcher) Evaluate(ctx context.Context, botID string, m Message, tokens []string) ([]Action, error) {
	if m.AuthorID == botID {
		return nil, nil
	}

	words, err := pm.puns.PunWords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pun words: %w", err)
	}

	matched, punIDs := MatchPunWords(tokens, words)
	if len(matched) == 0 {
		return nil, nil
	}

	actions := make([]Action, 0, len(matched)+len(punIDs))
	for _, w := range matched {
		actions = append(actions, Action{Kind: ActionReact, Emoji: w.Emoji, Tone: TonePun})
	}

	for _, id := range punIDs {
		pun, err := pm.puns.Pun(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			log.Warn().Int64("pun_id", id).Msg("Pun word references a missing pun")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load pun %d: %w", id, err)
		}
		actions = append(actions, Action{Kind: ActionReply, Title: GotchaTitle, Text: pun.Text, Tone: TonePun})
	}

	return actions, nil
}
