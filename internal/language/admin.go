package language

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/code-society-lab/grace/internal/domain"
	"github.com/code-society-lab/grace/internal/emoji"
)

// Notice is the reply to an admin operation. A notice with a Title is sent as
// an embed, one with only Text as a plain message. The zero Notice sends
// nothing.
type Notice struct {
	Title string
	Text  string
}

func (n Notice) IsEmpty() bool {
	return n.Title == "" && n.Text == ""
}

func notice(format string, args ...any) Notice {
	return Notice{Text: fmt.Sprintf(format, args...)}
}

// Admin implements the trigger and pun management commands. Expected
// conditions such as duplicates or missing records are reported as notices;
// only storage failures are returned as errors.
type Admin struct {
	repo           domain.Repository
	keywordTrigger string
}

func NewAdmin(repo domain.Repository, keywordTrigger string) *Admin {
	return &Admin{repo: repo, keywordTrigger: keywordTrigger}
}

// keyword loads the managed trigger, returning nil when it is not configured.
func (a *Admin) keyword(ctx context.Context) (*domain.Trigger, error) {
	t, err := a.repo.TriggerByName(ctx, a.keywordTrigger)
	if errors.Is(err, domain.ErrNotFound) {
		log.Warn().Str("trigger", a.keywordTrigger).Msgf("Missing trigger entry for %q", a.keywordTrigger)
		return nil, nil
	}
	return t, err
}

// ListTriggers lists the keyword trigger words.
func (a *Admin) ListTriggers(ctx context.Context) (Notice, error) {
	t, err := a.keyword(ctx)
	if t == nil || err != nil {
		return Notice{}, err
	}
	return Notice{Title: "Triggers", Text: strings.Join(t.Words, "\n")}, nil
}

func (a *Admin) AddTrigger(ctx context.Context, word string) (Notice, error) {
	t, err := a.keyword(ctx)
	if err != nil {
		return Notice{}, err
	}
	if t == nil {
		return notice("Unable to add **%s**", word), nil
	}
	if t.HasWord(word) {
		return notice("**%s** is already a trigger", word), nil
	}
	if err := a.repo.AddTriggerWord(ctx, t.Name, word); err != nil {
		return Notice{}, fmt.Errorf("failed to add trigger word: %w", err)
	}
	return notice("Trigger **%s** added successfully", word), nil
}

func (a *Admin) RemoveTrigger(ctx context.Context, word string) (Notice, error) {
	t, err := a.keyword(ctx)
	if err != nil {
		return Notice{}, err
	}
	if t == nil {
		return notice("Unable to remove **%s**", word), nil
	}
	if !t.HasWord(word) {
		return notice("**%s** is not a trigger", word), nil
	}
	if err := a.repo.RemoveTriggerWord(ctx, t.Name, word); err != nil {
		return Notice{}, fmt.Errorf("failed to remove trigger word: %w", err)
	}
	return notice("Trigger **%s** removed successfully", word), nil
}

// ListPuns lists every pun as "<id>.\t<text>".
func (a *Admin) ListPuns(ctx context.Context) (Notice, error) {
	puns, err := a.repo.Puns(ctx)
	if err != nil {
		return Notice{}, fmt.Errorf("failed to load puns: %w", err)
	}

	lines := make([]string, 0, len(puns))
	for _, p := range puns {
		lines = append(lines, fmt.Sprintf("%d.\t%s", p.ID, p.Text))
	}
	return Notice{Title: "Puns", Text: strings.Join(lines, "\n")}, nil
}

func (a *Admin) AddPun(ctx context.Context, text string) (Notice, error) {
	if _, err := a.repo.CreatePun(ctx, text); err != nil {
		return Notice{}, fmt.Errorf("failed to create pun: %w", err)
	}
	return notice("Pun added."), nil
}

// RemovePun confirms an existing pun but leaves the record in place.
//
// TODO: delete the pun and its words once a DeletePun repository method
// exists and the behavior change is agreed on.
func (a *Admin) RemovePun(ctx context.Context, id int64) (Notice, error) {
	_, ok, err := a.pun(ctx, id)
	if err != nil {
		return Notice{}, err
	}
	if !ok {
		return notice("Pun with id **%d** does not exist.", id), nil
	}
	return notice("Pun removed."), nil
}

// AddPunWord attaches word to a pun. The emoji is stored as a :shortcode:
// alias when one is known.
func (a *Admin) AddPunWord(ctx context.Context, id int64, word, emojiText string) (Notice, error) {
	words, ok, err := a.pun(ctx, id)
	if err != nil {
		return Notice{}, err
	}
	if !ok {
		return notice("Pun with id **%d** does not exist.", id), nil
	}
	if hasPunWord(words, word) {
		return notice("Pun word **%s** already exists.", word), nil
	}
	if _, err := a.repo.AddPunWord(ctx, id, word, emoji.Demojize(emojiText)); err != nil {
		return Notice{}, fmt.Errorf("failed to add pun word: %w", err)
	}
	return notice("Pun word added."), nil
}

func (a *Admin) RemovePunWord(ctx context.Context, id int64, word string) (Notice, error) {
	words, ok, err := a.pun(ctx, id)
	if err != nil {
		return Notice{}, err
	}
	if !ok {
		return notice("Pun with id **%d** does not exist.", id), nil
	}
	if !hasPunWord(words, word) {
		return notice("Pun word **%s** does not exist.", word), nil
	}
	if err := a.repo.RemovePunWord(ctx, id, word); err != nil {
		return Notice{}, fmt.Errorf("failed to remove pun word: %w", err)
	}
	return notice("Pun word removed."), nil
}

// pun reports whether the pun exists and returns its words.
func (a *Admin) pun(ctx context.Context, id int64) ([]domain.PunWord, bool, error) {
	_, err := a.repo.Pun(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load pun %d: %w", id, err)
	}

	words, err := a.repo.WordsForPun(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load words for pun %d: %w", id, err)
	}
	return words, true, nil
}

func hasPunWord(words []domain.PunWord, word string) bool {
	word = domain.NormalizeWord(word)
	for _, w := range words {
		if w.Word == word {
			return true
		}
	}
	return false
}
