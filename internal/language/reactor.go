package language

import (
	"context"
	"fmt"
	"sync"

	"github.com/code-society-lab/grace/internal/domain"
	"github.com/code-society-lab/grace/internal/emoji"
	"github.com/code-society-lab/grace/internal/metrics"
	"github.com/code-society-lab/grace/internal/sentiment"
	"github.com/code-society-lab/grace/internal/tokenize"
)

// Classifier scores message text.
type Classifier interface {
	Classify(text string) sentiment.Polarity
}

// ReactorConfig names the trigger records the reactor reads.
type ReactorConfig struct {
	NameTrigger    string
	KeywordTrigger string
}

// Reactor runs the keyword, name and pun detectors on every message and
// applies their actions through Chat.
type Reactor struct {
	cfg        ReactorConfig
	chat       Chat
	tokenizer  tokenize.Tokenizer
	classifier Classifier
	triggers   *TriggerMatcher
	puns       *PunMatcher
	metrics    *metrics.Metrics
}

func NewReactor(cfg ReactorConfig, repo domain.Repository, chat Chat, tokenizer tokenize.Tokenizer, classifier Classifier, m *metrics.Metrics) *Reactor {
	return &Reactor{
		cfg:        cfg,
		chat:       chat,
		tokenizer:  tokenizer,
		classifier: classifier,
		triggers:   NewTriggerMatcher(repo, m),
		puns:       NewPunMatcher(repo),
		metrics:    m,
	}
}

// OnMessage evaluates m in fixed order: keyword trigger, name trigger, puns.
// A missing trigger only skips its own detector. Chat and storage failures
// stop processing and are returned.
func (r *Reactor) OnMessage(ctx context.Context, botID string, m Message) error {
	tokens := tokenize.Lower(r.tokenizer.Tokenize(m.Content))
	polarity := sync.OnceValue(func() sentiment.Polarity {
		return r.classifier.Classify(m.Content)
	})

	action, err := r.triggers.Keyword(ctx, r.cfg.KeywordTrigger, tokens, polarity)
	if err != nil {
		return err
	}
	if err := r.apply(ctx, "keyword", m, action); err != nil {
		return err
	}

	action, err = r.triggers.Name(ctx, r.cfg.NameTrigger, botID, m, polarity)
	if err != nil {
		return err
	}
	if err := r.apply(ctx, "name", m, action); err != nil {
		return err
	}

	actions, err := r.puns.Evaluate(ctx, botID, m, tokens)
	if err != nil {
		return err
	}
	for i := range actions {
		if err := r.apply(ctx, "pun", m, &actions[i]); err != nil {
			return err
		}
	}

	return nil
}

func (r *Reactor) apply(ctx context.Context, detector string, m Message, a *Action) error {
	if a == nil {
		return nil
	}

	switch a.Kind {
	case ActionReact:
		if err := r.chat.AddReaction(ctx, m.ChannelID, m.ID, emoji.ReactionID(a.Emoji)); err != nil {
			return fmt.Errorf("failed to add %s reaction: %w", detector, err)
		}
		r.metrics.ObserveReaction(detector, a.Tone)
	case ActionReply:
		if err := r.chat.SendEmbed(ctx, m.ChannelID, a.Title, a.Text); err != nil {
			return fmt.Errorf("failed to send %s reply: %w", detector, err)
		}
		r.metrics.ObservePunReply()
	}
	return nil
}
