// Package seed loads initial triggers and puns from YAML and applies them to
// a repository without overwriting existing records.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/code-society-lab/grace/internal/domain"
)

type File struct {
	Triggers []domain.Trigger `yaml:"triggers"`
	Puns     []Pun            `yaml:"puns"`
}

type Pun struct {
	Text  string `yaml:"text"`
	Words []Word `yaml:"words"`
}

type Word struct {
	Word  string `yaml:"word"`
	Emoji string `yaml:"emoji"`
}

// Defaults returns the two trigger rows the reaction features expect.
func Defaults(nameTrigger, keywordTrigger string) *File {
	return &File{
		Triggers: []domain.Trigger{
			{
				Name:          nameTrigger,
				Words:         []string{},
				PositiveEmoji: "💖",
				NegativeEmoji: "💔",
			},
			{
				Name:          keywordTrigger,
				Words:         []string{"linus", "torvalds"},
				PositiveEmoji: "🐧",
				NegativeEmoji: "😠",
			},
		},
	}
}

// Load reads a seed file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML seed data.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	for i, t := range f.Triggers {
		if t.Name == "" {
			return nil, fmt.Errorf("trigger #%d has no name", i+1)
		}
	}
	return &f, nil
}

// Apply creates the triggers that do not exist yet, and the puns whose text
// is not stored yet. Words are added to matching puns when missing.
func Apply(ctx context.Context, repo domain.Repository, f *File) error {
	for _, t := range f.Triggers {
		_, err := repo.TriggerByName(ctx, t.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if err := repo.SaveTrigger(ctx, t); err != nil {
			return fmt.Errorf("seed trigger %q: %w", t.Name, err)
		}
		log.Info().Str("trigger", t.Name).Msg("Seeded trigger")
	}

	if len(f.Puns) == 0 {
		return nil
	}

	existing, err := repo.Puns(ctx)
	if err != nil {
		return err
	}

	for _, p := range f.Puns {
		var pun *domain.Pun
		if i := slices.IndexFunc(existing, func(e domain.Pun) bool { return e.Text == p.Text }); i >= 0 {
			pun = &existing[i]
		} else {
			pun, err = repo.CreatePun(ctx, p.Text)
			if err != nil {
				return fmt.Errorf("seed pun: %w", err)
			}
			log.Info().Int64("pun_id", pun.ID).Msg("Seeded pun")
		}

		words, err := repo.WordsForPun(ctx, pun.ID)
		if err != nil {
			return err
		}
		for _, w := range p.Words {
			norm := domain.NormalizeWord(w.Word)
			if slices.ContainsFunc(words, func(pw domain.PunWord) bool { return pw.Word == norm }) {
				continue
			}
			if _, err := repo.AddPunWord(ctx, pun.ID, norm, w.Emoji); err != nil {
				return fmt.Errorf("seed pun word %q: %w", w.Word, err)
			}
		}
	}

	return nil
}
