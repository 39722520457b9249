// Package domain holds the configuration records the language features read
// on every message and the repository contracts that persist them.
package domain

import (
	"context"
	"errors"
	"slices"
	"strings"
)

// ErrNotFound is returned by repositories when a keyed lookup has no record.
var ErrNotFound = errors.New("record not found")

// Trigger pairs a name with a word list and two reactions.
type Trigger struct {
	Name          string   `json:"name" yaml:"name"`
	Words         []string `json:"words" yaml:"words"`
	PositiveEmoji string   `json:"positive_emoji" yaml:"positive_emoji"`
	NegativeEmoji string   `json:"negative_emoji" yaml:"negative_emoji"`
}

// HasWord reports whether word is one of the trigger words, ignoring case.
func (t *Trigger) HasWord(word string) bool {
	return slices.Contains(t.Words, NormalizeWord(word))
}

// Pun is a reply text sent when one of its words shows up in a message.
type Pun struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// PunWord is a single matchable token. PunID references its parent Pun.
type PunWord struct {
	ID    int64  `json:"id"`
	PunID int64  `json:"pun_id"`
	Word  string `json:"word"`
	Emoji string `json:"emoji"`
}

// NormalizeWord lower-cases and trims a trigger or pun word.
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// TriggerRepository stores Trigger records keyed by name.
type TriggerRepository interface {
	TriggerByName(ctx context.Context, name string) (*Trigger, error)
	SaveTrigger(ctx context.Context, t Trigger) error
	AddTriggerWord(ctx context.Context, name, word string) error
	RemoveTriggerWord(ctx context.Context, name, word string) error
}

// PunRepository stores Pun records and the words pointing at them.
type PunRepository interface {
	Puns(ctx context.Context) ([]Pun, error)
	Pun(ctx context.Context, id int64) (*Pun, error)
	CreatePun(ctx context.Context, text string) (*Pun, error)
	PunWords(ctx context.Context) ([]PunWord, error)
	WordsForPun(ctx context.Context, punID int64) ([]PunWord, error)
	AddPunWord(ctx context.Context, punID int64, word, emoji string) (*PunWord, error)
	RemovePunWord(ctx context.Context, punID int64, word string) error
}

// Repository is the full record store used by the bot and the CLI.
type Repository interface {
	TriggerRepository
	PunRepository
	Close() error
}
