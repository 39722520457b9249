package storage

import (
	"context"
	"fmt"
	"slices"

	"github.com/code-society-lab/grace/internal/domain"
)

func (s *Storage) TriggerByName(_ context.Context, name string) (*domain.Trigger, error) {
	var trigger *domain.Trigger
	err := s.view(func(r *Record) error {
		t, ok := r.Triggers[name]
		if !ok {
			return fmt.Errorf("trigger %q: %w", name, domain.ErrNotFound)
		}
		trigger = &t
		return nil
	})
	return trigger, err
}

// SaveTrigger creates or replaces the trigger with the same name.
func (s *Storage) SaveTrigger(_ context.Context, t domain.Trigger) error {
	words := make([]string, 0, len(t.Words))
	for _, w := range t.Words {
		w = domain.NormalizeWord(w)
		if w != "" && !slices.Contains(words, w) {
			words = append(words, w)
		}
	}
	t.Words = words

	return s.update(func(r *Record) error {
		r.Triggers[t.Name] = t
		return nil
	})
}

func (s *Storage) AddTriggerWord(_ context.Context, name, word string) error {
	word = domain.NormalizeWord(word)
	return s.update(func(r *Record) error {
		t, ok := r.Triggers[name]
		if !ok {
			return fmt.Errorf("trigger %q: %w", name, domain.ErrNotFound)
		}
		if !slices.Contains(t.Words, word) {
			t.Words = append(t.Words, word)
		}
		r.Triggers[name] = t
		return nil
	})
}

func (s *Storage) RemoveTriggerWord(_ context.Context, name, word string) error {
	word = domain.NormalizeWord(word)
	return s.update(func(r *Record) error {
		t, ok := r.Triggers[name]
		if !ok {
			return fmt.Errorf("trigger %q: %w", name, domain.ErrNotFound)
		}
		t.Words = slices.DeleteFunc(t.Words, func(w string) bool { return w == word })
		r.Triggers[name] = t
		return nil
	})
}
