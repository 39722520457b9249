package storage

import (
	"context"
	"fmt"
	"slices"

	"github.com/code-society-lab/grace/internal/domain"
)

func (s *Storage) Puns(_ context.Context) ([]domain.Pun, error) {
	var puns []domain.Pun
	err := s.view(func(r *Record) error {
		puns = r.Puns
		return nil
	})
	return puns, err
}

func (s *Storage) Pun(_ context.Context, id int64) (*domain.Pun, error) {
	var pun *domain.Pun
	err := s.view(func(r *Record) error {
		i := slices.IndexFunc(r.Puns, func(p domain.Pun) bool { return p.ID == id })
		if i < 0 {
			return fmt.Errorf("pun %d: %w", id, domain.ErrNotFound)
		}
		pun = &r.Puns[i]
		return nil
	})
	return pun, err
}

func (s *Storage) CreatePun(_ context.Context, text string) (*domain.Pun, error) {
	var pun domain.Pun
	err := s.update(func(r *Record) error {
		r.NextPunID++
		pun = domain.Pun{ID: r.NextPunID, Text: text}
		r.Puns = append(r.Puns, pun)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &pun, nil
}

func (s *Storage) PunWords(_ context.Context) ([]domain.PunWord, error) {
	var words []domain.PunWord
	err := s.view(func(r *Record) error {
		words = r.PunWords
		return nil
	})
	return words, err
}

func (s *Storage) WordsForPun(_ context.Context, punID int64) ([]domain.PunWord, error) {
	var words []domain.PunWord
	err := s.view(func(r *Record) error {
		for _, w := range r.PunWords {
			if w.PunID == punID {
				words = append(words, w)
			}
		}
		return nil
	})
	return words, err
}

func (s *Storage) AddPunWord(_ context.Context, punID int64, word, emoji string) (*domain.PunWord, error) {
	var pw domain.PunWord
	err := s.update(func(r *Record) error {
		if !slices.ContainsFunc(r.Puns, func(p domain.Pun) bool { return p.ID == punID }) {
			return fmt.Errorf("pun %d: %w", punID, domain.ErrNotFound)
		}
		norm := domain.NormalizeWord(word)
		if i := slices.IndexFunc(r.PunWords, func(w domain.PunWord) bool { return w.PunID == punID && w.Word == norm }); i >= 0 {
			pw = r.PunWords[i]
			return nil
		}
		r.NextPunWordID++
		pw = domain.PunWord{
			ID:    r.NextPunWordID,
			PunID: punID,
			Word:  norm,
			Emoji: emoji,
		}
		r.PunWords = append(r.PunWords, pw)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &pw, nil
}

func (s *Storage) RemovePunWord(_ context.Context, punID int64, word string) error {
	word = domain.NormalizeWord(word)
	return s.update(func(r *Record) error {
		before := len(r.PunWords)
		r.PunWords = slices.DeleteFunc(r.PunWords, func(w domain.PunWord) bool {
			return w.PunID == punID && w.Word == word
		})
		if len(r.PunWords) == before {
			return fmt.Errorf("pun word %q on pun %d: %w", word, punID, domain.ErrNotFound)
		}
		return nil
	})
}
