// Package storage persists triggers and puns in the JSON datastore.
package storage

import (
	"fmt"
	"sync"

	"github.com/code-society-lab/grace/datastore"
	"github.com/code-society-lab/grace/internal/domain"
)

const languageKey = "language"

// Storage is a domain.Repository backed by a datastore file.
type Storage struct {
	ds *datastore.DataStore
	mu sync.Mutex // guards read-modify-write of the language record
}

// Record is the single document holding all language configuration.
type Record struct {
	Triggers      map[string]domain.Trigger `json:"triggers"`
	Puns          []domain.Pun              `json:"puns"`
	PunWords      []domain.PunWord          `json:"pun_words"`
	NextPunID     int64                     `json:"next_pun_id"`
	NextPunWordID int64                     `json:"next_pun_word_id"`
}

var _ domain.Repository = (*Storage)(nil)

// New opens the datastore file at filePath.
func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

// getRecord loads the language record, filling in empty collections
func (s *Storage) getRecord() (*Record, error) {
	var record Record
	if _, err := s.ds.Load(languageKey, &record); err != nil {
		return nil, fmt.Errorf("error loading language record: %w", err)
	}

	if record.Triggers == nil {
		record.Triggers = map[string]domain.Trigger{}
	}
	if record.Puns == nil {
		record.Puns = []domain.Pun{}
	}
	if record.PunWords == nil {
		record.PunWords = []domain.PunWord{}
	}

	return &record, nil
}

func (s *Storage) putRecord(record *Record) error {
	return s.ds.Set(languageKey, record)
}

// update runs fn against the current record and stores it when fn succeeds
func (s *Storage) update(fn func(*Record) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.getRecord()
	if err != nil {
		return err
	}
	if err := fn(record); err != nil {
		return err
	}
	return s.putRecord(record)
}

// view runs fn against a snapshot of the current record
func (s *Storage) view(fn func(*Record) error) error {
	s.mu.Lock()
	record, err := s.getRecord()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return fn(record)
}
