// Package gormstore is a domain.Repository over GORM with a SQLite database.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/code-society-lab/grace/internal/domain"
)

type Trigger struct {
	ID            uint     `gorm:"primaryKey"`
	Name          string   `gorm:"uniqueIndex;not null"`
	Words         []string `gorm:"serializer:json"`
	PositiveEmoji string
	NegativeEmoji string
}

type Pun struct {
	ID    int64     `gorm:"primaryKey"`
	Text  string    `gorm:"not null"`
	Words []PunWord `gorm:"foreignKey:PunID;constraint:OnDelete:CASCADE"`
}

type PunWord struct {
	ID    int64  `gorm:"primaryKey"`
	PunID int64  `gorm:"uniqueIndex:idx_pun_word;not null"`
	Word  string `gorm:"uniqueIndex:idx_pun_word;not null"`
	Emoji string
}

// Store implements domain.Repository.
type Store struct {
	db *gorm.DB
}

var _ domain.Repository = (*Store)(nil)

// Open opens the SQLite database at path and migrates the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer.
	sqlDB.SetMaxOpenConns(1)
	return New(db)
}

// New migrates the schema on db and wraps it.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Trigger{}, &Pun{}, &PunWord{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func notFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf(format+": %w", append(args, domain.ErrNotFound)...)
	}
	return err
}

func (s *Store) TriggerByName(ctx context.Context, name string) (*domain.Trigger, error) {
	var m Trigger
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		return nil, notFound(err, "trigger %q", name)
	}
	return &domain.Trigger{
		Name:          m.Name,
		Words:         m.Words,
		PositiveEmoji: m.PositiveEmoji,
		NegativeEmoji: m.NegativeEmoji,
	}, nil
}

func (s *Store) SaveTrigger(ctx context.Context, t domain.Trigger) error {
	words := make([]string, 0, len(t.Words))
	for _, w := range t.Words {
		w = domain.NormalizeWord(w)
		if w != "" && !slices.Contains(words, w) {
			words = append(words, w)
		}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m Trigger
		err := tx.Where("name = ?", t.Name).First(&m).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		m.Name = t.Name
		m.Words = words
		m.PositiveEmoji = t.PositiveEmoji
		m.NegativeEmoji = t.NegativeEmoji
		return tx.Save(&m).Error
	})
}

func (s *Store) AddTriggerWord(ctx context.Context, name, word string) error {
	word = domain.NormalizeWord(word)
	return s.updateTrigger(ctx, name, func(m *Trigger) {
		if !slices.Contains(m.Words, word) {
			m.Words = append(m.Words, word)
		}
	})
}

func (s *Store) RemoveTriggerWord(ctx context.Context, name, word string) error {
	word = domain.NormalizeWord(word)
	return s.updateTrigger(ctx, name, func(m *Trigger) {
		m.Words = slices.DeleteFunc(m.Words, func(w string) bool { return w == word })
	})
}

func (s *Store) updateTrigger(ctx context.Context, name string, fn func(*Trigger)) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m Trigger
		if err := tx.Where("name = ?", name).First(&m).Error; err != nil {
			return notFound(err, "trigger %q", name)
		}
		fn(&m)
		return tx.Save(&m).Error
	})
}

func (s *Store) Puns(ctx context.Context) ([]domain.Pun, error) {
	var rows []Pun
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	puns := make([]domain.Pun, 0, len(rows))
	for _, r := range rows {
		puns = append(puns, domain.Pun{ID: r.ID, Text: r.Text})
	}
	return puns, nil
}

func (s *Store) Pun(ctx context.Context, id int64) (*domain.Pun, error) {
	var m Pun
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err, "pun %d", id)
	}
	return &domain.Pun{ID: m.ID, Text: m.Text}, nil
}

func (s *Store) CreatePun(ctx context.Context, text string) (*domain.Pun, error) {
	m := Pun{Text: text}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return &domain.Pun{ID: m.ID, Text: m.Text}, nil
}

func (s *Store) PunWords(ctx context.Context) ([]domain.PunWord, error) {
	var rows []PunWord
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toPunWords(rows), nil
}

func (s *Store) WordsForPun(ctx context.Context, punID int64) ([]domain.PunWord, error) {
	var rows []PunWord
	if err := s.db.WithContext(ctx).Where("pun_id = ?", punID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toPunWords(rows), nil
}

func (s *Store) AddPunWord(ctx context.Context, punID int64, word, emoji string) (*domain.PunWord, error) {
	m := PunWord{PunID: punID, Word: domain.NormalizeWord(word), Emoji: emoji}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&Pun{}, punID).Error; err != nil {
			return notFound(err, "pun %d", punID)
		}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pun_id"}, {Name: "word"}},
			DoNothing: true,
		}).Create(&m)
		if res.Error != nil || res.RowsAffected > 0 {
			return res.Error
		}
		return tx.Where("pun_id = ? AND word = ?", punID, m.Word).First(&m).Error
	})
	if err != nil {
		return nil, err
	}
	pw := domain.PunWord(m)
	return &pw, nil
}

func (s *Store) RemovePunWord(ctx context.Context, punID int64, word string) error {
	res := s.db.WithContext(ctx).
		Where("pun_id = ? AND word = ?", punID, domain.NormalizeWord(word)).
		Delete(&PunWord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("pun word %q on pun %d: %w", word, punID, domain.ErrNotFound)
	}
	return nil
}

func toPunWords(rows []PunWord) []domain.PunWord {
	words := make([]domain.PunWord, 0, len(rows))
	for _, r := range rows {
		words = append(words, domain.PunWord(r))
	}
	return words
}
