// Package storagetest holds behaviour tests shared by every domain.Repository
// implementation.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-society-lab/grace/internal/domain"
)

// Run exercises repo implementations built by newRepo. Each subtest gets a
// fresh repository.
func Run(t *testing.T, newRepo func(t *testing.T) domain.Repository) {
	t.Helper()

	t.Run("MissingTrigger", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.TriggerByName(context.Background(), "Linus")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorIs(t, repo.AddTriggerWord(context.Background(), "Linus", "x"), domain.ErrNotFound)
		assert.ErrorIs(t, repo.RemoveTriggerWord(context.Background(), "Linus", "x"), domain.ErrNotFound)
	})

	t.Run("SaveTriggerNormalizesWords", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		require.NoError(t, repo.SaveTrigger(ctx, domain.Trigger{
			Name:          "Linus",
			Words:         []string{"Linus", "linus", " Torvalds "},
			PositiveEmoji: "🐧",
			NegativeEmoji: "😠",
		}))

		got, err := repo.TriggerByName(ctx, "Linus")
		require.NoError(t, err)
		assert.Equal(t, []string{"linus", "torvalds"}, got.Words)
		assert.Equal(t, "🐧", got.PositiveEmoji)
		assert.Equal(t, "😠", got.NegativeEmoji)
	})

	t.Run("TriggerWords", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		require.NoError(t, repo.SaveTrigger(ctx, domain.Trigger{Name: "Linus", Words: []string{"linus"}}))

		require.NoError(t, repo.AddTriggerWord(ctx, "Linus", "Torvalds"))
		require.NoError(t, repo.AddTriggerWord(ctx, "Linus", "torvalds"))
		got, err := repo.TriggerByName(ctx, "Linus")
		require.NoError(t, err)
		assert.Equal(t, []string{"linus", "torvalds"}, got.Words)

		require.NoError(t, repo.RemoveTriggerWord(ctx, "Linus", "LINUS"))
		got, err = repo.TriggerByName(ctx, "Linus")
		require.NoError(t, err)
		assert.Equal(t, []string{"torvalds"}, got.Words)
	})

	t.Run("Puns", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		first, err := repo.CreatePun(ctx, "I knead a break")
		require.NoError(t, err)
		second, err := repo.CreatePun(ctx, "Lettuce begin")
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)

		puns, err := repo.Puns(ctx)
		require.NoError(t, err)
		require.Len(t, puns, 2)
		assert.Equal(t, "I knead a break", puns[0].Text)

		got, err := repo.Pun(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, "Lettuce begin", got.Text)

		_, err = repo.Pun(ctx, 999)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("PunWords", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		pun, err := repo.CreatePun(ctx, "I knead a break")
		require.NoError(t, err)
		other, err := repo.CreatePun(ctx, "Lettuce begin")
		require.NoError(t, err)

		bread, err := repo.AddPunWord(ctx, pun.ID, "Bread", ":bread:")
		require.NoError(t, err)
		assert.Equal(t, "bread", bread.Word)
		assert.Equal(t, pun.ID, bread.PunID)

		_, err = repo.AddPunWord(ctx, pun.ID, "dough", ":moneybag:")
		require.NoError(t, err)
		_, err = repo.AddPunWord(ctx, other.ID, "lettuce", ":leafy_green:")
		require.NoError(t, err)

		_, err = repo.AddPunWord(ctx, 999, "nope", ":x:")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		again, err := repo.AddPunWord(ctx, pun.ID, " BREAD ", ":baguette_bread:")
		require.NoError(t, err)
		assert.Equal(t, bread.ID, again.ID)
		assert.Equal(t, ":bread:", again.Emoji)

		all, err := repo.PunWords(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		words, err := repo.WordsForPun(ctx, pun.ID)
		require.NoError(t, err)
		require.Len(t, words, 2)
		assert.Equal(t, "bread", words[0].Word)
		assert.Equal(t, ":bread:", words[0].Emoji)

		require.NoError(t, repo.RemovePunWord(ctx, pun.ID, "BREAD"))
		words, err = repo.WordsForPun(ctx, pun.ID)
		require.NoError(t, err)
		assert.Len(t, words, 1)

		assert.ErrorIs(t, repo.RemovePunWord(ctx, pun.ID, "bread"), domain.ErrNotFound)
		assert.ErrorIs(t, repo.RemovePunWord(ctx, other.ID, "dough"), domain.ErrNotFound)
	})
}
