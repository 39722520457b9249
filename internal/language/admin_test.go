package language

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-society-lab/grace/internal/domain"
	"github.com/code-society-lab/grace/internal/emoji"
)

func newAdmin(t *testing.T) (*Admin, domain.Repository) {
	t.Helper()
	repo := newRepo(t)
	seedTriggers(t, repo)
	return NewAdmin(repo, "Linus"), repo
}

func triggerWords(t *testing.T, repo domain.Repository) []string {
	t.Helper()
	tr, err := repo.TriggerByName(context.Background(), "Linus")
	require.NoError(t, err)
	return tr.Words
}

func TestAdmin_ListTriggers(t *testing.T) {
	admin, _ := newAdmin(t)

	n, err := admin.ListTriggers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Notice{Title: "Triggers", Text: "linus\ntorvalds"}, n)
}

func TestAdmin_AddTrigger(t *testing.T) {
	ctx := context.Background()
	admin, repo := newAdmin(t)

	n, err := admin.AddTrigger(ctx, "kernel")
	require.NoError(t, err)
	assert.Equal(t, "Trigger **kernel** added successfully", n.Text)
	assert.Equal(t, []string{"linus", "torvalds", "kernel"}, triggerWords(t, repo))

	n, err = admin.AddTrigger(ctx, "kernel")
	require.NoError(t, err)
	assert.Equal(t, "**kernel** is already a trigger", n.Text)
	assert.Equal(t, []string{"linus", "torvalds", "kernel"}, triggerWords(t, repo))
}

func TestAdmin_RemoveTrigger(t *testing.T) {
	ctx := context.Background()
	admin, repo := newAdmin(t)

	n, err := admin.RemoveTrigger(ctx, "penguin")
	require.NoError(t, err)
	assert.Equal(t, "**penguin** is not a trigger", n.Text)
	assert.Equal(t, []string{"linus", "torvalds"}, triggerWords(t, repo))

	n, err = admin.RemoveTrigger(ctx, "torvalds")
	require.NoError(t, err)
	assert.Equal(t, "Trigger **torvalds** removed successfully", n.Text)
	assert.Equal(t, []string{"linus"}, triggerWords(t, repo))
}

func TestAdmin_MissingKeywordTrigger(t *testing.T) {
	ctx := context.Background()
	admin := NewAdmin(newRepo(t), "Linus")

	n, err := admin.ListTriggers(ctx)
	require.NoError(t, err)
	assert.True(t, n.IsEmpty())

	n, err = admin.AddTrigger(ctx, "kernel")
	require.NoError(t, err)
	assert.Equal(t, "Unable to add **kernel**", n.Text)

	n, err = admin.RemoveTrigger(ctx, "kernel")
	require.NoError(t, err)
	assert.Equal(t, "Unable to remove **kernel**", n.Text)
}

func TestAdmin_Puns(t *testing.T) {
	ctx := context.Background()
	admin, repo := newAdmin(t)

	n, err := admin.AddPun(ctx, "I knead you")
	require.NoError(t, err)
	assert.Equal(t, "Pun added.", n.Text)
	_, err = admin.AddPun(ctx, "Rye not?")
	require.NoError(t, err)

	n, err = admin.ListPuns(ctx)
	require.NoError(t, err)
	assert.Equal(t, Notice{Title: "Puns", Text: "1.\tI knead you\n2.\tRye not?"}, n)

	n, err = admin.RemovePun(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Pun removed.", n.Text)

	puns, err := repo.Puns(ctx)
	require.NoError(t, err)
	assert.Len(t, puns, 2, "remove only confirms the pun exists")

	n, err = admin.RemovePun(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Pun with id **42** does not exist.", n.Text)
}

func TestAdmin_ListPunsEmpty(t *testing.T) {
	admin, _ := newAdmin(t)

	n, err := admin.ListPuns(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Notice{Title: "Puns"}, n)
	assert.False(t, n.IsEmpty())
}

func TestAdmin_PunWords(t *testing.T) {
	ctx := context.Background()
	admin, repo := newAdmin(t)
	pun, err := repo.CreatePun(ctx, "I knead you")
	require.NoError(t, err)

	rabbit := emoji.Emojize(":rabbit:")

	n, err := admin.AddPunWord(ctx, pun.ID, "Bread", rabbit)
	require.NoError(t, err)
	assert.Equal(t, "Pun word added.", n.Text)

	words, err := repo.WordsForPun(ctx, pun.ID)
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "bread", words[0].Word)
	assert.Equal(t, emoji.Demojize(rabbit), words[0].Emoji)
	assert.Equal(t, rabbit, emoji.Emojize(words[0].Emoji))

	n, err = admin.AddPunWord(ctx, pun.ID, "bread", "🍞")
	require.NoError(t, err)
	assert.Equal(t, "Pun word **bread** already exists.", n.Text)

	n, err = admin.AddPunWord(ctx, 99, "bread", "🍞")
	require.NoError(t, err)
	assert.Equal(t, "Pun with id **99** does not exist.", n.Text)

	n, err = admin.RemovePunWord(ctx, pun.ID, "toast")
	require.NoError(t, err)
	assert.Equal(t, "Pun word **toast** does not exist.", n.Text)

	n, err = admin.RemovePunWord(ctx, 99, "bread")
	require.NoError(t, err)
	assert.Equal(t, "Pun with id **99** does not exist.", n.Text)

	n, err = admin.RemovePunWord(ctx, pun.ID, "bread")
	require.NoError(t, err)
	assert.Equal(t, "Pun word removed.", n.Text)

	words, err = repo.WordsForPun(ctx, pun.ID)
	require.NoError(t, err)
	assert.Empty(t, words)
}
