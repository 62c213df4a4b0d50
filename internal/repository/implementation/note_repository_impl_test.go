package implementation

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"keepwise-be/internal/entity"
	"keepwise-be/internal/migrations"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, migrations.Run(db))
	return db
}

func newNote(userId string) *entity.Note {
	return &entity.Note{
		Id:              uuid.New(),
		UserId:          userId,
		Url:             "https://example.com",
		HighlightedText: "Lorem ipsum",
		Summary:         "A Latin filler text.",
		CreatedAt:       time.Now(),
	}
}

func TestNoteRepositoryRoundtrip(t *testing.T) {
	repo := NewNoteRepository(newTestDB(t))
	ctx := context.Background()

	note := newNote("u1")
	require.NoError(t, repo.Create(ctx, note))

	found, err := repo.FindOne(ctx, "u1", note.Id)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, note.Id, found.Id)
	assert.Equal(t, "u1", found.UserId)
	assert.Equal(t, note.Url, found.Url)
	assert.Equal(t, note.HighlightedText, found.HighlightedText)
	assert.Equal(t, note.Summary, found.Summary)
	assert.WithinDuration(t, note.CreatedAt, found.CreatedAt, time.Second)
}

func TestNoteRepositoryUserScoping(t *testing.T) {
	repo := NewNoteRepository(newTestDB(t))
	ctx := context.Background()

	note := newNote("u1")
	require.NoError(t, repo.Create(ctx, note))

	t.Run("FindOne as other user", func(t *testing.T) {
		found, err := repo.FindOne(ctx, "u2", note.Id)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("FindAll as other user", func(t *testing.T) {
		notes, err := repo.FindAllByUser(ctx, "u2")
		require.NoError(t, err)
		assert.Empty(t, notes)
	})

	t.Run("Delete as other user is a no-op", func(t *testing.T) {
		deleted, err := repo.Delete(ctx, "u2", note.Id)
		require.NoError(t, err)
		assert.False(t, deleted)

		found, err := repo.FindOne(ctx, "u1", note.Id)
		require.NoError(t, err)
		assert.NotNil(t, found)
	})
}

func TestNoteRepositoryListNewestFirst(t *testing.T) {
	repo := NewNoteRepository(newTestDB(t))
	ctx := context.Background()

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		note := newNote("u1")
		note.Url = fmt.Sprintf("https://example.com/%d", i)
		require.NoError(t, repo.Create(ctx, note))
		ids = append(ids, note.Id)
		time.Sleep(5 * time.Millisecond)
	}

	notes, err := repo.FindAllByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, ids[2], notes[0].Id)
	assert.Equal(t, ids[1], notes[1].Id)
	assert.Equal(t, ids[0], notes[2].Id)
}

func TestNoteRepositoryDeleteIdempotent(t *testing.T) {
	repo := NewNoteRepository(newTestDB(t))
	ctx := context.Background()

	note := newNote("u1")
	require.NoError(t, repo.Create(ctx, note))

	deleted, err := repo.Delete(ctx, "u1", note.Id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, "u1", note.Id)
	require.NoError(t, err)
	assert.False(t, deleted)

	found, err := repo.FindOne(ctx, "u1", note.Id)
	require.NoError(t, err)
	assert.Nil(t, found)
}
