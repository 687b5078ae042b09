package db

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jsphweid/notesift/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStore(t *testing.T) *SQLiteStore {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "nested", "history.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testItem(i int) model.HistoryItem {
	return model.HistoryItem{
		ID:             fmt.Sprintf("id-%v", i),
		Notes:          model.Notes{60, 60 + i},
		FormattedNotes: fmt.Sprintf("formatted-%v", i),
		Timestamp:      fmt.Sprintf("2026-01-01T00:00:%02d.000000000Z", i),
	}
}

func TestSQLiteInsertAndListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	for i := 1; i <= 3; i++ {
		require.NoError(t, s.Insert(ctx, testItem(i)))
	}

	items, err := s.List(ctx, 10)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Len(items, 3)
	assert.Equal(testItem(3), items[0])
	assert.Equal(testItem(1), items[2])

	items, err = s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(items, 2)
}

func TestSQLiteHasFormatted(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	require.NoError(t, s.Insert(ctx, testItem(1)))

	found, err := s.HasFormatted(ctx, "formatted-1")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = s.HasFormatted(ctx, "formatted-2")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSQLiteTrimKeepsNewest(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	for i := 1; i <= 5; i++ {
		require.NoError(t, s.Insert(ctx, testItem(i)))
	}

	require.NoError(t, s.Trim(ctx, 2))

	items, err := s.List(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"id-5", "id-4"}, []string{items[0].ID, items[1].ID})
	assert.Len(t, items, 2)
}

func TestSQLiteClear(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	require.NoError(t, s.Insert(ctx, testItem(1)))
	require.NoError(t, s.Clear(ctx))

	items, err := s.List(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}
