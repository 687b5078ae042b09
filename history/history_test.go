package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jsphweid/notesift/db"
	"github.com/jsphweid/notesift/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestManager(t *testing.T) *Manager {
	store, err := db.NewSQLiteStore(filepath.Join(t.TempDir(), "history.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	m := NewManager(store)
	clock := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return m
}

func TestSaveAndList(t *testing.T) {
	ctx := context.Background()
	m := createTestManager(t)

	item, saved, err := m.Save(ctx, model.Notes{60, 64, 67}, "C major")
	require.NoError(t, err)

	assert := assert.New(t)
	assert.True(saved)
	assert.NotEmpty(item.ID)
	assert.Equal("Dó, Mi, Sol", item.FormattedNotes)
	assert.Equal("2026-10-19T12:00:01.000000000Z", item.Timestamp)

	items, err := m.List(ctx)
	require.NoError(t, err)
	assert.Equal([]model.HistoryItem{item}, items)
}

func TestSaveIgnoresEmptyNotes(t *testing.T) {
	ctx := context.Background()
	m := createTestManager(t)

	_, saved, err := m.Save(ctx, nil, "")
	require.NoError(t, err)
	assert.False(t, saved)
}

func TestSaveSkipsSamePitchClasses(t *testing.T) {
	ctx := context.Background()
	m := createTestManager(t)

	_, saved, err := m.Save(ctx, model.Notes{60, 64, 67}, "")
	require.NoError(t, err)
	assert.True(t, saved)

	// same pitch classes, different octave
	_, saved, err = m.Save(ctx, model.Notes{48, 52, 55}, "")
	require.NoError(t, err)
	assert.False(t, saved)

	items, err := m.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestHistoryIsCappedNewestFirst(t *testing.T) {
	ctx := context.Background()
	m := createTestManager(t)
	m.maxItems = 3

	for _, note := range []int{60, 61, 62, 63, 64} {
		_, saved, err := m.Save(ctx, model.Notes{note}, "")
		require.NoError(t, err)
		require.True(t, saved)
	}

	items, err := m.List(ctx)
	require.NoError(t, err)

	var firstNotes []int
	for _, item := range items {
		firstNotes = append(firstNotes, item.Notes[0])
	}
	assert.Equal(t, []int{64, 63, 62}, firstNotes)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	m := createTestManager(t)
	_, _, err := m.Save(ctx, model.Notes{60}, "")
	require.NoError(t, err)

	require.NoError(t, m.Clear(ctx))
	items, err := m.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
