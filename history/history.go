package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jsphweid/notesift/chord"
	"github.com/jsphweid/notesift/constants"
	"github.com/jsphweid/notesift/db"
	"github.com/jsphweid/notesift/model"
)

// TimestampFormat is fixed width so stored timestamps sort as strings.
const TimestampFormat = "2006-01-02T15:04:05.000000000Z07:00"

type Manager struct {
	store    db.HistoryStore
	maxItems int
	now      func() time.Time
}

func NewManager(store db.HistoryStore) *Manager {
	return &Manager{
		store:    store,
		maxItems: constants.MaxHistoryItems,
		now:      time.Now,
	}
}

// Save records an analysis. Empty note lists are ignored, as are notes whose
// pitch classes are already in the history. It returns the new item and
// whether anything was saved.
func (m *Manager) Save(ctx context.Context, notes model.Notes, response string) (model.HistoryItem, bool, error) {
	if len(notes) == 0 {
		return model.HistoryItem{}, false, nil
	}

	formatted := chord.FormatNotes(notes)
	dup, err := m.store.HasFormatted(ctx, formatted)
	if err != nil {
		return model.HistoryItem{}, false, fmt.Errorf("could not check history: %w", err)
	}
	if dup {
		return model.HistoryItem{}, false, nil
	}

	item := model.HistoryItem{
		ID:             uuid.New().String(),
		Notes:          append(model.Notes{}, notes...),
		FormattedNotes: formatted,
		Response:       response,
		Timestamp:      m.now().UTC().Format(TimestampFormat),
	}
	if err := m.store.Insert(ctx, item); err != nil {
		return model.HistoryItem{}, false, fmt.Errorf("could not save history item: %w", err)
	}
	if err := m.store.Trim(ctx, m.maxItems); err != nil {
		return item, true, fmt.Errorf("could not trim history: %w", err)
	}
	return item, true, nil
}

// List returns the history, newest first.
func (m *Manager) List(ctx context.Context) ([]model.HistoryItem, error) {
	return m.store.List(ctx, m.maxItems)
}

func (m *Manager) Clear(ctx context.Context) error {
	return m.store.Clear(ctx)
}
