package db

import (
	"context"
	"fmt"

	"github.com/jsphweid/notesift/constants"
	"github.com/jsphweid/notesift/model"
)

// HistoryStore persists analysis history. List returns newest first.
type HistoryStore interface {
	Insert(ctx context.Context, item model.HistoryItem) error
	List(ctx context.Context, limit int) ([]model.HistoryItem, error)
	HasFormatted(ctx context.Context, formattedNotes string) (bool, error)
	// Trim deletes everything but the newest keep items.
	Trim(ctx context.Context, keep int) error
	Clear(ctx context.Context) error
	Close() error
}

// Open returns the store selected by HISTORY_BACKEND.
func Open() (HistoryStore, error) {
	switch backend := constants.GetHistoryBackend(); backend {
	case "sqlite":
		return NewSQLiteStore(constants.GetHistoryDBPath())
	case "dynamodb":
		return NewDynamoStore(constants.GetDynamoEndpoint(), constants.GetAWSRegion(), constants.GetDynamoTable())
	default:
		return nil, fmt.Errorf("unknown history backend: %v", backend)
	}
}

var (
	_ HistoryStore = (*SQLiteStore)(nil)
	_ HistoryStore = (*DynamoStore)(nil)
)
