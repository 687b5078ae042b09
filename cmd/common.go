package cmd

import (
	"context"
	"time"

	"github.com/jsphweid/notesift/constants"
	"github.com/jsphweid/notesift/db"
	"github.com/jsphweid/notesift/explain"
	"github.com/jsphweid/notesift/history"
)

// explainInterval spaces out LLM calls.
const explainInterval = 4 * time.Second

func openHistory() (*history.Manager, db.HistoryStore, error) {
	store, err := db.Open()
	if err != nil {
		return nil, nil, err
	}
	return history.NewManager(store), store, nil
}

func newExplainer(ctx context.Context) (*explain.Client, error) {
	return explain.NewClient(ctx, constants.GetGeminiAPIKey(), constants.GetGeminiModel(), explainInterval)
}
