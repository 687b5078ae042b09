package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jsphweid/notesift/model"
	"github.com/jsphweid/notesift/util"
	_ "github.com/mattn/go-sqlite3" // SQLite driver registration
)

const createHistoryTable = `
CREATE TABLE IF NOT EXISTS history (
    id TEXT PRIMARY KEY,
    notes TEXT NOT NULL,
    formatted_notes TEXT NOT NULL,
    response TEXT NOT NULL DEFAULT '',
    timestamp TEXT NOT NULL,
    seq INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_seq ON history(seq);
CREATE INDEX IF NOT EXISTS idx_history_formatted ON history(formatted_notes);
`

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	dbPath := dataSourceName
	if idx := strings.Index(dataSourceName, "?"); idx != -1 {
		dbPath = dataSourceName[:idx]
	}
	if err := util.EnsureParentDir(dbPath); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	if !strings.Contains(dataSourceName, "_busy_timeout") {
		if strings.Contains(dataSourceName, "?") {
			dataSourceName += "&_busy_timeout=5000"
		} else {
			dataSourceName += "?_busy_timeout=5000"
		}
	}

	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("error connecting to SQLite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("error setting pragmas: %w", err)
	}
	if _, err := db.Exec(createHistoryTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating history table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Insert(ctx context.Context, item model.HistoryItem) error {
	notes, err := json.Marshal(item.Notes)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
	INSERT INTO history (id, notes, formatted_notes, response, timestamp, seq)
	VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM history))`,
		item.ID, string(notes), item.FormattedNotes, item.Response, item.Timestamp)
	return err
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]model.HistoryItem, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, notes, formatted_notes, response, timestamp
	FROM history ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.HistoryItem{}
	for rows.Next() {
		var item model.HistoryItem
		var notes string
		if err := rows.Scan(&item.ID, &notes, &item.FormattedNotes, &item.Response, &item.Timestamp); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(notes), &item.Notes); err != nil {
			return nil, fmt.Errorf("bad notes for history item %v: %w", item.ID, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *SQLiteStore) HasFormatted(ctx context.Context, formattedNotes string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM history WHERE formatted_notes = ?", formattedNotes).Scan(&count)
	return count > 0, err
}

func (s *SQLiteStore) Trim(ctx context.Context, keep int) error {
	_, err := s.db.ExecContext(ctx, `
	DELETE FROM history WHERE seq NOT IN (SELECT seq FROM history ORDER BY seq DESC LIMIT ?)`, keep)
	return err
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM history")
	return err
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
