package db

import (
	"testing"

	"github.com/jsphweid/notesift/model"
	"github.com/stretchr/testify/assert"
)

func TestDynamoAttributes(t *testing.T) {
	item := testItem(4)
	item.Response = "C major"
	assert.Equal(t, item, attributesToItem(itemToAttributes(item)))
}

func ids(items []model.HistoryItem) []string {
	out := []string{}
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestSortNewestFirst(t *testing.T) {
	items := []model.HistoryItem{
		{ID: "a", Timestamp: "2026-01-01T00:00:09.000000000Z"},
		{ID: "b", Timestamp: "2026-01-01T00:00:10.000000000Z"},
		{ID: "c", Timestamp: "2025-12-31T23:59:59.999999999Z"},
		{ID: "d", Timestamp: "2026-01-01T00:00:10.000000000Z"},
		{ID: "e", Timestamp: "2026-01-01T00:00:09.500000000Z"},
	}
	sortNewestFirst(items)
	assert.Equal(t, []string{"b", "d", "e", "a", "c"}, ids(items))
}

func TestSplitAt(t *testing.T) {
	items := []model.HistoryItem{testItem(3), testItem(2), testItem(1)}

	tests := []struct {
		name string
		n    int
		head []string
		rest []string
	}{
		{"keep none", 0, []string{}, []string{"id-3", "id-2", "id-1"}},
		{"keep some", 2, []string{"id-3", "id-2"}, []string{"id-1"}},
		{"keep exactly all", 3, []string{"id-3", "id-2", "id-1"}, []string{}},
		{"keep more than there are", 20, []string{"id-3", "id-2", "id-1"}, []string{}},
		{"negative", -1, []string{}, []string{"id-3", "id-2", "id-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			head, rest := splitAt(items, tt.n)
			assert.Equal(t, tt.head, ids(head))
			assert.Equal(t, tt.rest, ids(rest))
		})
	}
}
