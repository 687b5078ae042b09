package model

// Notes are MIDI note numbers. 60 is middle C.
type Notes = []int

type HistoryItem struct {
	ID             string `json:"id"`
	Notes          Notes  `json:"notes"`
	FormattedNotes string `json:"formatted_notes"`
	Response       string `json:"response,omitempty"`
	Timestamp      string `json:"timestamp"`
}
