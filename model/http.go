package model

type DetectRequestBody struct {
	Frames FrameCollection `json:"frames"`
	Save   bool            `json:"save"`
	Debug  bool            `json:"debug"`
}

type DetectResponse struct {
	Result
	FormattedNotes string       `json:"formatted_notes"`
	ChordKey       string       `json:"chord_key"`
	HistoryID      string       `json:"history_id,omitempty"`
	Candidates     []ScoredNote `json:"candidates,omitempty"`
}

type ExplainRequestBody struct {
	Notes Notes `json:"notes"`
}

type ExplainResponse struct {
	Notes          Notes  `json:"notes"`
	FormattedNotes string `json:"formatted_notes"`
	Explanation    string `json:"explanation"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
