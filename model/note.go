package model

type NoteStats struct {
	MidiNote        int
	TotalConfidence float64
	MaxConfidence   float64
	FrameCount      uint32
}

type ScoredNote struct {
	MidiNote      int     `json:"midi_note"`
	Score         float64 `json:"score"`
	MaxConfidence float64 `json:"max_confidence"`
	AvgConfidence float64 `json:"avg_confidence"`
	FrameCount    uint32  `json:"frame_count"`
	FrameRatio    float64 `json:"frame_ratio"`
}

type Result struct {
	DetectedMidiNotes  Notes  `json:"detected_midi_notes"`
	PitchClasses       []int  `json:"pitch_classes"`
	LowRegisterWarning bool   `json:"low_register_warning"`
	Warning            string `json:"warning,omitempty"`
}

// Analysis is a Result along with the candidates it was chosen from.
type Analysis struct {
	Result
	Candidates []ScoredNote `json:"candidates"`
}
