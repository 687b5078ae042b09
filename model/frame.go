package model

// NumPianoKeys is the number of keys the pitch model reports on, A0..C8.
const NumPianoKeys = 88

// LowestMidiNote is A0, the key at pitch index 0.
const LowestMidiNote = 21

// ConfidenceFrame holds one time step of model output, one value per piano key.
type ConfidenceFrame = []float64

type FrameCollection = []ConfidenceFrame

// ModelOutput is the full Basic Pitch style output. Only Frames is used for note detection.
type ModelOutput struct {
	Frames   FrameCollection `json:"frames"`
	Onsets   FrameCollection `json:"onsets,omitempty"`
	Contours [][]float64     `json:"contours,omitempty"`
}
