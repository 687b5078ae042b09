package detect

import (
	"github.com/jsphweid/notesift/model"
)

// noiseFloor is the confidence below which a value is ignored entirely.
const noiseFloor = 0.1

// aggregate collects per-note statistics over all frames. Notes come back in
// the order they were first seen.
func aggregate(frames model.FrameCollection) []model.NoteStats {
	var stats []model.NoteStats
	// position of each key in stats, -1 when not seen yet
	var index [model.NumPianoKeys]int
	for i := range index {
		index[i] = -1
	}

	for _, frame := range frames {
		for pitchIndex, confidence := range frame {
			// keys past C8 are outside the model contract
			if pitchIndex >= model.NumPianoKeys {
				break
			}
			// also rejects NaN
			if !(confidence >= noiseFloor) {
				continue
			}

			pos := index[pitchIndex]
			if pos < 0 {
				pos = len(stats)
				index[pitchIndex] = pos
				stats = append(stats, model.NoteStats{
					MidiNote: pitchIndex + model.LowestMidiNote,
				})
			}

			s := &stats[pos]
			s.TotalConfidence += confidence
			if confidence > s.MaxConfidence {
				s.MaxConfidence = confidence
			}
			s.FrameCount++
		}
	}

	return stats
}
