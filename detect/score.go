package detect

import (
	"cmp"

	"github.com/jsphweid/notesift/model"
	"golang.org/x/exp/slices"
)

// minFrameRatio is the share of frames a note must appear in to count as
// sustained rather than a transient.
const minFrameRatio = 0.15

const (
	peakWeight    = 0.7
	averageWeight = 0.3
)

// registerBoost amplifies low notes, which the pitch model under-reports.
func registerBoost(midiNote int) float64 {
	switch {
	case midiNote >= 36 && midiNote < 48: // C2..B2
		return 1.15
	case midiNote >= 28 && midiNote < 36: // E1..B1
		return 1.25
	case midiNote >= 21 && midiNote < 28: // A0..D#1
		return 1.35
	}
	return 1.0
}

// score ranks stats by descending score. Equal scores keep their input order.
func score(stats []model.NoteStats, numFrames int) []model.ScoredNote {
	notes := make([]model.ScoredNote, 0, len(stats))
	for _, s := range stats {
		if float64(s.FrameCount) < float64(numFrames)*minFrameRatio {
			continue
		}

		avg := s.TotalConfidence / float64(s.FrameCount)
		notes = append(notes, model.ScoredNote{
			MidiNote:      s.MidiNote,
			Score:         (s.MaxConfidence*peakWeight + avg*averageWeight) * registerBoost(s.MidiNote),
			MaxConfidence: s.MaxConfidence,
			AvgConfidence: avg,
			FrameCount:    s.FrameCount,
			FrameRatio:    float64(s.FrameCount) / float64(numFrames),
		})
	}

	slices.SortStableFunc(notes, func(a, b model.ScoredNote) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return notes
}
