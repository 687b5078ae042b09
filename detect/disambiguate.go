package detect

import (
	"github.com/jsphweid/notesift/model"
	"github.com/jsphweid/notesift/util"
)

// Interval thresholds below are empirical calibration, not derived values.
// A candidate is suppressed when its score is under the stronger note's
// score times the threshold for their interval in semitones.

// harmonicThresholds is keyed by candidate minus accepted note.
var harmonicThresholds = map[int]float64{
	12: 0.65, // octave
	19: 0.65, // octave + fifth
	24: 0.7,  // two octaves
	28: 0.5,  // two octaves + major third
	31: 0.5,  // two octaves + fifth
	36: 0.4,  // three octaves
}

// subharmonicThresholds is keyed by candidate minus higher-scored note, so a
// candidate below the stronger note has a negative interval.
var subharmonicThresholds = map[int]float64{
	-12: 0.6, // octave below
	-24: 0.5, // two octaves below
}

const (
	minBaseThreshold   = 0.25
	relativeBaseFactor = 0.4
)

func interval(from, to int) int {
	return to - from
}

// explainedBy reports whether candidate's interval from stronger is in table
// and candidate is too weak to be a note in its own right.
func explainedBy(table map[int]float64, stronger, candidate model.ScoredNote) bool {
	threshold, ok := table[interval(stronger.MidiNote, candidate.MidiNote)]
	return ok && candidate.Score < stronger.Score*threshold
}

// isSubharmonic checks the candidate at index i against every higher scored
// candidate, accepted or not. Pitch models report energy under a played note
// that no instrument produces, so any stronger note can explain it.
func isSubharmonic(notes []model.ScoredNote, i int) bool {
	for _, higher := range notes[:i] {
		if explainedBy(subharmonicThresholds, higher, notes[i]) {
			return true
		}
	}
	return false
}

// isHarmonic checks the candidate against accepted notes only, so a note
// can't be dropped as the overtone of something later dropped itself.
func isHarmonic(accepted []model.ScoredNote, candidate model.ScoredNote) bool {
	for _, stronger := range accepted {
		if explainedBy(harmonicThresholds, stronger, candidate) {
			return true
		}
	}
	return false
}

// disambiguate greedily accepts notes (sorted by descending score) that are
// not explained as a harmonic or sub-harmonic of a stronger note. The first
// note is always accepted and nothing accepted is removed later.
func disambiguate(notes []model.ScoredNote) []model.ScoredNote {
	if len(notes) == 0 {
		return nil
	}

	accepted := []model.ScoredNote{notes[0]}
	baseThreshold := util.Max(minBaseThreshold, notes[0].Score*relativeBaseFactor)

	for i := 1; i < len(notes); i++ {
		note := notes[i]
		if note.Score < baseThreshold {
			continue
		}
		if isSubharmonic(notes, i) || isHarmonic(accepted, note) {
			continue
		}
		accepted = append(accepted, note)
	}

	return accepted
}
