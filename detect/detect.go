// Package detect turns pitch model confidence frames into the set of notes
// that were actually played.
//
// The pipeline runs in four steps: aggregate per-note statistics over all
// frames, score and rank the notes, gate the result on a global confidence
// floor, then drop candidates that look like octave harmonics or
// sub-harmonics of stronger notes. Everything here is pure and safe to call
// from multiple goroutines.
package detect

import (
	"github.com/jsphweid/notesift/model"
)

const LowRegisterWarning = "low-register notes detected, accuracy may be reduced"

// Notes returns the notes detected in frames.
func Notes(frames model.FrameCollection) model.Result {
	return Analyze(frames).Result
}

// Analyze is Notes, but also returns every scored candidate that was considered.
func Analyze(frames model.FrameCollection) model.Analysis {
	var res model.Analysis
	res.DetectedMidiNotes = model.Notes{}
	res.PitchClasses = []int{}

	if isEmpty(frames) {
		return res
	}

	stats := aggregate(frames)
	notes := score(stats, len(frames))
	res.Candidates = notes

	ok, lowRegister := gate(notes)
	if !ok {
		return res
	}
	if lowRegister {
		res.LowRegisterWarning = true
		res.Warning = LowRegisterWarning
	}

	for _, n := range disambiguate(notes) {
		res.DetectedMidiNotes = append(res.DetectedMidiNotes, n.MidiNote)
	}
	res.PitchClasses = PitchClasses(res.DetectedMidiNotes)
	return res
}

func isEmpty(frames model.FrameCollection) bool {
	for _, frame := range frames {
		if len(frame) > 0 {
			return false
		}
	}
	return true
}

// PitchClasses returns the distinct midi%12 values of notes, ascending.
func PitchClasses(notes model.Notes) []int {
	var present [12]bool
	for _, n := range notes {
		present[n%12] = true
	}
	res := []int{}
	for pc, ok := range present {
		if ok {
			res = append(res, pc)
		}
	}
	return res
}
