package detect

import (
	"github.com/jsphweid/notesift/model"
)

// minTopScore is the score the strongest note needs for anything to be reported.
const minTopScore = 0.15

const (
	// C2
	lowRegisterNote  = 36
	lowRegisterScore = 0.25
)

// gate reports whether notes (sorted by score) hold a real detection, and
// whether any strong note sits below C2.
func gate(notes []model.ScoredNote) (ok bool, lowRegister bool) {
	if len(notes) == 0 || notes[0].Score < minTopScore {
		return false, false
	}

	for _, n := range notes {
		if n.MidiNote < lowRegisterNote && n.Score > lowRegisterScore {
			return true, true
		}
	}
	return true, false
}
