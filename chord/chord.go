package chord

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsphweid/notesift/model"
	"github.com/jsphweid/notesift/util"
)

var solfegeNames = [12]string{"Dó", "Dó#", "Ré", "Ré#", "Mi", "Fá", "Fá#", "Sol", "Sol#", "Lá", "Lá#", "Si"}

var englishNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// PitchClassName is the solfege name of the note, ignoring octave.
func PitchClassName(midiNote int) string {
	return solfegeNames[midiNote%12]
}

// EnglishName names the note with its octave, 60 being C4.
func EnglishName(midiNote int) string {
	return fmt.Sprintf("%v%v", englishNames[midiNote%12], midiNote/12-1)
}

func IsBlackKey(midiNote int) bool {
	switch midiNote % 12 {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}

// FormatNotes lists the distinct pitch class names of notes in the order they
// first appear, so two C's in different octaves show up once.
func FormatNotes(notes model.Notes) string {
	var names []string
	for _, note := range notes {
		names = append(names, PitchClassName(note))
	}
	return strings.Join(util.Unique(names), ", ")
}

// CreateChordKey makes a key like "60-64-67" that is the same for any
// ordering of the same notes.
func CreateChordKey(notes model.Notes) string {
	sorted := append(model.Notes{}, notes...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	var res string
	for i, note := range sorted {
		res += fmt.Sprintf("%v", note)
		if i < len(sorted)-1 {
			res += "-"
		}
	}
	return res
}

// MiddleOctave is the octave the keyboard view highlights, C4 to B4.
func MiddleOctave() model.Notes {
	notes := make(model.Notes, 12)
	for i := range notes {
		notes[i] = 60 + i
	}
	return notes
}

// ToMiddleOctave maps each pitch class onto MiddleOctave, for display.
func ToMiddleOctave(pitchClasses []int) model.Notes {
	res := model.Notes{}
	for _, pc := range pitchClasses {
		res = append(res, 60+pc%12)
	}
	return res
}
