package midi

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jsphweid/notesift/model"
	"github.com/jsphweid/notesift/util"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	channel  = 0
	velocity = 100
	// ticks per quarter note
	resolution = 960
	// a fixed tempo keeps the tick math simple
	bpm = 120
)

// parseSMF is swapped out in tests.
var parseSMF = smf.ReadFrom

// ReadMidiFile parses an SMF file. smf can panic on malformed input
// (https://github.com/gomidi/midi/issues/20), any such panic is returned as an error.
func ReadMidiFile(path string) (s *smf.SMF, err error) {
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, fmt.Errorf("could not parse midi file %v: %v", path, r)
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read midi file: %w", err)
	}

	s, err = parseSMF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not parse midi file %v: %w", path, err)
	}
	return s, nil
}

func durationToTicks(d time.Duration) uint32 {
	quarter := time.Minute / bpm
	ticks := uint32(d * resolution / quarter)
	if ticks == 0 {
		ticks = 1
	}
	return ticks
}

// WriteChord writes notes as one chord held for duration.
func WriteChord(path string, notes model.Notes, duration time.Duration) error {
	if len(notes) == 0 {
		return errors.New("no notes to write")
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(resolution)

	var tempo smf.Track
	tempo.Add(0, smf.MetaTempo(bpm))
	tempo.Close(0)

	var track smf.Track
	for _, note := range notes {
		track.Add(0, midi.NoteOn(channel, uint8(note), velocity))
	}
	for i, note := range notes {
		var delta uint32
		if i == 0 {
			delta = durationToTicks(duration)
		}
		track.Add(delta, midi.NoteOff(channel, uint8(note)))
	}
	track.Close(0)

	if err := s.Add(tempo); err != nil {
		return fmt.Errorf("could not add tempo track: %w", err)
	}
	if err := s.Add(track); err != nil {
		return fmt.Errorf("could not add note track: %w", err)
	}

	if err := util.EnsureParentDir(path); err != nil {
		return err
	}
	return s.WriteFile(path)
}

// ReadChord returns every distinct key turned on in the file, ascending.
func ReadChord(path string) (notes model.Notes, err error) {
	defer func() {
		if r := recover(); r != nil {
			notes, err = nil, fmt.Errorf("could not read notes from %v: %v", path, r)
		}
	}()

	s, err := ReadMidiFile(path)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("no midi data in %v", path)
	}

	on := make(map[int]bool)
	for _, events := range s.Tracks {
		for _, event := range events {
			var ch, key, vel uint8
			if event.Message.GetNoteOn(&ch, &key, &vel) && vel > 0 {
				on[int(key)] = true
			}
		}
	}

	return util.GetKeys(on), nil
}
