package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jsphweid/notesift/midi"
	"github.com/jsphweid/notesift/model"
	"github.com/spf13/cobra"
)

var explainMidiPath string

func init() {
	explainCmd.Flags().StringVar(&explainMidiPath, "midi", "", "take the notes from this MIDI file")
	rootCmd.AddCommand(explainCmd)
}

var explainCmd = &cobra.Command{
	Use:   "explain [<midi note>...]",
	Short: "Asks the LLM which chord some notes form",
	Long: `Asks the LLM which chord some notes form, e.g. "notesift explain 60 64 67"
or "notesift explain --midi chord.mid" for a file written by "detect --midi"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := explainInput(args, explainMidiPath)
		if err != nil {
			return err
		}

		ctx := contextOrBackground(cmd.Context())
		client, err := newExplainer(ctx)
		if err != nil {
			return err
		}
		text, err := client.Explain(ctx, notes)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func validNote(n int) bool {
	return n >= 0 && n <= 127
}

func parseNotes(args []string) (model.Notes, error) {
	var notes model.Notes
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil || !validNote(n) {
			return nil, fmt.Errorf("not a MIDI note: %v", arg)
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// explainInput takes notes either from the arguments or from a MIDI file, not both.
func explainInput(args []string, midiPath string) (model.Notes, error) {
	switch {
	case midiPath != "" && len(args) > 0:
		return nil, errors.New("pass either notes or --midi, not both")
	case midiPath != "":
		notes, err := midi.ReadChord(midiPath)
		if err != nil {
			return nil, err
		}
		if len(notes) == 0 {
			return nil, fmt.Errorf("no notes in %v", midiPath)
		}
		return notes, nil
	case len(args) == 0:
		return nil, errors.New("no notes given")
	default:
		return parseNotes(args)
	}
}
