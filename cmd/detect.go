package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jsphweid/notesift/chord"
	"github.com/jsphweid/notesift/detect"
	"github.com/jsphweid/notesift/frames"
	"github.com/jsphweid/notesift/midi"
	"github.com/jsphweid/notesift/model"
	"github.com/spf13/cobra"
)

var (
	detectMidiPath string
	detectSave     bool
	detectExplain  bool
	detectVerbose  bool
)

func init() {
	detectCmd.Flags().StringVar(&detectMidiPath, "midi", "", "write the detected chord to this MIDI file")
	detectCmd.Flags().BoolVar(&detectSave, "save", false, "save the result to the history")
	detectCmd.Flags().BoolVar(&detectExplain, "explain", false, "ask the LLM which chord this is")
	detectCmd.Flags().BoolVarP(&detectVerbose, "verbose", "v", false, "print every scored candidate")
	rootCmd.AddCommand(detectCmd)
}

var detectCmd = &cobra.Command{
	Use:   "detect <frames.json>",
	Short: "Detects the notes in a frames file",
	Long: `Detects the notes in a frames file. The file holds either a JSON array of
88 value frames or a Basic Pitch output object with a "frames" field.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDetect(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func printAnalysis(w io.Writer, res model.Analysis, verbose bool) {
	if verbose {
		fmt.Fprintf(w, "%v candidates\n", len(res.Candidates))
		for _, c := range res.Candidates {
			fmt.Fprintf(w, "  %-4v score=%.3f max=%.3f avg=%.3f frames=%v (%.0f%%)\n",
				chord.EnglishName(c.MidiNote), c.Score, c.MaxConfidence, c.AvgConfidence, c.FrameCount, c.FrameRatio*100)
		}
	}

	if res.Warning != "" {
		fmt.Fprintf(w, "Warning: %v\n", res.Warning)
	}

	if len(res.DetectedMidiNotes) == 0 {
		fmt.Fprintln(w, "No notes detected")
		return
	}

	var names []string
	for _, n := range res.DetectedMidiNotes {
		names = append(names, chord.EnglishName(n))
	}
	fmt.Fprintf(w, "Detected notes: %v\n", strings.Join(names, " "))
	fmt.Fprintf(w, "MIDI: %v\n", chord.CreateChordKey(res.DetectedMidiNotes))
	fmt.Fprintf(w, "Pitch classes: %v\n", chord.FormatNotes(res.DetectedMidiNotes))
}

func runDetect(ctx context.Context, w io.Writer, path string) error {
	ctx = contextOrBackground(ctx)

	collection, err := frames.Load(path)
	if err != nil {
		return err
	}

	res := detect.Analyze(collection)
	printAnalysis(w, res, detectVerbose)

	notes := res.DetectedMidiNotes
	if len(notes) == 0 {
		return nil
	}

	if detectMidiPath != "" {
		if err := midi.WriteChord(detectMidiPath, notes, 2*time.Second); err != nil {
			return fmt.Errorf("could not write midi file: %w", err)
		}
		fmt.Fprintf(w, "Wrote %v\n", detectMidiPath)
	}

	var explanation string
	if detectExplain {
		client, err := newExplainer(ctx)
		if err != nil {
			return err
		}
		explanation, err = client.Explain(ctx, notes)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\n%v\n", explanation)
	}

	if detectSave {
		manager, store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		item, saved, err := manager.Save(ctx, notes, explanation)
		if err != nil {
			return err
		}
		if saved {
			fmt.Fprintf(w, "Saved to history as %v\n", item.ID)
		} else {
			fmt.Fprintln(w, "Already in history")
		}
	}

	return nil
}
