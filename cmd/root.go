package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "notesift",
	Short: "Finds the notes played in pitch model output",
	Long: `notesift reads the per-frame piano key confidences a pitch detection model
produces and reports the notes that were actually played, dropping noise,
transients, overtones and sub-harmonic artifacts.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// a missing .env is fine, the environment may already be set
		_ = godotenv.Load()
	},
}

// Execute runs the CLI. Interrupts cancel the command context, which
// stops serve gracefully.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	cobra.CheckErr(err)
}
