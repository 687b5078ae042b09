package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func init() {
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Lists past analyses",
	Long:  `Lists past analyses, newest first`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listHistory(cmd.Context(), cmd.OutOrStdout())
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Deletes all past analyses",
	Long:  `Deletes all past analyses`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()
		if err := manager.Clear(contextOrBackground(cmd.Context())); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
		return nil
	},
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

func listHistory(ctx context.Context, w io.Writer) error {
	manager, store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	items, err := manager.List(contextOrBackground(ctx))
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(w, "History is empty")
		return nil
	}
	for _, item := range items {
		fmt.Fprintf(w, "%v  %v  %v\n", item.Timestamp, item.FormattedNotes, item.Notes)
		if item.Response != "" {
			fmt.Fprintf(w, "    %v\n", item.Response)
		}
	}
	return nil
}
