package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/intentguard/internal/ledger"
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Inspect the append-only agent trace ledger",
}

var traceTailCmd = &cobra.Command{
	Use:   "tail [n]",
	Short: "Show the most recent trace entries",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n := 10
		if len(args) == 1 {
			parsed, err := strconv.Atoi(args[0])
			if err != nil || parsed <= 0 {
				return fmt.Errorf("n must be a positive integer, got %q", args[0])
			}
			n = parsed
		}

		entries, err := ledger.Tail(workspace, n)
		if err != nil {
			return fmt.Errorf("reading trace ledger: %w", err)
		}
		if len(entries) == 0 {
			cmd.Println("no trace entries recorded")
			return nil
		}
		for _, e := range entries {
			printTraceEntry(cmd, e)
		}
		return nil
	},
}

var traceSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search the trace ledger's derived index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := ledger.OpenIndex(workspace)
		if err != nil {
			return fmt.Errorf("opening trace index: %w", err)
		}
		defer idx.Close()

		// The index is a derived cache; nothing in the write path
		// populates it incrementally, so rebuild from the ledger
		// before every search. Cheap relative to a trace ledger's size.
		if err := idx.Rebuild(workspace); err != nil {
			return fmt.Errorf("rebuilding trace index: %w", err)
		}

		hits, err := idx.Search(args[0], 20)
		if err != nil {
			return fmt.Errorf("searching trace index: %w", err)
		}
		if len(hits) == 0 {
			cmd.Println("no matches")
			return nil
		}
		for _, h := range hits {
			cmd.Printf("%s  %s  %s\n", h.Timestamp, h.MutationClass, h.FilePaths)
		}
		return nil
	},
}

func printTraceEntry(cmd *cobra.Command, e ledger.TraceEntry) {
	cmd.Printf("%s  %-16s %s\n", e.Timestamp, e.MutationClass, e.ClassificationReason)
	for _, f := range e.Files {
		cmd.Printf("    %s\n", f.RelativePath)
	}
}

func init() {
	traceCmd.AddCommand(traceTailCmd, traceSearchCmd)
	rootCmd.AddCommand(traceCmd)
}
