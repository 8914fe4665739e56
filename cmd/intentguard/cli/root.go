// Package cli implements intentguard's command-line surface with
// spf13/cobra, grounded on the teacher/pack convention of a thin
// root command that resolves the workspace once in
// PersistentPreRunE and hands it to subcommands via a package var.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/intentguard/internal/mcpserver"
)

// workspace holds the resolved workspace root, populated in
// PersistentPreRunE so every subcommand can read it without
// re-deriving it.
var workspace string

var rootCmd = &cobra.Command{
	Use:     "intentguard",
	Short:   "Intent-scoped mediation layer for agentic coding assistants",
	Version: mcpserver.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if workspace != "" {
			return nil
		}
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
		workspace = wd
		return nil
	},
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&workspace, "workspace", "", "workspace root (defaults to the current directory)")
}
