package cli

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/HendryAvila/intentguard/internal/mcpserver"
	"github.com/HendryAvila/intentguard/internal/updater"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (stdio transport)",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := mcpserver.New(workspace)
		if err != nil {
			return fmt.Errorf("creating server: %w", err)
		}

		// Background version check — prints to stderr so it doesn't
		// interfere with MCP's stdio transport on stdout.
		go checkForUpdates()

		return server.ServeStdio(s)
	},
}

// checkForUpdates runs a non-blocking version check and prints a notice
// to stderr if an update is available. Best-effort — network failures
// are silently ignored.
func checkForUpdates() {
	result := updater.CheckVersion(mcpserver.Version)
	if result.UpdateAvailable {
		fmt.Fprintf(os.Stderr,
			"\nUpdate available: v%s -> v%s\nRun: intentguard update\nRelease: %s\n\n",
			result.CurrentVersion, result.LatestVersion, result.ReleaseURL,
		)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
