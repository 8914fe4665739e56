package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/intentguard/internal/mcpserver"
	"github.com/HendryAvila/intentguard/internal/updater"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update intentguard to the latest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.Println("Checking for updates...")

		result := updater.CheckVersion(mcpserver.Version)
		if !result.UpdateAvailable {
			cmd.Printf("Already at the latest version (v%s)\n", result.CurrentVersion)
			return nil
		}

		cmd.Printf("New version available: v%s -> v%s\n", result.CurrentVersion, result.LatestVersion)
		cmd.Println("Downloading...")

		if err := updater.SelfUpdate(mcpserver.Version); err != nil {
			return fmt.Errorf("update failed (download manually from %s): %w", result.ReleaseURL, err)
		}

		cmd.Printf("Updated to v%s! Restart intentguard to use the new version.\n", result.LatestVersion)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
