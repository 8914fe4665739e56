package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/intentguard/internal/intent"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Seed .orchestration/ in the workspace with an empty intent policy",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := intent.NewFileStore()

		if _, err := os.Stat(intent.IntentsPath(workspace)); err == nil {
			return fmt.Errorf("%s already exists; remove it first if you want to reseed", intent.IntentsPath(workspace))
		}

		if err := store.Init(workspace); err != nil {
			return fmt.Errorf("seeding intent policy: %w", err)
		}
		cmd.Printf("seeded %s\n", intent.IntentsPath(workspace))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
