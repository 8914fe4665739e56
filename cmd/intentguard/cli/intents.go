package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/intentguard/internal/intent"
)

var intentsCmd = &cobra.Command{
	Use:   "intents",
	Short: "Inspect and manage declared intents",
}

var intentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every declared intent and its status",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := intent.NewFileStore()
		intents, err := store.Load(workspace)
		if err != nil {
			return fmt.Errorf("loading intents: %w", err)
		}
		if len(intents) == 0 {
			cmd.Println("no intents declared")
			return nil
		}
		for _, in := range intents {
			cmd.Printf("%s  %-12s %s\n", in.ID, in.Status, in.Name)
			if in.Status == intent.StatusBlocked && in.BlockedReason != "" {
				cmd.Printf("    blocked: %s\n", in.BlockedReason)
			}
		}
		return nil
	},
}

var intentsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show full detail for a single intent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := intent.NewFileStore()
		in, err := store.Find(workspace, args[0])
		if err != nil {
			return fmt.Errorf("loading intent: %w", err)
		}
		if in == nil {
			return fmt.Errorf("no such intent: %s", args[0])
		}
		cmd.Printf("%s  %s\n", in.ID, in.Name)
		cmd.Printf("status: %s\n", in.Status)
		if in.Status == intent.StatusBlocked && in.BlockedReason != "" {
			cmd.Printf("blocked: %s\n", in.BlockedReason)
		}
		cmd.Println("owned scope:")
		for _, s := range in.OwnedScope {
			cmd.Printf("  %s\n", s)
		}
		if len(in.Constraints) > 0 {
			cmd.Println("constraints:")
			for _, c := range in.Constraints {
				cmd.Printf("  %s\n", c)
			}
		}
		if len(in.DependsOn) > 0 {
			cmd.Printf("depends on: %s\n", strings.Join(in.DependsOn, ", "))
		}
		return nil
	},
}

var intentsStatusCmd = &cobra.Command{
	Use:   "status <id> <status> [blocked_reason]",
	Short: "Update an intent's status",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, status := args[0], args[1]
		blockedReason := ""
		if len(args) == 3 {
			blockedReason = args[2]
		}

		if err := intent.ValidateStatus(intent.Status(status)); err != nil {
			return err
		}

		store := intent.NewFileStore()
		if err := store.UpdateStatus(workspace, id, intent.Status(status), blockedReason); err != nil {
			if intent.IsUnknown(err) {
				return fmt.Errorf("no such intent: %s", id)
			}
			return fmt.Errorf("updating intent status: %w", err)
		}
		cmd.Printf("%s is now %s\n", id, status)
		return nil
	},
}

func init() {
	intentsCmd.AddCommand(intentsListCmd, intentsShowCmd, intentsStatusCmd)
	rootCmd.AddCommand(intentsCmd)
}
