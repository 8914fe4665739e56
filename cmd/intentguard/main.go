// intentguard: an intent-scoped mediation layer for agentic coding
// assistants.
//
// Usage:
//
//	intentguard serve                       # Start the MCP server (stdio transport)
//	intentguard init                        # Seed .orchestration/ in the current workspace
//	intentguard intents list                # List declared intents
//	intentguard intents status <id> <status> # Update an intent's status
//	intentguard trace tail [n]              # Show the last n trace entries
//	intentguard trace search <query>        # Full-text search the trace ledger
package main

import "github.com/HendryAvila/intentguard/cmd/intentguard/cli"

func main() {
	cli.Execute()
}
