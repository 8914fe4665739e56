// Package prompts implements MCP prompt handlers for intentguard.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// OnboardPrompt handles the intent-onboard MCP prompt.
// It guides the AI through declaring a new intent in active_intents.yaml
// and selecting it before any mediated tool call.
type OnboardPrompt struct{}

// NewOnboardPrompt creates an OnboardPrompt.
func NewOnboardPrompt() *OnboardPrompt {
	return &OnboardPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *OnboardPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("intent-onboard",
		mcp.WithPromptDescription(
			"Declare a new intent and select it as active. This walks the "+
				"AI through adding an entry to active_intents.yaml with an "+
				"owned scope, then calling select_active_intent before any "+
				"mediated tool call.",
		),
		mcp.WithArgument("intent_id",
			mcp.ArgumentDescription("Identifier for the new intent, e.g. INT-004"),
		),
		mcp.WithArgument("owned_scope",
			mcp.ArgumentDescription("Comma-separated glob patterns this intent is allowed to touch, e.g. internal/billing/**"),
		),
	)
}

// Handle processes the intent-onboard prompt request.
func (p *OnboardPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	intentID := "INT-NEW"
	ownedScope := "<fill in owned scope globs>"
	if args := req.Params.Arguments; args != nil {
		if id, ok := args["intent_id"]; ok && id != "" {
			intentID = id
		}
		if scope, ok := args["owned_scope"]; ok && scope != "" {
			ownedScope = scope
		}
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Onboard intent: %s", intentID),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to start working under a new intent, %q, scoped to: %s.\n\n"+
						"Please:\n"+
						"1. Read .orchestration/active_intents.yaml with read_file\n"+
						"2. Append a new entry with id=%q, status=IN_PROGRESS, and "+
						"owned_scope covering the globs above, preserving the file's "+
						"existing header and every other intent untouched\n"+
						"3. Write the file back with write_file, passing as read_hash "+
						"\"raw-sha256:\" plus the hex SHA-256 of the content you just read\n"+
						"4. Call select_active_intent with intent_id=%q before making "+
						"any write_file, delete_file, or execute_command call",
					intentID, ownedScope, intentID, intentID,
				)),
			},
		},
	}, nil
}
