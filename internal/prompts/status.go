package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusPrompt handles the intent-status MCP prompt.
// It instructs the AI to read and present the current intent policy.
type StatusPrompt struct{}

// NewStatusPrompt creates a StatusPrompt.
func NewStatusPrompt() *StatusPrompt {
	return &StatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("intent-status",
		mcp.WithPromptDescription(
			"Check the status of every declared intent: which are in "+
				"progress, blocked, or complete, and what owned scope each "+
				"holds.",
		),
	)
}

// Handle processes the intent-status prompt request.
func (p *StatusPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Active intent status",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please read the intentguard://intents/active resource.\n\n" +
						"Then:\n" +
						"1. List every intent with its status and owned scope\n" +
						"2. Highlight any BLOCKED intents and their blocked_reason\n" +
						"3. Tell me which intent_id I should pass to select_active_intent " +
						"before my next write",
				),
			},
		},
	}, nil
}
