package prompts

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestOnboardPrompt_Handle_UsesSuppliedIntentIDAndScope(t *testing.T) {
	p := NewOnboardPrompt()
	req := mcp.GetPromptRequest{}
	req.Params.Arguments = map[string]string{
		"intent_id":   "INT-009",
		"owned_scope": "internal/billing/**",
	}

	result, err := p.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if len(result.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(result.Messages))
	}
	text := textOf(t, result.Messages[0].Content)
	if !strings.Contains(text, "INT-009") {
		t.Errorf("message = %q, want it to mention INT-009", text)
	}
	if !strings.Contains(text, "internal/billing/**") {
		t.Errorf("message = %q, want it to mention the owned scope", text)
	}
}

func TestOnboardPrompt_Handle_DefaultsWithoutArguments(t *testing.T) {
	p := NewOnboardPrompt()
	result, err := p.Handle(context.Background(), mcp.GetPromptRequest{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	text := textOf(t, result.Messages[0].Content)
	if !strings.Contains(text, "INT-NEW") {
		t.Errorf("message = %q, want the default placeholder id", text)
	}
}

func TestStatusPrompt_Handle_ReferencesIntentsResource(t *testing.T) {
	p := NewStatusPrompt()
	result, err := p.Handle(context.Background(), mcp.GetPromptRequest{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	text := textOf(t, result.Messages[0].Content)
	if !strings.Contains(text, "intentguard://intents/active") {
		t.Errorf("message = %q, want it to reference the intents resource", text)
	}
}

func textOf(t *testing.T, content mcp.Content) string {
	t.Helper()
	tc, ok := content.(mcp.TextContent)
	if !ok {
		t.Fatalf("content = %T, want mcp.TextContent", content)
	}
	return tc.Text
}
