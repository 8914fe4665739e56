package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/intentguard/internal/intent"
)

// updateIntentStatusTool exposes intent.FileStore.UpdateStatus (§3)
// directly. It is a policy-management operation on the store itself,
// not one of the §6 mediated tools, so it never goes through the
// Dispatch Façade.
type updateIntentStatusTool struct {
	store intent.Store
	ws    string
}

func newUpdateIntentStatusTool(store intent.Store, ws string) *updateIntentStatusTool {
	return &updateIntentStatusTool{store: store, ws: ws}
}

func (t *updateIntentStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("update_intent_status",
		mcp.WithDescription("Update an intent's status in active_intents.yaml."),
		mcp.WithString("intent_id", mcp.Required(), mcp.Description("ID of the intent to update")),
		mcp.WithString("status", mcp.Required(),
			mcp.Description("New status"),
			mcp.Enum("PENDING", "IN_PROGRESS", "BLOCKED", "COMPLETE"),
		),
		mcp.WithString("blocked_reason", mcp.Description("Required when status is BLOCKED")),
	)
}

func (t *updateIntentStatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("intent_id", "")
	status := req.GetString("status", "")
	blockedReason := req.GetString("blocked_reason", "")

	if id == "" || status == "" {
		return mcp.NewToolResultError("intent_id and status are required"), nil
	}
	if err := intent.ValidateStatus(intent.Status(status)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := t.store.UpdateStatus(t.ws, id, intent.Status(status), blockedReason); err != nil {
		if intent.IsUnknown(err) {
			return mcp.NewToolResultError(fmt.Sprintf("no such intent: %s", id)), nil
		}
		return nil, fmt.Errorf("updating intent status: %w", err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("intent %s is now %s", id, status)), nil
}
