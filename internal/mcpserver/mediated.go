package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/intentguard/internal/dispatch"
)

// mediatedTool adapts one of the spec's §6 tool names into an MCP tool
// whose handler always goes through the Dispatch Façade first — no
// handler ever calls the host tool dispatcher directly. Every
// parameter this demo server's tools take is a plain string, so
// paramNames lists which ones to pull out of the request.
type mediatedTool struct {
	facade     *dispatch.Facade
	ws         string
	name       string
	def        mcp.Tool
	paramNames []string
}

func newMediatedTool(facade *dispatch.Facade, ws, name string, def mcp.Tool, paramNames ...string) *mediatedTool {
	return &mediatedTool{facade: facade, ws: ws, name: name, def: def, paramNames: paramNames}
}

func (t *mediatedTool) Definition() mcp.Tool { return t.def }

// Handle extracts the declared string parameters, passes them to the
// Façade verbatim, and renders a block as an MCP tool error rather
// than an exception — the agent sees the block reason and code as
// ordinary tool output, per §6.
func (t *mediatedTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := make(map[string]any, len(t.paramNames))
	for _, name := range t.paramNames {
		if v := req.GetString(name, ""); v != "" {
			params[name] = v
		}
	}

	result := t.facade.Dispatch(t.name, params, t.ws, "")
	if result.Blocked {
		payload, err := json.Marshal(result.Content)
		if err != nil {
			return mcp.NewToolResultError(result.BlockReason), nil
		}
		return mcp.NewToolResultError(string(payload)), nil
	}

	body, err := json.Marshal(result.Content)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshaling tool result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(body)), nil
}

func readFileDefinition() mcp.Tool {
	return mcp.NewTool("read_file",
		mcp.WithDescription("Read a file's contents from the workspace."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Workspace-relative file path")),
	)
}

func writeFileDefinition() mcp.Tool {
	return mcp.NewTool("write_file",
		mcp.WithDescription(
			"Write (create or overwrite) a file in the workspace. Requires an "+
				"active intent covering the target path; pass read_hash "+
				"(\"raw-sha256:\" plus the hex SHA-256 of the content a prior "+
				"read_file returned) to guard against concurrent edits.",
		),
		mcp.WithString("path", mcp.Required(), mcp.Description("Workspace-relative file path")),
		mcp.WithString("content", mcp.Required(), mcp.Description("New file contents")),
		mcp.WithString("read_hash", mcp.Description("raw-sha256:<hex> digest of this file's content as last read")),
	)
}

func deleteFileDefinition() mcp.Tool {
	return mcp.NewTool("delete_file",
		mcp.WithDescription("Delete a file from the workspace. Requires an active intent covering the target path."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Workspace-relative file path")),
	)
}

func executeCommandDefinition() mcp.Tool {
	return mcp.NewTool("execute_command",
		mcp.WithDescription("Run a shell command in the workspace. Requires an active intent."),
		mcp.WithString("command", mcp.Required(), mcp.Description("Shell command to run")),
	)
}

func selectActiveIntentDefinition() mcp.Tool {
	return mcp.NewTool("select_active_intent",
		mcp.WithDescription(
			"Declare the intent this session is working under. Returns the "+
				"intent's scope and constraints as a handshake document; the "+
				"underlying tool call itself does nothing else.",
		),
		mcp.WithString("intent_id", mcp.Required(), mcp.Description("ID of the intent to select")),
	)
}
