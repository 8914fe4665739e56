// Package resources implements MCP resource handlers exposing
// intentguard's own state for host context.
//
// Resources provide read-only data that the host can consume for
// context. They use URI-based addressing (intentguard://...) following
// MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/intentguard/internal/intent"
)

// Handler manages intentguard resource endpoints.
type Handler struct {
	store     intent.Store
	workspace string
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(store intent.Store, workspace string) *Handler {
	return &Handler{store: store, workspace: workspace}
}

// IntentsResource returns the MCP resource definition for the current
// intent policy.
func (h *Handler) IntentsResource() mcp.Resource {
	return mcp.NewResource(
		"intentguard://intents/active",
		"Active Intents",
		mcp.WithResourceDescription("Every declared intent, its status, and its scope"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleIntents returns the current intent policy as JSON.
func (h *Handler) HandleIntents(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	intents, err := h.store.Load(h.workspace)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}

	data, err := json.MarshalIndent(intents, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling intents: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
