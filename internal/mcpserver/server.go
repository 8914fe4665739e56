// Package mcpserver wires the mediation pipeline into a demo MCP
// server: a minimal stand-in for the "host editor integration" the
// spec treats as an external collaborator (§1 Non-goals), just
// complete enough to exercise the Dispatch Façade end to end.
//
// This is the composition root (DIP): it creates concrete
// implementations and injects them into the pieces that depend on
// abstractions. No policy logic lives here — only wiring.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/HendryAvila/intentguard/internal/dispatch"
	"github.com/HendryAvila/intentguard/internal/hooks"
	"github.com/HendryAvila/intentguard/internal/intent"
	"github.com/HendryAvila/intentguard/internal/pipeline"
	"github.com/HendryAvila/intentguard/internal/prompts"
	"github.com/HendryAvila/intentguard/internal/resources"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with every mediated tool
// registered, all routed through a single Dispatch Façade. workspacePath
// is the single workspace this server instance mediates.
func New(workspacePath string) (*server.MCPServer, error) {
	store := intent.NewFileStore()

	engine := pipeline.New()

	// Pre-chain order fixed by §5: Context Injector → Gatekeeper →
	// Scope Enforcer → Lock Guard.
	engine.RegisterPre("context-injector", hooks.ContextInjector(store))
	engine.RegisterPre("intent-gatekeeper", hooks.IntentGatekeeper())
	engine.RegisterPre("scope-enforcer", hooks.ScopeEnforcer(store))
	engine.RegisterPre("optimistic-lock-guard", hooks.OptimisticLockGuard())

	// Post-chain order fixed by §5: Trace Logger → Intent-Map Updater
	// → Lesson Recorder.
	engine.RegisterPost("trace-logger", hooks.TraceLogger())
	engine.RegisterPost("intent-map-updater", hooks.IntentMapUpdater(store))
	engine.RegisterPost("lesson-recorder", hooks.LessonRecorder())

	facade := dispatch.New(engine, hostToolDispatcher(workspacePath))

	s := server.NewMCPServer(
		"intentguard",
		Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	for _, tool := range mediatedTools(facade, workspacePath) {
		s.AddTool(tool.Definition(), tool.Handle)
	}

	statusTool := newUpdateIntentStatusTool(store, workspacePath)
	s.AddTool(statusTool.Definition(), statusTool.Handle)

	resourceHandler := resources.NewHandler(store, workspacePath)
	s.AddResource(resourceHandler.IntentsResource(), resourceHandler.HandleIntents)

	onboardPrompt := prompts.NewOnboardPrompt()
	s.AddPrompt(onboardPrompt.Definition(), onboardPrompt.Handle)

	statusPrompt := prompts.NewStatusPrompt()
	s.AddPrompt(statusPrompt.Definition(), statusPrompt.Handle)

	return s, nil
}

func mediatedTools(facade *dispatch.Facade, ws string) []*mediatedTool {
	return []*mediatedTool{
		newMediatedTool(facade, ws, "read_file", readFileDefinition(), "path"),
		newMediatedTool(facade, ws, "write_file", writeFileDefinition(), "path", "content", "read_hash"),
		newMediatedTool(facade, ws, "delete_file", deleteFileDefinition(), "path"),
		newMediatedTool(facade, ws, "execute_command", executeCommandDefinition(), "command"),
		newMediatedTool(facade, ws, "select_active_intent", selectActiveIntentDefinition(), "intent_id"),
	}
}

func serverInstructions() string {
	return `intentguard mediates every destructive tool call through an intent-
scoped policy layer. Before writing, editing, or deleting a file, or
running a shell command, call select_active_intent(intent_id) with
the intent that covers the work — the response includes that intent's
owned scope and constraints as an XML handshake document.

Writes outside the active intent's owned scope are rejected with
SCOPE_VIOLATION. Writes to a file that changed since your last read
are rejected with STALE_FILE — re-read the file and retry with its
current hash. Every successful write is classified as an AST_REFACTOR
(pure reshaping of existing behavior), INTENT_EVOLUTION (new or
changed exported behavior), or UNKNOWN (no earlier content to compare,
or no exports could be extracted) and logged to
.orchestration/agent_trace.jsonl.`
}
