// Package dispatch implements the Dispatch Façade (§4.H): the single
// entry point a host integration calls for every mediated tool call. It
// owns the pipeline engine, the lazily created session identifier, and
// the decision of whether to invoke the real tool at all.
package dispatch

import (
	"sync"

	"github.com/google/uuid"

	"github.com/HendryAvila/intentguard/internal/hookctx"
	"github.com/HendryAvila/intentguard/internal/pipeline"
)

// ToolDispatcher invokes the real, host-supplied tool implementation.
// The Façade never knows how a tool actually runs — it only decides
// whether to let the call reach this function.
type ToolDispatcher func(toolName string, params map[string]any) (any, error)

// Result is the shape returned to the host for every dispatched call
// (§4.H: "{content, blocked, block_reason?}").
type Result struct {
	Content     any
	Blocked     bool
	BlockReason string
}

// Facade wires the hook pipeline to a host-supplied tool dispatcher. No
// in-memory state persists across calls except the registered hook
// list and the lazily created session identifier (§5).
type Facade struct {
	engine   *pipeline.Engine
	dispatch ToolDispatcher

	sessionOnce sync.Once
	sessionID   string
}

// New builds a Façade around an already-wired pipeline engine and the
// host's tool dispatcher.
func New(engine *pipeline.Engine, dispatch ToolDispatcher) *Facade {
	return &Facade{engine: engine, dispatch: dispatch}
}

// SessionID returns the process-stable session identifier, creating it
// on first use. Safe for concurrent use (§5: "safe under concurrent
// calls provided each call owns its own context").
func (f *Facade) SessionID() string {
	f.sessionOnce.Do(func() {
		f.sessionID = uuid.NewString()
	})
	return f.sessionID
}

// Dispatch runs one tool call through the full mediation pipeline
// (§4.H, steps 1-6). sessionIntent seeds the context's IntentID when
// the host already knows which intent is active for this session;
// pass "" when it doesn't.
func (f *Facade) Dispatch(toolName string, params map[string]any, workspacePath, sessionIntent string) Result {
	ctx := hookctx.New(toolName, params, workspacePath, sessionIntent)
	ctx.SessionID = f.SessionID()

	enriched, block := f.engine.RunPre(ctx)
	if block != nil {
		return Result{
			Content:     errorPayload(block.Reason, block.Code),
			Blocked:     true,
			BlockReason: block.Reason,
		}
	}

	if enriched.HasInjected {
		f.engine.RunPost(enriched, enriched.InjectedResult)
		return Result{Content: toolResultPayload(enriched.InjectedResult)}
	}

	toolResult, err := f.dispatch(enriched.ToolName, enriched.Params)
	if err != nil {
		toolResult = errorPayload(err.Error(), hookctx.CodeGenericBlock)
	}

	f.engine.RunPost(enriched, toolResult)

	return Result{Content: toolResult}
}
