package dispatch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/HendryAvila/intentguard/internal/hookctx"
	"github.com/HendryAvila/intentguard/internal/pipeline"
)

func blockingPreHook(code hookctx.BlockCode, reason string) pipeline.PreHook {
	return func(ctx *hookctx.Context) (*hookctx.Context, *hookctx.BlockSignal) {
		return nil, &hookctx.BlockSignal{Code: code, Reason: reason}
	}
}

func passthroughPreHook() pipeline.PreHook {
	return func(ctx *hookctx.Context) (*hookctx.Context, *hookctx.BlockSignal) {
		return ctx, nil
	}
}

func injectingPreHook(result string) pipeline.PreHook {
	return func(ctx *hookctx.Context) (*hookctx.Context, *hookctx.BlockSignal) {
		next := ctx.Clone()
		next.InjectedResult = result
		next.HasInjected = true
		return next, nil
	}
}

func TestDispatch_PreHookBlockSkipsTool(t *testing.T) {
	engine := pipeline.New()
	engine.RegisterPre("block", blockingPreHook(hookctx.CodeNoIntentDeclared, "no intent"))

	called := false
	toolDispatcher := func(toolName string, params map[string]any) (any, error) {
		called = true
		return nil, nil
	}

	f := New(engine, toolDispatcher)
	result := f.Dispatch("write_file", map[string]any{"path": "a.ts"}, t.TempDir(), "")

	if !result.Blocked {
		t.Fatal("expected Blocked=true")
	}
	if result.BlockReason != "no intent" {
		t.Errorf("BlockReason = %q, want %q", result.BlockReason, "no intent")
	}
	if called {
		t.Error("expected the host tool dispatcher not to be invoked")
	}
}

func TestDispatch_InjectedResultSkipsHostTool(t *testing.T) {
	engine := pipeline.New()
	engine.RegisterPre("inject", injectingPreHook("<intent-context/>"))

	called := false
	toolDispatcher := func(toolName string, params map[string]any) (any, error) {
		called = true
		return nil, nil
	}

	f := New(engine, toolDispatcher)
	result := f.Dispatch("select_active_intent", map[string]any{"intent_id": "INT-001"}, t.TempDir(), "")

	if result.Blocked {
		t.Fatal("unexpected Blocked=true")
	}
	if called {
		t.Error("expected the host tool dispatcher not to be invoked when a result was injected")
	}
	payload, ok := result.Content.(resultPayload)
	if !ok || payload.Content != "<intent-context/>" {
		t.Errorf("Content = %+v, want injected XML wrapped in resultPayload", result.Content)
	}
}

func TestDispatch_HostToolInvokedAndPostHooksRun(t *testing.T) {
	tmp := t.TempDir()
	engine := pipeline.New()
	engine.RegisterPre("pass", passthroughPreHook())

	var recordedResult any
	engine.RegisterPost("record", func(ctx *hookctx.Context, toolResult any) error {
		recordedResult = toolResult
		return nil
	})

	toolDispatcher := func(toolName string, params map[string]any) (any, error) {
		return "tool output", nil
	}

	f := New(engine, toolDispatcher)
	result := f.Dispatch("read_file", map[string]any{"path": "a.ts"}, tmp, "INT-001")

	if result.Blocked {
		t.Fatal("unexpected Blocked=true")
	}
	if result.Content != "tool output" {
		t.Errorf("Content = %v, want %q", result.Content, "tool output")
	}
	if recordedResult != "tool output" {
		t.Errorf("post-hook saw %v, want %q", recordedResult, "tool output")
	}
}

func TestDispatch_HostToolErrorSurfacedAsPayload(t *testing.T) {
	engine := pipeline.New()
	toolDispatcher := func(toolName string, params map[string]any) (any, error) {
		return nil, errors.New("disk full")
	}

	f := New(engine, toolDispatcher)
	result := f.Dispatch("write_file", map[string]any{"path": "a.ts"}, t.TempDir(), "INT-001")

	payload, ok := result.Content.(blockPayload)
	if !ok || payload.Error != "disk full" {
		t.Errorf("Content = %+v, want an error payload wrapping %q", result.Content, "disk full")
	}
}

func TestDispatch_SessionIDStableAcrossCalls(t *testing.T) {
	engine := pipeline.New()

	var sessionIDs []string
	engine.RegisterPost("capture", func(ctx *hookctx.Context, toolResult any) error {
		sessionIDs = append(sessionIDs, ctx.SessionID)
		return nil
	})

	toolDispatcher := func(toolName string, params map[string]any) (any, error) {
		return nil, nil
	}

	f := New(engine, toolDispatcher)
	f.Dispatch("read_file", map[string]any{"path": "a.ts"}, t.TempDir(), "")
	f.Dispatch("read_file", map[string]any{"path": "b.ts"}, t.TempDir(), "")

	if len(sessionIDs) != 2 {
		t.Fatalf("got %d recorded session IDs, want 2", len(sessionIDs))
	}
	if sessionIDs[0] == "" || sessionIDs[0] != sessionIDs[1] {
		t.Errorf("session IDs not stable across calls: %v", sessionIDs)
	}
}

func TestDispatch_RealPipelineEndToEndRequiresIntent(t *testing.T) {
	tmp := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmp, ".orchestration"), 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	engine := pipeline.New()
	engine.RegisterPre("gatekeeper", func(ctx *hookctx.Context) (*hookctx.Context, *hookctx.BlockSignal) {
		if ctx.IntentID == "" {
			return nil, &hookctx.BlockSignal{
				Code:   hookctx.CodeNoIntentDeclared,
				Reason: "declare an intent first",
			}
		}
		return ctx, nil
	})

	called := false
	toolDispatcher := func(toolName string, params map[string]any) (any, error) {
		called = true
		return "wrote file", nil
	}

	f := New(engine, toolDispatcher)
	result := f.Dispatch("write_file", map[string]any{"path": "a.ts"}, tmp, "")
	if !result.Blocked || called {
		t.Fatalf("expected a block with no host tool call, got Blocked=%v called=%v", result.Blocked, called)
	}

	result = f.Dispatch("write_file", map[string]any{"path": "a.ts"}, tmp, "INT-001")
	if result.Blocked || !called {
		t.Fatalf("expected the host tool to run once an intent is declared, got Blocked=%v called=%v", result.Blocked, called)
	}
}
