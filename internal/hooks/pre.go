package hooks

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/HendryAvila/intentguard/internal/fingerprint"
	"github.com/HendryAvila/intentguard/internal/hookctx"
	"github.com/HendryAvila/intentguard/internal/intent"
	"github.com/HendryAvila/intentguard/internal/pipeline"
)

// ContextInjector implements the Context Injector pre-hook (§4.F). It
// triggers only for select_active_intent calls: the real tool is never
// executed, and the intent's XML handshake document is injected instead.
func ContextInjector(store intent.Store) pipeline.PreHook {
	return func(ctx *hookctx.Context) (*hookctx.Context, *hookctx.BlockSignal) {
		if ctx.ToolName != "select_active_intent" {
			return ctx, nil
		}

		intentID, ok := ctx.StringParam("intent_id")
		if !ok || intentID == "" {
			return nil, &hookctx.BlockSignal{
				Code:   hookctx.CodeGenericBlock,
				Reason: "select_active_intent requires a non-empty string intent_id",
			}
		}

		in, err := store.Find(ctx.WorkspacePath, intentID)
		if err != nil {
			return nil, &hookctx.BlockSignal{
				Code:   hookctx.CodeGenericBlock,
				Reason: fmt.Sprintf("reading intent policy: %v", err),
			}
		}
		if in == nil {
			return nil, &hookctx.BlockSignal{
				Code: hookctx.CodeUnknownIntent,
				Reason: fmt.Sprintf("intent %q does not exist; available intents: %s",
					intentID, availableIntentIDs(ctx.WorkspacePath, store)),
			}
		}
		if in.Status == intent.StatusComplete {
			return nil, &hookctx.BlockSignal{
				Code:   hookctx.CodeCompleteIntent,
				Reason: fmt.Sprintf("intent %q is already COMPLETE", intentID),
			}
		}
		if in.Status == intent.StatusBlocked {
			return nil, &hookctx.BlockSignal{
				Code:   hookctx.CodeBlockedIntent,
				Reason: fmt.Sprintf("intent %q is BLOCKED: %s", intentID, in.BlockedReason),
			}
		}

		next := ctx.Clone()
		next.IntentID = in.ID
		next.InjectedResult = intent.ContextXML(in, intent.DefaultInstructions(in))
		next.HasInjected = true
		return next, nil
	}
}

func availableIntentIDs(ws string, store intent.Store) string {
	intents, err := store.Load(ws)
	if err != nil || len(intents) == 0 {
		return "(none declared)"
	}
	ids := make([]string, len(intents))
	for i, in := range intents {
		ids[i] = in.ID
	}
	sort.Strings(ids)
	return strings.Join(ids, ", ")
}

// IntentGatekeeper implements the Intent Gatekeeper pre-hook (§4.F).
// Read-only/meta tools and tools in neither set always pass; destructive
// tools require an already-declared ctx.IntentID.
func IntentGatekeeper() pipeline.PreHook {
	return func(ctx *hookctx.Context) (*hookctx.Context, *hookctx.BlockSignal) {
		if !IsDestructive(ctx.ToolName) {
			return ctx, nil
		}
		if ctx.IntentID == "" {
			return nil, &hookctx.BlockSignal{
				Code:   hookctx.CodeNoIntentDeclared,
				Reason: "no active intent declared; call select_active_intent(intent_id) before using " + ctx.ToolName,
			}
		}
		return ctx, nil
	}
}

// ScopeEnforcer implements the Scope Enforcer pre-hook (§4.F).
func ScopeEnforcer(store *intent.FileStore) pipeline.PreHook {
	return func(ctx *hookctx.Context) (*hookctx.Context, *hookctx.BlockSignal) {
		if IsReadOnly(ctx.ToolName) || ctx.IntentID == "" {
			return ctx, nil
		}
		target, ok := PathParam(ctx.Params)
		if !ok {
			return ctx, nil
		}

		absTarget := resolvePath(ctx.WorkspacePath, target)
		if store.IsFileIgnored(ctx.WorkspacePath, absTarget) {
			return ctx, nil
		}

		in, err := store.Find(ctx.WorkspacePath, ctx.IntentID)
		if err != nil || in == nil {
			// The Gatekeeper already handles the intent-missing case;
			// this hook only enforces scope for intents that still exist.
			return ctx, nil
		}

		if store.IsFileInScope(ctx.WorkspacePath, in, absTarget) {
			return ctx, nil
		}

		return nil, &hookctx.BlockSignal{
			Code: hookctx.CodeScopeViolation,
			Reason: fmt.Sprintf(
				"%s is outside intent %s's owned scope (%s); either declare a new intent covering this path or request a scope amendment",
				target, in.ID, strings.Join(in.OwnedScope, ", "),
			),
		}
	}
}

// OptimisticLockGuard implements the Optimistic Lock Guard pre-hook
// (§4.F). It applies only to the destructive write subset.
func OptimisticLockGuard() pipeline.PreHook {
	return func(ctx *hookctx.Context) (*hookctx.Context, *hookctx.BlockSignal) {
		if !IsWriteSubset(ctx.ToolName) {
			return ctx, nil
		}
		target, ok := PathParam(ctx.Params)
		if !ok {
			return ctx, nil
		}

		absTarget := resolvePath(ctx.WorkspacePath, target)
		content, err := os.ReadFile(absTarget)
		if err != nil {
			// Missing file (new-file case) or unreadable: pass through,
			// nothing to lock against yet.
			return ctx, nil
		}

		// Locking always compares raw content hashes (§4.F), never the
		// AST-shape hash — a client can't reproduce the server's AST
		// serialization, only the bytes it read.
		current := fingerprint.RawFingerprint(content)

		next := ctx.Clone()
		next.OldContentSnapshot = string(content)
		next.HasOldContent = true

		readHash, hasReadHash := ctx.StringParam("read_hash")
		if hasReadHash && readHash != current.Hash {
			return nil, &hookctx.BlockSignal{
				Code: hookctx.CodeStaleFile,
				Reason: fmt.Sprintf(
					"file changed since last read: expected %s, file is now at %s; re-read %s and retry with the current hash",
					readHash, current.Hash, target,
				),
			}
		}

		return next, nil
	}
}
